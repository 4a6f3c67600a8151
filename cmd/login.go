package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gauth/internal/config"
	"gauth/pkg/gauth"
	"gauth/pkg/gauth/capture"
	"gauth/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// Login-specific flags
var (
	loginEmail     string
	loginNoBrowser bool
	loginTimeout   time.Duration
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and obtain a token pair",
	Long: `Sign in with GAuth and exchange the resulting authorization code
for an access/refresh token pair.

By default the hosted login page is opened in your browser and a local
listener captures the redirect. With --email the login page is bypassed:
the code is requested directly with your credentials. The email is the
local part only; the school domain is appended automatically.

Examples:
  gauth login                      # Browser sign-in
  gauth login --no-browser         # Print the login URL instead of opening it
  gauth login --email jane.doe     # Credential sign-in (prompts for password)`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Sign in with credentials instead of the browser (email local part)")
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Do not open the browser; print the login URL")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "How long to wait for the sign-in redirect")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if loginEmail != "" {
		return runCredentialLogin(cmd.Context(), client)
	}

	return runBrowserLogin(cmd.Context(), cfg, client)
}

// runBrowserLogin drives the full authorization-code flow: present the
// login page, capture the redirect, exchange the code.
func runBrowserLogin(ctx context.Context, cfg config.Config, client *gauth.Client) error {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	flow, err := capture.StartBrowserFlow(ctx, cfg.ClientID, capture.FlowConfig{
		Port:        cfg.CallbackPort,
		RedirectURI: cfg.RedirectURI,
		SkipBrowser: loginNoBrowser,
		Logger:      logging.Logger(),
	})
	if err != nil {
		return err
	}
	defer flow.Stop()

	fmt.Printf("Complete the sign-in in your browser:\n  %s\n\n", flow.LoginURL())

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Waiting for the sign-in redirect..."
	s.Start()

	code, err := flow.Wait(ctx)
	s.Stop()
	if err != nil {
		return fmt.Errorf("sign-in was not completed: %w", err)
	}

	pair, err := client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	fmt.Println(text.FgGreen.Sprint("Signed in."))
	printTokenPair(pair)
	return nil
}

// runCredentialLogin requests the authorization code directly with the
// user's credentials, then exchanges it.
func runCredentialLogin(ctx context.Context, client *gauth.Client) error {
	rl, err := readline.New("")
	if err != nil {
		return fmt.Errorf("failed to open terminal prompt: %w", err)
	}
	defer rl.Close()

	email := strings.TrimSpace(loginEmail)

	password, err := rl.ReadPassword(fmt.Sprintf("password for %s%s: ", email, gauth.EmailDomain))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	code, err := client.ExchangeUserCredentials(ctx, gauth.UserCredentials{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	pair, err := client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	fmt.Println(text.FgGreen.Sprint("Signed in."))
	printTokenPair(pair)
	return nil
}
