package cmd

import (
	"os"

	"gauth/pkg/gauth"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami <access-token>",
	Short: "Show the profile of the signed-in user",
	Long: `Fetch and display the profile of the user the access token belongs to.

Student-specific fields (grade, class, number) only appear for student
accounts.

Examples:
  gauth whoami eyJhbGciOi...`,
	Args: cobra.ExactArgs(1),
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	profile, err := client.UserInfo(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderProfile(profile)
	return nil
}

// renderProfile prints the profile as a two-column table, omitting the
// role-dependent fields that are absent.
func renderProfile(profile gauth.UserProfile) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	t.AppendRow(table.Row{"Email", profile.Email})
	if profile.Name != nil {
		t.AppendRow(table.Row{"Name", *profile.Name})
	}
	t.AppendRow(table.Row{"Role", profile.Role})
	t.AppendRow(table.Row{"Gender", profile.Gender})
	if profile.Grade != nil {
		t.AppendRow(table.Row{"Grade", *profile.Grade})
	}
	if profile.ClassNum != nil {
		t.AppendRow(table.Row{"Class", *profile.ClassNum})
	}
	if profile.Num != nil {
		t.AppendRow(table.Row{"Number", *profile.Num})
	}
	if profile.ProfileURL != nil {
		t.AppendRow(table.Row{"Profile", *profile.ProfileURL})
	}

	t.Render()
}
