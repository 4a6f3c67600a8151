package cmd

import (
	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh <refresh-token>",
	Short: "Exchange a refresh token for a new token pair",
	Long: `Exchange a refresh token for a fresh access/refresh token pair.

The old refresh token is invalidated by the server; use the newly printed
one from now on.

Examples:
  gauth refresh eyJhbGciOi...`,
	Args: cobra.ExactArgs(1),
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	pair, err := client.Refresh(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printTokenPair(pair)
	return nil
}
