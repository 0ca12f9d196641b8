package command

// root.go defines the api-server command tree: serve (default) and migrate.

import (
	"fmt"
	"os"

	"giphyexplorer/internal/config"

	"github.com/spf13/cobra"
)

// rootCmd starts the HTTP API when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "api-server",
	Short: "api-server - GIF Explorer HTTP API",
	Long: `api-server runs the GIF Explorer HTTP API: GIF search backed by the
GIPHY catalog, accounts, per-user ratings and comments.

Configuration comes from the environment (and an optional .env file).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

// loadConfig loads and validates configuration for every subcommand.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
