package command

import (
	"io"

	"giphyexplorer/database"
	"giphyexplorer/internal/logging"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.MigrateUp(db, logging.New(cfg, io.Discard)); err != nil {
			return err
		}
		return printVersion(cmd.OutOrStdout(), db)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.MigrateDown(db, downSteps); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", downSteps)
		return printVersion(cmd.OutOrStdout(), db)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		return printVersion(cmd.OutOrStdout(), db)
	},
}

func init() {
	migrateDownCmd.Flags().IntVarP(&downSteps, "steps", "n", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}

func printVersion(out io.Writer, db *gorm.DB) error {
	version, dirty, err := database.MigrationVersion(db)
	if err != nil {
		return err
	}
	if dirty {
		color.New(color.FgRed, color.Bold).Fprintf(out, "schema version %d (dirty, fix manually)\n", version)
		return nil
	}
	color.New(color.FgGreen).Fprintf(out, "schema version %d\n", version)
	return nil
}
