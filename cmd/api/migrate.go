package main

import (
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-goals/internal/config"
)

func newMigrateCommand(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connectFromEnv(*envFile)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := repository.RunMigrations(db); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the given number of migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}

			db, err := connectFromEnv(*envFile)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := repository.RollbackMigrations(db, steps); err != nil {
				return err
			}
			cmd.Printf("rolled back %d migration(s)\n", steps)
			return nil
		},
	})

	return cmd
}

// connectFromEnv only needs the database settings, so the API-specific
// checks in config.Validate are skipped.
func connectFromEnv(envFile string) (*sqlx.DB, error) {
	cfg, err := config.LoadDatabase(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return connectDB(cfg)
}
