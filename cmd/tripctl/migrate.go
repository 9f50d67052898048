package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/repo"
)

func newDBMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "db-migrate",
		Short: "Apply pending Postgres migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				return errors.New("--database-url or DATABASE_URL is required")
			}
			applied, err := repo.Migrate(cmd.Context(), databaseURL)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				printf(cmd, "database is up to date\n")
				return nil
			}
			for _, v := range applied {
				printf(cmd, "applied migration %05d\n", v)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	return cmd
}
