package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/storage/sqlite"
)

func (a *app) newMigrateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:               "migrate",
		Short:             "Apply pending SQLite migrations",
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.load,
		PersistentPostRun: a.sync,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.SQLite.Path
			}

			db, err := sqlite.Connect(path)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := sqlite.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}

			a.logger.Info("migrations applied", zap.String("path", path), zap.Strings("applied", applied))
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "applied", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "database file (default POKESHEET_SQLITE_PATH)")
	return cmd
}
