package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/udisondev/gdbonus/internal/db"
)

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.RunMigrations(cmd.Context(), a.cfg.Database.DSN()); err != nil {
				return err
			}
			slog.Info("database migrations applied")
			return nil
		},
	}
}
