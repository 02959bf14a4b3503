package main

import (
	"fmt"
	"log/slog"

	"github.com/dustbill/dustbill_backend/pkg/config"
	"github.com/dustbill/dustbill_backend/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(migrateDirectionCmd(database.MigrateUp, "Apply all pending migrations"))
	cmd.AddCommand(migrateDirectionCmd(database.MigrateDown, "Roll back the most recent migration"))
	return cmd
}

func migrateDirectionCmd(direction database.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := slog.Default()
			logger.Info("Running database migrations", slog.String("direction", string(direction)), slog.String("path", cfg.MigrationsPath))
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, direction, logger)
		},
	}
}
