// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/remark/internal/platform/migration"
)

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all up migrations",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(_ *cobra.Command, runner *migration.Runner, _ []string) error {
				return runner.Up()
			}),
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1 step)",
			Args:  cobra.MaximumNArgs(1),
			RunE: withRunner(func(_ *cobra.Command, runner *migration.Runner, args []string) error {
				steps := 1
				if len(args) == 1 {
					parsed, err := strconv.Atoi(args[0])
					if err != nil || parsed <= 0 {
						return fmt.Errorf("steps must be a positive integer, got %q", args[0])
					}
					steps = parsed
				}
				return runner.Down(steps)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(cmd *cobra.Command, runner *migration.Runner, _ []string) error {
				version, dirty, err := runner.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			}),
		},
	)

	return migrate
}

// withRunner opens a migration runner from configuration for the duration of fn.
func withRunner(fn func(*cobra.Command, *migration.Runner, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		runner, err := migration.New(cfg.DatabaseURL, cfg.MigrationPath, log)
		if err != nil {
			return err
		}
		defer runner.Close()

		if err := fn(cmd, runner, args); err != nil {
			log.Error("migration_failed", slog.String("command", cmd.Name()), slog.Any("error", err))
			return err
		}
		return nil
	}
}
