package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"bookcatalog/internal/platform/postgres"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the books table schema",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres connection string (default $DB_DSN)")

	run := func(op func(ctx context.Context, dsn string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			loadEnvFiles()
			if dsn == "" {
				dsn = dsnFromEnv()
			}
			return op(cmd.Context(), dsn)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, dsn string) error {
				if err := withDB(ctx, dsn, postgres.Up); err != nil {
					return err
				}
				fmt.Println("Migrations applied successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, dsn string) error {
				if err := withDB(ctx, dsn, postgres.Down); err != nil {
					return err
				}
				fmt.Println("Migrations rolled back successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print migration status",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, dsn string) error {
				return withDB(ctx, dsn, postgres.Status)
			}),
		},
	)
	return root
}

func withDB(ctx context.Context, dsn string, fn func(context.Context, *sql.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := postgres.Open(ctx, dsn, 5*time.Second)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := postgres.SQLDB(pool)
	defer db.Close()

	return fn(ctx, db)
}
