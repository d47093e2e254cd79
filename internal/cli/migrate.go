package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/db/migrations"
	"github.com/dmitrymomot/folio/pkg/db"
)

func migrateCmd() *cobra.Command {
	var statusOnly bool

	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, flush, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = flush(cmd.Context()) }()
			if err := persistent(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := db.Connect(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if !statusOnly {
				if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
					return err
				}
			}
			version, err := db.MigrationVersion(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}

	c.Flags().BoolVar(&statusOnly, "status", false, "Print the current schema version without migrating")
	return c
}
