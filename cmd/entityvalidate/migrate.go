package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entityvalidator/pkg/config"
	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the PostgreSQL schema tables",
	Long: `Apply the bundled migrations creating the entity_types and field_instances
tables read by the postgres schema source. The connection is configured
with EV_PG_CONN_URL regardless of EV_SCHEMA_SOURCE.`,
	Args: cobra.NoArgs,
	RunE: migrateSchema,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrateSchema(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Postgres.ConnectionString == "" {
		return fmt.Errorf("%w: EV_PG_CONN_URL is required to run migrations", config.ErrInvalidConfig)
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := fieldspec.ConnectPostgres(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := fieldspec.MigratePostgres(ctx, pool, cfg.Postgres, log); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
