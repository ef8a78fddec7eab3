package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/logger"
)

var publishFlags struct {
	from   string
	dryRun bool
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Copy a YAML schema catalog into Redis",
	Long: `Write one key per entity type and bundle of a YAML catalog to the Redis
instance at EV_REDIS_URL, in the JSON shape read by the redis schema source.
Keys are named "<EV_REDIS_PREFIX>:<entity type>:<bundle>".

Examples:
  entityvalidate publish --from schema.yaml
  entityvalidate publish --from schema.yaml --dry-run`,
	Args: cobra.NoArgs,
	RunE: publishSchema,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVar(&publishFlags.from, "from", "", "YAML catalog to publish (defaults to EV_SCHEMA_PATH)")
	publishCmd.Flags().BoolVar(&publishFlags.dryRun, "dry-run", false, "print the keys and documents without writing them")
}

func publishSchema(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	path := publishFlags.from
	if path == "" {
		path = cfg.SchemaPath
	}
	catalog, err := fieldspec.LoadYAMLFile(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	keys := fieldspec.NewRedisSource(nil, fieldspec.WithRedisPrefix(cfg.RedisPrefix))
	out := cmd.OutOrStdout()

	// Only opened for a real run.
	var set func(key string, value []byte) error
	if !publishFlags.dryRun {
		client, err := openRedis(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
			}
		}()
		set = func(key string, value []byte) error {
			return client.Set(ctx, key, value, 0).Err()
		}
	}

	published := 0
	for _, entityType := range catalog.EntityTypes() {
		for _, variant := range catalog.Variants(entityType) {
			schema, err := catalog.Schema(ctx, entityType, variant)
			if err != nil {
				return err
			}
			data, err := fieldspec.EncodeRedisSchema(schema)
			if err != nil {
				return fmt.Errorf("failed to encode %s/%s: %w", entityType, variant, err)
			}

			key := keys.Key(entityType, variant)
			if set == nil {
				fmt.Fprintf(out, "%s %s\n", key, data)
				continue
			}
			if err := set(key, data); err != nil {
				return fmt.Errorf("failed to publish %s: %w", key, err)
			}
			log.InfoContext(ctx, "schema published",
				logger.EntityType(entityType),
				logger.Variant(variant),
			)
			published++
		}
	}

	if set != nil {
		fmt.Fprintf(out, "published %d schema(s)\n", published)
	}
	return nil
}
