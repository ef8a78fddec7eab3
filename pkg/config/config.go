package config

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/file"
)

// Schema sources.
const (
	SchemaYAML     = "yaml"
	SchemaPostgres = "postgres"
	SchemaRedis    = "redis"
)

// File storages.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is the engine configuration used by the entityvalidate command.
type Config struct {
	Env       string `env:"EV_ENV" envDefault:"development"`
	LogLevel  string `env:"EV_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"EV_LOG_FORMAT"` // empty follows EV_ENV

	SchemaSource string `env:"EV_SCHEMA_SOURCE" envDefault:"yaml"`
	SchemaPath   string `env:"EV_SCHEMA_PATH" envDefault:"schema.yaml"`
	RedisURL     string `env:"EV_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix  string `env:"EV_REDIS_PREFIX" envDefault:"fieldspec"`
	Postgres     fieldspec.PostgresConfig

	Storage       string        `env:"EV_STORAGE" envDefault:"local"`
	StorageDir    string        `env:"EV_STORAGE_DIR" envDefault:"."`
	LookupTimeout time.Duration `env:"EV_LOOKUP_TIMEOUT" envDefault:"10s"`
	S3            file.S3Config

	Lang             string `env:"EV_LANG" envDefault:"en"`
	TranslationsPath string `env:"EV_TRANSLATIONS_PATH"` // extra catalogs merged over the bundled ones
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.SchemaSource {
	case SchemaYAML:
		if c.SchemaPath == "" {
			return fmt.Errorf("%w: EV_SCHEMA_PATH is required for the yaml schema source", ErrInvalidConfig)
		}
	case SchemaPostgres:
		if c.Postgres.ConnectionString == "" {
			return fmt.Errorf("%w: EV_PG_CONN_URL is required for the postgres schema source", ErrInvalidConfig)
		}
	case SchemaRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%w: EV_REDIS_URL is required for the redis schema source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown schema source %q", ErrInvalidConfig, c.SchemaSource)
	}

	switch c.Storage {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("%w: EV_S3_BUCKET is required for s3 storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, c.Storage)
	}

	if c.LookupTimeout < 0 {
		return fmt.Errorf("%w: EV_LOOKUP_TIMEOUT must not be negative", ErrInvalidConfig)
	}
	return nil
}
