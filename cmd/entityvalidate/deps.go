package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/entityvalidator/pkg/config"
	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/file"
	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
	"github.com/dmitrymomot/entityvalidator/pkg/logger"
	"github.com/dmitrymomot/entityvalidator/pkg/validator"
)

const serviceName = "entityvalidate"

// loadConfig reads the --env-file, then the environment, and validates the result.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return cfg, err
		}
	}
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithOutput(os.Stderr),
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts = append(opts, logger.WithLevel(level))

	if cfg.LogFormat != "" {
		format, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(format))
	}

	return logger.New(opts...), nil
}

// openSource connects the configured schema source. The returned close
// function releases its connections and is never nil.
func openSource(ctx context.Context, cfg config.Config, log *slog.Logger) (fieldspec.Source, func(), error) {
	switch cfg.SchemaSource {
	case config.SchemaYAML:
		src, err := fieldspec.LoadYAMLFile(cfg.SchemaPath)
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() {}, nil

	case config.SchemaPostgres:
		pool, err := fieldspec.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, func() {}, err
		}
		return fieldspec.NewPostgresSource(pool), pool.Close, nil

	case config.SchemaRedis:
		client, err := openRedis(cfg)
		if err != nil {
			return nil, func() {}, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
			}
		}
		return fieldspec.NewRedisSource(client, fieldspec.WithRedisPrefix(cfg.RedisPrefix)), closeFn, nil
	}

	return nil, func() {}, fmt.Errorf("%w: unknown schema source %q", config.ErrInvalidConfig, cfg.SchemaSource)
}

func openRedis(cfg config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, errors.Join(config.ErrInvalidConfig, err)
	}
	return redis.NewClient(opts), nil
}

// openResolver builds the file resolver, bounded by EV_LOOKUP_TIMEOUT.
func openResolver(ctx context.Context, cfg config.Config) (file.Resolver, error) {
	var (
		resolver file.Resolver
		err      error
	)
	switch cfg.Storage {
	case config.StorageS3:
		resolver, err = file.NewS3Storage(ctx, cfg.S3)
	default:
		resolver, err = file.NewLocalStorage(cfg.StorageDir)
	}
	if err != nil {
		return nil, err
	}
	return file.WithTimeout(resolver, cfg.LookupTimeout), nil
}

// openTranslator loads the bundled catalogs and, when configured, the ones
// at EV_TRANSLATIONS_PATH on top of them. The path is either a JSON or YAML
// catalog file or a directory of YAML catalogs.
func openTranslator(ctx context.Context, cfg config.Config, log *slog.Logger) (*i18n.Translator, error) {
	adapters := i18n.MultiAdapter{
		i18n.NewFSAdapter(i18n.NewYAMLParser(), validator.Translations(), "."),
	}
	if path := cfg.TranslationsPath; path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Join(i18n.ErrFailedToReadFile, err)
		}
		if info.IsDir() {
			adapters = append(adapters, i18n.NewDirectoryAdapter(i18n.NewYAMLParser(), path))
		} else {
			parser := i18n.NewParserForFile(path)
			if parser == nil {
				return nil, fmt.Errorf("%w: unsupported catalog %s", config.ErrInvalidConfig, path)
			}
			adapters = append(adapters, i18n.NewFileAdapter(parser, path))
		}
	}

	return i18n.NewTranslator(ctx, adapters,
		i18n.WithDefaultLanguage(i18n.DefaultLanguage),
		i18n.WithLogger(log.With(logger.Component("i18n"))),
	)
}
