package fieldspec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig configures the connection pool backing PostgresSource.
type PostgresConfig struct {
	ConnectionString  string        `env:"EV_PG_CONN_URL"`                           // ConnectionString is the connection string to the schema database.
	MaxOpenConns      int32         `env:"EV_PG_MAX_OPEN_CONNS" envDefault:"4"`      // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns      int32         `env:"EV_PG_MAX_IDLE_CONNS" envDefault:"1"`      // MaxIdleConns is the minimum number of idle connections kept open.
	HealthCheckPeriod time.Duration `env:"EV_PG_HEALTHCHECK_PERIOD" envDefault:"1m"` // HealthCheckPeriod is the period between health checks.
	MaxConnIdleTime   time.Duration `env:"EV_PG_MAX_CONN_IDLE_TIME" envDefault:"5m"` // MaxConnIdleTime is the maximum time a connection may be idle.
	MaxConnLifetime   time.Duration `env:"EV_PG_MAX_CONN_LIFETIME" envDefault:"30m"` // MaxConnLifetime is the maximum time a connection may be reused.

	RetryAttempts int           `env:"EV_PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts.
	RetryInterval time.Duration `env:"EV_PG_RETRY_INTERVAL" envDefault:"2s"` // RetryInterval grows linearly with each failed attempt.

	MigrationsTable string `env:"EV_PG_MIGRATIONS_TABLE" envDefault:"fieldspec_migrations"` // MigrationsTable stores the applied migration version.
}

// ConnectPostgres opens a pgx pool, retrying with a linearly growing delay.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	poolConfig.MaxConns = cfg.MaxOpenConns
	poolConfig.MinConns = cfg.MaxIdleConns
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// PostgresQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type PostgresQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	selectLabelKey = `SELECT label_key FROM entity_types WHERE name = $1`

	selectFieldInstances = `SELECT field_name, property, sub_property, required, cardinality,
       value_kind, validators, settings
  FROM field_instances
 WHERE entity_type = $1 AND bundle = $2
 ORDER BY weight, field_name`
)

// PostgresSource reads schemas from the entity_types and field_instances tables
// created by MigratePostgres.
type PostgresSource struct {
	db PostgresQuerier
}

// NewPostgresSource creates a source reading through db.
func NewPostgresSource(db PostgresQuerier) *PostgresSource {
	return &PostgresSource{db: db}
}

// Schema implements Source. An entity type with no row in entity_types yields
// an empty schema; a variant without field instances yields the label only.
func (s *PostgresSource) Schema(ctx context.Context, entityType, variant string) (Schema, error) {
	var schema Schema

	var label *string
	err := s.db.QueryRow(ctx, selectLabelKey, entityType).Scan(&label)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return Schema{}, nil
	case err != nil:
		return Schema{}, errors.Join(ErrFailedToQuerySchema, err)
	}
	if label != nil {
		schema.LabelKey = *label
	}

	rows, err := s.db.Query(ctx, selectFieldInstances, entityType, variant)
	if err != nil {
		return Schema{}, errors.Join(ErrFailedToQuerySchema, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			def         Definition
			cardinality int32
			kind        string
			validators  []string
			settings    []byte
		)
		if err := rows.Scan(
			&def.Name,
			&def.Property,
			&def.SubProperty,
			&def.Required,
			&cardinality,
			&kind,
			&validators,
			&settings,
		); err != nil {
			return Schema{}, errors.Join(ErrFailedToQuerySchema, err)
		}

		def.Cardinality = Cardinality(cardinality)
		def.Kind = ValueKind(kind)
		for _, name := range validators {
			def.Validators = append(def.Validators, ValidatorName(name))
		}

		if len(settings) > 0 {
			var doc settingsDocument
			if err := json.Unmarshal(settings, &doc); err != nil {
				return Schema{}, fmt.Errorf("%w: field %s: %v", ErrFailedToDecodeFields, def.Name, err)
			}
			def.Settings = doc.settings()
		}

		schema.Fields = append(schema.Fields, def)
	}
	if err := rows.Err(); err != nil {
		return Schema{}, errors.Join(ErrFailedToQuerySchema, err)
	}

	return schema, nil
}
