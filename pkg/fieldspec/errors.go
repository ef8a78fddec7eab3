package fieldspec

import "errors"

var (
	// ErrNilSource is returned when Resolve is called without a schema source.
	ErrNilSource = errors.New("fieldspec: schema source is nil")

	// ErrSchemaUnavailable wraps any failure of the underlying schema source.
	ErrSchemaUnavailable = errors.New("fieldspec: schema source unavailable")

	// ErrInvalidResolution is returned for resolution constraints not shaped like "800X600".
	ErrInvalidResolution = errors.New("fieldspec: invalid resolution constraint")

	// ErrInvalidCardinality is returned for cardinality values that are neither a positive
	// number nor one of the unbounded markers.
	ErrInvalidCardinality = errors.New("fieldspec: invalid cardinality")

	// Document and storage errors
	ErrFailedToReadSchema   = errors.New("fieldspec: failed to read schema document")
	ErrFailedToParseSchema  = errors.New("fieldspec: failed to parse schema document")
	ErrFailedToQuerySchema  = errors.New("fieldspec: failed to query schema")
	ErrFailedToDecodeFields = errors.New("fieldspec: failed to decode field settings")

	// Postgres connection and migration errors
	ErrFailedToParseDBConfig    = errors.New("fieldspec: failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("fieldspec: failed to open db connection")
	ErrFailedToApplyMigrations  = errors.New("fieldspec: failed to apply migrations")
)
