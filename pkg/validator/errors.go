package validator

import "errors"

var (
	// ErrUnknownValidator is returned when a field references a validator that
	// is not registered.
	ErrUnknownValidator = errors.New("validator: unknown validator")

	// ErrResolverNotConfigured is returned when a file validator has to look up a
	// stored binary but no file resolver was provided.
	ErrResolverNotConfigured = errors.New("validator: file resolver is not configured")

	// ErrInvalidConstraint is returned for field settings a validator cannot
	// interpret, such as a malformed resolution bound.
	ErrInvalidConstraint = errors.New("validator: invalid field constraint")
)
