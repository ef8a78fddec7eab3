package entityvalidator

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/entityvalidator/pkg/validator"
)

var (
	// ErrValidationFailed is wrapped by FailedError, returned when a
	// non-silent validation finds errors.
	ErrValidationFailed = errors.New("entityvalidator: validation failed")

	// ErrIllegalTransition is wrapped by TransitionError.
	ErrIllegalTransition = errors.New("entityvalidator: illegal phase transition")
)

// FailedError carries the report of a failed non-silent validation.
type FailedError struct {
	Report *Report
}

func (e *FailedError) Error() string {
	return "validation process failed: " + e.Report.Squash()
}

func (e *FailedError) Unwrap() error {
	return ErrValidationFailed
}

// Errors returns the findings in field-then-insertion order.
func (e *FailedError) Errors() validator.Errors {
	return e.Report.Flat()
}

// TransitionError reports a phase change the run loop must never make.
type TransitionError struct {
	From Phase
	To   Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
