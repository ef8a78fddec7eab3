package entityvalidator

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
	"github.com/dmitrymomot/entityvalidator/pkg/validator"
)

// Report is the outcome of one validation run.
type Report struct {
	RunID      uuid.UUID
	EntityType string
	Variant    string
	StartedAt  time.Time
	Duration   time.Duration

	collector *validator.Collector
	formatter i18n.Formatter
}

func newReport(entityType, variant string, f i18n.Formatter) *Report {
	return &Report{
		RunID:      uuid.New(),
		EntityType: entityType,
		Variant:    variant,
		StartedAt:  time.Now(),
		collector:  validator.NewCollector(),
		formatter:  f,
	}
}

// Valid reports whether the run found no errors.
func (r *Report) Valid() bool {
	return r == nil || r.collector.IsEmpty()
}

// Errors returns the structured errors grouped per field.
func (r *Report) Errors() []validator.FieldErrors {
	if r == nil {
		return nil
	}
	return r.collector.All()
}

// Flat returns every error in field-then-insertion order.
func (r *Report) Flat() validator.Errors {
	if r == nil {
		return nil
	}
	return r.collector.Flat()
}

// Squash renders every error and joins the messages with newlines.
func (r *Report) Squash() string {
	if r == nil {
		return ""
	}
	return r.collector.Squash(r.formatter)
}
