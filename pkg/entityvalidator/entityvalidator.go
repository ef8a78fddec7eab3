package entityvalidator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/entityvalidator/pkg/entity"
	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/file"
	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
	"github.com/dmitrymomot/entityvalidator/pkg/logger"
	"github.com/dmitrymomot/entityvalidator/pkg/validator"
)

type namedValidator struct {
	name  fieldspec.ValidatorName
	check validator.Validator
}

// Validator validates entities of one entity type against the field specs of
// its current variant.
//
// Run keeps no state and may be called concurrently. Validate keeps the
// report of the last run for Errors; concurrent Validate calls on one
// Validator each get their own result but race for the stored report.
type Validator struct {
	entityType string
	source     fieldspec.Source
	registry   *validator.Registry
	resolver   file.Resolver
	custom     []namedValidator
	formatter  i18n.Formatter
	logger     *slog.Logger

	mu      sync.RWMutex
	variant string
	last    *Report
}

// New creates a validator for entityType reading field metadata from source.
func New(entityType string, source fieldspec.Source, opts ...Option) *Validator {
	v := &Validator{
		entityType: entityType,
		source:     source,
		formatter:  i18n.Placeholders,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}

	switch {
	case v.registry == nil:
		v.registry = validator.NewRegistry(v.resolver)
	case len(v.custom) > 0:
		// Custom validators never leak into a registry shared with other validators.
		v.registry = v.registry.Clone()
	}
	for _, c := range v.custom {
		v.registry.Register(c.name, c.check)
	}

	v.logger = v.logger.With(logger.Component("entityvalidator"))
	return v
}

// EntityType returns the entity type the validator was created for.
func (v *Validator) EntityType() string {
	return v.entityType
}

// Variant returns the current variant.
func (v *Validator) Variant() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.variant
}

// SetVariant changes the variant used by subsequent runs.
func (v *Validator) SetVariant(variant string) *Validator {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.variant = variant
	return v
}

// Validate runs the field validators against e. It returns true when no
// errors were found. Otherwise it returns false together with a *FailedError,
// or with a nil error when silent is set. Infrastructure failures are
// returned as errors in both modes. The findings stay available through
// Errors until the next call.
func (v *Validator) Validate(ctx context.Context, e entity.Entity, silent bool) (bool, error) {
	v.ClearErrors()

	report, err := v.Run(ctx, e)
	if err != nil {
		return false, err
	}

	v.mu.Lock()
	v.last = report
	v.mu.Unlock()

	switch {
	case report.Valid():
		return true, nil
	case silent:
		return false, nil
	default:
		return false, &FailedError{Report: report}
	}
}

// Run validates e and returns the report without touching the stored one.
func (v *Validator) Run(ctx context.Context, e entity.Entity) (*Report, error) {
	report := newReport(v.entityType, v.Variant(), v.formatter)
	ctx = logger.WithRunID(ctx, report.RunID.String())
	log := v.logger.With(
		logger.EntityType(report.EntityType),
		logger.Variant(report.Variant),
	)
	phases := newPhaseTracker(log)

	if err := phases.advance(ctx, PhaseResolving); err != nil {
		return nil, err
	}
	set, err := fieldspec.Resolve(ctx, v.source, report.EntityType, report.Variant)
	if err != nil {
		phases.abort(ctx, err)
		return nil, err
	}

	for _, spec := range set.All() {
		if err := v.validateField(ctx, log, phases, report, e, spec); err != nil {
			phases.abort(ctx, err)
			return nil, err
		}
	}

	if err := phases.advance(ctx, PhaseReporting); err != nil {
		return nil, err
	}
	report.Duration = time.Since(report.StartedAt)
	log.DebugContext(ctx, "validation finished",
		slog.Int("fields", set.Len()),
		logger.ErrorCount(report.collector.Len()),
		logger.Duration(report.Duration),
	)
	if err := phases.advance(ctx, PhaseIdle); err != nil {
		return nil, err
	}

	return report, nil
}

func (v *Validator) validateField(
	ctx context.Context,
	log *slog.Logger,
	phases *phaseTracker,
	report *Report,
	e entity.Entity,
	spec fieldspec.FieldSpec,
) error {
	if err := phases.advance(ctx, PhaseExtracting); err != nil {
		return err
	}
	in := validator.Input{
		Field:  spec,
		Value:  entity.Read(e, spec),
		Entity: e,
	}

	chain := make([]namedValidator, 0, len(spec.Validators)+1)
	if spec.Required {
		chain = append(chain, namedValidator{name: "required", check: validator.Required})
	}
	for _, name := range spec.Validators {
		check, err := v.registry.Lookup(name)
		if err != nil {
			return fmt.Errorf("field %s: %w", spec.Name, err)
		}
		chain = append(chain, namedValidator{name: name, check: check})
	}

	if err := phases.advance(ctx, PhaseValidating); err != nil {
		return err
	}
	for _, c := range chain {
		errs, err := c.check.Validate(ctx, in)
		if err != nil {
			return fmt.Errorf("field %s: validator %s: %w", spec.Name, c.name, err)
		}
		for _, finding := range errs {
			if finding.Kind == validator.FileUnavailable {
				log.WarnContext(ctx, "file lookup failed",
					logger.Field(spec.Name),
					logger.Validator(string(c.name)),
					slog.Any("reference", finding.Params["reference"]),
					slog.Any("cause", finding.Params["cause"]),
				)
			}
		}
		report.collector.Add(errs...)
	}
	return nil
}

// Errors returns the structured errors of the last Validate call.
func (v *Validator) Errors() []validator.FieldErrors {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.last.Errors()
}

// SquashedErrors returns the rendered report of the last Validate call.
func (v *Validator) SquashedErrors() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.last.Squash()
}

// LastReport returns the report of the last Validate call, or nil.
func (v *Validator) LastReport() *Report {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.last
}

// ClearErrors drops the stored report.
func (v *Validator) ClearErrors() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.last = nil
}
