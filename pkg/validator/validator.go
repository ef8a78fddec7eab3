package validator

import (
	"context"

	"github.com/dmitrymomot/entityvalidator/pkg/entity"
	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
)

// Input is what a validator sees of one field during a run.
type Input struct {
	Field  fieldspec.FieldSpec
	Value  entity.Value
	Entity entity.Entity
}

// Validator inspects one field value. Findings are returned as errors in the
// slice; a non-nil error means the check itself could not run.
type Validator interface {
	Validate(ctx context.Context, in Input) ([]Error, error)
}

// Func adapts a function to the Validator interface.
type Func func(ctx context.Context, in Input) ([]Error, error)

func (f Func) Validate(ctx context.Context, in Input) ([]Error, error) {
	return f(ctx, in)
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error Error
}

// Apply runs every rule and returns the errors of the failed ones.
func Apply(rules ...Rule) []Error {
	var errs []Error
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}
	return errs
}

// Required reports an empty value. It is run before any declared validator of
// a required field.
var Required Validator = Func(func(_ context.Context, in Input) ([]Error, error) {
	return Apply(Rule{
		Check: func() bool { return !in.Value.IsEmpty() },
		Error: emptyRequiredField(in.Field.Name),
	}), nil
})

// MultiValueNotEmpty reports every empty element of a sequence with its
// position. An empty sequence is left to Required.
var MultiValueNotEmpty Validator = Func(func(_ context.Context, in Input) ([]Error, error) {
	if in.Value.IsEmpty() {
		return nil, nil
	}

	var rules []Rule
	for delta, item := range in.Value.Items() {
		rules = append(rules, Rule{
			Check: func() bool { return !item.IsEmpty() },
			Error: emptyRequiredElement(in.Field.Name, delta),
		})
	}
	return Apply(rules...), nil
})
