package fieldspec

import (
	"context"
	"errors"
	"slices"
)

// Source supplies declared field metadata for an entity type and variant.
// Unknown types or variants yield an empty Schema and a nil error.
type Source interface {
	Schema(ctx context.Context, entityType, variant string) (Schema, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, entityType, variant string) (Schema, error)

func (f SourceFunc) Schema(ctx context.Context, entityType, variant string) (Schema, error) {
	return f(ctx, entityType, variant)
}

// Resolve fetches the schema for entityType and variant and builds its field set.
func Resolve(ctx context.Context, src Source, entityType, variant string) (Set, error) {
	if src == nil {
		return Set{}, ErrNilSource
	}

	schema, err := src.Schema(ctx, entityType, variant)
	if err != nil {
		return Set{}, errors.Join(ErrSchemaUnavailable, err)
	}

	return Build(schema), nil
}

// Build turns declared metadata into a field set. It is pure: the schema is
// not modified and the returned set shares no memory with it.
func Build(schema Schema) Set {
	var b setBuilder

	if schema.LabelKey != "" {
		b.put(FieldSpec{
			Name:           schema.LabelKey,
			SourceProperty: schema.LabelKey,
			Required:       true,
			Cardinality:    Single,
			Validators:     []ValidatorName{ValidatorTypeConformance},
		})
	}

	for _, def := range schema.Fields {
		if def.Name == "" {
			continue
		}
		if def.Name == schema.LabelKey {
			def.Required = true
		}
		b.put(fromDefinition(def))
	}

	return b.set()
}

func fromDefinition(def Definition) FieldSpec {
	spec := FieldSpec{
		Name:           def.Name,
		SourceProperty: def.Property,
		SubProperty:    def.SubProperty,
		Required:       def.Required,
		Cardinality:    def.Cardinality,
		Kind:           def.Kind,
		Settings:       def.Settings.clone(),
	}
	if spec.SourceProperty == "" {
		spec.SourceProperty = def.Name
	}
	if spec.Cardinality == 0 {
		spec.Cardinality = Single
	}

	spec.Validators = attachedValidators(spec, def.Validators)
	return spec
}

// attachedValidators lists the validators of spec in the order they run.
// Declared validators replace the default type conformance check; the
// checks implied by cardinality and kind are always appended.
func attachedValidators(spec FieldSpec, declared []ValidatorName) []ValidatorName {
	names := []ValidatorName{ValidatorTypeConformance}
	if len(declared) > 0 {
		names = slices.Clone(declared)
	}
	for _, name := range impliedValidators(spec) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func impliedValidators(spec FieldSpec) []ValidatorName {
	var names []ValidatorName
	if spec.Required && spec.Cardinality == Unbounded {
		names = append(names, ValidatorMultiValueNotEmpty)
	}
	if spec.Kind == KindImage {
		names = append(names, ValidatorImageDimensions)
	}
	if spec.Kind.IsFile() {
		names = append(names, ValidatorFileExtension)
	}
	return names
}

// Set is an immutable, ordered collection of field specs keyed by name.
// The zero value is an empty set.
type Set struct {
	specs []FieldSpec
	index map[string]int
}

// Len returns the number of fields.
func (s Set) Len() int {
	return len(s.specs)
}

// IsEmpty reports whether there is nothing to validate.
func (s Set) IsEmpty() bool {
	return len(s.specs) == 0
}

// All returns copies of the specs in resolution order.
func (s Set) All() []FieldSpec {
	out := make([]FieldSpec, len(s.specs))
	for i, spec := range s.specs {
		out[i] = spec.clone()
	}
	return out
}

// Get returns a copy of the spec named name.
func (s Set) Get(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.specs[i].clone(), true
}

// Names returns field names in resolution order.
func (s Set) Names() []string {
	names := make([]string, len(s.specs))
	for i, spec := range s.specs {
		names[i] = spec.Name
	}
	return names
}

type setBuilder struct {
	specs []FieldSpec
	index map[string]int
}

// put appends spec, or replaces an earlier spec of the same name in place.
// A required flag set by the earlier spec is kept.
func (b *setBuilder) put(spec FieldSpec) {
	if b.index == nil {
		b.index = make(map[string]int)
	}

	i, ok := b.index[spec.Name]
	if !ok {
		b.index[spec.Name] = len(b.specs)
		b.specs = append(b.specs, spec)
		return
	}

	spec.Required = spec.Required || b.specs[i].Required
	b.specs[i] = spec
}

func (b *setBuilder) set() Set {
	return Set{specs: b.specs, index: b.index}
}
