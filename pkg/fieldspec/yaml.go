package fieldspec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// YAMLSource serves schemas from a parsed YAML catalog. It is immutable once
// loaded and safe for concurrent use.
type YAMLSource struct {
	doc document
}

// LoadYAMLFile reads and parses a schema catalog from path.
func LoadYAMLFile(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSchema, err)
	}
	return ParseYAML(data)
}

// ParseYAML parses a schema catalog. Unknown keys are rejected to surface typos
// in field settings early.
func ParseYAML(data []byte) (*YAMLSource, error) {
	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrFailedToParseSchema, err)
	}

	for entityType, et := range doc.EntityTypes {
		for variant, bundle := range et.Bundles {
			for i, f := range bundle.Fields {
				if f.Name == "" {
					return nil, fmt.Errorf("%w: %s/%s field #%d has no name", ErrFailedToParseSchema, entityType, variant, i)
				}
			}
		}
	}

	return &YAMLSource{doc: doc}, nil
}

// Schema implements Source.
func (s *YAMLSource) Schema(ctx context.Context, entityType, variant string) (Schema, error) {
	if err := ctx.Err(); err != nil {
		return Schema{}, err
	}

	et, ok := s.doc.EntityTypes[entityType]
	if !ok {
		return Schema{}, nil
	}
	// An undeclared bundle yields the label field only.
	return et.Bundles[variant].schema(et.Label), nil
}

// EntityTypes lists the entity types declared in the catalog, sorted.
func (s *YAMLSource) EntityTypes() []string {
	return slices.Sorted(maps.Keys(s.doc.EntityTypes))
}

// Variants lists the variants declared for entityType, sorted.
func (s *YAMLSource) Variants(entityType string) []string {
	return slices.Sorted(maps.Keys(s.doc.EntityTypes[entityType].Bundles))
}
