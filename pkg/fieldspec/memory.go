package fieldspec

import (
	"context"
	"sync"
)

// MemorySource keeps schemas in memory. It is safe for concurrent use.
type MemorySource struct {
	mu      sync.RWMutex
	labels  map[string]string
	schemas map[string]map[string][]Definition
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		labels:  make(map[string]string),
		schemas: make(map[string]map[string][]Definition),
	}
}

// SetLabel declares the label key of an entity type.
func (s *MemorySource) SetLabel(entityType, labelKey string) *MemorySource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[entityType] = labelKey
	return s
}

// Define registers the field definitions of an entity type and variant,
// replacing any earlier registration.
func (s *MemorySource) Define(entityType, variant string, defs ...Definition) *MemorySource {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schemas[entityType] == nil {
		s.schemas[entityType] = make(map[string][]Definition)
	}
	s.schemas[entityType][variant] = append([]Definition(nil), defs...)
	return s
}

// Schema implements Source. An entity type is known once it has a label or
// a defined variant.
func (s *MemorySource) Schema(ctx context.Context, entityType, variant string) (Schema, error) {
	if err := ctx.Err(); err != nil {
		return Schema{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	label, labeled := s.labels[entityType]
	variants, known := s.schemas[entityType]
	if !labeled && !known {
		return Schema{}, nil
	}

	// An undeclared variant of a known type still carries the type's label.
	return Schema{
		LabelKey: label,
		Fields:   append([]Definition(nil), variants[variant]...),
	}, nil
}
