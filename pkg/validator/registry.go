package validator

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/file"
)

// Registry maps the validator names used in field specs to implementations.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	validators map[fieldspec.ValidatorName]Validator
}

// NewRegistry creates a registry holding the built-in validators. resolver is
// used by the image and file validators and may be nil when no field
// references stored files.
func NewRegistry(resolver file.Resolver) *Registry {
	r := &Registry{validators: make(map[fieldspec.ValidatorName]Validator)}
	r.Register(fieldspec.ValidatorTypeConformance, TypeConformance)
	r.Register(fieldspec.ValidatorMultiValueNotEmpty, MultiValueNotEmpty)
	r.Register(fieldspec.ValidatorImageDimensions, ImageDimensions(resolver))
	r.Register(fieldspec.ValidatorFileExtension, FileExtension(resolver))
	return r
}

// Register adds or replaces the validator named name.
func (r *Registry) Register(name fieldspec.ValidatorName, v Validator) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.validators == nil {
		r.validators = make(map[fieldspec.ValidatorName]Validator)
	}
	r.validators[name] = v
	return r
}

// Clone returns a registry holding the same validators. Registering on the
// clone leaves r untouched.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{validators: maps.Clone(r.validators)}
}

// Lookup returns the validator named name.
func (r *Registry) Lookup(name fieldspec.ValidatorName) (Validator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.validators[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, name)
	}
	return v, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []fieldspec.ValidatorName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.validators))
}
