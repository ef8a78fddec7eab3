package validator

import (
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
)

// Errors is a flat list of findings in collection order.
type Errors []Error

func (es Errors) Error() string {
	if len(es) == 0 {
		return "validation failed"
	}
	return "validation failed: " + es.Squash(nil)
}

// Has reports whether any error belongs to field.
func (es Errors) Has(field string) bool {
	return slices.ContainsFunc(es, func(e Error) bool { return e.Field == field })
}

// Fields returns the field names in order of their first error.
func (es Errors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, e := range es {
		if !seen[e.Field] {
			fields = append(fields, e.Field)
			seen[e.Field] = true
		}
	}
	return fields
}

// Squash renders every error with f and joins the messages with newlines.
func (es Errors) Squash(f i18n.Formatter) string {
	messages := make([]string, len(es))
	for i, e := range es {
		messages[i] = e.Message(f)
	}
	return strings.Join(messages, "\n")
}

// FieldErrors groups the errors of one field.
type FieldErrors struct {
	Field  string
	Errors []Error
}

// Collector accumulates errors keyed by field name. Fields keep the order in
// which they first reported, errors keep insertion order within a field.
// It is safe for concurrent use.
type Collector struct {
	mu     sync.RWMutex
	fields []string
	errs   map[string][]Error
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{errs: make(map[string][]Error)}
}

// Record appends an error built from a template and its parameters.
func (c *Collector) Record(field, template string, params map[string]any) {
	c.Add(NewError(field, "", "", template, params))
}

// Add appends errors. An error without a field name is attributed to "".
func (c *Collector) Add(errs ...Error) {
	if len(errs) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.errs == nil {
		c.errs = make(map[string][]Error)
	}
	for _, e := range errs {
		if e.Params == nil || e.Params[FieldParam] == nil {
			e = NewError(e.Field, e.Kind, e.Key, e.Template, e.Params)
		}
		if _, ok := c.errs[e.Field]; !ok {
			c.fields = append(c.fields, e.Field)
		}
		c.errs[e.Field] = append(c.errs[e.Field], e)
	}
}

// All returns the structured errors grouped per field.
func (c *Collector) All() []FieldErrors {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]FieldErrors, 0, len(c.fields))
	for _, field := range c.fields {
		out = append(out, FieldErrors{
			Field:  field,
			Errors: slices.Clone(c.errs[field]),
		})
	}
	return out
}

// Flat returns every error in field-then-insertion order.
func (c *Collector) Flat() Errors {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out Errors
	for _, field := range c.fields {
		out = append(out, c.errs[field]...)
	}
	return out
}

// Get returns the errors of field.
func (c *Collector) Get(field string) []Error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.errs[field])
}

// Has reports whether field has errors.
func (c *Collector) Has(field string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.errs[field]) > 0
}

// Fields returns the names of fields with errors.
func (c *Collector) Fields() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.fields)
}

// Len returns the total number of errors.
func (c *Collector) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, errs := range c.errs {
		n += len(errs)
	}
	return n
}

// IsEmpty reports whether nothing was recorded.
func (c *Collector) IsEmpty() bool {
	return c.Len() == 0
}

// Squash renders every error with f, in field-then-insertion order, joined
// with newlines. A nil formatter substitutes placeholders only.
func (c *Collector) Squash(f i18n.Formatter) string {
	return c.Flat().Squash(f)
}

// Clear drops all recorded errors.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = nil
	c.errs = make(map[string][]Error)
}
