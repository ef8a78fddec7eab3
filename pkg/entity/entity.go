package entity

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
)

// Entity gives read access to the stored properties of one record.
type Entity interface {
	// Property returns the raw value stored under name and whether the
	// entity has that property at all.
	Property(name string) (any, bool)
}

// PropertyFunc adapts a lookup function to the Entity interface.
type PropertyFunc func(name string) (any, bool)

func (f PropertyFunc) Property(name string) (any, bool) {
	return f(name)
}

// Document is an entity backed by a decoded JSON or BSON object.
type Document map[string]any

// Property implements Entity.
func (d Document) Property(name string) (any, bool) {
	v, ok := d[name]
	return v, ok
}

// FromJSON decodes a JSON object into a Document. Numbers are kept as
// json.Number so integer references and large ids are not rounded.
func FromJSON(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if doc == nil {
		return nil, ErrInvalidDocument
	}
	return doc, nil
}

// Read extracts the value of spec's field from e.
func Read(e Entity, spec fieldspec.FieldSpec) Value {
	if e == nil {
		return Absent()
	}

	raw, ok := e.Property(spec.SourceProperty)
	if !ok {
		return Absent()
	}

	v := ValueOf(raw)
	if spec.HasSubProperty() {
		return v.Sub(spec.SubProperty)
	}
	return v
}
