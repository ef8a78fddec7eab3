// Package entity reads field values out of entity instances.
//
// An Entity is anything that can look up a property by name: a decoded JSON
// Document, a Mongo document adapted with FromBSON, or a PropertyFunc wrapping
// a host object. Read combines an Entity with a fieldspec.FieldSpec and
// returns a Value, a typed optional that hides whether the field holds one
// value or a sequence of them:
//
//	doc, err := entity.FromJSON(r)
//	if err != nil {
//	    return err
//	}
//	v := entity.Read(doc, spec)
//	if v.IsEmpty() {
//	    // nil, "", an empty sequence or an empty map
//	}
//	for delta, item := range v.Items() {
//	    _ = delta // zero-based position within a multi-valued field
//	    _ = item
//	}
//
// # Sub-properties
//
// Fields storing structured values (formatted text keeps {"value", "format"})
// declare a sub-property. Read drills one level into the stored value only
// when it is not empty; an absent or empty property is returned unchanged.
// Drilling into a sequence drills into every element, keeping positions.
//
// Values are normalized on construction: typed slices become []any, typed
// string-keyed maps become map[string]any, and json.Number is kept so that
// integers survive decoding intact.
package entity
