package entity

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FromBSON adapts a Mongo document into a Document. ObjectIDs become their
// hex form, DateTimes become time.Time and nested documents and arrays become
// map[string]any and []any.
func FromBSON(m bson.M) Document {
	if m == nil {
		return Document{}
	}
	return Document(fromBSONValue(m).(map[string]any))
}

// FromBSOND adapts an ordered Mongo document. Later duplicate keys win.
func FromBSOND(d bson.D) Document {
	return Document(fromBSONValue(d).(map[string]any))
}

// FromRaw decodes raw BSON bytes, as returned by a cursor's Current field.
func FromRaw(raw bson.Raw) (Document, error) {
	if err := raw.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, errors.Join(ErrFailedToDecode, err)
	}
	return FromBSOND(d), nil
}

func fromBSONValue(v any) any {
	switch raw := v.(type) {
	case bson.M:
		return fromBSONMap(raw)
	case map[string]any:
		return fromBSONMap(raw)
	case bson.D:
		out := make(map[string]any, len(raw))
		for _, e := range raw {
			out[e.Key] = fromBSONValue(e.Value)
		}
		return out
	case bson.A:
		return fromBSONSlice(raw)
	case []any:
		return fromBSONSlice(raw)
	case bson.ObjectID:
		return raw.Hex()
	case bson.DateTime:
		return raw.Time().UTC()
	case bson.Decimal128:
		return raw.String()
	case bson.Null, bson.Undefined:
		return nil
	}
	return v
}

func fromBSONMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = fromBSONValue(item)
	}
	return out
}

func fromBSONSlice(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = fromBSONValue(item)
	}
	return out
}
