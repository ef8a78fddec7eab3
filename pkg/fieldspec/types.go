package fieldspec

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Cardinality is the number of values a field may hold.
type Cardinality int

const (
	// Unbounded marks a field holding any number of values.
	Unbounded Cardinality = -1
	// Single marks a field holding at most one value.
	Single Cardinality = 1
)

// IsMultiple reports whether values of the field are read as a sequence.
func (c Cardinality) IsMultiple() bool {
	return c == Unbounded || c > 1
}

func (c Cardinality) String() string {
	if c == Unbounded {
		return "unbounded"
	}
	return strconv.Itoa(int(c))
}

// ParseCardinality accepts a positive number, "-1", "unbounded" or "unlimited".
// An empty string means Single.
func ParseCardinality(s string) (Cardinality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return Single, nil
	case "-1", "unbounded", "unlimited":
		return Unbounded, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCardinality, s)
	}
	return Cardinality(n), nil
}

// ValueKind is the declared type of a field's values.
type ValueKind string

// Value kinds known to the type conformance validator. The empty kind means
// "no declared kind" and turns type conformance into a no-op.
const (
	KindNone                  ValueKind = ""
	KindText                  ValueKind = "text"
	KindTextLong              ValueKind = "text_long"
	KindTextWithSummary       ValueKind = "text_with_summary"
	KindInteger               ValueKind = "number_integer"
	KindDecimal               ValueKind = "number_decimal"
	KindFloat                 ValueKind = "number_float"
	KindBoolean               ValueKind = "boolean"
	KindListText              ValueKind = "list_text"
	KindListInteger           ValueKind = "list_integer"
	KindListFloat             ValueKind = "list_float"
	KindEntityReference       ValueKind = "entity_reference"
	KindTaxonomyTermReference ValueKind = "taxonomy_term_reference"
	KindDate                  ValueKind = "date"
	KindEmail                 ValueKind = "email"
	KindLink                  ValueKind = "link"
	KindImage                 ValueKind = "image"
	KindFile                  ValueKind = "file"
)

// IsFile reports whether values of this kind reference stored binaries.
func (k ValueKind) IsFile() bool {
	return k == KindImage || k == KindFile
}

// ValidatorName references a validator implementation by name.
type ValidatorName string

// Built-in validator names.
const (
	ValidatorTypeConformance    ValidatorName = "type_conformance"
	ValidatorMultiValueNotEmpty ValidatorName = "multi_value_not_empty"
	ValidatorImageDimensions    ValidatorName = "image_dimensions"
	ValidatorFileExtension      ValidatorName = "file_extension"
)

// Settings holds per-field constraints consumed by validators.
type Settings struct {
	MaxResolution  string   // "<width>X<height>", empty disables the check
	MinResolution  string   // "<width>X<height>", empty disables the check
	FileExtensions string   // space separated allow-list, empty disables the check
	AllowedValues  []string // enumerated set for list kinds
	Min            *float64 // inclusive lower bound for numeric kinds
	Max            *float64 // inclusive upper bound for numeric kinds
	MaxLength      int      // maximum text length in runes, 0 means unlimited
}

func (s Settings) clone() Settings {
	out := s
	out.AllowedValues = slices.Clone(s.AllowedValues)
	if s.Min != nil {
		v := *s.Min
		out.Min = &v
	}
	if s.Max != nil {
		v := *s.Max
		out.Max = &v
	}
	return out
}

// FieldSpec describes how one field is read and validated during a run.
type FieldSpec struct {
	Name           string
	SourceProperty string
	SubProperty    string
	Required       bool
	Cardinality    Cardinality
	Kind           ValueKind
	Validators     []ValidatorName
	Settings       Settings
}

// HasSubProperty reports whether the value is drilled one level into the property.
func (f FieldSpec) HasSubProperty() bool {
	return f.SubProperty != ""
}

// IsMultiple reports whether the field holds a sequence of values.
func (f FieldSpec) IsMultiple() bool {
	return f.Cardinality.IsMultiple()
}

// HasValidator reports whether name is attached to the field.
func (f FieldSpec) HasValidator(name ValidatorName) bool {
	return slices.Contains(f.Validators, name)
}

func (f FieldSpec) clone() FieldSpec {
	out := f
	out.Validators = slices.Clone(f.Validators)
	out.Settings = f.Settings.clone()
	return out
}

// Definition is field metadata as declared upstream, before resolution.
type Definition struct {
	Name        string
	Property    string // defaults to Name
	SubProperty string
	Required    bool
	Cardinality Cardinality // zero means Single
	Kind        ValueKind
	Settings    Settings
	Validators  []ValidatorName // replaces type conformance when not empty
}

// Schema is what a Source knows about one entity type and variant.
type Schema struct {
	LabelKey string
	Fields   []Definition
}

// IsEmpty reports whether the schema declares nothing to validate.
func (s Schema) IsEmpty() bool {
	return s.LabelKey == "" && len(s.Fields) == 0
}
