package fieldspec

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a whole schema catalog:
//
//	entity_types:
//	  node:
//	    label: title
//	    bundles:
//	      issue:
//	        fields:
//	          - name: field_body
//	            sub_property: value
//	            required: true
//	            type: text_with_summary
type document struct {
	EntityTypes map[string]entityTypeDocument `yaml:"entity_types" json:"entity_types"`
}

type entityTypeDocument struct {
	Label   string                    `yaml:"label" json:"label"`
	Bundles map[string]schemaDocument `yaml:"bundles" json:"bundles"`
}

// schemaDocument describes one entity type and variant. Redis stores it as
// JSON on its own; inside a catalog the label comes from the entity type.
type schemaDocument struct {
	Label  string          `yaml:"label,omitempty" json:"label,omitempty"`
	Fields []fieldDocument `yaml:"fields" json:"fields"`
}

type fieldDocument struct {
	Name        string           `yaml:"name" json:"name"`
	Property    string           `yaml:"property" json:"property"`
	SubProperty string           `yaml:"sub_property" json:"sub_property"`
	Required    bool             `yaml:"required" json:"required"`
	Cardinality cardinalityValue `yaml:"cardinality" json:"cardinality"`
	Type        string           `yaml:"type" json:"type"`
	Validators  []string         `yaml:"validators" json:"validators"`
	Settings    settingsDocument `yaml:"settings" json:"settings"`
}

type settingsDocument struct {
	MaxResolution  string   `yaml:"max_resolution" json:"max_resolution"`
	MinResolution  string   `yaml:"min_resolution" json:"min_resolution"`
	FileExtensions string   `yaml:"file_extensions" json:"file_extensions"`
	AllowedValues  []string `yaml:"allowed_values" json:"allowed_values"`
	Min            *float64 `yaml:"min" json:"min"`
	Max            *float64 `yaml:"max" json:"max"`
	MaxLength      int      `yaml:"max_length" json:"max_length"`
}

func (d settingsDocument) settings() Settings {
	return Settings{
		MaxResolution:  d.MaxResolution,
		MinResolution:  d.MinResolution,
		FileExtensions: d.FileExtensions,
		AllowedValues:  d.AllowedValues,
		Min:            d.Min,
		Max:            d.Max,
		MaxLength:      d.MaxLength,
	}.clone()
}

func (d fieldDocument) definition() Definition {
	def := Definition{
		Name:        d.Name,
		Property:    d.Property,
		SubProperty: d.SubProperty,
		Required:    d.Required,
		Cardinality: Cardinality(d.Cardinality),
		Kind:        ValueKind(d.Type),
		Settings:    d.Settings.settings(),
	}
	for _, name := range d.Validators {
		def.Validators = append(def.Validators, ValidatorName(name))
	}
	return def
}

func (d schemaDocument) schema(label string) Schema {
	schema := Schema{LabelKey: label}
	for _, f := range d.Fields {
		schema.Fields = append(schema.Fields, f.definition())
	}
	return schema
}

// cardinalityValue accepts numbers as well as "unlimited"/"unbounded" in
// both YAML and JSON documents.
type cardinalityValue Cardinality

func (c *cardinalityValue) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseCardinality(node.Value)
	if err != nil {
		return err
	}
	*c = cardinalityValue(parsed)
	return nil
}

func (c *cardinalityValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*c = cardinalityValue(Single)
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	parsed, err := ParseCardinality(raw)
	if err != nil {
		return err
	}
	*c = cardinalityValue(parsed)
	return nil
}
