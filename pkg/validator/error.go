package validator

import (
	"maps"

	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
)

// Kind classifies a validation finding.
type Kind string

const (
	EmptyRequiredField      Kind = "empty_required_field"
	EmptyRequiredElement    Kind = "empty_required_element"
	TypeMismatch            Kind = "type_mismatch"
	ImageTooLarge           Kind = "image_too_large"
	ImageTooSmall           Kind = "image_too_small"
	DisallowedFileExtension Kind = "disallowed_file_extension"
	FileUnavailable         Kind = "file_unavailable"
)

// FieldParam is the placeholder every error sets to the field name.
const FieldParam = "field"

// Message templates and their translation keys.
const (
	TemplateEmptyRequiredField   = "The field %{field} cannot be empty."
	TemplateEmptyRequiredElement = "The delta %{delta} cannot be empty."
	TemplateTypeMismatch         = "The value %{value} is invalid for the field %{field}."
	TemplateImageTooWide         = "The width of the image(%{width}) is bigger than the allowed size(%{max-width})"
	TemplateImageTooTall         = "The height of the image(%{height}) is bigger than the allowed size(%{max-height})"
	TemplateImageTooNarrow       = "The width of the image(%{width}) is smaller than the allowed size(%{min-width})"
	TemplateImageTooShort        = "The height of the image(%{height}) is smaller than the allowed size(%{min-height})"
	TemplateDisallowedExtension  = "The file (%{file-name}) extension (%{extension}) did not match the allowed extensions: %{extensions}"
	TemplateFileUnavailable      = "The file %{reference} of the field %{field} could not be loaded."

	KeyEmptyRequiredField   = "validation.empty_required_field"
	KeyEmptyRequiredElement = "validation.empty_required_element"
	KeyTypeMismatch         = "validation.type_mismatch"
	KeyImageTooWide         = "validation.image_too_wide"
	KeyImageTooTall         = "validation.image_too_tall"
	KeyImageTooNarrow       = "validation.image_too_narrow"
	KeyImageTooShort        = "validation.image_too_short"
	KeyDisallowedExtension  = "validation.disallowed_file_extension"
	KeyFileUnavailable      = "validation.file_unavailable"
)

// Error is a single validation finding. The message is kept as a template
// with named parameters so it can be rendered or translated later.
type Error struct {
	Field    string
	Kind     Kind
	Key      string
	Template string
	Params   map[string]any
}

// NewError builds an error for field. The field parameter is always set.
func NewError(field string, kind Kind, key, template string, params map[string]any) Error {
	p := make(map[string]any, len(params)+1)
	maps.Copy(p, params)
	p[FieldParam] = field

	return Error{
		Field:    field,
		Kind:     kind,
		Key:      key,
		Template: template,
		Params:   p,
	}
}

// Message renders the error with f. A nil formatter substitutes placeholders only.
func (e Error) Message(f i18n.Formatter) string {
	if f == nil {
		f = i18n.Placeholders
	}
	return f.Format(e.Key, e.Template, e.Params)
}

// String renders the error without translation.
func (e Error) String() string {
	return e.Message(nil)
}

func emptyRequiredField(field string) Error {
	return NewError(field, EmptyRequiredField, KeyEmptyRequiredField, TemplateEmptyRequiredField, nil)
}

func emptyRequiredElement(field string, delta int) Error {
	return NewError(field, EmptyRequiredElement, KeyEmptyRequiredElement, TemplateEmptyRequiredElement, map[string]any{
		"delta": delta,
	})
}

func typeMismatch(field, value string) Error {
	return NewError(field, TypeMismatch, KeyTypeMismatch, TemplateTypeMismatch, map[string]any{
		"value": value,
	})
}

func fileUnavailable(field, ref string, cause error) Error {
	return NewError(field, FileUnavailable, KeyFileUnavailable, TemplateFileUnavailable, map[string]any{
		"reference": ref,
		"cause":     cause.Error(),
	})
}
