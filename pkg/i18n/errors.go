package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter        = errors.New("i18n: translation adapter is nil")
	ErrNilParser         = errors.New("i18n: parser is nil")
	ErrEmptyLanguageCode = errors.New("i18n: empty language code")
	ErrNilTranslations   = errors.New("i18n: nil translations for language")
	ErrLoadingCancelled  = errors.New("i18n: loading translations cancelled")

	// Parsing
	ErrFailedToParseJSON = errors.New("i18n: failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML content")

	// File system
	ErrFailedToReadFile      = errors.New("i18n: failed to read translation file")
	ErrFailedToParseFile     = errors.New("i18n: failed to parse translation file")
	ErrFailedToReadDirectory = errors.New("i18n: failed to read translation directory")
	ErrEmptyFile             = errors.New("i18n: translation file is empty")
	ErrNoTranslationFiles    = errors.New("i18n: no translation files found")
)

// InvalidStructureError reports a catalog whose top level is not keyed by language.
type InvalidStructureError struct {
	Lang string
	Got  any
}

func (e *InvalidStructureError) Error() string {
	return fmt.Sprintf("i18n: invalid structure for language %q: expected map, got %T", e.Lang, e.Got)
}
