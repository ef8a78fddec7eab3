package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser turns the content of a catalog file into translations keyed by
// language code.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension accepts extensions with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// CatalogParser decodes catalog files of one format. The top level of every
// document must map language codes to nested key trees:
//
//	en:
//	  validation:
//	    empty_required_field: "The field %{field} cannot be empty."
type CatalogParser struct {
	format     string
	extensions []string
	decode     func(data []byte, v any) error
	failure    error
}

// NewYAMLParser returns a parser for .yaml and .yml catalogs.
func NewYAMLParser() *CatalogParser {
	return &CatalogParser{
		format:     "yaml",
		extensions: []string{"yaml", "yml"},
		decode:     yaml.Unmarshal,
		failure:    ErrFailedToParseYAML,
	}
}

// NewJSONParser returns a parser for .json catalogs.
func NewJSONParser() *CatalogParser {
	return &CatalogParser{
		format:     "json",
		extensions: []string{"json"},
		decode:     json.Unmarshal,
		failure:    ErrFailedToParseJSON,
	}
}

// NewParserForFile picks the parser matching the extension of filename, or
// returns nil for unsupported files.
func NewParserForFile(filename string) Parser {
	ext := path.Ext(filename)
	for _, p := range []*CatalogParser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// Format names the catalog format, "yaml" or "json".
func (p *CatalogParser) Format() string {
	return p.format
}

// Parse implements Parser.
func (p *CatalogParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var data map[string]any
	if err := p.decode([]byte(content), &data); err != nil {
		return nil, errors.Join(p.failure, err)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		catalog, ok := val.(map[string]any)
		if !ok {
			return nil, &InvalidStructureError{Lang: lang, Got: val}
		}
		result[lang] = catalog
	}
	return result, nil
}

// SupportsFileExtension implements Parser. Extensions compare case-insensitively.
func (p *CatalogParser) SupportsFileExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return slices.Contains(p.extensions, ext)
}
