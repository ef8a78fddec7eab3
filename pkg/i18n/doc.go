// Package i18n renders validation messages, optionally translated.
//
// Messages are templates with named placeholders in the form %{name}:
//
//	"The field %{field} cannot be empty."
//
// A Formatter turns a translation key, a fallback template and a parameter
// map into the final string. Placeholders is the trivial formatter: it
// substitutes parameters into the template and ignores the key. A Translator
// loads catalogs through a TranslationAdapter and returns a Formatter bound to
// the best matching language; keys missing from the catalog fall back to the
// template, so messages are never lost.
//
// # Usage
//
//	adapter := i18n.NewFileAdapter(i18n.NewYAMLParser(), "./translations/de.yaml")
//
//	translator, err := i18n.NewTranslator(ctx, adapter,
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//
//	f := translator.Formatter("de-AT", "en")
//	msg := f.Format("validation.empty_required_field", "The field %{field} cannot be empty.",
//		map[string]any{"field": "title"})
//
// # Catalogs
//
// Catalogs map a language code to nested keys. Dotted keys traverse the
// nesting; "validation.type_mismatch" reads:
//
//	de:
//	  validation:
//	    type_mismatch: "Der Wert %{value} ist für das Feld %{field} ungültig."
//
// Catalogs can be read from a single file (FileAdapter), every supported file
// of a directory (NewDirectoryAdapter), any fs.FS such as an embed.FS
// (FSAdapter) or a map (MapAdapter). YAML and JSON are supported.
//
// # Language Matching
//
// Requested languages are matched against the loaded catalogs with
// golang.org/x/text/language, so "de-AT" picks a "de" catalog. Unmatched
// requests use the default language.
package i18n
