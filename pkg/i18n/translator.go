package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is the language used when no requested language matches.
const DefaultLanguage = "en"

// Translator looks up message templates in loaded catalogs.
// It is safe for concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	adapter        TranslationAdapter

	mu      sync.RWMutex
	langs   []string // default language first
	matcher language.Matcher
}

// NewTranslator creates a Translator with catalogs loaded from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.DiscardHandler),
		adapter:       adapter,
	}

	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload reads the catalogs from the adapter again and replaces the loaded ones.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateTranslations(translations); err != nil {
		return err
	}

	langs := make([]string, 0, len(translations)+1)
	langs = append(langs, t.defaultLang)
	for _, lang := range slices.Sorted(maps.Keys(translations)) {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}

	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			tag = language.Und
		}
		tags = append(tags, tag)
	}

	t.mu.Lock()
	t.translations = translations
	t.langs = langs
	t.matcher = language.NewMatcher(tags)
	t.mu.Unlock()

	if len(translations) == 0 {
		t.logger.WarnContext(ctx, "no translations loaded")
		return nil
	}
	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return nil
}

func validateTranslations(trans map[string]map[string]any) error {
	for lang, translations := range trans {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if translations == nil {
			return fmt.Errorf("%w: %s", ErrNilTranslations, lang)
		}
	}
	return nil
}

// SupportedLanguages returns the language codes that have catalogs, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.translations))
}

// Match returns the loaded language that best serves the requested ones, in
// order of preference. Each entry may be a tag ("de-AT") or an Accept-Language
// value ("de-AT,de;q=0.9").
func (t *Translator) Match(langs ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(langs) == 0 || t.matcher == nil {
		return t.defaultLang
	}
	_, index := language.MatchStrings(t.matcher, langs...)
	if index < 0 || index >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[index]
}

// HasTranslation checks if a translation exists for the given language and key.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key for lang, substituting params into the translation.
// A missing translation yields the key itself, or "" when WithFallbackToKey(false).
//
// Example:
//
//	// With translation "welcome": "Hello, %{name}!"
//	msg := translator.T("en", "welcome", map[string]any{"name": "John"})
//	// Returns: "Hello, John!"
func (t *Translator) T(lang, key string, params map[string]any) string {
	if tmpl, ok := t.lookup(lang, key); ok {
		return Sprintf(tmpl, params)
	}
	if t.fallbackToKey {
		return Sprintf(key, params)
	}
	return ""
}

// Td translates key for lang, falling back to defaultValue when missing.
func (t *Translator) Td(lang, key, defaultValue string, params map[string]any) string {
	if tmpl, ok := t.lookup(lang, key); ok {
		return Sprintf(tmpl, params)
	}
	return Sprintf(defaultValue, params)
}

// Formatter returns a Formatter rendering messages in the best match for langs.
// Keys missing from the catalog render their template.
func (t *Translator) Formatter(langs ...string) Formatter {
	lang := t.Match(langs...)
	return FormatterFunc(func(key, template string, params map[string]any) string {
		return t.Td(lang, key, template, params)
	})
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("language not supported", slog.String("lang", lang), slog.String("key", key))
		}
		return "", false
	}

	val, ok := getTranslation(langMap, key)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		return "", false
	}

	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}

	if t.missingLogMode {
		t.logger.Warn("translation is not a string", slog.String("lang", lang), slog.String("key", key), slog.String("type", fmt.Sprintf("%T", val)))
	}
	return "", false
}

// getTranslation traverses a nested map using dot-separated keys.
// For example, key "validation.type_mismatch" reads m["validation"]["type_mismatch"].
func getTranslation(m map[string]any, key string) (any, bool) {
	if val, ok := m[key]; ok {
		return val, true
	}

	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		next, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return next, true
		}

		switch nested := next.(type) {
		case map[string]any:
			current = nested
		case map[any]any:
			current = make(map[string]any, len(nested))
			for k, v := range nested {
				if ks, ok := k.(string); ok {
					current[ks] = v
				}
			}
		default:
			return nil, false
		}
	}

	return nil, false
}
