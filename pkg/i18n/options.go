package i18n

import "log/slog"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage selects the catalog used when no requested language
// matches. Empty keeps DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey makes T return the key itself for missing entries.
// Enabled by default.
func WithFallbackToKey(enabled bool) Option {
	return func(t *Translator) { t.fallbackToKey = enabled }
}

// WithLogger sets the logger used for catalog reloads and missing keys.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs every lookup of a missing key at Warn.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.missingLogMode = enabled }
}
