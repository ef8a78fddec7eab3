package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
)

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()

	adapter := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {
			"hello": "Hello, %{name}!",
			"validation": map[string]any{
				"empty_required_field": "Field %{field} is required.",
			},
		},
		"de": {
			"hello": "Hallo, %{name}!",
			"validation": map[string]any{
				"empty_required_field": "Das Feld %{field} darf nicht leer sein.",
				"nested":               map[string]any{"deep": "tief"},
			},
		},
	}}

	translator, err := i18n.NewTranslator(context.Background(), adapter, opts...)
	require.NoError(t, err)
	return translator
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("nil adapter", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.NewTranslator(context.Background(), nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
	})

	t.Run("empty language code", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{"": {}}})
		assert.ErrorIs(t, err, i18n.ErrEmptyLanguageCode)
	})

	t.Run("empty catalogs are allowed", func(t *testing.T) {
		t.Parallel()

		translator, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{})
		require.NoError(t, err)
		assert.Empty(t, translator.SupportedLanguages())
		assert.Equal(t, "en", translator.Match("de"))
	})
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	translator := newTranslator(t)

	assert.Equal(t, []string{"de", "en"}, translator.SupportedLanguages())
	assert.Equal(t, "Hallo, Anna!", translator.T("de", "hello", map[string]any{"name": "Anna"}))
	assert.Equal(t, "Das Feld title darf nicht leer sein.",
		translator.T("de", "validation.empty_required_field", map[string]any{"field": "title"}))
	assert.Equal(t, "tief", translator.T("de", "validation.nested.deep", nil))

	// missing keys and languages fall back to the key
	assert.Equal(t, "missing.key", translator.T("de", "missing.key", nil))
	assert.Equal(t, "hello", translator.T("it", "hello", nil))
	// maps are not messages
	assert.Equal(t, "validation.nested", translator.T("de", "validation.nested", nil))

	assert.True(t, translator.HasTranslation("en", "validation.empty_required_field"))
	assert.False(t, translator.HasTranslation("en", "validation.nested.deep"))
}

func TestTranslator_WithFallbackToKeyDisabled(t *testing.T) {
	t.Parallel()

	translator := newTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, translator.T("de", "missing.key", nil))
	assert.Equal(t, "default", translator.Td("de", "missing.key", "default", nil))
}

func TestTranslator_Match(t *testing.T) {
	t.Parallel()

	translator := newTranslator(t, i18n.WithDefaultLanguage("en"))

	assert.Equal(t, "de", translator.Match("de"))
	assert.Equal(t, "de", translator.Match("de-AT"))
	assert.Equal(t, "de", translator.Match("fr-FR,de;q=0.8"))
	assert.Equal(t, "en", translator.Match("ja"))
	assert.Equal(t, "en", translator.Match())
}

func TestTranslator_Formatter(t *testing.T) {
	t.Parallel()

	translator := newTranslator(t)

	de := translator.Formatter("de-CH")
	assert.Equal(t, "Das Feld body darf nicht leer sein.",
		de.Format("validation.empty_required_field", "The field %{field} cannot be empty.", map[string]any{"field": "body"}))
	assert.Equal(t, "The delta 2 cannot be empty.",
		de.Format("validation.empty_required_element", "The delta %{delta} cannot be empty.", map[string]any{"delta": 2}))
}
