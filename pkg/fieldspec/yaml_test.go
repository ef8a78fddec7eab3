package fieldspec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
)

func TestLoadYAMLFile(t *testing.T) {
	t.Parallel()

	src, err := fieldspec.LoadYAMLFile("testdata/schema.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"node", "user"}, src.EntityTypes())
	assert.Equal(t, []string{"issue", "page"}, src.Variants("node"))
	assert.Empty(t, src.Variants("taxonomy_term"))

	t.Run("resolves a declared bundle", func(t *testing.T) {
		t.Parallel()

		set, err := fieldspec.Resolve(context.Background(), src, "node", "issue")
		require.NoError(t, err)
		assert.Equal(t, []string{"title", "field_body", "field_tags", "field_screenshot", "field_priority"}, set.Names())

		body, _ := set.Get("field_body")
		assert.Equal(t, "value", body.SubProperty)
		assert.True(t, body.Required)
		assert.Equal(t, fieldspec.KindTextWithSummary, body.Kind)

		tags, _ := set.Get("field_tags")
		assert.Equal(t, fieldspec.Unbounded, tags.Cardinality)
		assert.True(t, tags.HasValidator(fieldspec.ValidatorMultiValueNotEmpty))

		shot, _ := set.Get("field_screenshot")
		assert.Equal(t, "800X600", shot.Settings.MaxResolution)
		assert.Equal(t, "100X100", shot.Settings.MinResolution)
		assert.Equal(t, "png jpg jpeg gif", shot.Settings.FileExtensions)
		assert.True(t, shot.HasValidator(fieldspec.ValidatorImageDimensions))

		priority, _ := set.Get("field_priority")
		assert.Equal(t, []string{"1", "2", "3"}, priority.Settings.AllowedValues)
	})

	t.Run("bundle without fields still carries the label", func(t *testing.T) {
		t.Parallel()

		set, err := fieldspec.Resolve(context.Background(), src, "node", "page")
		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, set.Names())
	})

	t.Run("entity type without label", func(t *testing.T) {
		t.Parallel()

		set, err := fieldspec.Resolve(context.Background(), src, "user", "user")
		require.NoError(t, err)
		assert.Equal(t, []string{"mail"}, set.Names())
	})

	t.Run("unknown variant yields the label only", func(t *testing.T) {
		t.Parallel()

		set, err := fieldspec.Resolve(context.Background(), src, "node", "article")
		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, set.Names())
	})

	t.Run("unknown entity type is empty", func(t *testing.T) {
		t.Parallel()

		schema, err := src.Schema(context.Background(), "comment", "article")
		require.NoError(t, err)
		assert.True(t, schema.IsEmpty())
	})
}

func TestLoadYAMLFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := fieldspec.LoadYAMLFile("testdata/does-not-exist.yaml")
	assert.ErrorIs(t, err, fieldspec.ErrFailedToReadSchema)
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		src, err := fieldspec.ParseYAML(nil)
		require.NoError(t, err)
		assert.Empty(t, src.EntityTypes())
	})

	t.Run("numeric cardinality", func(t *testing.T) {
		t.Parallel()

		src, err := fieldspec.ParseYAML([]byte(`
entity_types:
  node:
    bundles:
      page:
        fields:
          - name: field_links
            cardinality: 3
          - name: field_refs
            cardinality: -1
`))
		require.NoError(t, err)

		schema, err := src.Schema(context.Background(), "node", "page")
		require.NoError(t, err)
		require.Len(t, schema.Fields, 2)
		assert.Equal(t, fieldspec.Cardinality(3), schema.Fields[0].Cardinality)
		assert.Equal(t, fieldspec.Unbounded, schema.Fields[1].Cardinality)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := fieldspec.ParseYAML([]byte(`
entity_types:
  node:
    bundles:
      page:
        fields:
          - name: field_body
            requird: true
`))
		assert.ErrorIs(t, err, fieldspec.ErrFailedToParseSchema)
	})

	t.Run("fields need a name", func(t *testing.T) {
		t.Parallel()

		_, err := fieldspec.ParseYAML([]byte(`
entity_types:
  node:
    bundles:
      page:
        fields:
          - type: text
`))
		assert.ErrorIs(t, err, fieldspec.ErrFailedToParseSchema)
	})

	t.Run("invalid cardinality", func(t *testing.T) {
		t.Parallel()

		_, err := fieldspec.ParseYAML([]byte(`
entity_types:
  node:
    bundles:
      page:
        fields:
          - name: field_body
            cardinality: lots
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, fieldspec.ErrFailedToParseSchema)
	})

	t.Run("returned schema does not alias the catalog", func(t *testing.T) {
		t.Parallel()

		src, err := fieldspec.ParseYAML([]byte(`
entity_types:
  node:
    bundles:
      page:
        fields:
          - name: field_level
            settings:
              allowed_values: [low, high]
`))
		require.NoError(t, err)

		first, err := src.Schema(context.Background(), "node", "page")
		require.NoError(t, err)
		first.Fields[0].Settings.AllowedValues[0] = "changed"

		second, err := src.Schema(context.Background(), "node", "page")
		require.NoError(t, err)
		assert.Equal(t, []string{"low", "high"}, second.Fields[0].Settings.AllowedValues)
	})
}
