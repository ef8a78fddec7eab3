package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/file"
	"github.com/dmitrymomot/entityvalidator/pkg/validator"
)

func TestFileExtension(t *testing.T) {
	t.Parallel()

	storage := file.NewMemoryStorage().
		Put("1", "report.tar.gz", []byte("gz")).
		Put("2", "photo.png", []byte("png")).
		Put("3", "PHOTO.PNG", []byte("png")).
		Put("4", "README", []byte("text"))

	check := validator.FileExtension(storage)
	spec := func(allowed string) fieldspec.FieldSpec {
		return fieldspec.FieldSpec{
			Name:     "field_attachment",
			Kind:     fieldspec.KindFile,
			Settings: fieldspec.Settings{FileExtensions: allowed},
		}
	}

	t.Run("rejects the last extension with verbatim params", func(t *testing.T) {
		t.Parallel()
		errs, err := check.Validate(context.Background(), input(spec("jpg png"), map[string]any{"fid": 1}))
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, validator.DisallowedFileExtension, errs[0].Kind)
		assert.Equal(t, "report.tar.gz", errs[0].Params["file-name"])
		assert.Equal(t, "gz", errs[0].Params["extension"])
		assert.Equal(t, "jpg png", errs[0].Params["extensions"])
		assert.Equal(t, "The file (report.tar.gz) extension (gz) did not match the allowed extensions: jpg png", errs[0].String())
	})

	t.Run("accepts an allowed extension", func(t *testing.T) {
		t.Parallel()
		errs, err := check.Validate(context.Background(), input(spec("jpg png"), "2"))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("compares case-sensitively", func(t *testing.T) {
		t.Parallel()
		errs, err := check.Validate(context.Background(), input(spec("jpg png"), "3"))
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "PNG", errs[0].Params["extension"])
	})

	t.Run("rejects a name without extension", func(t *testing.T) {
		t.Parallel()
		errs, err := check.Validate(context.Background(), input(spec("txt"), "4"))
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "", errs[0].Params["extension"])
	})

	t.Run("tolerates extra whitespace in the allow-list", func(t *testing.T) {
		t.Parallel()
		errs, err := check.Validate(context.Background(), input(spec("  png   gz "), []any{"1", "2"}))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("is disabled by an empty allow-list", func(t *testing.T) {
		t.Parallel()
		errs, err := validator.FileExtension(nil).Validate(context.Background(), input(spec(""), "1"))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("records unavailable files", func(t *testing.T) {
		t.Parallel()
		errs, err := check.Validate(context.Background(), input(spec("png"), []any{"404", "2"}))
		require.NoError(t, err)
		assert.Equal(t, []validator.Kind{validator.FileUnavailable}, kinds(errs))
		assert.Equal(t, "404", errs[0].Params["reference"])
	})

	t.Run("skips values that are not references", func(t *testing.T) {
		t.Parallel()
		errs, err := check.Validate(context.Background(), input(spec("png"), map[string]any{"alt": "x"}))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("fails without a resolver", func(t *testing.T) {
		t.Parallel()
		_, err := validator.FileExtension(nil).Validate(context.Background(), input(spec("png"), "1"))
		assert.ErrorIs(t, err, validator.ErrResolverNotConfigured)
	})
}
