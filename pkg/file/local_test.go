package file_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/file"
)

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("empty base directory", func(t *testing.T) {
		t.Parallel()

		_, err := file.NewLocalStorage("")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("missing base directory", func(t *testing.T) {
		t.Parallel()

		_, err := file.NewLocalStorage(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("base is a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := file.NewLocalStorage(path)
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestLocalStorage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "cover.png"), pngBytes(t, 700, 700), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.tar.gz"), []byte("not really gzip"), 0o644))

	storage, err := file.NewLocalStorage(dir)
	require.NoError(t, err)

	t.Run("stat reads name and sniffs the type", func(t *testing.T) {
		t.Parallel()

		f, err := storage.Stat(context.Background(), "images/cover.png")
		require.NoError(t, err)
		assert.Equal(t, "images/cover.png", f.Reference)
		assert.Equal(t, "cover.png", f.Filename)
		assert.Equal(t, "png", f.Extension)
		assert.Equal(t, "image/png", f.MIMEType)

		f, err = storage.Stat(context.Background(), "report.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, "gz", f.Extension)
		assert.Equal(t, int64(len("not really gzip")), f.Size)
	})

	t.Run("open streams the content", func(t *testing.T) {
		t.Parallel()

		rc, err := storage.Open(context.Background(), "report.tar.gz")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "not really gzip", string(data))
	})

	t.Run("image dimensions", func(t *testing.T) {
		t.Parallel()

		dims, err := file.ImageDimensions(context.Background(), storage, "images/cover.png")
		require.NoError(t, err)
		assert.Equal(t, file.Dimensions{Width: 700, Height: 700}, dims)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := storage.Stat(context.Background(), "images/missing.png")
		assert.ErrorIs(t, err, file.ErrFileNotFound)

		_, err = storage.Open(context.Background(), "images/missing.png")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("directories are not files", func(t *testing.T) {
		t.Parallel()

		_, err := storage.Stat(context.Background(), "images")
		assert.ErrorIs(t, err, file.ErrIsDirectory)

		_, err = storage.Open(context.Background(), "images")
		assert.ErrorIs(t, err, file.ErrIsDirectory)
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := storage.Stat(context.Background(), "../../etc/passwd")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("empty reference", func(t *testing.T) {
		t.Parallel()

		_, err := storage.Stat(context.Background(), " ")
		assert.ErrorIs(t, err, file.ErrInvalidReference)
	})
}
