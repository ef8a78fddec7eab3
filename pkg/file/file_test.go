package file_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/file"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func gifBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, width, height), color.Palette{color.Black, color.White}), nil))
	return buf.Bytes()
}

func TestExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"report.tar.gz": "gz",
		"photo.JPG":     "JPG",
		"README":        "",
		"archive.":      "",
		".env":          "env",
		"":              "",
	}
	for name, want := range tests {
		assert.Equal(t, want, file.Extension(name), name)
	}
}

func TestDecodeDimensions(t *testing.T) {
	t.Parallel()

	t.Run("png", func(t *testing.T) {
		t.Parallel()

		dims, err := file.DecodeDimensions(bytes.NewReader(pngBytes(t, 1000, 500)))
		require.NoError(t, err)
		assert.Equal(t, file.Dimensions{Width: 1000, Height: 500}, dims)
	})

	t.Run("gif", func(t *testing.T) {
		t.Parallel()

		dims, err := file.DecodeDimensions(bytes.NewReader(gifBytes(t, 7, 3)))
		require.NoError(t, err)
		assert.Equal(t, file.Dimensions{Width: 7, Height: 3}, dims)
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()

		_, err := file.DecodeDimensions(strings.NewReader("plain text"))
		assert.ErrorIs(t, err, file.ErrUnsupportedImage)
	})
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "passwd", file.SanitizeFilename("../../../etc/passwd"))
	assert.Equal(t, "file.txt", file.SanitizeFilename("C:\\Windows\\file.txt"))
	assert.Equal(t, "unnamed", file.SanitizeFilename(""))
	assert.Equal(t, "unnamed", file.SanitizeFilename(".."))
}

func TestMemoryStorage(t *testing.T) {
	t.Parallel()

	storage := file.NewMemoryStorage().
		Put("12", "cover.png", pngBytes(t, 40, 20)).
		Put("13", "notes.txt", []byte("hello"))

	t.Run("stat", func(t *testing.T) {
		t.Parallel()

		f, err := storage.Stat(context.Background(), "12")
		require.NoError(t, err)
		assert.Equal(t, "12", f.Reference)
		assert.Equal(t, "cover.png", f.Filename)
		assert.Equal(t, "png", f.Extension)
		assert.Equal(t, "image/png", f.MIMEType)
		assert.Positive(t, f.Size)
	})

	t.Run("image dimensions", func(t *testing.T) {
		t.Parallel()

		dims, err := file.ImageDimensions(context.Background(), storage, "12")
		require.NoError(t, err)
		assert.Equal(t, file.Dimensions{Width: 40, Height: 20}, dims)

		_, err = file.ImageDimensions(context.Background(), storage, "13")
		assert.ErrorIs(t, err, file.ErrUnsupportedImage)
	})

	t.Run("missing and empty references", func(t *testing.T) {
		t.Parallel()

		_, err := storage.Stat(context.Background(), "99")
		assert.ErrorIs(t, err, file.ErrFileNotFound)

		_, err = storage.Open(context.Background(), "")
		assert.ErrorIs(t, err, file.ErrInvalidReference)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.Stat(ctx, "12")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
