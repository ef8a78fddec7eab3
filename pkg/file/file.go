package file

import (
	"context"
	"errors"
	"image"
	"io"
	"net/http"
	"path"
	"strings"

	// Image formats understood by DecodeDimensions.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// File is the metadata of a stored binary.
type File struct {
	Reference string // identifier the file was resolved by
	Filename  string // original file name, extension included
	Size      int64
	MIMEType  string
	Extension string // see Extension
}

// Resolver looks up stored binaries by reference. Implementations must honor
// context cancellation; lookups are blocking calls made during validation.
type Resolver interface {
	// Stat returns the metadata of the referenced file.
	Stat(ctx context.Context, ref string) (*File, error)
	// Open returns the content of the referenced file. Callers must close it.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Dimensions is the size of an image in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Extension returns the part of name after its last ".", without the dot.
// A name without a dot has no extension. Case is preserved.
//
// Example:
//
//	file.Extension("report.tar.gz") // "gz"
//	file.Extension("README")        // ""
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// DecodeDimensions reads an image header from r and returns its size.
// Only the header is consumed, not the whole image.
func DecodeDimensions(r io.Reader) (Dimensions, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return Dimensions{}, errors.Join(ErrUnsupportedImage, err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

// ImageDimensions opens the referenced image through r and decodes its size.
func ImageDimensions(ctx context.Context, r Resolver, ref string) (Dimensions, error) {
	rc, err := r.Open(ctx, ref)
	if err != nil {
		return Dimensions{}, err
	}
	defer func() { _ = rc.Close() }()

	return DecodeDimensions(rc)
}

// SanitizeFilename removes any path components and NUL bytes from a filename.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// detectMIMEType sniffs the content type from the first 512 bytes of r,
// which is all http.DetectContentType looks at.
func detectMIMEType(r io.Reader) (string, error) {
	buffer := make([]byte, 512)
	n, err := io.ReadFull(r, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", errors.Join(ErrFailedToReadFile, err)
	}
	return http.DetectContentType(buffer[:n]), nil
}

func newFile(ref, filename string, size int64, mimeType string) *File {
	filename = SanitizeFilename(filename)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &File{
		Reference: ref,
		Filename:  filename,
		Size:      size,
		MIMEType:  mimeType,
		Extension: Extension(filename),
	}
}
