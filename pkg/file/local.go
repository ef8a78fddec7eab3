package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage resolves references as paths relative to a base directory.
// All lookups are confined to baseDir to prevent path traversal attacks.
// It is safe for concurrent use.
type LocalStorage struct {
	baseDir string // Absolute path - all lookups stay within this directory
}

// NewLocalStorage creates a resolver over baseDir. The directory must exist.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	// Must resolve to absolute path for security - prevents relative path confusion
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsPath, err)
	}

	info, err := os.Stat(absBaseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, baseDir)
	}

	return &LocalStorage{baseDir: absBaseDir}, nil
}

// Stat implements Resolver. The MIME type is sniffed from the content.
func (s *LocalStorage) Stat(ctx context.Context, ref string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.lookup(ref)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, statError(ref, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, ref)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	mimeType, err := detectMIMEType(f)
	if err != nil {
		return nil, err
	}

	return newFile(ref, info.Name(), info.Size(), mimeType), nil
}

// Open implements Resolver.
func (s *LocalStorage) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.lookup(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, statError(ref, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, ref)
	}

	return f, nil
}

func (s *LocalStorage) lookup(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", ErrInvalidReference
	}
	return s.resolvePath(ref)
}

// resolvePath validates and resolves a path within the base directory,
// ensuring the result stays within baseDir bounds.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsPath, err)
	}

	// Security check: ensure path stays within baseDir (prevents ../ attacks)
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}

func statError(ref string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, ref)
	}
	return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
}
