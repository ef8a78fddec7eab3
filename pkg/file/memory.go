package file

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
)

// MemoryStorage keeps files in memory, keyed by reference. It is safe for
// concurrent use.
type MemoryStorage struct {
	mu    sync.RWMutex
	files map[string]memoryFile
}

type memoryFile struct {
	filename string
	data     []byte
}

// NewMemoryStorage creates an empty in-memory resolver.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string]memoryFile)}
}

// Put stores data under ref with the given original filename.
func (s *MemoryStorage) Put(ref, filename string, data []byte) *MemoryStorage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[ref] = memoryFile{filename: filename, data: bytes.Clone(data)}
	return s
}

// Stat implements Resolver.
func (s *MemoryStorage) Stat(ctx context.Context, ref string) (*File, error) {
	f, err := s.get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return newFile(ref, f.filename, int64(len(f.data)), http.DetectContentType(f.data)), nil
}

// Open implements Resolver.
func (s *MemoryStorage) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	f, err := s.get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func (s *MemoryStorage) get(ctx context.Context, ref string) (memoryFile, error) {
	if err := ctx.Err(); err != nil {
		return memoryFile{}, err
	}
	if ref == "" {
		return memoryFile{}, ErrInvalidReference
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[ref]
	if !ok {
		return memoryFile{}, ErrFileNotFound
	}
	return f, nil
}
