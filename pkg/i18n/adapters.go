package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
)

// TranslationAdapter interface defines how translations are loaded
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter is a simple adapter that uses an in-memory map as the translation source
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load implements the TranslationAdapter interface
func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter reads one catalog file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a new FileAdapter instance.
// Returns nil if parser is nil or path is empty.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil || path == "" {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

// Load implements the TranslationAdapter interface
func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a == nil || a.parser == nil {
		return nil, ErrNilParser
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, a.path)
	}

	translations, err := a.parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", a.path, err))
	}
	return translations, nil
}

// FSAdapter reads every file of one directory in a file system that the
// parser supports, merging the catalogs. Later files override keys of
// earlier ones, in lexical order.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewFSAdapter creates an adapter over dir in fsys, typically an embed.FS.
// Returns nil if parser or fsys is nil.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if parser == nil || fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

// NewDirectoryAdapter creates an adapter over a directory of the local file system.
func NewDirectoryAdapter(parser Parser, dir string) *FSAdapter {
	if dir == "" {
		return nil
	}
	return NewFSAdapter(parser, os.DirFS(dir), ".")
}

// Load implements the TranslationAdapter interface
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a == nil || a.parser == nil {
		return nil, ErrNilParser
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(map[string]map[string]any)
	found := false
	for _, entry := range entries {
		if entry.IsDir() || !a.parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		if len(content) == 0 {
			continue
		}

		translations, err := a.parser.Parse(ctx, string(content))
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
		}
		for lang, catalog := range translations {
			if all[lang] == nil {
				all[lang] = make(map[string]any)
			}
			maps.Copy(all[lang], catalog)
		}
		found = true
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoTranslationFiles, a.dir)
	}
	return all, nil
}

// MultiAdapter merges catalogs of several adapters. Later adapters override
// top-level keys of earlier ones.
type MultiAdapter []TranslationAdapter

// Load implements the TranslationAdapter interface
func (m MultiAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	all := make(map[string]map[string]any)
	for _, adapter := range m {
		if adapter == nil {
			continue
		}
		translations, err := adapter.Load(ctx)
		if err != nil {
			return nil, err
		}
		for lang, catalog := range translations {
			if all[lang] == nil {
				all[lang] = make(map[string]any)
			}
			mergeCatalog(all[lang], catalog)
		}
	}
	return all, nil
}

// mergeCatalog copies src into dst, merging nested maps key by key.
func mergeCatalog(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			merged := maps.Clone(dstMap)
			mergeCatalog(merged, srcMap)
			dst[k] = merged
			continue
		}
		dst[k] = v
	}
}
