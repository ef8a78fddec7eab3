package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/config"
)

func pngFile(t *testing.T, path string, width, height int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// setupEnv points the command at testdata/schema.yaml and a storage directory
// holding the files referenced by the test entities.
func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	pngFile(t, filepath.Join(dir, "shot.png"), 640, 480)
	pngFile(t, filepath.Join(dir, "large.png"), 1000, 500)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("release notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.exe"), []byte("MZ"), 0o644))

	t.Setenv("EV_ENV", "test")
	t.Setenv("EV_LOG_LEVEL", "error")
	t.Setenv("EV_LOG_FORMAT", "")
	t.Setenv("EV_SCHEMA_SOURCE", "yaml")
	t.Setenv("EV_SCHEMA_PATH", filepath.Join("testdata", "schema.yaml"))
	t.Setenv("EV_STORAGE", "local")
	t.Setenv("EV_STORAGE_DIR", dir)
	t.Setenv("EV_LANG", "en")
	t.Setenv("EV_TRANSLATIONS_PATH", "")

	config.ResetCache()
	t.Cleanup(config.ResetCache)
	return dir
}

func resetFlags() {
	envFile, verbose = "", false

	validateFlags.entityType, validateFlags.bundle = "", ""
	validateFlags.silent = false
	validateFlags.lang = ""
	validateFlags.format = formatText

	fieldsFlags.entityType, fieldsFlags.bundle = "", ""
	fieldsFlags.format = formatText

	publishFlags.from, publishFlags.dryRun = "", false
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
