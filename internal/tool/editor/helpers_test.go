package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/Cyclone1070/editkit/internal/tool/charset"
	"github.com/Cyclone1070/editkit/internal/tool/directory"
	"github.com/Cyclone1070/editkit/internal/tool/fsutil"
	"github.com/Cyclone1070/editkit/internal/tool/history"
	"github.com/Cyclone1070/editkit/internal/tool/pathutil"
	"github.com/stretchr/testify/require"
)

// cyrillicDetector treats anything that is not UTF-8 as windows-1251.
type cyrillicDetector struct {
	calls      int
	confidence float64
}

func (d *cyrillicDetector) Detect(data []byte) (string, float64) {
	d.calls++
	if utf8.Valid(data) {
		return "utf-8", 1
	}
	return "windows-1251", d.confidence
}

// flakyFS fails writes on demand.
type flakyFS struct {
	*fsutil.OSFileSystem
	failWrites bool
}

func (f *flakyFS) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	return f.OSFileSystem.WriteFileAtomic(path, content, perm)
}

// recordingLinter returns canned output and records the paths it saw.
type recordingLinter struct {
	out   string
	err   error
	paths []string
}

func (l *recordingLinter) Lint(_ context.Context, path string) (string, error) {
	l.paths = append(l.paths, path)
	return l.out, l.err
}

type testEnv struct {
	editor   *Editor
	fs       *flakyFS
	store    *history.Store
	manager  *charset.Manager
	detector *cyrillicDetector
	linter   *recordingLinter
	dir      string
}

type envOption func(*envConfig)

type envConfig struct {
	root        string
	maxFileSize int64
	threshold   float64
	confidence  float64
	historyCap  int
}

func withWorkspace(root string) envOption { return func(c *envConfig) { c.root = root } }
func withMaxFileSize(n int64) envOption   { return func(c *envConfig) { c.maxFileSize = n } }
func withHistoryCap(n int) envOption      { return func(c *envConfig) { c.historyCap = n } }
func withDetectorConfidence(conf float64) envOption {
	return func(c *envConfig) { c.confidence = conf }
}

func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	cfg := envConfig{threshold: charset.DefaultConfidenceThreshold, confidence: 0.99}
	for _, o := range opts {
		o(&cfg)
	}

	fs := &flakyFS{OSFileSystem: fsutil.NewOSFileSystem()}
	det := &cyrillicDetector{confidence: cfg.confidence}
	manager := charset.NewManager(fs, det, charset.Options{ConfidenceThreshold: cfg.threshold, CacheSize: 16})
	store := history.NewStore(cfg.historyCap)
	linter := &recordingLinter{}

	ed := NewEditor(fs, manager, store, directory.NewLister(fs, nil, 0), pathutil.NewPolicy(cfg.root), linter, Options{
		MaxFileSize: cfg.maxFileSize,
	})

	return &testEnv{
		editor:   ed,
		fs:       fs,
		store:    store,
		manager:  manager,
		detector: det,
		linter:   linter,
		dir:      t.TempDir(),
	}
}

func (env *testEnv) run(req Request) *Result {
	return env.editor.Execute(context.Background(), req)
}

func (env *testEnv) path(name string) string {
	return filepath.Join(env.dir, name)
}

func ptr[T any](v T) *T { return &v }

// writeEncoded writes text to name in the given encoding.
func writeEncoded(t *testing.T, path, text, encoding string) {
	t.Helper()
	data, err := charset.Encode(text, encoding)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// readEncoded reads path and decodes it strictly.
func readEncoded(t *testing.T, path, encoding string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text, err := charset.Decode(data, encoding)
	require.NoError(t, err)
	return text
}

const cp1251Fixture = "# -*- coding: cp1251 -*-\n" +
	"\n" +
	"# Тестовый файл с кириллицей\n" +
	"text = \"Привет, мир!\"\n" +
	"numbers = [1, 2, 3, 4, 5]\n" +
	"message = \"Это тестовая строка\"\n"

func (env *testEnv) cp1251File(t *testing.T) string {
	t.Helper()
	path := env.path("russian.py")
	writeEncoded(t, path, cp1251Fixture, "windows-1251")
	return path
}

func charsetFallback() charset.Resolution {
	return charset.Resolution{Encoding: charset.DefaultEncoding, Fallback: true}
}
