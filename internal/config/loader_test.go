package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const dotfile = "/home/user/.config/editkit/config.json"

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "utf-8", cfg.Editor.DefaultEncoding)
	assert.InDelta(t, 0.9, cfg.Editor.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 1000, cfg.Editor.EncodingCacheSize)
	assert.Equal(t, int64(10*1024*1024), cfg.Editor.MaxFileSize)
	assert.Equal(t, 4, cfg.Editor.SnippetContextLines)
}

func TestLoad_FullOverride_AllValuesReplaced(t *testing.T) {
	configJSON := `{
		"editor": {
			"default_encoding": "windows-1251",
			"confidence_threshold": 0.5,
			"encoding_cache_size": 16,
			"max_file_size": 2048,
			"max_history_per_file": 10,
			"snippet_context_lines": 2,
			"lint_command": ["ruff", "check", "{path}"],
			"lint_timeout_sec": 5,
			"workspace_root": "/srv/project"
		}
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "windows-1251", cfg.Editor.DefaultEncoding)
	assert.InDelta(t, 0.5, cfg.Editor.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 16, cfg.Editor.EncodingCacheSize)
	assert.Equal(t, int64(2048), cfg.Editor.MaxFileSize)
	assert.Equal(t, 10, cfg.Editor.MaxHistoryPerFile)
	assert.Equal(t, 2, cfg.Editor.SnippetContextLines)
	assert.Equal(t, []string{"ruff", "check", "{path}"}, cfg.Editor.LintCommand)
	assert.Equal(t, 5, cfg.Editor.LintTimeoutSec)
	assert.Equal(t, "/srv/project", cfg.Editor.WorkspaceRoot)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"editor": {"encoding_cache_size": 3}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Editor.EncodingCacheSize)     // Overridden
	assert.Equal(t, "utf-8", cfg.Editor.DefaultEncoding) // Default
	assert.Equal(t, 30, cfg.Editor.LintTimeoutSec)       // Default
}

func TestLoad_EmptyConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{}`)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	fs := &MockFileSystem{
		Files: map[string][]byte{"/etc/editkit.json": []byte(`{"editor": {"max_history_per_file": 7}}`)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.LoadFile("/etc/editkit.json")

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Editor.MaxHistoryPerFile)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{invalid json`)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "utf-8", cfg.Editor.DefaultEncoding)
}

func TestLoad_WrongJSONType_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`["not", "an", "object"]`)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValue_FailsValidation(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"editor": {"confidence_threshold": 1.5}}`)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "confidence_threshold")
}

// --- EDGE CASE TESTS ---

func TestLoad_ZeroValueExplicit_Overrides(t *testing.T) {
	// Explicit zero replaces the default since JSON is decoded over the defaults
	configJSON := `{"editor": {"snippet_context_lines": 0}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Editor.SnippetContextLines)
}
