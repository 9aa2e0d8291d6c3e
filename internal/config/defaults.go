package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Editor EditorConfig `json:"editor"`
}

type EditorConfig struct {
	// Encoding
	DefaultEncoding     string  `json:"default_encoding"`     // Default: "utf-8"
	ConfidenceThreshold float64 `json:"confidence_threshold"` // Default: 0.9
	EncodingCacheSize   int     `json:"encoding_cache_size"`  // Default: 1000

	// File Operations
	MaxFileSize       int64  `json:"max_file_size"`        // Default: 10 * 1024 * 1024 (10MB)
	BinarySampleSize  int    `json:"binary_sample_size"`   // Default: 8000
	MaxHistoryPerFile int    `json:"max_history_per_file"` // Default: 0 (unbounded)
	WorkspaceRoot     string `json:"workspace_root"`       // Default: "" (any absolute path)

	// Directory view
	MaxDirectoryEntries int `json:"max_directory_entries"` // Default: 1000

	// Rendering
	SnippetContextLines int `json:"snippet_context_lines"` // Default: 4

	// Linting
	LintCommand       []string `json:"lint_command"`         // Default: none, "{path}" is substituted
	LintTimeoutSec    int      `json:"lint_timeout_sec"`     // Default: 30
	MaxLintOutputSize int64    `json:"max_lint_output_size"` // Default: 64 * 1024 (64KB)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			DefaultEncoding:     "utf-8",
			ConfidenceThreshold: 0.9,
			EncodingCacheSize:   1000,
			MaxFileSize:         10 * 1024 * 1024,
			BinarySampleSize:    8000,
			MaxHistoryPerFile:   0,
			MaxDirectoryEntries: 1000,
			SnippetContextLines: 4,
			LintTimeoutSec:      30,
			MaxLintOutputSize:   64 * 1024,
		},
	}
}
