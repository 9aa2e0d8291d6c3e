package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Editor validation - Encoding
	if strings.TrimSpace(c.Editor.DefaultEncoding) == "" {
		errs = append(errs, "editor.default_encoding must not be empty")
	}
	if c.Editor.ConfidenceThreshold < 0 || c.Editor.ConfidenceThreshold > 1 {
		errs = append(errs, "editor.confidence_threshold must be within [0, 1]")
	}
	if c.Editor.EncodingCacheSize < 1 {
		errs = append(errs, "editor.encoding_cache_size must be >= 1")
	}

	// Editor validation - Files
	if c.Editor.MaxFileSize < 1 {
		errs = append(errs, "editor.max_file_size must be >= 1")
	}
	if c.Editor.BinarySampleSize < 1 {
		errs = append(errs, "editor.binary_sample_size must be >= 1")
	}
	if c.Editor.MaxHistoryPerFile < 0 {
		errs = append(errs, "editor.max_history_per_file must be >= 0")
	}
	if c.Editor.WorkspaceRoot != "" && !filepath.IsAbs(c.Editor.WorkspaceRoot) {
		errs = append(errs, "editor.workspace_root must be an absolute path")
	}
	if c.Editor.MaxDirectoryEntries < 1 {
		errs = append(errs, "editor.max_directory_entries must be >= 1")
	}
	if c.Editor.SnippetContextLines < 0 {
		errs = append(errs, "editor.snippet_context_lines must be >= 0")
	}

	// Editor validation - Linting
	if c.Editor.LintTimeoutSec < 1 {
		errs = append(errs, "editor.lint_timeout_sec must be >= 1")
	}
	if c.Editor.MaxLintOutputSize < 1 {
		errs = append(errs, "editor.max_lint_output_size must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
