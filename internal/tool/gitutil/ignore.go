// Package gitutil answers whether a path is excluded by .gitignore rules.
package gitutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/editkit/internal/tool/helper/content"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const ignoreFile = ".gitignore"

// fileSystem defines the minimal filesystem interface needed for ignore matching.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// IgnoreMatcher matches absolute paths against the .gitignore files that
// apply to one directory: its own and those of its ancestors up to the
// repository root or the boundary, whichever comes first.
type IgnoreMatcher struct {
	base    string
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads the ignore rules that apply inside dir.
// boundary stops the upward walk; "" walks until a .git directory or the
// filesystem root. Missing .gitignore files are not an error.
func NewIgnoreMatcher(fs fileSystem, dir, boundary string) (*IgnoreMatcher, error) {
	if fs == nil {
		panic("fs is required")
	}
	dir = filepath.Clean(dir)

	chain := []string{dir}
	for cur := dir; ; {
		if cur == boundary || isRepoRoot(fs, cur) {
			break
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
		chain = append(chain, cur)
	}

	base := chain[len(chain)-1]
	var patterns []gitignore.Pattern

	// Outermost first so deeper files take precedence.
	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i]
		path := filepath.Join(d, ignoreFile)
		data, err := fs.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, &GitignoreReadError{Path: path, Cause: err}
		}

		rel, err := filepath.Rel(base, d)
		if err != nil {
			return nil, &GitignoreReadError{Path: path, Cause: err}
		}
		domain := splitPath(rel)
		for _, line := range content.Lines(content.ParseDocument(string(data)).Text) {
			line = strings.TrimSuffix(line, "\r")
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			patterns = append(patterns, gitignore.ParsePattern(line, domain))
		}
	}

	if len(patterns) == 0 {
		return &IgnoreMatcher{base: base}, nil
	}
	return &IgnoreMatcher{base: base, matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore reports whether the absolute path is excluded.
// Paths outside the matcher's base are never ignored.
func (m *IgnoreMatcher) ShouldIgnore(path string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(m.base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	segments := splitPath(rel)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

func isRepoRoot(fs fileSystem, dir string) bool {
	_, err := fs.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	var segments []string
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpMatcher never ignores anything.
type NoOpMatcher struct{}

// ShouldIgnore always returns false.
func (NoOpMatcher) ShouldIgnore(string, bool) bool {
	return false
}
