// Package pathutil validates the paths commands are allowed to touch.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Policy checks that paths are absolute and, when a workspace root is set,
// that they stay inside it.
type Policy struct {
	workspaceRoot string
}

// NewPolicy creates a Policy. An empty root disables the boundary check.
func NewPolicy(workspaceRoot string) *Policy {
	if workspaceRoot != "" {
		workspaceRoot = filepath.Clean(workspaceRoot)
	}
	return &Policy{workspaceRoot: workspaceRoot}
}

// WorkspaceRoot returns the configured boundary, or "" when unrestricted.
func (p *Policy) WorkspaceRoot() string {
	return p.workspaceRoot
}

// Check returns the cleaned absolute form of path or an error explaining why
// the path may not be used.
func (p *Policy) Check(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	if !filepath.IsAbs(path) {
		return "", &RelativePathError{Path: path}
	}

	abs := filepath.Clean(path)
	if p.workspaceRoot == "" {
		return abs, nil
	}

	// Boundary check: must be the root itself or a child of the root
	if abs != p.workspaceRoot && !strings.HasPrefix(abs, p.workspaceRoot+string(filepath.Separator)) {
		return "", &OutsideWorkspaceError{Path: path, Root: p.workspaceRoot}
	}
	return abs, nil
}

// Rel returns path relative to the workspace root using forward slashes.
// Without a workspace root the absolute path is returned unchanged.
func (p *Policy) Rel(path string) (string, error) {
	abs, err := p.Check(path)
	if err != nil {
		return "", err
	}
	if p.workspaceRoot == "" {
		return abs, nil
	}

	rel, err := filepath.Rel(p.workspaceRoot, abs)
	if err != nil {
		return "", &OutsideWorkspaceError{Path: path, Root: p.workspaceRoot}
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	// Resolve symlinks in the workspace root to get canonical path
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: ErrNotADirectory}
	}
	return resolved, nil
}
