package pathutil

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned when no path was supplied.
	ErrEmptyPath = errors.New("path is required")
	// ErrNotADirectory is returned when a workspace root is not a directory.
	ErrNotADirectory = errors.New("not a directory")
)

// RelativePathError is returned when a path is not absolute.
type RelativePathError struct {
	Path string
}

func (e *RelativePathError) Error() string {
	return fmt.Sprintf("the path %s is not an absolute path, it should start with `/`", e.Path)
}

func (e *RelativePathError) InvalidInput() bool {
	return true
}

// OutsideWorkspaceError indicates a path is outside the workspace boundary.
type OutsideWorkspaceError struct {
	Path string
	Root string
}

func (e *OutsideWorkspaceError) Error() string {
	return fmt.Sprintf("the path %s is outside the workspace root %s", e.Path, e.Root)
}

// OutsideWorkspace implements the behavioral interface for cross-package error checking.
func (e *OutsideWorkspaceError) OutsideWorkspace() bool {
	return true
}

func (e *OutsideWorkspaceError) InvalidInput() bool {
	return true
}

// WorkspaceRootError is returned when the workspace root is invalid.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}

func (e *WorkspaceRootError) Unwrap() error {
	return e.Cause
}

func (e *WorkspaceRootError) InvalidWorkspace() bool {
	return true
}
