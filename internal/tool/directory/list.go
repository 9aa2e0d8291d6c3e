// Package directory produces the non-recursive listings shown when a
// directory is viewed.
package directory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Cyclone1070/editkit/internal/tool/paginationutil"
)

// DefaultMaxEntries caps a listing when no limit is configured.
const DefaultMaxEntries = 1000

// Entry is a single child of a listed directory.
type Entry struct {
	Name  string
	IsDir bool
}

// Listing is the visible content of one directory.
type Listing struct {
	Path       string
	Entries    []Entry
	TotalCount int
	Truncated  bool
}

// fileSystem defines the minimal filesystem interface needed for listing.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
}

// IgnoreMatcher decides whether an entry is hidden by ignore rules.
type IgnoreMatcher interface {
	ShouldIgnore(path string, isDir bool) bool
}

// MatcherFunc builds the ignore rules that apply inside dir.
type MatcherFunc func(dir string) (IgnoreMatcher, error)

// Lister lists directories, hiding dot entries and ignored entries.
type Lister struct {
	fs         fileSystem
	newMatcher MatcherFunc
	maxEntries int
}

// NewLister creates a Lister. newMatcher may be nil to disable ignore rules.
func NewLister(fs fileSystem, newMatcher MatcherFunc, maxEntries int) *Lister {
	if fs == nil {
		panic("fs is required")
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Lister{fs: fs, newMatcher: newMatcher, maxEntries: maxEntries}
}

// List returns the immediate children of abs: directories first, then
// files, each group sorted by name.
func (l *Lister) List(ctx context.Context, abs string) (*Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := l.fs.Stat(abs)
	if err != nil {
		return nil, &ListDirError{Path: abs, Cause: err}
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: abs}
	}

	var matcher IgnoreMatcher
	if l.newMatcher != nil {
		matcher, err = l.newMatcher(abs)
		if err != nil {
			return nil, &ListDirError{Path: abs, Cause: err}
		}
	}

	children, err := l.fs.ListDir(abs)
	if err != nil {
		return nil, &ListDirError{Path: abs, Cause: err}
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		name := child.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if matcher != nil && matcher.ShouldIgnore(filepath.Join(abs, name), child.IsDir()) {
			continue
		}
		entries = append(entries, Entry{Name: name, IsDir: child.IsDir()})
	}

	// Sort: directories first, then files, both alphabetically
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})

	page, pagination := paginationutil.ApplyPagination(entries, 0, l.maxEntries)

	return &Listing{
		Path:       abs,
		Entries:    page,
		TotalCount: pagination.TotalCount,
		Truncated:  pagination.Truncated,
	}, nil
}

// ListDirError is returned when a directory cannot be read.
type ListDirError struct {
	Path  string
	Cause error
}

func (e *ListDirError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Path, e.Cause)
}

func (e *ListDirError) Unwrap() error {
	return e.Cause
}

// NotADirectoryError is returned when the listed path is a file.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}
