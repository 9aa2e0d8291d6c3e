package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/editkit/internal/tool/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suffixMatcher struct {
	suffix string
}

func (m suffixMatcher) ShouldIgnore(path string, _ bool) bool {
	return filepath.Ext(path) == m.suffix
}

func mkTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range []string{"b.txt", "a.go", "debug.log", ".env"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}
	for _, d := range []string{"zeta", "alpha", ".git"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha", "nested.txt"), []byte("x"), 0o644))
	return dir
}

func TestLister_List(t *testing.T) {
	dir := mkTree(t)
	l := NewLister(fsutil.NewOSFileSystem(), func(string) (IgnoreMatcher, error) {
		return suffixMatcher{suffix: ".log"}, nil
	}, 0)

	listing, err := l.List(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "alpha", IsDir: true},
		{Name: "zeta", IsDir: true},
		{Name: "a.go"},
		{Name: "b.txt"},
	}, listing.Entries, "hidden and ignored entries excluded, directories first, not recursive")
	assert.Equal(t, 4, listing.TotalCount)
	assert.False(t, listing.Truncated)
}

func TestLister_Truncates(t *testing.T) {
	dir := mkTree(t)
	l := NewLister(fsutil.NewOSFileSystem(), nil, 2)

	listing, err := l.List(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, listing.Entries, 2)
	assert.Equal(t, 5, listing.TotalCount)
	assert.True(t, listing.Truncated)
}

func TestLister_Errors(t *testing.T) {
	dir := mkTree(t)
	l := NewLister(fsutil.NewOSFileSystem(), nil, 0)

	_, err := l.List(context.Background(), filepath.Join(dir, "b.txt"))
	var notDir *NotADirectoryError
	assert.ErrorAs(t, err, &notDir)

	_, err = l.List(context.Background(), filepath.Join(dir, "missing"))
	var listErr *ListDirError
	require.ErrorAs(t, err, &listErr)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.List(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)

	failing := NewLister(fsutil.NewOSFileSystem(), func(string) (IgnoreMatcher, error) {
		return nil, errors.New("bad gitignore")
	}, 0)
	_, err = failing.List(context.Background(), dir)
	assert.ErrorAs(t, err, &listErr)
}
