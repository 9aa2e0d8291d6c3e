// Package editor implements the encoding-aware file editing commands:
// view, create, str_replace, insert and undo_edit.
package editor

import (
	"context"
	"log/slog"
	"os"

	"github.com/Cyclone1070/editkit/internal/tool/charset"
	"github.com/Cyclone1070/editkit/internal/tool/directory"
	"github.com/Cyclone1070/editkit/internal/tool/history"
	"github.com/Cyclone1070/editkit/internal/tool/lint"
)

// fileSystem defines the filesystem operations the editor needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}

// encodingResolver picks and remembers per-file encodings.
type encodingResolver interface {
	Resolve(path string) charset.Resolution
	Remember(path string, res charset.Resolution)
	DefaultEncoding() string
}

// historyStore keeps undo checkpoints.
type historyStore interface {
	Push(path, content, encoding string)
	Pop(path string) (history.Snapshot, error)
	Restore(path string, snap history.Snapshot)
}

// directoryLister lists a directory for the view command.
type directoryLister interface {
	List(ctx context.Context, abs string) (*directory.Listing, error)
}

// pathPolicy decides which paths commands may touch.
type pathPolicy interface {
	Check(path string) (string, error)
}

// Options tunes limits and rendering. Zero values select defaults.
type Options struct {
	MaxFileSize         int64
	BinarySampleSize    int
	SnippetContextLines *int
	Logger              *slog.Logger
}

const (
	defaultMaxFileSize  = 10 * 1024 * 1024
	defaultSnippetLines = 4
)

// Editor runs commands against files. It is safe to share across
// goroutines, but concurrent commands on the same file are not coordinated.
type Editor struct {
	fs        fileSystem
	encodings encodingResolver
	history   historyStore
	lister    directoryLister
	paths     pathPolicy
	linter    lint.Linter

	maxFileSize  int64
	sampleSize   int
	contextLines int
	logger       *slog.Logger
}

// NewEditor creates an Editor. linter may be nil to disable linting.
func NewEditor(
	fs fileSystem,
	encodings encodingResolver,
	history historyStore,
	lister directoryLister,
	paths pathPolicy,
	linter lint.Linter,
	opts Options,
) *Editor {
	if fs == nil {
		panic("fs is required")
	}
	if encodings == nil {
		panic("encodings is required")
	}
	if history == nil {
		panic("history is required")
	}
	if lister == nil {
		panic("lister is required")
	}
	if paths == nil {
		panic("paths is required")
	}
	if linter == nil {
		linter = lint.NoOp{}
	}

	e := &Editor{
		fs:           fs,
		encodings:    encodings,
		history:      history,
		lister:       lister,
		paths:        paths,
		linter:       linter,
		maxFileSize:  opts.MaxFileSize,
		sampleSize:   opts.BinarySampleSize,
		contextLines: defaultSnippetLines,
		logger:       opts.Logger,
	}
	if e.maxFileSize <= 0 {
		e.maxFileSize = defaultMaxFileSize
	}
	if opts.SnippetContextLines != nil && *opts.SnippetContextLines >= 0 {
		e.contextLines = *opts.SnippetContextLines
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Execute runs one command and always returns a Result; failures are
// reported in the Result rather than as a Go error.
func (e *Editor) Execute(ctx context.Context, req Request) *Result {
	cmd, err := req.ToCommand()
	if err != nil {
		return failure(req.Command, req.Path, err)
	}

	abs, err := e.paths.Check(cmd.Target())
	if err != nil {
		return failure(cmd.Name(), cmd.Target(), wrapError(cmd.Target(), "Invalid `path` parameter", err))
	}

	enc, err := e.resolveEncoding(cmd, abs, req.Encoding)
	if err != nil {
		return failure(cmd.Name(), abs, err)
	}

	var res *Result
	switch c := cmd.(type) {
	case ViewCommand:
		res, err = e.view(ctx, c, abs, enc.Encoding)
	case CreateCommand:
		res, err = e.create(c, abs, enc.Encoding)
	case ReplaceCommand:
		res, err = e.replace(c, abs, enc)
	case InsertCommand:
		res, err = e.insert(c, abs, enc)
	case UndoCommand:
		res, err = e.undo(abs)
	}
	if err != nil {
		e.logger.Debug("command failed", "command", cmd.Name(), "path", abs, "kind", KindOf(err), "error", err)
		return failure(cmd.Name(), abs, err)
	}

	res.Success = true
	res.Command = cmd.Name()
	res.Path = abs
	if res.Encoding == "" {
		res.Encoding = enc.Encoding
	}
	if name, err := charset.Canonical(res.Encoding); err == nil {
		res.Encoding = name
	}
	if enc.Fallback {
		res.Kind = DetectionFallback
	}

	if req.EnableLinting && mutates(cmd) {
		res.LintOutput = e.lint(ctx, abs)
	}

	e.logger.Debug("command done", "command", cmd.Name(), "path", abs, "encoding", res.Encoding)
	return res
}

// resolveEncoding is the explicit encoding step that runs before dispatch:
// a caller-supplied encoding wins, otherwise the Manager decides. Create
// and undo never consult the Manager.
func (e *Editor) resolveEncoding(cmd Command, abs, explicit string) (charset.Resolution, error) {
	if explicit != "" {
		name, err := charset.Canonical(explicit)
		if err != nil {
			return charset.Resolution{}, wrapError(abs, "Invalid `encoding` parameter", err)
		}
		return charset.Resolution{Encoding: name}, nil
	}

	switch cmd.(type) {
	case CreateCommand:
		return charset.Resolution{Encoding: e.encodings.DefaultEncoding()}, nil
	case UndoCommand:
		return charset.Resolution{}, nil
	}

	if info, err := e.fs.Stat(abs); err == nil && info.IsDir() {
		return charset.Resolution{}, nil
	}
	return e.encodings.Resolve(abs), nil
}

func (e *Editor) lint(ctx context.Context, abs string) string {
	out, err := e.linter.Lint(ctx, abs)
	if err != nil {
		e.logger.Warn("lint failed", "path", abs, "error", err)
		return "Linting could not be completed: " + err.Error()
	}
	return out
}

func mutates(cmd Command) bool {
	switch cmd.(type) {
	case CreateCommand, ReplaceCommand, InsertCommand:
		return true
	}
	return false
}
