package editor

import (
	"log/slog"
	"time"

	"github.com/Cyclone1070/editkit/internal/config"
	"github.com/Cyclone1070/editkit/internal/tool/charset"
	"github.com/Cyclone1070/editkit/internal/tool/directory"
	"github.com/Cyclone1070/editkit/internal/tool/fsutil"
	"github.com/Cyclone1070/editkit/internal/tool/gitutil"
	"github.com/Cyclone1070/editkit/internal/tool/history"
	"github.com/Cyclone1070/editkit/internal/tool/lint"
	"github.com/Cyclone1070/editkit/internal/tool/pathutil"
)

// NewFromConfig wires an Editor backed by the local filesystem.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Editor, error) {
	if cfg == nil {
		panic("cfg is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec := cfg.Editor

	if ec.WorkspaceRoot != "" {
		if _, err := pathutil.CanonicaliseRoot(ec.WorkspaceRoot); err != nil {
			return nil, err
		}
	}

	fs := fsutil.NewOSFileSystem()
	encodings := charset.NewManager(fs, charset.NewChardetDetector(), charset.Options{
		DefaultEncoding:     ec.DefaultEncoding,
		ConfidenceThreshold: ec.ConfidenceThreshold,
		CacheSize:           ec.EncodingCacheSize,
		Logger:              logger,
	})

	boundary := ec.WorkspaceRoot
	lister := directory.NewLister(fs, func(dir string) (directory.IgnoreMatcher, error) {
		m, err := gitutil.NewIgnoreMatcher(fs, dir, boundary)
		if err != nil {
			return nil, err
		}
		return m, nil
	}, ec.MaxDirectoryEntries)

	var linter lint.Linter = lint.NoOp{}
	if len(ec.LintCommand) > 0 {
		linter = lint.NewCommandLinter(ec.LintCommand, time.Duration(ec.LintTimeoutSec)*time.Second, int(ec.MaxLintOutputSize))
	}

	contextLines := ec.SnippetContextLines
	return NewEditor(
		fs,
		encodings,
		history.NewStore(ec.MaxHistoryPerFile),
		lister,
		pathutil.NewPolicy(ec.WorkspaceRoot),
		linter,
		Options{
			MaxFileSize:         ec.MaxFileSize,
			BinarySampleSize:    ec.BinarySampleSize,
			SnippetContextLines: &contextLines,
			Logger:              logger,
		},
	), nil
}
