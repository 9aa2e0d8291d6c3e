// Package lint runs an external checker over a file after it was edited.
package lint

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// PathPlaceholder in a lint argv is replaced with the edited file's path.
const PathPlaceholder = "{path}"

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxOutput = 64 * 1024
	binarySampleSize = 8000
)

// Linter inspects a file and returns human-readable findings.
// An empty string means nothing to report.
type Linter interface {
	Lint(ctx context.Context, path string) (string, error)
}

// NoOp is a Linter that never reports anything.
type NoOp struct{}

// Lint always returns no findings.
func (NoOp) Lint(context.Context, string) (string, error) {
	return "", nil
}

// CommandLinter runs a configured command, such as a language linter, in
// the file's directory. A non-zero exit with output is treated as findings,
// not as an error.
type CommandLinter struct {
	argv    []string
	timeout time.Duration
	runner  *runner
}

// NewCommandLinter creates a CommandLinter. Every "{path}" argument is
// replaced by the file path; without one the path is appended.
func NewCommandLinter(argv []string, timeout time.Duration, maxOutput int) *CommandLinter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxOutput <= 0 {
		maxOutput = defaultMaxOutput
	}
	return &CommandLinter{
		argv:    append([]string(nil), argv...),
		timeout: timeout,
		runner:  &runner{maxOutput: maxOutput, sampleSize: binarySampleSize},
	}
}

// Lint runs the command against path.
func (l *CommandLinter) Lint(ctx context.Context, path string) (string, error) {
	if len(l.argv) == 0 {
		return "", ErrNoCommand
	}

	res, err := l.runner.run(ctx, l.command(path), filepath.Dir(path), l.timeout)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) || errors.Is(err, ErrTimeout) || ctx.Err() != nil {
			return "", err
		}
		// non-zero exit: findings are in the output
	}

	out := strings.TrimSpace(strings.Join(nonEmpty(res.Stdout, res.Stderr), "\n"))
	if out == "" && res.ExitCode != 0 {
		return "", err
	}
	if res.Truncated {
		out += "\n[output truncated]"
	}
	return out, nil
}

func (l *CommandLinter) command(path string) []string {
	cmd := make([]string, 0, len(l.argv)+1)
	substituted := false
	for _, arg := range l.argv {
		if strings.Contains(arg, PathPlaceholder) {
			arg = strings.ReplaceAll(arg, PathPlaceholder, path)
			substituted = true
		}
		cmd = append(cmd, arg)
	}
	if !substituted {
		cmd = append(cmd, path)
	}
	return cmd
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
