package lint

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

const gracefulShutdown = 500 * time.Millisecond

// runResult represents the outcome of a command execution.
type runResult struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// runner executes external commands with a timeout and bounded output.
type runner struct {
	maxOutput  int
	sampleSize int
}

// run executes command in dir. The context kills the process; the timeout
// first interrupts it and kills it only if it does not exit in time.
func (r *runner) run(ctx context.Context, command []string, dir string, timeout time.Duration) (*runResult, error) {
	if len(command) == 0 {
		return nil, ErrNoCommand
	}

	// We don't use CommandContext here because we want graceful shutdown on timeout
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Stdin = nil
	isolate(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Stage: "start", Cause: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Stage: "start", Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Stage: "start", Cause: err}
	}

	// Collect output concurrently so it doesn't block the timeout select
	var stdout, stderr string
	var truncated bool
	collectDone := make(chan struct{})
	go func() {
		stdout, stderr, truncated = r.collectOutput(stdoutPipe, stderrPipe)
		close(collectDone)
	}()

	done := make(chan error, 1)
	go func() {
		<-collectDone
		done <- cmd.Wait()
	}()

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		signalGroup(cmd, os.Kill)
		<-done
		execErr = ctx.Err()
	case <-time.After(timeout):
		signalGroup(cmd, os.Interrupt)
		select {
		case <-done:
		case <-time.After(gracefulShutdown):
			signalGroup(cmd, os.Kill)
			<-done
		}
		execErr = ErrTimeout
	}

	exitCode := 0
	if execErr != nil {
		exitCode = exitCodeOf(execErr)
	}

	return &runResult{
		Stdout:    stdout,
		Stderr:    stderr,
		ExitCode:  exitCode,
		Truncated: truncated,
	}, execErr
}

func (r *runner) collectOutput(stdout, stderr io.Reader) (string, string, bool) {
	stdoutCollector := newCollector(r.maxOutput, r.sampleSize)
	stderrCollector := newCollector(r.maxOutput, r.sampleSize)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stdoutCollector, stdout)
	}()

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stderrCollector, stderr)
	}()

	wg.Wait()

	truncated := stdoutCollector.Truncated() || stderrCollector.Truncated()
	return stdoutCollector.String(), stderrCollector.String(), truncated
}

func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
