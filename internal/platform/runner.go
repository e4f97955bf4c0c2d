package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelayAfterKill is the grace period for a process to exit after its
// timeout fires before it is forcibly killed.
const waitDelayAfterKill = 500 * time.Millisecond

// truncationSuffix is appended to output that exceeded the capture limit.
const truncationSuffix = "\n...[truncated]"

// ErrTimeout is returned by Runner when a subprocess hit its hard timeout.
var ErrTimeout = errors.New("subprocess timed out")

// Result is the captured outcome of a subprocess that ran to completion.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner launches subprocesses. A non-zero exit is reported through
// Result.ExitCode with a nil error; the error is reserved for processes that
// could not be started or were killed by the timeout.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error)
}

// execRunner implements Runner with os/exec.
type execRunner struct {
	maxOutput int64
}

func newExecRunner(maxOutput int64) *execRunner {
	return &execRunner{maxOutput: maxOutput}
}

// Run executes name with args as a discrete argument vector; no shell is
// involved. Cancelling ctx prevents a launch but does not reach a process
// that is already running: only the timeout kills it.
func (r *execRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.WaitDelay = waitDelayAfterKill

	stdoutW := newLimitedWriter(r.maxOutput)
	stderrW := newLimitedWriter(r.maxOutput)
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	runErr := cmd.Run()

	res := Result{
		Stdout: collectOutput(stdoutW),
		Stderr: collectOutput(stderrW),
	}
	if runErr == nil {
		return res, nil
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		return res, fmt.Errorf("%s: %w after %s", commandLine(name, args), ErrTimeout, timeout)
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, fmt.Errorf("%s: %w", commandLine(name, args), runErr)
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// limitedWriter is an io.Writer that discards bytes beyond a maximum limit,
// so a misbehaving tool cannot grow memory without bound.
type limitedWriter struct {
	buf     []byte
	max     int64
	dropped bool
}

func newLimitedWriter(max int64) *limitedWriter {
	return &limitedWriter{max: max}
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	n := int64(len(p))
	if remaining := w.max - int64(len(w.buf)); n > remaining {
		n = max(remaining, 0)
		w.dropped = true
	}
	w.buf = append(w.buf, p[:n]...)
	// Always report all bytes as written so the command doesn't stall.
	return len(p), nil
}

func (w *limitedWriter) String() string {
	return string(w.buf)
}

// truncated reports whether any output was discarded.
func (w *limitedWriter) truncated() bool {
	return w.dropped
}

func collectOutput(w *limitedWriter) string {
	if w.truncated() {
		return w.String() + truncationSuffix
	}
	return w.String()
}
