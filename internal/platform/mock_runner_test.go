package platform

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

// mockRunCall records a single Run invocation.
type mockRunCall struct {
	Timeout time.Duration
	Name    string
	Args    []string
}

func (c mockRunCall) line() string {
	return commandLine(c.Name, c.Args)
}

// mockRunner is a test double for Runner. Calls are answered by handler,
// or by an empty successful Result when handler is nil.
type mockRunner struct {
	mu      sync.Mutex
	calls   []mockRunCall
	handler func(name string, args []string) (Result, error)
}

func (m *mockRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, mockRunCall{Timeout: timeout, Name: name, Args: slices.Clone(args)})
	handler := m.handler
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if handler == nil {
		return Result{}, nil
	}
	return handler(name, args)
}

// allCalls returns all recorded Run calls.
func (m *mockRunner) allCalls() []mockRunCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mockRunCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// callsTo returns the calls whose argument vector starts with prefix.
func (m *mockRunner) callsTo(prefix ...string) []mockRunCall {
	var out []mockRunCall
	for _, c := range m.allCalls() {
		if len(c.Args) >= len(prefix) && slices.Equal(c.Args[:len(prefix)], prefix) {
			out = append(out, c)
		}
	}
	return out
}

// mockLinks is a test double for linkManager.
type mockLinks struct {
	mu        sync.Mutex
	present   map[string]bool
	existsErr error
	deleteErr error
	deleted   []string
}

func (m *mockLinks) Exists(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.present[name], nil
}

func (m *mockLinks) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, name)
	delete(m.present, name)
	return nil
}

// fakeLocator resolves the named binaries from tools and reports everything
// else as missing from PATH. stat is the real filesystem.
func fakeLocator(tools map[string]string) locator {
	return locator{
		lookPath: func(file string) (string, error) {
			if p, ok := tools[file]; ok {
				return p, nil
			}
			return "", errors.New("executable file not found in $PATH")
		},
		stat: os.Stat,
	}
}

// installedTools is a locator state where both tools are on PATH.
var installedTools = map[string]string{
	wgQuickBinary: "/usr/bin/wg-quick",
	wgBinary:      "/usr/bin/wg",
}

// newTestEngine returns an engine with no search dirs, an isolated temp and
// config dir, and the given runner and tools.
func newTestEngine(t *testing.T, runner Runner, tools map[string]string) *engine {
	t.Helper()
	e := newEngine("test", Config{TempDir: t.TempDir()}, discardLogger(), nil, []string{t.TempDir()})
	e.runner = runner
	e.loc = fakeLocator(tools)
	e.privileged = func() bool { return true }
	return e
}

// wgShow answers `wg show interfaces` with ifaces and `wg show <x> dump`
// with a non-empty dump for every listed interface.
func wgShow(ifaces ...string) func(name string, args []string) (Result, error) {
	return func(name string, args []string) (Result, error) {
		if !strings.HasSuffix(name, wgBinary) || len(args) < 2 || args[0] != "show" {
			return Result{}, nil
		}
		if args[1] == "interfaces" {
			return Result{Stdout: strings.Join(ifaces, " ") + "\n"}, nil
		}
		if slices.Contains(ifaces, args[1]) {
			return Result{Stdout: sampleDump}, nil
		}
		return Result{ExitCode: 1, Stderr: "Unable to access interface: No such device\n"}, nil
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}
