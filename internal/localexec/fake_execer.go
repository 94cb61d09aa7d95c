package localexec

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/tilt-dev/buildhelper/pkg/model"
)

type fakeResult struct {
	exitCode int
	err      error
	stdout   []byte
	stderr   []byte
}

// One command seen by a FakeExecer, with what it answered.
type FakeCall struct {
	Cmd      model.Cmd
	ExitCode int
	Error    error
}

func (f FakeCall) String() string {
	return fmt.Sprintf("cmd=%q exitCode=%d err=%v", f.Cmd.String(), f.ExitCode, f.Error)
}

// FakeExecer answers commands from registered results, keyed by
// model.Cmd.String(). Unregistered commands succeed with no output.
type FakeExecer struct {
	t  testing.TB
	mu sync.Mutex

	results map[string]fakeResult
	calls   []FakeCall
}

var _ Execer = &FakeExecer{}

func NewFakeExecer(t testing.TB) *FakeExecer {
	return &FakeExecer{
		t:       t,
		results: make(map[string]fakeResult),
	}
}

func (f *FakeExecer) Run(ctx context.Context, cmd model.Cmd, runIO RunIO) (exitCode int, err error) {
	f.t.Helper()
	defer func() { f.record(FakeCall{Cmd: cmd, ExitCode: exitCode, Error: err}) }()

	if err := ctx.Err(); err != nil {
		return -1, err
	}

	f.mu.Lock()
	r, ok := f.results[cmd.String()]
	f.mu.Unlock()
	if !ok {
		return 0, nil
	}
	if r.err != nil {
		return -1, r.err
	}

	// Written without holding the lock: a pipe writer blocks until its
	// reader consumes the bytes.
	if err := writeOutput(runIO.Stdout, r.stdout, "stdout"); err != nil {
		return -1, err
	}
	if err := writeOutput(runIO.Stderr, r.stderr, "stderr"); err != nil {
		return -1, err
	}
	return r.exitCode, nil
}

func writeOutput(w io.Writer, b []byte, name string) error {
	if w == nil || len(b) == 0 {
		return nil
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing fake %s: %v", name, err)
	}
	return nil
}

func (f *FakeExecer) record(call FakeCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// RegisterCommandError makes cmd fail to start with err.
func (f *FakeExecer) RegisterCommandError(cmd string, err error) {
	f.register(cmd, fakeResult{err: err})
}

// RegisterCommandBytes answers cmd with output used exactly as given, so a
// missing trailing newline stays missing.
func (f *FakeExecer) RegisterCommandBytes(cmd string, exitCode int, stdout []byte, stderr []byte) {
	f.register(cmd, fakeResult{exitCode: exitCode, stdout: stdout, stderr: stderr})
}

// RegisterCommand answers cmd with the given output, newline-terminated.
func (f *FakeExecer) RegisterCommand(cmd string, exitCode int, stdout string, stderr string) {
	f.RegisterCommandBytes(cmd, exitCode, []byte(withNewline(stdout)), []byte(withNewline(stderr)))
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func (f *FakeExecer) register(cmd string, r fakeResult) {
	f.t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[cmd] = r
}

func (f *FakeExecer) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall{}, f.calls...)
}

// Commands returns the string form of every command run so far, in order.
func (f *FakeExecer) Commands() []string {
	calls := f.Calls()
	result := make([]string, len(calls))
	for i, c := range calls {
		result[i] = c.Cmd.String()
	}
	return result
}
