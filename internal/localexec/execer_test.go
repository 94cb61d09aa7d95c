package localexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilt-dev/buildhelper/internal/testutils"
	"github.com/tilt-dev/buildhelper/internal/testutils/bufsync"
	"github.com/tilt-dev/buildhelper/internal/testutils/tempdir"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

func TestProcessExecer_Run(t *testing.T) {
	ctx, cancel := context.WithTimeout(testutils.CtxForTest(), 5*time.Second)
	defer cancel()

	// this works across both cmd.exe + sh
	script := `echo hello from stdout && echo hello from stderr 1>&2`

	execer := NewProcessExecer(EmptyEnv())

	code, stdout, stderr := runCaptured(t, ctx, execer, model.ToHostCmd(script))

	assert.Equal(t, 0, code)
	// trim space to not deal with line-ending/whitespace differences between cmd.exe/sh
	assert.Equal(t, "hello from stdout", strings.TrimSpace(stdout))
	assert.Equal(t, "hello from stderr", strings.TrimSpace(stderr))
}

func TestProcessExecer_RunInDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses sh")
	}

	f := tempdir.NewTempDirFixture(t)
	defer f.TearDown()
	f.WriteFile("marker.txt", "here")

	ctx := testutils.CtxForTest()
	_, stdout, _ := runCaptured(t, ctx, NewProcessExecer(EmptyEnv()), model.ToHostCmdInDir("cat marker.txt", f.Path()))
	assert.Equal(t, "here", stdout)
}

func TestProcessExecer_Env(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses sh")
	}

	ctx := testutils.CtxForTest()
	cmd := model.ToUnixCmd(`echo "$GIT_TERMINAL_PROMPT $EXTRA"`)
	cmd.Env = []string{"EXTRA=yes"}

	_, stdout, _ := runCaptured(t, ctx, NewProcessExecer(DefaultEnv()), cmd)
	assert.Equal(t, "0 yes", strings.TrimSpace(stdout))
}

func TestProcessExecer_EmptyCmd(t *testing.T) {
	_, err := NewProcessExecer(EmptyEnv()).Run(testutils.CtxForTest(), model.Cmd{}, RunIO{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty cmd")
}

func TestProcessExecer_Run_ProcessGroup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
	if runtime.GOOS == "windows" {
		t.Skip("test not supported on Windows")
	}

	ctx, cancel := context.WithTimeout(testutils.CtxForTest(), 5*time.Second)
	defer cancel()

	script := `sleep 60 & echo $!`

	// to speed up test execution, as soon as we see the PID written to stdout, cancel the context
	// to trigger process termination
	var childPid int
	stdoutBuf := bufsync.NewThreadSafeBuffer()
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			output := strings.TrimSpace(stdoutBuf.String())
			if output != "" {
				var err error
				childPid, err = strconv.Atoi(output)
				if err == nil {
					cancel()
					return
				}
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	execer := NewProcessExecer(EmptyEnv())
	exitCode, err := execer.Run(ctx, model.ToUnixCmd(script), RunIO{Stdout: stdoutBuf})

	require.NoError(t, err)
	assert.Equal(t, ExitCodeKilled, exitCode)

	if assert.NotZero(t, childPid, "Process did not write child PID to stdout") {
		// os.FindProcess is a no-op on Unix-like systems and always succeeds; signal 0 checks whether it still exists
		proc, _ := os.FindProcess(childPid)
		childProcStopped := assert.Eventually(t, func() bool {
			err = proc.Signal(syscall.Signal(0))
			return errors.Is(err, os.ErrProcessDone)
		}, time.Second, 50*time.Millisecond, "Child process was still running")
		if !childProcStopped {
			_ = proc.Kill()
		}
	}
}

func TestProcessExecer_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses sh")
	}

	code, _, _ := runCaptured(t, testutils.CtxForTest(), NewProcessExecer(EmptyEnv()), model.ToUnixCmd("exit 3"))
	assert.Equal(t, 3, code)
}

func TestProcessExecer_StartFailure(t *testing.T) {
	code, err := NewProcessExecer(EmptyEnv()).Run(testutils.CtxForTest(),
		model.Cmd{Argv: []string{"buildhelper-no-such-binary"}}, RunIO{})
	require.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestFakeExecerRecordsCalls(t *testing.T) {
	ctx := testutils.CtxForTest()
	execer := NewFakeExecer(t)
	execer.RegisterCommand("false", 1, "", "")

	_, err := execer.Run(ctx, model.ToUnixCmd("true"), RunIO{})
	require.NoError(t, err)
	code, err := execer.Run(ctx, model.ToUnixCmd("false"), RunIO{})
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	assert.Equal(t, []string{"true", "false"}, execer.Commands())
	assert.Equal(t, 1, execer.Calls()[1].ExitCode)
}

func TestFakeExecerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testutils.CtxForTest())
	cancel()

	execer := NewFakeExecer(t)
	_, err := execer.Run(ctx, model.ToUnixCmd("true"), RunIO{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFakeExecerOutput(t *testing.T) {
	execer := NewFakeExecer(t)
	execer.RegisterCommand("make", 0, "built", "")
	execer.RegisterCommandBytes("printf x", 0, []byte("x"), nil)

	_, stdout, _ := runCaptured(t, testutils.CtxForTest(), execer, model.ToUnixCmd("make"))
	assert.Equal(t, "built\n", stdout)

	_, stdout, _ = runCaptured(t, testutils.CtxForTest(), execer, model.ToUnixCmd("printf x"))
	assert.Equal(t, "x", stdout)
}

func runCaptured(t *testing.T, ctx context.Context, execer Execer, cmd model.Cmd) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code, err := execer.Run(ctx, cmd, RunIO{Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)
	return code, stdout.String(), stderr.String()
}
