package localexec

import (
	"context"
	"io"
	"os/exec"
	"sync"
	"syscall"

	"github.com/tilt-dev/buildhelper/pkg/logger"
	"github.com/tilt-dev/buildhelper/pkg/model"
	"github.com/tilt-dev/buildhelper/pkg/procutil"
)

// Exit code reported for a command killed because its context ended.
const ExitCodeKilled = 137

// Where a process reads and writes. Nil fields are left unconnected.
type RunIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type Execer interface {
	// Run starts cmd and blocks until it exits, returning its exit code.
	// The error is only for commands that could not be run at all.
	//
	// Ending ctx kills the command.
	Run(ctx context.Context, cmd model.Cmd, runIO RunIO) (int, error)
}

// Runs commands as host processes, each in its own process group so that
// cancellation also stops anything the command started in the background.
type ProcessExecer struct {
	env *Env
}

var _ Execer = &ProcessExecer{}

func NewProcessExecer(env *Env) *ProcessExecer {
	return &ProcessExecer{env: env}
}

func (p ProcessExecer) Run(ctx context.Context, cmd model.Cmd, runIO RunIO) (int, error) {
	c, err := p.env.ExecCmd(cmd, logger.Get(ctx))
	if err != nil {
		return -1, err
	}

	c.SysProcAttr = &syscall.SysProcAttr{}
	procutil.SetOptNewProcessGroup(c.SysProcAttr)
	c.Stdin = runIO.Stdin
	c.Stdout = runIO.Stdout
	c.Stderr = runIO.Stderr

	if err := c.Start(); err != nil {
		return -1, err
	}

	var mu sync.Mutex
	killed := false
	exited := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			mu.Lock()
			killed = true
			mu.Unlock()
			procutil.KillProcessGroup(c)
		case <-exited:
		}
	}()

	// Wait also drains the process output into runIO.
	err = c.Wait()
	close(exited)

	mu.Lock()
	defer mu.Unlock()
	if killed {
		// The shell may exit 0 once its children are gone, so report the kill.
		return ExitCodeKilled, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	} else if err != nil {
		return -1, err
	}
	return 0, nil
}
