// Package localexec provides constructs for uniform execution of local processes,
// specifically conversion from model.Cmd to exec.Cmd, and streaming of their
// output line by line.
package localexec

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/tilt-dev/buildhelper/pkg/logger"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

// Common environment for local exec commands.
type Env struct {
	pairs   []kvPair
	environ func() []string
}

func EmptyEnv() *Env {
	return &Env{
		environ: os.Environ,
	}
}

func DefaultEnv() *Env {
	e := EmptyEnv()

	// Build commands run without a terminal on stdin. Make git fail on a
	// credential prompt instead of waiting on /dev/tty forever.
	e.Add("GIT_TERMINAL_PROMPT", "0")

	return e
}

func (e *Env) Add(k, v string) {
	e.pairs = append(e.pairs, kvPair{Key: k, Value: v})
}

// ExecCmd creates a stdlib exec.Cmd instance suitable for execution by the build runner.
//
// The resulting command will inherit the parent process environment, then
// have logger-derived entries, Env-level defaults, and finally command
// specific environment overrides applied.
//
// The returned exec.Cmd is NOT associated with any context; the caller
// owns cancellation.
func (e *Env) ExecCmd(cmd model.Cmd, l logger.Logger) (*exec.Cmd, error) {
	if len(cmd.Argv) == 0 {
		return nil, errors.New("empty cmd")
	}
	c := exec.Command(cmd.Argv[0], cmd.Argv[1:]...)
	e.populateExecCmd(c, cmd, l)
	return c, nil
}

func (e *Env) populateExecCmd(c *exec.Cmd, cmd model.Cmd, l logger.Logger) {
	c.Dir = cmd.Dir
	// env precedence: parent process -> logger -> env defaults -> command
	// dupes are left for Go stdlib to handle (API guarantees last wins)
	execEnv := e.environ()

	execEnv = logger.PrepareEnv(l, execEnv)
	for _, kv := range e.pairs {
		execEnv = addEnvIfNotPresent(execEnv, kv.Key, kv.Value)
	}

	execEnv = append(execEnv, cmd.Env...)
	c.Env = execEnv
}

type kvPair struct {
	Key   string
	Value string
}

func addEnvIfNotPresent(env []string, key, value string) []string {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return env
		}
	}

	return append(env, key+"="+value)
}
