// Package procutil manages the process groups of build commands, so that
// a cancelled build takes its whole subprocess tree down with it.
package procutil

import (
	"os/exec"
	"syscall"
)

// Put the command in its own process group, so it can be
// killed along with any children it spawns.
func SetOptNewProcessGroup(attrs *syscall.SysProcAttr) {
	setOptNewProcessGroup(attrs)
}

// Kill the process group of the given (started) command.
func KillProcessGroup(cmd *exec.Cmd) {
	killProcessGroup(cmd)
}
