//go:build !windows
// +build !windows

package procutil

import (
	"os/exec"
	"syscall"
)

func setOptNewProcessGroup(attrs *syscall.SysProcAttr) {
	attrs.Setpgid = true
}

func killProcessGroup(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}

	// A negative pid signals every process in the group.
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
