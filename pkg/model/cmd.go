package model

import (
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"
)

// A process to run on the host, with its working directory and any
// environment to add on top of the inherited one.
type Cmd struct {
	Argv []string
	Dir  string
	Env  []string
}

func (c Cmd) IsShellStandardForm() bool {
	return len(c.Argv) == 3 && c.Argv[0] == "sh" && c.Argv[1] == "-c" && !strings.Contains(c.Argv[2], "\n")
}

func (c Cmd) IsWindowsStandardForm() bool {
	return len(c.Argv) == 4 && c.Argv[0] == "cmd" && c.Argv[1] == "/S" && c.Argv[2] == "/C"
}

func ArgListToString(args []string) string {
	return Cmd{Argv: args}.String()
}

func (c Cmd) String() string {
	if c.IsShellStandardForm() {
		return c.Argv[2]
	}

	if c.IsWindowsStandardForm() {
		return c.Argv[3]
	}

	return shellquote.Join(c.Argv...)
}

func (c Cmd) Empty() bool {
	return len(c.Argv) == 0
}

// Create a shell command for running on the Host OS
func ToHostCmd(cmd string) Cmd {
	if cmd == "" {
		return Cmd{}
	}
	if runtime.GOOS == "windows" {
		return ToBatCmd(cmd)
	}
	return ToUnixCmd(cmd)
}

func ToHostCmdInDir(cmd string, dir string) Cmd {
	c := ToHostCmd(cmd)
	c.Dir = dir
	return c
}

// NOTE: cmd /S /C does not handle multi-line strings correctly.
// It will execute the first line, then exit.
// The TrimSpace ensures we at least execute the first non-empty line.
func ToBatCmd(cmd string) Cmd {
	if cmd == "" {
		return Cmd{}
	}
	return Cmd{Argv: []string{"cmd", "/S", "/C", strings.TrimSpace(cmd)}}
}

func ToUnixCmd(cmd string) Cmd {
	if cmd == "" {
		return Cmd{}
	}

	// trim spurious spaces and execute them in shell.
	return Cmd{Argv: []string{"sh", "-c", strings.TrimSpace(cmd)}}
}
