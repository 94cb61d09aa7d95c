// Package pkgmgr turns "install this package" into the right command for the
// host's OS package manager.
package pkgmgr

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/tilt-dev/buildhelper/internal/sliceutils"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

type Manager string

const (
	AptGet Manager = "apt-get"
	Apk    Manager = "apk"
	Dnf    Manager = "dnf"
	Yum    Manager = "yum"
	Pacman Manager = "pacman"
	Brew   Manager = "brew"

	// Skips package installation, for hosts that are provisioned some other way.
	None Manager = "none"
)

const Default = AptGet

var installArgs = map[Manager][]string{
	AptGet: {"apt-get", "install", "-y"},
	Apk:    {"apk", "add", "--no-cache"},
	Dnf:    {"dnf", "install", "-y"},
	Yum:    {"yum", "install", "-y"},
	Pacman: {"pacman", "-S", "--noconfirm", "--needed"},
	Brew:   {"brew", "install"},
}

// Keeps package managers from stopping to ask questions.
var installEnv = map[Manager][]string{
	AptGet: {"DEBIAN_FRONTEND=noninteractive"},
	Brew:   {"HOMEBREW_NO_AUTO_UPDATE=1"},
}

func Parse(name string) (Manager, error) {
	m := Manager(strings.TrimSpace(name))
	if m == "" {
		return Default, nil
	}
	if m == None {
		return m, nil
	}
	if _, ok := installArgs[m]; !ok {
		return "", errors.Errorf("unknown package manager %q (expected one of: %s)", name, sliceutils.QuotedStringList(Names()))
	}
	return m, nil
}

// Names lists the accepted package manager names, sorted.
func Names() []string {
	names := []string{string(None)}
	for m := range installArgs {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}

func (m Manager) String() string {
	return string(m)
}

// Enabled is false for None.
func (m Manager) Enabled() bool {
	return m != None
}

// InstallCmd returns the non-interactive command that installs pkg, run from dir.
func (m Manager) InstallCmd(pkg, dir string) model.Cmd {
	args, ok := installArgs[m]
	if !ok {
		return model.Cmd{}
	}

	argv := append(append([]string{}, args...), pkg)
	return model.Cmd{
		Argv: argv,
		Dir:  dir,
		Env:  append([]string{}, installEnv[m]...),
	}
}
