// Package git builds the git commands that sync a project's working directory.
package git

import (
	"path/filepath"

	"github.com/tilt-dev/buildhelper/internal/ospath"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

// The package that provides the git binary on every supported package manager.
const PackageName = "git"

// IsRepo reports whether dir already holds a checkout. A .git file counts
// too, since worktrees and submodules use one.
func IsRepo(dir string) bool {
	return ospath.Exists(filepath.Join(dir, ".git"))
}

// CloneCmd clones branch of repo into dir itself, which must be empty.
func CloneCmd(repo, branch, dir string) model.Cmd {
	return model.Cmd{
		Argv: []string{"git", "clone", "--branch", branch, repo, "."},
		Dir:  dir,
	}
}

// PullCmd updates the checkout in dir from its upstream.
func PullCmd(dir string) model.Cmd {
	return model.Cmd{
		Argv: []string{"git", "pull"},
		Dir:  dir,
	}
}
