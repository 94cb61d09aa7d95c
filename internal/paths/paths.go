package paths

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const (
	// Root used when no --root-path is given, relative to the current directory.
	DefaultRoot = "storage"

	ProjectsDirName  = "projects"
	cacheDirName     = "cache"
	artifactsDirName = "artifacts"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755
)

type Layout struct {
	root string
}

// NewLayout resolves root to an absolute path, expanding a leading "~".
func NewLayout(root string) (Layout, error) {
	if root == "" {
		root = DefaultRoot
	}

	expanded, err := homedir.Expand(root)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "expanding root path %q", root)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "resolving root path %q", root)
	}
	return Layout{root: abs}, nil
}

func (l Layout) Root() string {
	return l.root
}

func (l Layout) ProjectsDir() string {
	return filepath.Join(l.root, ProjectsDirName)
}

// CacheDir is the project's working directory.
func (l Layout) CacheDir(id string) string {
	return filepath.Join(l.root, cacheDirName, id)
}

func (l Layout) ArtifactsDir(id string) string {
	return filepath.Join(l.root, artifactsDirName, id)
}

// EnsureBase creates the projects, cache and artifacts directories.
func (l Layout) EnsureBase() error {
	for _, dir := range []string{
		l.ProjectsDir(),
		filepath.Join(l.root, cacheDirName),
		filepath.Join(l.root, artifactsDirName),
	} {
		if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	return nil
}

// EnsureProject creates the working and artifact directories for a project.
func (l Layout) EnsureProject(id string) error {
	for _, dir := range []string{l.CacheDir(id), l.ArtifactsDir(id)} {
		if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	return nil
}
