package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// The branch cloned when a project doesn't name one.
const DefaultBranch = "main"

// Ids become directory names under cache/ and artifacts/.
var projectIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// A build definition: where the source lives, what the host needs,
// how to build it, and which outputs to keep.
type Project struct {
	ID         string     `json:"id"`
	Repository string     `json:"repository"`
	Branch     string     `json:"branch"`
	Packages   []string   `json:"packages"`
	Steps      []Step     `json:"steps"`
	Artifacts  []Artifact `json:"artifacts"`
}

// A named group of shell commands, run in order in the working directory.
type Step struct {
	Name         string   `json:"name"`
	Commands     []string `json:"commands"`
	IgnoreErrors bool     `json:"ignoreErrors"`
}

// A build output to copy out of the working directory.
type Artifact struct {
	// Destination file name inside the project's artifact directory.
	Name string `json:"name"`

	// Source path, relative to the working directory.
	Path string `json:"path"`
}

// Returns a copy of the project with defaults applied.
func (p Project) WithDefaults() Project {
	if strings.TrimSpace(p.Branch) == "" {
		p.Branch = DefaultBranch
	}
	return p
}

func (p Project) Validate() error {
	if err := ValidateProjectID(p.ID); err != nil {
		return err
	}
	if strings.TrimSpace(p.Repository) == "" {
		return errors.Errorf("project %q: repository is required", p.ID)
	}

	for i, pkg := range p.Packages {
		if pkg == "" || strings.ContainsAny(pkg, " \t\r\n") {
			return errors.Errorf("project %q: package %d: invalid package name %q", p.ID, i+1, pkg)
		}
	}

	for i, a := range p.Artifacts {
		if err := a.validate(); err != nil {
			return errors.Wrapf(err, "project %q: artifact %d", p.ID, i+1)
		}
	}
	return nil
}

func ValidateProjectID(id string) error {
	if id == "" {
		return errors.New("project id is required")
	}
	if id == "." || id == ".." || !projectIDPattern.MatchString(id) {
		return errors.Errorf("project id %q must be a plain directory name (letters, digits, '.', '_', '-')", id)
	}
	return nil
}

func (a Artifact) validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	if a.Name == "." || a.Name == ".." || strings.ContainsAny(a.Name, `/\`) {
		return errors.Errorf("name %q must be a plain file name", a.Name)
	}
	if a.Path == "" {
		return errors.Errorf("artifact %q: path is required", a.Name)
	}
	if filepath.IsAbs(a.Path) || strings.HasPrefix(a.Path, "/") {
		return errors.Errorf("artifact %q: path %q must be relative to the working directory", a.Name, a.Path)
	}
	return nil
}

// Names the step for status lines, falling back to its 1-based index.
func (s Step) Label(index int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", index+1)
}
