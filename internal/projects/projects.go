// Package projects reads project definitions from disk.
package projects

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/tilt-dev/buildhelper/pkg/logger"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Matches encoding/json, including case-insensitive keys, so that
// "Id" and "id" both work.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatForPath picks the format from the file extension. Anything that
// isn't .yaml/.yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func isProjectFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Parse decodes a project, applies defaults and validates it.
func Parse(data []byte, format Format) (model.Project, error) {
	if format == FormatYAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return model.Project{}, errors.Wrap(err, "parsing YAML")
		}
		data = converted
	}

	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, errors.Wrap(err, "parsing JSON")
	}

	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// Encode writes the project as indented JSON.
func Encode(p model.Project) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

func Load(path string) (model.Project, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return model.Project{}, errors.Wrap(err, "reading project file")
	}

	p, err := Parse(data, FormatForPath(path))
	if err != nil {
		return model.Project{}, errors.Wrapf(err, "loading project %s", path)
	}
	return p, nil
}

// Scan loads every project file directly inside dir, sorted by file name.
//
// Files that can't be loaded, and files that repeat an id already seen,
// are skipped with a warning. A missing dir yields no projects.
func Scan(ctx context.Context, dir string) ([]model.Project, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing projects")
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	l := logger.Get(ctx)
	seen := make(map[string]string)
	var result []model.Project
	for _, entry := range entries {
		if entry.IsDir() || !isProjectFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		p, err := Load(path)
		if err != nil {
			l.Warnf("Skipping %s: %v", entry.Name(), err)
			continue
		}

		if first, ok := seen[p.ID]; ok {
			l.Warnf("Skipping %s: project id %q is already defined in %s", entry.Name(), p.ID, first)
			continue
		}
		seen[p.ID] = entry.Name()
		result = append(result, p)
	}
	return result, nil
}

// IDs returns the ids of the given projects, in order.
func IDs(ps []model.Project) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
