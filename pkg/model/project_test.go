package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProject() Project {
	return Project{
		ID:         "demo",
		Repository: "https://example/repo.git",
		Branch:     "main",
		Packages:   []string{"curl"},
		Steps: []Step{
			{Name: "build", Commands: []string{"echo hi"}},
		},
		Artifacts: []Artifact{
			{Name: "out.bin", Path: "build/out.bin"},
		},
	}
}

func TestValidateAcceptsValidProject(t *testing.T) {
	require.NoError(t, validProject().Validate())
}

func TestValidateProjectID(t *testing.T) {
	for _, id := range []string{"app", "my-app", "my_app.v2", "A1"} {
		assert.NoError(t, ValidateProjectID(id), id)
	}

	for _, id := range []string{"", ".", "..", "../x", "a/b", `a\b`, "-flag", "has space", ".hidden"} {
		assert.Error(t, ValidateProjectID(id), id)
	}
}

func TestValidateRequiresRepository(t *testing.T) {
	p := validProject()
	p.Repository = " "
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository is required")
}

func TestValidateRejectsBadPackageNames(t *testing.T) {
	p := validProject()
	p.Packages = []string{"curl", "git; rm -rf /"}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package 2")
}

func TestValidateArtifacts(t *testing.T) {
	cases := []struct {
		name     string
		artifact Artifact
		want     string
	}{
		{"empty name", Artifact{Path: "x"}, "name is required"},
		{"nested name", Artifact{Name: "bin/out", Path: "x"}, "plain file name"},
		{"dotdot name", Artifact{Name: "..", Path: "x"}, "plain file name"},
		{"empty path", Artifact{Name: "out"}, "path is required"},
		{"absolute path", Artifact{Name: "out", Path: "/etc/passwd"}, "must be relative"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := validProject()
			p.Artifacts = []Artifact{c.artifact}
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
			assert.Contains(t, err.Error(), "artifact 1")
		})
	}
}

func TestWithDefaultsAppliesBranch(t *testing.T) {
	p := validProject()
	p.Branch = ""
	assert.Equal(t, DefaultBranch, p.WithDefaults().Branch)
	assert.Equal(t, "", p.Branch)

	p.Branch = "develop"
	assert.Equal(t, "develop", p.WithDefaults().Branch)
}

func TestStepLabel(t *testing.T) {
	assert.Equal(t, "build", Step{Name: "build"}.Label(0))
	assert.Equal(t, "#3", Step{}.Label(2))
}
