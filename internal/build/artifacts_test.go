package build

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilt-dev/buildhelper/internal/pkgmgr"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

func TestDemoProjectFailsOnMissingArtifact(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.AptGet)
	defer f.TearDown()

	err := f.run(model.Project{
		ID:         "demo",
		Repository: "https://example/repo.git",
		Branch:     "main",
		Packages:   []string{"curl"},
		Steps:      []model.Step{{Name: "build", Commands: []string{"echo hi"}}},
		Artifacts:  []model.Artifact{{Name: "out.bin", Path: "build/out.bin"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
	assert.Contains(t, err.Error(), "artifact not found")

	assert.Equal(t, []string{
		"apt-get install -y git",
		"apt-get install -y curl",
		"git clone --branch main https://example/repo.git .",
		"echo hi",
	}, f.execer.Commands())
	assert.True(t, f.isDir("cache/demo"))
	assert.False(t, f.exists("artifacts/demo/out.bin"))
	assert.Contains(t, f.out.String(), "An error occurred while collecting artifact 'out.bin'")
}

func TestMissingArtifactStopsCollection(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.WriteFile("cache/app/first.txt", "first")
	f.tdf.WriteFile("cache/app/third.txt", "third")

	err := f.run(model.Project{
		ID:         "app",
		Repository: testRepo,
		Artifacts: []model.Artifact{
			{Name: "first.txt", Path: "first.txt"},
			{Name: "second.txt", Path: "second.txt"},
			{Name: "third.txt", Path: "third.txt"},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
	assert.Equal(t, []string{"first.txt"}, f.listArtifacts("app"))
}

func TestArtifactsLandInProjectFolder(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.WriteFile("cache/app/build/out.bin", "binary")
	f.tdf.WriteFile("cache/app/docs/README", "readme")

	err := f.run(model.Project{
		ID:         "app",
		Repository: testRepo,
		Artifacts: []model.Artifact{
			{Name: "app.bin", Path: "build/out.bin"},
			{Name: "README", Path: "docs/README"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"README", "app.bin"}, f.listArtifacts("app"))
	assert.Equal(t, "binary", f.tdf.ReadFile("artifacts/app/app.bin"))
	assert.False(t, f.exists("artifacts/app.bin"))
	assert.Contains(t, f.out.String(), "Collecting artifact 'README' (2/2)")
	assert.Contains(t, f.out.String(), "Collected artifacts/app/app.bin")
}

func TestArtifactDirectoryIsNotFound(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.MkdirAll("cache/app/build")

	err := f.run(model.Project{
		ID:         "app",
		Repository: testRepo,
		Artifacts:  []model.Artifact{{Name: "build", Path: "build"}},
	})
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
}

func TestArtifactOutsideWorkdir(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.WriteFile("cache/other/secret", "secret")

	err := f.run(model.Project{
		ID:         "app",
		Repository: testRepo,
		Artifacts:  []model.Artifact{{Name: "secret", Path: "../other/secret"}},
	})
	assert.True(t, errors.Is(err, ErrArtifactOutsideWorkdir))
	assert.False(t, f.exists("artifacts/app/secret"))
}

func TestArtifactSymlinkOutsideWorkdir(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.WriteFile("secret", "secret")
	f.tdf.MkdirAll("cache/app")
	require.NoError(t, os.Symlink(f.tdf.JoinPath("secret"), f.tdf.JoinPath("cache/app/link")))

	err := f.run(model.Project{
		ID:         "app",
		Repository: testRepo,
		Artifacts:  []model.Artifact{{Name: "secret", Path: "link"}},
	})
	assert.True(t, errors.Is(err, ErrArtifactOutsideWorkdir))
	assert.False(t, f.exists("artifacts/app/secret"))
}

func TestArtifactReplacesPreviousCopy(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.WriteFile("artifacts/app/out.bin", "old build with a longer body")
	f.tdf.WriteFile("cache/app/out.bin", "new")

	err := f.run(model.Project{
		ID:         "app",
		Repository: testRepo,
		Artifacts:  []model.Artifact{{Name: "out.bin", Path: "out.bin"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", f.tdf.ReadFile("artifacts/app/out.bin"))
}

func TestCopyFileKeepsMode(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.WriteFile("src.sh", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(f.tdf.JoinPath("src.sh"), 0750))
	f.tdf.WriteFile("dest.sh", "")
	require.NoError(t, os.Chmod(f.tdf.JoinPath("dest.sh"), 0600))

	require.NoError(t, copyFile(f.tdf.JoinPath("src.sh"), f.tdf.JoinPath("dest.sh")))

	info, err := os.Stat(f.tdf.JoinPath("dest.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0750), info.Mode().Perm())
	assert.Equal(t, "#!/bin/sh\n", f.tdf.ReadFile("dest.sh"))
}

func TestCopyFileReplacesReadOnlyDest(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	f.tdf.WriteFile("src.bin", "v2")
	require.NoError(t, os.Chmod(f.tdf.JoinPath("src.bin"), 0644))
	f.tdf.WriteFile("dest.bin", "v1")
	require.NoError(t, os.Chmod(f.tdf.JoinPath("dest.bin"), 0444))

	require.NoError(t, copyFile(f.tdf.JoinPath("src.bin"), f.tdf.JoinPath("dest.bin")))

	info, err := os.Stat(f.tdf.JoinPath("dest.bin"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	assert.Equal(t, "v2", f.tdf.ReadFile("dest.bin"))

	entries, err := ioutil.ReadDir(f.tdf.Path())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temporary copy left behind")
	}
}

func TestReadOnlyArtifactReplacedOnRerun(t *testing.T) {
	f := newRunnerFixture(t, pkgmgr.None)
	defer f.TearDown()
	project := model.Project{
		ID:         "app",
		Repository: testRepo,
		Artifacts:  []model.Artifact{{Name: "out.bin", Path: "out.bin"}},
	}
	src := f.tdf.JoinPath("cache", "app", "out.bin")

	f.tdf.WriteFile("cache/app/out.bin", "v1")
	require.NoError(t, os.Chmod(src, 0444))
	require.NoError(t, f.run(project))
	assert.Equal(t, "v1", f.tdf.ReadFile("artifacts/app/out.bin"))

	require.NoError(t, os.Chmod(src, 0644))
	f.tdf.WriteFile("cache/app/out.bin", "v2")
	require.NoError(t, os.Chmod(src, 0444))
	require.NoError(t, f.run(project))

	assert.Equal(t, "v2", f.tdf.ReadFile("artifacts/app/out.bin"))
	info, err := os.Stat(f.tdf.JoinPath("artifacts", "app", "out.bin"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0444), info.Mode().Perm())
}
