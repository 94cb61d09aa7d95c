package tempdir

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/tilt-dev/wmclient/pkg/os/temp"
)

type TempDirFixture struct {
	t      testing.TB
	dir    *temp.TempDir
	oldDir string
}

func NewTempDirFixture(t testing.TB) *TempDirFixture {
	dir, err := temp.NewDir(filepath.Base(t.Name()))
	if err != nil {
		t.Fatalf("Error making temp dir: %v", err)
	}

	return &TempDirFixture{
		t:   t,
		dir: dir,
	}
}

func (f *TempDirFixture) T() testing.TB {
	return f.t
}

func (f *TempDirFixture) Path() string {
	return f.dir.Path()
}

func (f *TempDirFixture) JoinPath(path ...string) string {
	p := []string{f.Path()}
	p = append(p, path...)
	return filepath.Join(p...)
}

func (f *TempDirFixture) WriteFile(path string, contents string) {
	fullPath := filepath.Join(f.Path(), path)
	base := filepath.Dir(fullPath)
	err := os.MkdirAll(base, os.FileMode(0777))
	if err != nil {
		f.t.Fatal(err)
	}
	err = ioutil.WriteFile(fullPath, []byte(contents), os.FileMode(0777))
	if err != nil {
		f.t.Fatal(err)
	}
}

func (f *TempDirFixture) ReadFile(path string) string {
	b, err := ioutil.ReadFile(f.JoinPath(path))
	if err != nil {
		f.t.Fatal(err)
	}
	return string(b)
}

func (f *TempDirFixture) MkdirAll(path string) {
	err := os.MkdirAll(f.JoinPath(path), os.FileMode(0777))
	if err != nil {
		f.t.Fatal(err)
	}
}

// Chdir switches the working directory to the fixture's dir until TearDown.
func (f *TempDirFixture) Chdir() {
	cwd, err := os.Getwd()
	if err != nil {
		f.t.Fatal(err)
	}

	if err := os.Chdir(f.Path()); err != nil {
		f.t.Fatal(err)
	}
	f.oldDir = cwd
}

func (f *TempDirFixture) TearDown() {
	if f.oldDir != "" {
		if err := os.Chdir(f.oldDir); err != nil {
			f.t.Fatal(err)
		}
	}

	err := f.dir.TearDown()
	if err != nil {
		f.t.Fatal(err)
	}
}
