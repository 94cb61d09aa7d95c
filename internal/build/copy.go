package build

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Copies src to dest, keeping src's mode.
//
// The copy is written next to dest and renamed over it, so an existing dest
// is replaced even when its own mode forbids writing.
func copyFile(src, dest string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening artifact")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, "reading artifact")
	}

	out, err := ioutil.TempFile(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "creating artifact copy")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(out.Name())
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrap(err, "copying artifact")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "writing artifact copy")
	}
	if err := os.Chmod(out.Name(), info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "setting artifact mode")
	}
	return errors.Wrap(os.Rename(out.Name(), dest), "replacing artifact")
}
