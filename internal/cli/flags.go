package cli

import (
	"github.com/spf13/pflag"

	"github.com/tilt-dev/buildhelper/internal/pkgmgr"
)

// Parses --package-manager as soon as the flag is read.
type packageManagerValue struct {
	m *pkgmgr.Manager
}

var _ pflag.Value = packageManagerValue{}

func (v packageManagerValue) String() string {
	if v.m == nil {
		return string(pkgmgr.Default)
	}
	return v.m.String()
}

func (v packageManagerValue) Set(s string) error {
	m, err := pkgmgr.Parse(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (v packageManagerValue) Type() string {
	return "name"
}
