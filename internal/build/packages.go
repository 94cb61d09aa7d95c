package build

import (
	"context"
	"fmt"

	"github.com/tilt-dev/buildhelper/internal/git"
)

// Installs git, then the project's packages in order.
func (b *run) installPackages(ctx context.Context) error {
	if !b.pm.Enabled() {
		b.ps.Printf(ctx, "Skipping package installation (package manager: %s)", b.pm)
		return nil
	}

	b.ps.Printf(ctx, "Installing %s", git.PackageName)
	if err := b.installPackage(ctx, git.PackageName); err != nil {
		return b.fail(StagePackages, "installing git", err)
	}

	total := len(b.project.Packages)
	for i, pkg := range b.project.Packages {
		b.ps.Printf(ctx, "Installing packages (%d/%d): %s", i+1, total, pkg)
		if err := b.installPackage(ctx, pkg); err != nil {
			return b.fail(StagePackages, fmt.Sprintf("installing package '%s'", pkg), err)
		}
	}
	return nil
}

func (b *run) installPackage(ctx context.Context, pkg string) error {
	return b.exec(ctx, b.pm.InstallCmd(pkg, b.workDir))
}
