package build

import (
	"context"

	"github.com/tilt-dev/buildhelper/internal/git"
)

// Pulls if the working directory is already a checkout, clones otherwise.
func (b *run) syncRepository(ctx context.Context) error {
	if git.IsRepo(b.workDir) {
		b.ps.Printf(ctx, "Pulling git changes")
		if err := b.exec(ctx, git.PullCmd(b.workDir)); err != nil {
			return b.fail(StageSync, "pulling git changes", err)
		}
		return nil
	}

	b.ps.Printf(ctx, "Cloning %s (branch %s)", git.DisplayRemote(b.project.Repository), b.project.Branch)
	if err := b.exec(ctx, git.CloneCmd(b.project.Repository, b.project.Branch, b.workDir)); err != nil {
		return b.fail(StageSync, "cloning git repository", err)
	}
	return nil
}
