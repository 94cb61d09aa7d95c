package build

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tilt-dev/buildhelper/internal/ospath"
	"github.com/tilt-dev/buildhelper/pkg/logger"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

func (b *run) collectArtifacts(ctx context.Context) error {
	total := len(b.project.Artifacts)
	if total == 0 {
		b.ps.Printf(ctx, "No artifacts")
		return nil
	}

	l := logger.Get(ctx)
	for i, artifact := range b.project.Artifacts {
		b.ps.Printf(ctx, "Collecting artifact '%s' (%d/%d)", artifact.Name, i+1, total)

		dest, err := b.collectArtifact(artifact)
		if err != nil {
			return b.fail(StageArtifacts, fmt.Sprintf("collecting artifact '%s'", artifact.Name), err)
		}
		l.Infof("Collected %s", ospath.FileDisplayName([]string{b.layout.Root()}, dest))
	}
	return nil
}

// Resolves the artifact inside the working directory and copies it out.
// Returns the destination path.
func (b *run) collectArtifact(artifact model.Artifact) (string, error) {
	src := filepath.Join(b.workDir, filepath.FromSlash(artifact.Path))
	display := ospath.FileDisplayName([]string{b.layout.Root()}, src)

	if !ospath.IsChild(b.workDir, src) {
		return "", errors.Wrapf(ErrArtifactOutsideWorkdir, "%s", artifact.Path)
	}
	if !ospath.IsRegularFile(src) {
		return "", errors.Wrapf(ErrArtifactNotFound, "file not found '%s'", display)
	}

	// A symlink in the checkout must not pull in files from elsewhere.
	_, inside, err := ospath.RealChild(b.workDir, src)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", display)
	}
	if !inside {
		return "", errors.Wrapf(ErrArtifactOutsideWorkdir, "%s", artifact.Path)
	}

	dest := filepath.Join(b.artifactsDir, artifact.Name)
	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}
