package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/tilt-dev/buildhelper/pkg/logger"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

func (b *run) runSteps(ctx context.Context) error {
	total := len(b.project.Steps)
	if total == 0 {
		b.ps.Printf(ctx, "No build steps")
		return nil
	}

	for i, step := range b.project.Steps {
		label := step.Label(i)
		b.ps.Printf(ctx, "Running step '%s' (%d/%d)", label, i+1, total)
		if err := b.runStep(ctx, step, label); err != nil {
			return err
		}
	}
	return nil
}

func (b *run) runStep(ctx context.Context, step model.Step, label string) error {
	l := logger.Get(ctx)
	for _, command := range step.Commands {
		if strings.TrimSpace(command) == "" {
			l.Debugf("Skipping blank command in step '%s'", label)
			continue
		}

		err := b.exec(ctx, model.ToHostCmdInDir(command, b.workDir))
		if err == nil {
			continue
		}

		if !step.IgnoreErrors {
			return b.fail(StageSteps, fmt.Sprintf("running step '%s'", label), err)
		}
		l.Warnf("Ignoring failure in step '%s': %v", label, err)
	}
	return nil
}
