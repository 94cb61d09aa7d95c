package build

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/tilt-dev/buildhelper/internal/localexec"
	"github.com/tilt-dev/buildhelper/internal/paths"
	"github.com/tilt-dev/buildhelper/internal/pkgmgr"
	"github.com/tilt-dev/buildhelper/pkg/logger"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

type Runner struct {
	execer localexec.Execer
	pm     pkgmgr.Manager
	layout paths.Layout
	clock  clockwork.Clock
}

func NewRunner(execer localexec.Execer, pm pkgmgr.Manager, layout paths.Layout, clock clockwork.Clock) *Runner {
	return &Runner{
		execer: execer,
		pm:     pm,
		layout: layout,
		clock:  clock,
	}
}

// State for a single run of one project.
type run struct {
	*Runner
	project      model.Project
	workDir      string
	artifactsDir string
	ps           *pipelineState
}

type stage struct {
	name  Stage
	title string
	exec  func(ctx context.Context) error
}

// Run executes the full pipeline for one project against the runner's
// storage root, stopping at the first failure.
//
// A failed stage is reported to the logger where it happens and returned as
// a *StageError. An invalid project is returned without running anything.
func (r *Runner) Run(ctx context.Context, project model.Project) error {
	project = project.WithDefaults()
	if err := project.Validate(); err != nil {
		return err
	}

	b := &run{
		Runner:       r,
		project:      project,
		workDir:      r.layout.CacheDir(project.ID),
		artifactsDir: r.layout.ArtifactsDir(project.ID),
	}

	stages := []stage{
		{StageSetup, "Ensuring folders", b.setup},
		{StagePackages, "Installing packages", b.installPackages},
		{StageSync, "Syncing repository", b.syncRepository},
		{StageSteps, "Running build steps", b.runSteps},
		{StageArtifacts, "Collecting artifacts", b.collectArtifacts},
	}

	l := logger.Get(ctx)
	l.Infof("Building %s", logger.Cyan(l).Sprint(project.ID))

	b.ps = newPipelineState(ctx, len(stages), r.clock)
	for _, s := range stages {
		stageCtx := logger.WithLogger(ctx, l.WithFields(logger.Fields{logger.FieldNameStage: string(s.name)}))

		b.ps.StartPipelineStep(stageCtx, "%s", s.title)
		err := s.exec(stageCtx)
		if err != nil {
			b.report(stageCtx, err)
			b.ps.End(ctx, err)
			return err
		}
		b.ps.EndPipelineStep(stageCtx)
	}
	b.ps.End(ctx, nil)

	l.Infof("%s", logger.Green(l).Sprintf("Successfully built project '%s'", project.ID))
	return nil
}

func (b *run) setup(ctx context.Context) error {
	if err := b.layout.EnsureProject(b.project.ID); err != nil {
		return b.fail(StageSetup, "ensuring folders", err)
	}
	logger.Get(ctx).Verbosef("Working directory: %s", b.workDir)
	return nil
}

func (b *run) fail(s Stage, action string, err error) error {
	return &StageError{Stage: s, Action: action, Err: err}
}

// Prints the error that ended the run.
func (b *run) report(ctx context.Context, err error) {
	l := logger.Get(ctx)
	if se, ok := err.(*StageError); ok {
		l.Errorf("An error occurred while %s", se.Action)
		l.Errorf("%v", se.Err)
		return
	}
	l.Errorf("%v", err)
}

// Streams cmd's output to the logger, tagging each line LOG or ERR.
func (b *run) exec(ctx context.Context, cmd model.Cmd) error {
	l := logger.Get(ctx)
	l.Verbosef("$ %s", cmd.String())

	logPrefix := logger.Cyan(l).Sprint("LOG ")
	errPrefix := logger.Red(l).Sprint("ERR ")
	stdout := l.WithFields(logger.Fields{logger.FieldNameStream: "stdout"})
	stderr := l.WithFields(logger.Fields{logger.FieldNameStream: "stderr"})

	return localexec.Stream(ctx, b.execer, cmd, func(line string, isErr bool) {
		if isErr {
			stderr.Write(logger.InfoLvl, []byte(fmt.Sprintf("%s%s\n", errPrefix, line)))
			return
		}
		stdout.Write(logger.InfoLvl, []byte(fmt.Sprintf("%s%s\n", logPrefix, line)))
	})
}
