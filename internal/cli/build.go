package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilt-dev/buildhelper/internal/build"
	"github.com/tilt-dev/buildhelper/internal/paths"
	"github.com/tilt-dev/buildhelper/internal/pkgmgr"
	"github.com/tilt-dev/buildhelper/internal/projects"
	"github.com/tilt-dev/buildhelper/internal/sliceutils"
	"github.com/tilt-dev/buildhelper/pkg/logger"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

const (
	flagProject        = "project"
	flagRootPath       = "root-path"
	flagPackageManager = "package-manager"
)

type buildCmd struct {
	projectPath    string
	rootPath       string
	packageManager pkgmgr.Manager

	// Overridden in tests.
	logger    logger.Logger
	picker    Picker
	newRunner func(layout paths.Layout, pm pkgmgr.Manager) *build.Runner
}

func (c *buildCmd) register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildhelper",
		Short: "Clone, build, and collect artifacts for a project",
		Long: `Runs a project's build on this machine: installs the packages it needs,
clones or pulls its repository, runs its build steps, and copies its
artifacts out.

With no flags, lists the projects in the storage folder and asks which one
to build.`,
		Example: "  buildhelper --project storage/projects/app.json",
		Args:    cobra.ArbitraryArgs,
	}

	cmd.Flags().StringVar(&c.projectPath, flagProject, "", "Path to the project file to build")
	cmd.Flags().StringVar(&c.rootPath, flagRootPath, paths.DefaultRoot, "Storage folder for projects, cache, and artifacts (requires --project)")
	c.packageManager = pkgmgr.Default
	cmd.Flags().Var(packageManagerValue{&c.packageManager}, flagPackageManager,
		"Package manager used to install packages (one of: "+strings.Join(pkgmgr.Names(), ", ")+")")
	return cmd
}

func (c *buildCmd) run(cmd *cobra.Command, args []string) error {
	l := c.logger
	if l == nil {
		l = newStdoutLogger()
	}
	ctx := logger.WithLogger(cmd.Context(), l)

	l.Infof("%s", logger.Cyan(l).Sprint("Build Helper"))

	if len(args) > 0 || (c.projectPath == "" && cmd.Flags().Changed(flagRootPath)) {
		l.Errorf("No project specified. Specify a project with --project path/to/json")
		return errReported
	}

	var layout paths.Layout
	var project model.Project
	var err error
	if c.projectPath == "" {
		l.Infof("No startup flags provided. Starting in interactive mode")
		layout, project, err = c.pickProject(ctx)
	} else {
		layout, project, err = c.loadProject()
	}
	if err != nil {
		return err
	}

	newRunner := c.newRunner
	if newRunner == nil {
		newRunner = wireRunner
	}
	return newRunner(layout, c.packageManager).Run(ctx, project)
}

func (c *buildCmd) loadProject() (paths.Layout, model.Project, error) {
	layout, err := paths.NewLayout(c.rootPath)
	if err != nil {
		return paths.Layout{}, model.Project{}, err
	}

	project, err := projects.Load(c.projectPath)
	if err != nil {
		return paths.Layout{}, model.Project{}, err
	}
	return layout, project, nil
}

func (c *buildCmd) pickProject(ctx context.Context) (paths.Layout, model.Project, error) {
	l := logger.Get(ctx)

	layout, err := paths.NewLayout(c.rootPath)
	if err != nil {
		return paths.Layout{}, model.Project{}, err
	}
	if err := layout.EnsureBase(); err != nil {
		return paths.Layout{}, model.Project{}, err
	}

	ps, err := projects.Scan(ctx, layout.ProjectsDir())
	if err != nil {
		return paths.Layout{}, model.Project{}, err
	}
	if len(ps) == 0 {
		l.Errorf("No projects found. Please place your project configs into the '%s' folder", paths.ProjectsDirName)
		return paths.Layout{}, model.Project{}, errReported
	}
	l.Verbosef("Found %d projects in %s:\n%s", len(ps), layout.ProjectsDir(),
		sliceutils.BulletedIndentedStringList(projects.IDs(ps)))

	picker := c.picker
	if picker == nil {
		picker = defaultPicker()
	}
	project, err := picker.Pick(ctx, ps)
	if err != nil {
		return paths.Layout{}, model.Project{}, err
	}
	return layout, project, nil
}
