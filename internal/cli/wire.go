//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package cli

import (
	"github.com/google/wire"
	"github.com/jonboulle/clockwork"

	"github.com/tilt-dev/buildhelper/internal/build"
	"github.com/tilt-dev/buildhelper/internal/localexec"
	"github.com/tilt-dev/buildhelper/internal/paths"
	"github.com/tilt-dev/buildhelper/internal/pkgmgr"
)

var BaseWireSet = wire.NewSet(
	localexec.DefaultEnv,
	localexec.NewProcessExecer,
	wire.Bind(new(localexec.Execer), new(*localexec.ProcessExecer)),

	clockwork.NewRealClock,
	build.NewRunner,
)

func wireRunner(layout paths.Layout, pm pkgmgr.Manager) *build.Runner {
	wire.Build(BaseWireSet)
	return nil
}
