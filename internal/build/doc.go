// Package build runs a project's build pipeline on the local host.
//
// A run moves through five stages in order:
//
//	1. setup       create the project's working and artifact directories
//	2. packages    install git and the project's OS packages
//	3. sync        clone the repository, or pull if it's already checked out
//	4. steps       run each step's shell commands in the working directory
//	5. artifacts   copy the named outputs into the artifact directory
//
// Every command is run to completion before the next one starts, with its
// output streamed line by line to the logger. The first failure ends the
// run, except for commands in a step marked ignoreErrors. Nothing is rolled
// back.
//
// Example usage:
//
//	runner := build.NewRunner(execer, pkgmgr.AptGet, layout, clockwork.NewRealClock())
//	if err := runner.Run(ctx, project); err != nil {
//	    return err
//	}
package build
