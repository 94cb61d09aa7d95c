package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tilt-dev/buildhelper/internal/build"
	"github.com/tilt-dev/buildhelper/pkg/logger"
)

var debug bool
var verbose bool

func logLevel() logger.Level {
	if debug {
		return logger.DebugLvl
	} else if verbose {
		return logger.VerboseLvl
	} else {
		return logger.InfoLvl
	}
}

// Returned for failures that have already been printed.
var errReported = errors.New("already reported")

func isReported(err error) bool {
	return errors.Is(err, errReported) || build.IsStageError(err)
}

func Execute() {
	rootCmd := newRootCmd(&buildCmd{})

	// SIGNAL TRAPPING
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs

		// Cancelling kills the process group of whatever command is running.
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		if !isReported(err) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(b *buildCmd) *cobra.Command {
	rootCmd := b.register()
	rootCmd.RunE = b.run
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	addCommand(rootCmd, &versionCmd{})
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	return rootCmd
}

type buildhelperCmd interface {
	register() *cobra.Command
	run(cmd *cobra.Command, args []string) error
}

func addCommand(parent *cobra.Command, child buildhelperCmd) {
	cobraChild := child.register()
	cobraChild.RunE = child.run
	parent.AddCommand(cobraChild)
}

// Logs to stdout, serializing writes across goroutines.
func newStdoutLogger() logger.Logger {
	supportsColor := logger.SupportsColor(os.Stdout)
	w := logger.NewMutexWriter(colorable.NewColorableStdout())
	return logger.NewFuncLogger(supportsColor, logLevel(), func(level logger.Level, fields logger.Fields, b []byte) error {
		_, err := w.Write(b)
		return err
	})
}
