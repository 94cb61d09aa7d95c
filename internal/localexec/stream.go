package localexec

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tilt-dev/buildhelper/pkg/model"
)

// Receives one line of process output, without its line terminator.
// isErr is true for lines read from stderr.
type LineHandler func(line string, isErr bool)

// A command that ran to completion with a non-zero exit status.
type ExitError struct {
	Cmd  model.Cmd
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Cmd.String(), e.Code)
}

// Stream runs cmd and hands each line of its stdout and stderr to handle as
// the line arrives.
//
// stdout and stderr are read by two goroutines; calls to handle are
// serialized, and lines from one stream keep their order. A final line
// without a trailing newline is still delivered.
//
// Returns an *ExitError if the command exits non-zero.
func Stream(ctx context.Context, execer Execer, cmd model.Cmd, handle LineHandler) error {
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()

	var mu sync.Mutex
	emit := func(line string, isErr bool) {
		mu.Lock()
		defer mu.Unlock()
		handle(line, isErr)
	}

	var g errgroup.Group
	g.Go(func() error { return readLines(outR, false, emit) })
	g.Go(func() error { return readLines(errR, true, emit) })

	exitCode, runErr := execer.Run(ctx, cmd, RunIO{Stdout: outW, Stderr: errW})

	// Closing the writers lets the readers drain and see EOF.
	_ = outW.Close()
	_ = errW.Close()
	readErr := g.Wait()

	if runErr != nil {
		return errors.Wrapf(runErr, "running %q", cmd.String())
	}
	if readErr != nil {
		return errors.Wrapf(readErr, "reading output of %q", cmd.String())
	}
	if exitCode != 0 {
		return &ExitError{Cmd: cmd, Code: exitCode}
	}
	return nil
}

func readLines(r *io.PipeReader, isErr bool, emit LineHandler) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			emit(strings.TrimRight(line, "\r\n"), isErr)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// Unblock the process's writer so Run can return.
			_ = r.CloseWithError(err)
			return err
		}
	}
}
