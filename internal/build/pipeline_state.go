package build

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tilt-dev/buildhelper/pkg/logger"
)

// Prints numbered stage headers and how long each stage took.
type pipelineState struct {
	totalSteps    int
	curStep       int
	curStepStart  time.Time
	pipelineStart time.Time
	c             clockwork.Clock
}

func newPipelineState(ctx context.Context, totalSteps int, c clockwork.Clock) *pipelineState {
	return &pipelineState{
		totalSteps:    totalSteps,
		pipelineStart: c.Now(),
		c:             c,
	}
}

func (ps *pipelineState) StartPipelineStep(ctx context.Context, format string, a ...interface{}) {
	l := logger.Get(ctx)
	ps.curStep++
	ps.curStepStart = ps.c.Now()
	header := logger.Cyan(l).Sprintf("STEP %d/%d", ps.curStep, ps.totalSteps)
	l.Infof("%s — %s", header, fmt.Sprintf(format, a...))
}

// Printf prints a status line under the current step header.
func (ps *pipelineState) Printf(ctx context.Context, format string, a ...interface{}) {
	l := logger.Get(ctx)
	message := fmt.Sprintf(format, a...)
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		l.Infof("     %s", logger.Cyan(l).Sprint(line))
	}
}

func (ps *pipelineState) EndPipelineStep(ctx context.Context) {
	l := logger.Get(ctx)
	elapsed := ps.c.Since(ps.curStepStart)
	l.Verbosef("     (Done %s)", formatDuration(elapsed))
}

func (ps *pipelineState) End(ctx context.Context, err error) {
	if err != nil {
		return
	}

	l := logger.Get(ctx)
	elapsed := ps.c.Since(ps.pipelineStart)
	l.Verbosef("Build took %s", formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
