package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
	"github.com/schollz/closestmatch"
	"golang.org/x/term"

	"github.com/tilt-dev/buildhelper/internal/git"
	"github.com/tilt-dev/buildhelper/internal/projects"
	"github.com/tilt-dev/buildhelper/pkg/model"
)

var errNoSelection = errors.New("no project selected")

// Asks the operator which project to build.
type Picker interface {
	Pick(ctx context.Context, ps []model.Project) (model.Project, error)
}

// Full-screen list on a terminal, a line prompt otherwise.
func defaultPicker() Picker {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return tviewPicker{}
	}
	return newPromptPicker(os.Stdin, os.Stdout)
}

func describe(p model.Project) string {
	return fmt.Sprintf("%s (branch %s)", git.DisplayRemote(p.Repository), p.Branch)
}

type tviewPicker struct{}

func (tviewPicker) Pick(ctx context.Context, ps []model.Project) (model.Project, error) {
	app := tview.NewApplication()
	list := tview.NewList()

	selected := -1
	for i, p := range ps {
		i := i
		list.AddItem(p.ID, describe(p), shortcut(i), func() {
			selected = i
			app.Stop()
		})
	}
	list.AddItem("Quit", "Exit without building", 'q', app.Stop)
	list.SetBorder(true).SetTitle(" Build Helper ")
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			app.Stop()
		case <-done:
		}
	}()

	if err := app.SetRoot(list, true).Run(); err != nil {
		return model.Project{}, errors.Wrap(err, "project picker")
	}
	if err := ctx.Err(); err != nil {
		return model.Project{}, err
	}
	if selected < 0 {
		return model.Project{}, errNoSelection
	}
	return ps[selected], nil
}

// 1-9 for the first nine projects, then no shortcut.
func shortcut(i int) rune {
	if i < 9 {
		return rune('1' + i)
	}
	return 0
}

type promptPicker struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptPicker(in io.Reader, out io.Writer) promptPicker {
	return promptPicker{in: bufio.NewReader(in), out: out}
}

// Pick accepts a project id or its 1-based position in the list, and keeps
// asking until it gets one. Input that ends before a choice is an error.
func (p promptPicker) Pick(ctx context.Context, ps []model.Project) (model.Project, error) {
	ids := projects.IDs(ps)
	matcher := closestmatch.New(ids, []int{2, 3})

	for i, proj := range ps {
		_, _ = fmt.Fprintf(p.out, "  %d) %s  %s\n", i+1, proj.ID, describe(proj))
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.Project{}, err
		}

		_, _ = fmt.Fprint(p.out, "Select a project (number or id): ")
		line, readErr := p.in.ReadString('\n')
		choice := strings.TrimSpace(line)

		if choice != "" {
			if proj, ok := lookup(ps, choice); ok {
				return proj, nil
			}

			if suggestion := matcher.Closest(choice); suggestion != "" {
				_, _ = fmt.Fprintf(p.out, "No project '%s'. Did you mean '%s'?\n", choice, suggestion)
			} else {
				_, _ = fmt.Fprintf(p.out, "No project '%s'.\n", choice)
			}
		}

		if readErr == io.EOF {
			_, _ = fmt.Fprintln(p.out)
			return model.Project{}, errNoSelection
		} else if readErr != nil {
			return model.Project{}, errors.Wrap(readErr, "reading selection")
		}
	}
}

// Ids win over positions, so a project named "2" can still be picked by name.
func lookup(ps []model.Project, choice string) (model.Project, bool) {
	for _, p := range ps {
		if p.ID == choice {
			return p, true
		}
	}

	n, err := strconv.Atoi(choice)
	if err == nil && n >= 1 && n <= len(ps) {
		return ps[n-1], true
	}
	return model.Project{}, false
}
