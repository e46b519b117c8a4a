package platform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Spawner starts an external program without waiting for it.
type Spawner func(argv []string) error

// Lifecycle receives exit and restart requests.
type Lifecycle interface {
	Exit()
	Restart()
}

// Applier carries out engine directives against a Backend in order.
type Applier struct {
	backend   Backend
	spawn     Spawner
	lifecycle Lifecycle
	logger    *slog.Logger
}

// NewApplier creates an applier. A nil logger discards output.
func NewApplier(backend Backend, lifecycle Lifecycle, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Applier{
		backend:   backend,
		spawn:     StartProcess,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// SetSpawner replaces the process starter.
func (a *Applier) SetSpawner(s Spawner) {
	a.spawn = s
}

// Apply executes every directive. A failing directive does not stop the
// rest; all failures are returned joined.
func (a *Applier) Apply(directives []Directive) error {
	var errs []error
	for _, d := range directives {
		if err := a.apply(d); err != nil {
			a.logger.Warn("directive failed", "directive", d.String(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", d, err))
			continue
		}
		a.logger.Debug("directive applied", "directive", d.String())
	}
	return errors.Join(errs...)
}

func (a *Applier) apply(d Directive) error {
	switch d.Kind {
	case DirectiveGeometry:
		return a.backend.MoveResize(d.Window, Rect{X: d.Rect.X, Y: d.Rect.Y, Width: d.Rect.Width, Height: d.Rect.Height})
	case DirectiveShow:
		return a.backend.Map(d.Window)
	case DirectiveHide:
		return a.backend.Unmap(d.Window)
	case DirectiveRaise:
		return a.backend.Raise(d.Window)
	case DirectiveLower:
		return a.backend.Lower(d.Window)
	case DirectiveFocus:
		return a.backend.Focus(d.Window)
	case DirectiveClose:
		return a.backend.Close(d.Window)
	case DirectiveWarp:
		return a.backend.WarpPointer(d.X, d.Y, d.Relative)
	case DirectiveDesktop:
		return a.backend.SetCurrentDesktop(d.X)
	case DirectiveSpawn:
		if len(d.Argv) == 0 {
			return fmt.Errorf("empty command")
		}
		return a.spawn(d.Argv)
	case DirectiveExit:
		if a.lifecycle != nil {
			a.lifecycle.Exit()
		}
		return nil
	case DirectiveRestart:
		if a.lifecycle != nil {
			a.lifecycle.Restart()
		}
		return nil
	default:
		return fmt.Errorf("unsupported directive kind %d", d.Kind)
	}
}

// StartProcess launches argv detached from the caller and reaps it in the
// background.
func StartProcess(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start %q: %w", argv, err)
	}
	go cmd.Wait()
	return nil
}
