// Package daemon glues the display layer to the engine: it turns window
// events and bindings into engine calls and applies the directives that
// come back.
package daemon

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"sort"
	"sync"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/engine"
	"github.com/1broseidon/floatwm/internal/hotkeys"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/tiling"
	"github.com/1broseidon/floatwm/internal/workspace"
)

// Binder installs binding tables. The X11 hotkey handler implements it.
type Binder interface {
	SetBindings(keys, buttons *hotkeys.Table) error
}

// Loader produces a validated configuration.
type Loader func() (*config.Config, error)

// Hooks are optional notifications for display-side bookkeeping.
type Hooks struct {
	// ClientsChanged receives the managed windows after a manage or
	// unmanage.
	ClientsChanged func(ids []platform.WindowID)
	// WorkspaceCount receives the workspace count on start and reload.
	WorkspaceCount func(n int)
}

// Options configures a Daemon.
type Options struct {
	Backend   platform.Backend
	Lifecycle platform.Lifecycle
	Load      Loader
	Logger    *slog.Logger
	// Level, when set, follows log_level across reloads.
	Level *slog.LevelVar
	// Spawner replaces the process starter of spawn directives.
	Spawner platform.Spawner
	Hooks   Hooks
	// Invariant handles a window the engine was never told about. It
	// defaults to log.Fatalf.
	Invariant func(err error)
}

// WindowInfo is what the display layer knows about a window asking to be
// mapped.
type WindowInfo struct {
	ID       platform.WindowID
	Geometry tiling.Rect
	Class    string
	Hints    tiling.Hints
}

// Daemon serializes window events, bindings and control requests. Every
// exported method is safe for concurrent use.
type Daemon struct {
	backend   platform.Backend
	engine    *engine.Engine
	applier   *platform.Applier
	load      Loader
	logger    *slog.Logger
	level     *slog.LevelVar
	hooks     Hooks
	invariant func(error)

	mu     sync.Mutex
	cfg    *config.Config
	binder Binder
}

// New creates a daemon around a validated configuration.
func New(cfg *config.Config, opts Options) *Daemon {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	invariant := opts.Invariant
	if invariant == nil {
		invariant = func(err error) {
			log.Fatalf("Window state out of sync with the display: %v", err)
		}
	}
	load := opts.Load
	if load == nil {
		load = config.Load
	}

	applier := platform.NewApplier(opts.Backend, opts.Lifecycle, logger)
	if opts.Spawner != nil {
		applier.SetSpawner(opts.Spawner)
	}
	if opts.Level != nil {
		opts.Level.Set(cfg.SlogLevel())
	}

	d := &Daemon{
		backend:   opts.Backend,
		engine:    engine.New(engine.SettingsFromConfig(cfg), logger),
		applier:   applier,
		load:      load,
		logger:    logger,
		level:     opts.Level,
		hooks:     opts.Hooks,
		invariant: invariant,
		cfg:       cfg,
	}
	if d.hooks.WorkspaceCount != nil {
		d.hooks.WorkspaceCount(cfg.WorkspaceCount)
	}
	return d
}

// Config returns the configuration in effect.
func (d *Daemon) Config() *config.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Engine exposes the engine for read-only inspection.
func (d *Daemon) Engine() *engine.Engine {
	return d.engine
}

// SetBinder installs the binding tables of the current configuration on b
// and keeps b for reloads.
func (d *Daemon) SetBinder(b Binder) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys, buttons, err := tables(d.cfg)
	if err != nil {
		return err
	}
	if err := b.SetBindings(keys, buttons); err != nil {
		return fmt.Errorf("failed to install bindings: %w", err)
	}
	d.binder = b
	log.Printf("Bindings installed (%d keys, %d buttons)", keys.Len(), buttons.Len())
	return nil
}

func tables(cfg *config.Config) (keys, buttons *hotkeys.Table, err error) {
	keys, err = cfg.KeyTable()
	if err != nil {
		return nil, nil, err
	}
	buttons, err = cfg.ButtonTable()
	if err != nil {
		return nil, nil, err
	}
	return keys, buttons, nil
}

// SyncScreens reads the displays from the backend and hands them to the
// engine.
func (d *Daemon) SyncScreens() error {
	displays, err := d.backend.Displays()
	if err != nil {
		return fmt.Errorf("failed to list displays: %w", err)
	}
	if len(displays) == 0 {
		return fmt.Errorf("no displays reported")
	}

	screens := make([]workspace.Screen, len(displays))
	for i, disp := range displays {
		screens[i] = workspace.Screen{
			ID:     i,
			Name:   disp.Name,
			Bounds: tiling.Rect{X: disp.Bounds.X, Y: disp.Bounds.Y, Width: disp.Bounds.Width, Height: disp.Bounds.Height},
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine.SetScreens(screens)
	d.logger.Info("screens updated", "count", len(screens))
	return nil
}

// AdoptExisting manages the windows that were already mapped before the
// daemon started and returns them.
func (d *Daemon) AdoptExisting() ([]platform.WindowID, error) {
	windows, err := d.backend.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var adopted []platform.WindowID
	for _, w := range windows {
		if !w.Mapped || d.cfg.Ignored(w.AppID) {
			continue
		}
		d.engine.Adopt(w.ID, tiling.Rect{X: w.Bounds.X, Y: w.Bounds.Y, Width: w.Bounds.Width, Height: w.Bounds.Height})
		adopted = append(adopted, w.ID)
	}
	if len(adopted) > 0 {
		d.clientsChanged()
	}
	return adopted, nil
}

// Status implements ipc.Controller.
func (d *Daemon) Status() engine.Status {
	return d.engine.Status()
}

// Clients implements ipc.Controller.
func (d *Daemon) Clients() []registry.Client {
	return d.engine.Clients()
}

// Dispatch runs ev through the engine and applies the result. An error means
// ev named a window the engine does not manage.
func (d *Daemon) Dispatch(ev engine.Event) (engine.Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dispatchLocked(ev)
}

func (d *Daemon) dispatchLocked(ev engine.Event) (engine.Result, error) {
	if ev.Kind == engine.EventAction && ev.Action.Kind == action.RaiseOrLower && ev.Stacking == nil {
		order, err := d.backend.StackingOrder()
		if err != nil {
			d.logger.Warn("failed to read stacking order", "error", err)
		}
		ev.Stacking = order
	}

	res, err := d.engine.Dispatch(ev)
	if err != nil {
		return res, err
	}
	d.apply(res.Directives)
	return res, nil
}

// run dispatches an event that originated from the display itself.
func (d *Daemon) run(ev engine.Event) engine.Result {
	res, err := d.dispatchLocked(ev)
	if err != nil {
		d.invariant(err)
	}
	return res
}

func (d *Daemon) apply(directives []platform.Directive) {
	// Failures are logged per directive by the applier.
	_ = d.applier.Apply(directives)
}

func (d *Daemon) clientsChanged() {
	if d.hooks.ClientsChanged == nil {
		return
	}
	clients := d.engine.Clients()
	ids := make([]platform.WindowID, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	d.hooks.ClientsChanged(ids)
}

// Reload loads the configuration again and swaps in its bindings and
// settings. Client state is kept. The old configuration stays in effect when
// the new one fails to load.
func (d *Daemon) Reload() error {
	cfg, err := d.load()
	if err != nil {
		return err
	}
	keys, buttons, err := tables(cfg)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.binder != nil {
		if err := d.binder.SetBindings(keys, buttons); err != nil {
			return fmt.Errorf("failed to install bindings: %w", err)
		}
	}
	res := d.engine.Reload(engine.SettingsFromConfig(cfg))
	d.cfg = cfg
	if d.level != nil {
		d.level.Set(cfg.SlogLevel())
	}
	if d.hooks.WorkspaceCount != nil {
		d.hooks.WorkspaceCount(cfg.WorkspaceCount)
	}
	d.apply(res.Directives)
	d.logger.Info("configuration reloaded", "bindings", keys.Len(), "buttons", buttons.Len())
	return nil
}
