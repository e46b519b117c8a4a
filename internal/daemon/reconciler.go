package daemon

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
)

// WindowLister returns the ids of every window that currently exists.
type WindowLister func() ([]platform.WindowID, error)

// WindowListerFromBackend lists the top-level windows of backend. Hidden
// clients are unmapped but still listed.
func WindowListerFromBackend(backend platform.Backend) WindowLister {
	return backend.StackingOrder
}

// ClientSet is the managed state the reconciler checks.
type ClientSet interface {
	Clients() []registry.Client
	Destroyed(id platform.WindowID)
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically forgets clients whose windows vanished without a
// DestroyNotify reaching the event loop.
type Reconciler struct {
	interval    time.Duration
	clients     ClientSet
	listWindows WindowLister
	logger      *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, clients ClientSet, listWindows WindowLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Reconciler{
		interval:    interval,
		clients:     clients,
		listWindows: listWindows,
		logger:      logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass and returns the clients it
// dropped.
func (r *Reconciler) reconcile() (dropped []platform.WindowID) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	clients := r.clients.Clients()
	if len(clients) == 0 {
		return nil
	}

	actual, err := r.listWindows()
	if err != nil {
		r.logger.Error("reconciler: failed to list windows", "error", err)
		return nil
	}
	exists := make(map[platform.WindowID]bool, len(actual))
	for _, id := range actual {
		exists[id] = true
	}

	for _, c := range clients {
		if exists[c.ID] {
			continue
		}
		r.logger.Info("reconciler: stale client detected", "window_id", uint32(c.ID), "workspace", c.Workspace)
		r.clients.Destroyed(c.ID)
		dropped = append(dropped, c.ID)
	}
	return dropped
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() []platform.WindowID {
	return r.reconcile()
}
