package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/daemon"
	"github.com/1broseidon/floatwm/internal/engine"
	"github.com/1broseidon/floatwm/internal/hotkeys"
	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the window manager on the current X display",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runDaemon()
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (%d workspaces, %d key bindings, %d button bindings)",
		cfg.WorkspaceCount, len(cfg.Bindings), len(cfg.Buttons))

	// Connect to display server
	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	if err := conn.BecomeManager(); err != nil {
		log.Fatalf("Failed to take over the display: %v", err)
	}
	if err := conn.Announce("floatwm", cfg.WorkspaceCount); err != nil {
		log.Printf("Warning: failed to publish EWMH hints: %v", err)
	}

	backend := platform.NewLinuxBackend(conn)
	lifecycle := daemon.NewLifecycle(conn.Quit)

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	d := daemon.New(cfg, daemon.Options{
		Backend:   backend,
		Lifecycle: lifecycle,
		Load:      loadConfig,
		Logger:    logger,
		Level:     level,
		Hooks: daemon.Hooks{
			ClientsChanged: daemon.ClientList(conn),
			WorkspaceCount: func(n int) {
				if err := conn.SetNumberOfDesktops(n); err != nil {
					log.Printf("Warning: failed to publish workspace count: %v", err)
				}
			},
		},
	})

	// Setup key and button bindings
	hotkeyHandler := hotkeys.NewHandler(conn, d)
	if err := d.SetBinder(hotkeyHandler); err != nil {
		log.Fatalf("Failed to register bindings: %v", err)
	}

	if err := d.SyncScreens(); err != nil {
		log.Fatalf("Failed to read screens: %v", err)
	}
	log.Printf("Managing %d screen(s)", len(d.Status().Screens))

	events := daemon.BindX(conn, d)
	adopted, err := d.AdoptExisting()
	if err != nil {
		log.Printf("Warning: failed to adopt existing windows: %v", err)
	}
	for _, id := range adopted {
		events.Watch(id)
	}
	if len(adopted) > 0 {
		log.Printf("Adopted %d existing window(s)", len(adopted))
	}
	restoreWorkspace(conn, d)

	// Start IPC server
	ipcServer, err := ipc.NewServer(d, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: 10 * time.Second,
		Logger:   logger,
	}, d, daemon.WindowListerFromBackend(backend))

	// Drop clients whose windows vanished before the first DestroyNotify
	// could reach us.
	reconciler.ReconcileNow()

	reconcilerCtx, reconcilerCancel := context.WithCancel(context.Background())
	defer reconcilerCancel()
	go reconciler.Run(reconcilerCtx)

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				if err := d.Reload(); err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				log.Println("Config reloaded successfully")

			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down floatwm daemon...")
				reconcilerCancel()
				ipcServer.Stop()
				os.Exit(0)
			}
		}
	}()

	// Start event loop (blocking)
	log.Println("floatwm daemon started, entering event loop...")
	conn.EventLoop()

	reconcilerCancel()
	ipcServer.Stop()
	if err := lifecycle.Finish(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Println("floatwm daemon stopped")
}

// restoreWorkspace returns to the workspace published before a restart.
func restoreWorkspace(conn *x11.Connection, d *daemon.Daemon) {
	n, err := conn.GetCurrentDesktop()
	if err != nil || n <= 0 || n >= d.Status().WorkspaceCount {
		return
	}
	a, err := action.Parse(string(action.ChangeWorkspace), []string{strconv.Itoa(n)})
	if err != nil {
		return
	}
	if _, err := d.Dispatch(engine.Event{Kind: engine.EventAction, Action: a}); err != nil {
		log.Printf("Warning: failed to restore workspace %d: %v", n, err)
		return
	}
	log.Printf("Restored workspace %d", n)
}
