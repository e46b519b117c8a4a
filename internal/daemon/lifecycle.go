package daemon

import (
	"fmt"
	"log"
	"os"
	"sync"
	"syscall"
)

// Lifecycle implements platform.Lifecycle on top of an event loop: Exit
// stops the loop, Restart stops it and re-executes the binary once the
// caller runs Finish.
type Lifecycle struct {
	quit func()
	exec func(argv0 string, argv, envv []string) error

	mu      sync.Mutex
	restart bool
}

// NewLifecycle returns a lifecycle that calls quit to stop the event loop.
func NewLifecycle(quit func()) *Lifecycle {
	return &Lifecycle{quit: quit, exec: syscall.Exec}
}

// Exit stops the event loop.
func (l *Lifecycle) Exit() {
	log.Println("Exit requested")
	l.quit()
}

// Restart stops the event loop and marks the process for re-execution.
func (l *Lifecycle) Restart() {
	log.Println("Restart requested")
	l.mu.Lock()
	l.restart = true
	l.mu.Unlock()
	l.quit()
}

// Finish re-executes the running binary when a restart was requested. It
// only returns on failure or when no restart is pending.
func (l *Lifecycle) Finish() error {
	l.mu.Lock()
	restart := l.restart
	l.mu.Unlock()
	if !restart {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable for restart: %w", err)
	}
	if err := l.exec(exe, os.Args, os.Environ()); err != nil {
		return fmt.Errorf("failed to restart: %w", err)
	}
	return nil
}
