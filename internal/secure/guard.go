package secure

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Guard clears secure stores on process-wide lifecycle events:
// termination signals, panics (via Recover), and deterministic
// teardown (Close).
//
// Design decision: The guard is an explicit object created at startup
// and torn down at shutdown rather than ambient global state. Signal
// handlers are deregistered on Close so tests and embedders can create
// and destroy guards freely.
type Guard struct {
	stores []*Store
	logger *slog.Logger
	sigCh  chan os.Signal
	done   chan struct{}
	once   sync.Once
}

// NewGuard creates a Guard watching the given stores and registers
// handlers for SIGINT and SIGTERM. The returned guard must be closed.
func NewGuard(logger *slog.Logger, stores ...*Store) *Guard {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Guard{
		stores: stores,
		logger: logger,
		sigCh:  make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}

	signal.Notify(g.sigCh, os.Interrupt, syscall.SIGTERM)
	go g.watch()
	return g
}

// watch waits for a termination signal and clears every store before
// the process exits.
func (g *Guard) watch() {
	select {
	case sig := <-g.sigCh:
		g.logger.Warn("termination signal received, clearing secure stores", "signal", sig.String())
		g.clearAll()
	case <-g.done:
	}
}

// Recover is intended for use in a deferred call at the top of
// goroutines handling secret material: it clears all stores on panic
// and then re-panics so the fault still surfaces.
func (g *Guard) Recover() {
	if r := recover(); r != nil {
		g.logger.Error("panic detected, clearing secure stores")
		g.clearAll()
		panic(r)
	}
}

// Close deregisters the signal handlers and clears every store.
// Safe to call multiple times.
func (g *Guard) Close() {
	g.once.Do(func() {
		signal.Stop(g.sigCh)
		close(g.done)
		g.clearAll()
	})
}

// clearAll clears every watched store.
func (g *Guard) clearAll() {
	for _, s := range g.stores {
		s.ClearAll()
	}
}
