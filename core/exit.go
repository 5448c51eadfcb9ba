package core

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

var (
	hooksMu sync.Mutex
	hooks   []func()

	// exitFunc is replaced in tests
	exitFunc = os.Exit
)

// OnExit registers fn to run before the process exits through Exit or HandleCrash.
// Hooks run in reverse registration order, each at most once.
func OnExit(fn func()) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks = append(hooks, fn)
}

// RunExitHooks runs and clears every registered hook
func RunExitHooks() {
	hooksMu.Lock()
	pending := hooks
	hooks = nil
	hooksMu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		runHook(pending[i])
	}
}

// runHook isolates a failing hook so the remaining ones still run
func runHook(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("core: exit hook panicked: %v", r)
		}
	}()
	fn()
}

// Exit runs the exit hooks and terminates the process with code
func Exit(code int) {
	RunExitHooks()
	exitFunc(code)
}

// SignalWatcher records termination signals for the main loop to act on.
// The first signal only sets the pending flag, so teardown happens on the
// loop's own goroutine and never under a frame in flight. A second signal
// exits immediately through the hooks.
type SignalWatcher struct {
	sigCh    chan os.Signal
	stopCh   chan struct{}
	stopOnce sync.Once
	received atomic.Int32
}

// WatchSignals starts recording sigs
func WatchSignals(sigs ...os.Signal) *SignalWatcher {
	w := &SignalWatcher{
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
	}
	signal.Notify(w.sigCh, sigs...)
	Go(w.watchLoop)
	return w
}

func (w *SignalWatcher) watchLoop() {
	for {
		select {
		case sig := <-w.sigCh:
			code := exitCode(sig)
			if !w.received.CompareAndSwap(0, int32(code)) {
				log.Printf("core: received %v again, exiting now", sig)
				Exit(int(w.received.Load()))
				return
			}
			log.Printf("core: received %v, shutdown pending", sig)
		case <-w.stopCh:
			return
		}
	}
}

// Pending reports whether a termination signal has arrived
func (w *SignalWatcher) Pending() bool {
	return w.received.Load() != 0
}

// ExitCode returns 128+signal for the first signal received, 0 if none
func (w *SignalWatcher) ExitCode() int {
	return int(w.received.Load())
}

// Stop stops watching. Safe to call repeatedly.
func (w *SignalWatcher) Stop() {
	w.stopOnce.Do(func() {
		signal.Stop(w.sigCh)
		close(w.stopCh)
	})
}

// exitCode maps a signal to the shell convention
func exitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
