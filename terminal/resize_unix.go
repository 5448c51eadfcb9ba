//go:build unix

package terminal

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/lixenwraith/cline/core"
)

// ResizeWatcher turns SIGWINCH into a pending flag.
// The signal side only stores the flag; the main loop drains it once per
// iteration and does the geometry work there, so it never races a render.
// A watcher is single-use: Start after Stop does nothing.
type ResizeWatcher struct {
	sigCh    chan os.Signal
	stopCh   chan struct{}
	doneCh   chan struct{}
	pending  atomic.Bool
	started  atomic.Bool
	stopOnce sync.Once
}

// NewResizeWatcher creates an idle watcher
func NewResizeWatcher() *ResizeWatcher {
	return &ResizeWatcher{
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins listening for SIGWINCH
func (r *ResizeWatcher) Start() {
	if r.started.Swap(true) {
		return
	}
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

// Stop stops the watcher. Safe to call repeatedly and on a watcher that never started.
func (r *ResizeWatcher) Stop() {
	// Setting started keeps a later Start from reusing the channels
	if !r.started.Swap(true) {
		// Never started: nothing to tear down, now or on a later Stop
		r.stopOnce.Do(func() {})
		return
	}
	r.stopOnce.Do(func() {
		signal.Stop(r.sigCh)
		close(r.stopCh)
		<-r.doneCh
	})
}

// Notify marks a resize as pending
func (r *ResizeWatcher) Notify() {
	r.pending.Store(true)
}

// Pending reports whether a resize is waiting, without clearing it
func (r *ResizeWatcher) Pending() bool {
	return r.pending.Load()
}

// Drain clears the pending flag and reports whether it was set
func (r *ResizeWatcher) Drain() bool {
	return r.pending.Swap(false)
}

// watchLoop monitors for resize signals
func (r *ResizeWatcher) watchLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			core.HandleCrash(rec)
		}
	}()

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			// Repeated signals before the next drain collapse into one redraw
			r.Notify()
			log.Printf("terminal: SIGWINCH received")
		}
	}
}
