package editor

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"

	"github.com/lixenwraith/cline/input"
	"github.com/lixenwraith/cline/status"
)

// DefaultQuitTimes is the number of ESC presses that quit
const DefaultQuitTimes = 3

var (
	// ErrQuit is returned by Run when the user quits
	ErrQuit = errors.New("quit")

	// ErrInterrupted is returned by Run when a termination signal is pending
	ErrInterrupted = errors.New("interrupted")
)

// Renderer draws the state to the output device
type Renderer interface {
	Refresh(st *State) error
}

// KeyReader yields decoded keys
type KeyReader interface {
	ReadKey() (input.Key, error)
}

// Geometry resolves the raw terminal size
type Geometry interface {
	Resolve() (rows, cols int, err error)
}

// ResizeSource reports and clears a pending resize
type ResizeSource interface {
	Drain() bool
}

// InterruptSource reports a pending termination request
type InterruptSource interface {
	Pending() bool
}

// Phase is the dispatcher lifecycle state
type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseQuitting
)

// Dispatcher runs the refresh/read/dispatch loop
type Dispatcher struct {
	state  *State
	screen Renderer
	keys   KeyReader
	hooks  Hooks

	geometry  Geometry
	resize    ResizeSource
	interrupt InterruptSource

	phase Phase

	// Armed once per dispatcher; non-ESC keys do not re-arm it
	quitRemaining int

	resizes  *atomic.Int64
	viewport *status.AtomicString
}

// NewDispatcher wires the loop. quitTimes below 1 falls back to DefaultQuitTimes.
func NewDispatcher(st *State, screen Renderer, keys KeyReader, hooks Hooks, quitTimes int) *Dispatcher {
	if quitTimes < 1 {
		quitTimes = DefaultQuitTimes
	}
	d := &Dispatcher{
		state:         st,
		screen:        screen,
		keys:          keys,
		hooks:         hooks,
		quitRemaining: quitTimes,
	}
	d.SetStatus(status.NewRegistry())
	return d
}

// SetStatus publishes resize counters into reg
func (d *Dispatcher) SetStatus(reg *status.Registry) {
	d.resizes = reg.Ints.Get("editor.resizes")
	d.viewport = reg.Strings.Get("editor.viewport")
	d.publishViewport()
}

func (d *Dispatcher) publishViewport() {
	d.viewport.Store(strconv.Itoa(d.state.ScreenColumns) + "x" + strconv.Itoa(d.state.ScreenRows))
}

// SetResize enables resize handling at the top of each loop iteration
func (d *Dispatcher) SetResize(geo Geometry, src ResizeSource) {
	d.geometry = geo
	d.resize = src
}

// SetInterrupt makes Run stop with ErrInterrupted once src reports pending.
// The check runs at the top of each iteration, before anything is drawn.
func (d *Dispatcher) SetInterrupt(src InterruptSource) {
	d.interrupt = src
}

// Phase returns the current lifecycle state
func (d *Dispatcher) Phase() Phase {
	return d.phase
}

// Run loops until the user quits (ErrQuit), a termination signal is pending
// (ErrInterrupted) or a refresh or read fails
func (d *Dispatcher) Run() error {
	for {
		if d.interrupt != nil && d.interrupt.Pending() {
			d.phase = PhaseQuitting
			log.Printf("editor: interrupted")
			return ErrInterrupted
		}

		d.handleResize()

		if err := d.screen.Refresh(d.state); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}

		key, err := d.keys.ReadKey()
		if err != nil {
			return err
		}

		if err := d.Dispatch(key); err != nil {
			return err
		}
	}
}

// Dispatch routes one key to an editing hook or the quit guard.
// It returns ErrQuit once the quit guard is exhausted.
func (d *Dispatcher) Dispatch(k input.Key) error {
	switch {
	case k == input.KeyNone:
	case k == input.KeyEnter:
		d.hooks.InsertLine()
	case k == input.KeyBackspace || k == input.KeyDel:
		d.hooks.DeleteChar()
	case k.IsArrow():
		d.hooks.MoveCursor(k)
	case k == input.KeyEsc:
		return d.escape()
	case k.IsByte():
		d.hooks.InsertChar(byte(k))
	default:
		log.Printf("editor: ignoring key %v", k)
	}
	return nil
}

// escape counts down the quit guard
func (d *Dispatcher) escape() error {
	if d.quitRemaining > 1 {
		d.quitRemaining--
		d.state.SetStatusMessage("Press ESC %d more time(s) to quit", d.quitRemaining)
		return nil
	}
	d.phase = PhaseQuitting
	log.Printf("editor: quitting")
	return ErrQuit
}

// handleResize drains a pending resize and applies the new geometry.
// Failures keep the previous geometry.
func (d *Dispatcher) handleResize() {
	if d.resize == nil || d.geometry == nil || !d.resize.Drain() {
		return
	}

	rows, cols, err := d.geometry.Resolve()
	if err != nil {
		log.Printf("editor: resize: %v", err)
		return
	}
	if err := d.state.Resize(rows, cols); err != nil {
		log.Printf("editor: resize: %v", err)
	}
	d.resizes.Add(1)
	d.publishViewport()
	log.Printf("editor: viewport %dx%d", d.state.ScreenColumns, d.state.ScreenRows)
}
