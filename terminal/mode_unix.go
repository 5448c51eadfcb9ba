//go:build unix

package terminal

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/cline/core"
)

// Controller enters and leaves raw mode on a single terminal fd.
// The original attributes are captured once, before the first raw mode entry,
// and restored by Disable or by the process exit hook registered on Enable.
type Controller struct {
	fd int

	mu       sync.Mutex
	orig     *unix.Termios
	enabled  bool
	hookOnce sync.Once

	// Called with the new mode after every successful transition
	onChange func(enabled bool)
}

// NewController creates a controller for the given input file
func NewController(in *os.File) *Controller {
	return &Controller{fd: int(in.Fd())}
}

// SetModeListener installs fn to mirror raw mode transitions.
// fn runs with the controller lock held and must not call back into it.
func (c *Controller) SetModeListener(fn func(enabled bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Enable switches the terminal to raw mode. Calling it while enabled is a no-op.
func (c *Controller) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return nil
	}

	if !term.IsTerminal(c.fd) {
		return &ModeError{Op: "enable", Err: ErrNotATerminal}
	}

	if c.orig == nil {
		var orig unix.Termios
		if err := termios.Tcgetattr(uintptr(c.fd), &orig); err != nil {
			return &ModeError{Op: "tcgetattr", Err: fmt.Errorf("%w: %v", ErrTerminalControl, err)}
		}
		c.orig = &orig
	}

	raw := makeRaw(*c.orig)
	if err := termios.Tcsetattr(uintptr(c.fd), termios.TCSAFLUSH, &raw); err != nil {
		return &ModeError{Op: "tcsetattr", Err: fmt.Errorf("%w: %v", ErrTerminalControl, err)}
	}
	c.enabled = true
	if c.onChange != nil {
		c.onChange(true)
	}

	c.hookOnce.Do(func() {
		core.OnExit(func() {
			if err := c.Disable(); err != nil {
				log.Printf("terminal: restore on exit: %v", err)
			}
		})
	})

	log.Printf("terminal: raw mode enabled on fd %d", c.fd)
	return nil
}

// Disable restores the captured attributes. Safe to call multiple times.
func (c *Controller) Disable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return nil
	}

	if err := termios.Tcsetattr(uintptr(c.fd), termios.TCSAFLUSH, c.orig); err != nil {
		return &ModeError{Op: "restore", Err: fmt.Errorf("%w: %v", ErrTerminalControl, err)}
	}
	c.enabled = false
	if c.onChange != nil {
		c.onChange(false)
	}

	log.Printf("terminal: raw mode disabled on fd %d", c.fd)
	return nil
}

// Enabled reports whether raw mode is currently active
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// makeRaw derives raw mode attributes from a snapshot
func makeRaw(t unix.Termios) unix.Termios {
	// Input: no break, no CR to NL, no parity check, no strip, no start/stop control
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// Output: no post processing
	t.Oflag &^= unix.OPOST
	// Control: 8 bit characters
	t.Cflag |= unix.CS8
	// Local: no echo, no canonical mode, no extended functions, no signal chars
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG

	// Return as soon as any byte is available, or after 100ms with none
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 1
	return t
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery when no snapshot is reachable; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := tty.Fd()
		var t unix.Termios
		if err := termios.Tcgetattr(fd, &t); err == nil {
			t.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			t.Iflag |= unix.ICRNL
			t.Oflag |= unix.OPOST
			termios.Tcsetattr(fd, termios.TCSANOW, &t)
		}
	}
}
