//go:build unix

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// TTY is the raw input/output fd pair of the controlling terminal.
// Read bypasses os.File so that a raw mode timeout surfaces as a zero-byte
// read instead of io.EOF.
type TTY struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
}

// NewTTY wraps the given input and output files
func NewTTY(in, out *os.File) *TTY {
	return &TTY{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

// Read performs a single raw read. Zero bytes with a nil error means the
// VTIME timeout elapsed (or the read was interrupted) with no input.
func (t *TTY) Read(p []byte) (int, error) {
	n, err := unix.Read(t.inFd, p)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

// Write writes p to the output device in one call
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// WindowSize queries the OS for the output terminal dimensions
func (t *TTY) WindowSize() (rows, cols int, err error) {
	return windowSize(t.outFd)
}

// windowSize returns the terminal size for a given fd
func windowSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}
