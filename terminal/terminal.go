//go:build unix

package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if the Controller cannot be reached normally
func EmergencyReset(w io.Writer) {
	w.Write(SGR0)
	w.Write(CursorShow)
	w.Write(CRLF)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
