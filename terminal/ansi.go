// @focus: #terminal { ansi }
package terminal

import (
	"strconv"
)

// Pre-allocated ANSI sequences (avoid allocations during render)
var (
	// Cursor control
	CursorHide = []byte("\x1b[?25l")
	CursorShow = []byte("\x1b[?25h")
	CursorHome = []byte("\x1b[H")

	// Line and attribute control
	EraseLineRight = []byte("\x1b[0K")
	DefaultFg      = []byte("\x1b[39m")
	ReverseOn      = []byte("\x1b[7m")
	SGR0           = []byte("\x1b[0m")

	// Geometry probing
	CursorReport    = []byte("\x1b[6n")
	CursorFarCorner = []byte("\x1b[999C\x1b[999B") // clamped by the real terminal edges

	CRLF = []byte("\r\n")
)

// AppendCursorPos appends a cursor positioning sequence (1-indexed input)
func AppendCursorPos(dst []byte, row, col int) []byte {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	dst = append(dst, 0x1b, '[')
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	return append(dst, 'H')
}
