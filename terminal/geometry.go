package terminal

import (
	"bytes"
	"io"
	"log"
	"strconv"
)

// SizeFunc reports the terminal size as seen by the operating system
type SizeFunc func() (rows, cols int, err error)

// maxReportLen bounds the cursor position report read
const maxReportLen = 32

// Resolver determines the terminal row/column count.
// The OS query is tried first; when it fails or reports zero columns the
// cursor is moved to the far bottom-right corner and queried instead.
type Resolver struct {
	in    io.Reader
	out   io.Writer
	query SizeFunc
}

// NewResolver creates a resolver reading reports from in and writing queries to out.
// query may be nil, in which case the cursor protocol is always used.
func NewResolver(in io.Reader, out io.Writer, query SizeFunc) *Resolver {
	return &Resolver{in: in, out: out, query: query}
}

// Resolve returns the raw terminal dimensions, status rows not subtracted
func (r *Resolver) Resolve() (rows, cols int, err error) {
	if r.query != nil {
		rows, cols, err := r.query()
		if err == nil && cols > 0 {
			return rows, cols, nil
		}
		log.Printf("terminal: OS size query unusable (rows=%d cols=%d err=%v), probing cursor", rows, cols, err)
	}

	origRow, origCol, err := r.CursorPosition()
	if err != nil {
		return 0, 0, err
	}

	if _, err := r.out.Write(CursorFarCorner); err != nil {
		return 0, 0, &GeometryError{Reason: "move to far corner", Err: err}
	}

	rows, cols, err = r.CursorPosition()
	if err != nil {
		return 0, 0, err
	}

	// Restoring the original position is best-effort
	var seq [32]byte
	if _, err := r.out.Write(AppendCursorPos(seq[:0], origRow, origCol)); err != nil {
		log.Printf("terminal: restore cursor after size query: %v", err)
	}

	log.Printf("terminal: queried size %dx%d", cols, rows)
	return rows, cols, nil
}

// CursorPosition requests a cursor position report and parses the reply (1-indexed)
func (r *Resolver) CursorPosition() (row, col int, err error) {
	if _, err := r.out.Write(CursorReport); err != nil {
		return 0, 0, &GeometryError{Reason: "request cursor report", Err: err}
	}

	// Reply: ESC [ rows ; cols R
	var buf [maxReportLen]byte
	i := 0
	for i < len(buf)-1 {
		n, err := r.in.Read(buf[i : i+1])
		if err != nil || n != 1 {
			break
		}
		if buf[i] == 'R' {
			break
		}
		i++
	}

	return parseCursorReport(buf[:i])
}

// parseCursorReport parses "ESC [ rows ; cols" with the terminating R removed
func parseCursorReport(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, &GeometryError{Reason: "no cursor report"}
	}
	if len(b) < 2 || b[0] != 0x1b || b[1] != '[' {
		return 0, 0, &GeometryError{Reason: "malformed cursor report " + strconv.Quote(string(b))}
	}

	rowPart, colPart, ok := bytes.Cut(b[2:], []byte{';'})
	if !ok {
		return 0, 0, &GeometryError{Reason: "malformed cursor report " + strconv.Quote(string(b))}
	}

	row, err := strconv.Atoi(string(rowPart))
	if err != nil {
		return 0, 0, &GeometryError{Reason: "bad row in cursor report", Err: err}
	}
	col, err := strconv.Atoi(string(colPart))
	if err != nil {
		return 0, 0, &GeometryError{Reason: "bad column in cursor report", Err: err}
	}
	if row < 1 || col < 1 {
		return 0, 0, &GeometryError{Reason: "cursor report out of range " + strconv.Quote(string(b))}
	}

	return row, col, nil
}
