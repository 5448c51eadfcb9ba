package editor

import (
	"errors"
	"fmt"
)

const (
	// ProductName and Version appear in the welcome banner
	ProductName = "Common Lisp mINimal Editor"
	Version     = "0.0.1"

	// TabStop is the column multiple a TAB advances to
	TabStop = 8

	// StatusRows is the number of terminal rows reserved below the viewport
	StatusRows = 2

	// MaxStatusMessage bounds the transient status message length in bytes
	MaxStatusMessage = 80

	// NoName is shown in the status bar when the document has no filename
	NoName = "<no-name>"
)

// ErrViewportTooSmall is returned when the terminal leaves no rows for the document
var ErrViewportTooSmall = errors.New("terminal too small for viewport")

// Row is one logical line of the document
type Row struct {
	Chars  []byte // authoritative content
	Render []byte // Chars with TABs expanded to TabStop columns
}

// NewRow creates a row and derives its rendered form
func NewRow(chars []byte) Row {
	r := Row{Chars: chars}
	r.Update()
	return r
}

// Update regenerates Render from Chars. Must be called after every Chars change.
func (r *Row) Update() {
	tabs := 0
	for _, c := range r.Chars {
		if c == '\t' {
			tabs++
		}
	}

	render := make([]byte, 0, len(r.Chars)+tabs*(TabStop-1))
	for _, c := range r.Chars {
		if c == '\t' {
			render = append(render, ' ')
			for len(render)%TabStop != 0 {
				render = append(render, ' ')
			}
			continue
		}
		render = append(render, c)
	}
	r.Render = render
}

// Size returns the stored content length
func (r *Row) Size() int {
	return len(r.Chars)
}

// RenderSize returns the rendered length, never less than Size
func (r *Row) RenderSize() int {
	return len(r.Render)
}

// State is the editor state shared by the renderer, dispatcher and editing hooks.
// One instance is owned by main and passed explicitly.
type State struct {
	CursorX, CursorY int // view-relative, 0-based

	Rows         []Row
	RowOffset    int
	ColumnOffset int

	// Viewport size, status rows excluded
	ScreenRows    int
	ScreenColumns int

	// RawMode mirrors the terminal controller: true only between a successful
	// raw mode entry and the matching restore
	RawMode bool
	Dirty   bool

	Filename      string
	StatusMessage string
}

// NewState creates an empty document state
func NewState() *State {
	return &State{}
}

// Resize applies raw terminal dimensions: reserves the status rows and clamps
// the cursor into the new viewport. A terminal with no room for the document
// still gets a one-row viewport, reported through ErrViewportTooSmall.
func (s *State) Resize(rows, cols int) error {
	var err error
	viewRows := rows - StatusRows
	if viewRows < 1 || cols < 1 {
		err = fmt.Errorf("%w: %dx%d", ErrViewportTooSmall, cols, rows)
	}
	s.ScreenRows = max(viewRows, 1)
	s.ScreenColumns = max(cols, 1)

	if s.CursorY >= s.ScreenRows {
		s.CursorY = s.ScreenRows - 1
	}
	if s.CursorX >= s.ScreenColumns {
		s.CursorX = s.ScreenColumns - 1
	}
	return err
}

// CurrentRow returns the row under the cursor, or nil past the end of the document
func (s *State) CurrentRow() *Row {
	i := s.RowOffset + s.CursorY
	if i < 0 || i >= len(s.Rows) {
		return nil
	}
	return &s.Rows[i]
}

// DisplayName returns the filename for the status bar
func (s *State) DisplayName() string {
	if s.Filename == "" {
		return NoName
	}
	return s.Filename
}

// SetStatusMessage sets the transient message, truncated to MaxStatusMessage bytes
func (s *State) SetStatusMessage(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > MaxStatusMessage {
		msg = msg[:MaxStatusMessage]
	}
	s.StatusMessage = msg
}
