// @lixen: #focus{sys[term,io,output]}
package render

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/lixenwraith/cline/editor"
	"github.com/lixenwraith/cline/status"
	"github.com/lixenwraith/cline/terminal"
)

const (
	// frameOverhead covers the per-frame escape sequences and status lines
	frameOverhead = 256

	// maxStatusName bounds the filename in the status bar, in bytes
	maxStatusName = 20
)

// Screen composes the editor state into one buffered frame per refresh
type Screen struct {
	out           io.Writer
	maxFrameBytes int

	// Cached metric pointers
	frames     *atomic.Int64
	frameBytes *atomic.Int64
	dropped    *atomic.Int64
	frameMsMax *status.AtomicFloat
}

var _ editor.Renderer = (*Screen)(nil)

// NewScreen creates a screen writing frames to out.
// maxFrameBytes bounds a frame; 0 means unlimited.
func NewScreen(out io.Writer, maxFrameBytes int) *Screen {
	s := &Screen{out: out, maxFrameBytes: maxFrameBytes}
	s.SetStatus(status.NewRegistry())
	return s
}

// SetStatus publishes frame counters into reg
func (s *Screen) SetStatus(reg *status.Registry) {
	s.frames = reg.Ints.Get("render.frames")
	s.frameBytes = reg.Ints.Get("render.bytes")
	s.dropped = reg.Ints.Get("render.frames_dropped")
	s.frameMsMax = reg.Floats.Get("render.frame_ms_max")
}

// Refresh draws the whole screen with a single write.
// A frame that exceeds the byte limit is discarded and nothing is written.
func (s *Screen) Refresh(st *editor.State) error {
	start := time.Now()

	// Each row carries up to ScreenColumns bytes plus its trailing sequences
	hint := st.ScreenRows*(st.ScreenColumns+len(terminal.DefaultFg)+len(terminal.EraseLineRight)+2) + frameOverhead
	buf := NewBuffer(hint, s.maxFrameBytes)
	defer buf.Release()

	buf.Append(terminal.CursorHide)
	buf.Append(terminal.CursorHome)

	s.drawRows(buf, st)
	s.drawStatusBar(buf, st)
	s.drawMessageBar(buf, st)
	s.drawCursor(buf, st)

	buf.Append(terminal.CursorShow)

	if err := buf.Err(); err != nil {
		s.dropped.Add(1)
		log.Printf("render: frame dropped: %v", err)
		return err
	}

	n, err := buf.WriteTo(s.out)
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	s.frames.Add(1)
	s.frameBytes.Add(n)
	s.frameMsMax.Max(float64(time.Since(start).Microseconds()) / 1000)
	return nil
}

// drawRows renders the viewport rows, filler and welcome banner
func (s *Screen) drawRows(buf *Buffer, st *editor.State) {
	for y := 0; y < st.ScreenRows; y++ {
		fileRow := st.RowOffset + y

		if fileRow >= len(st.Rows) {
			if len(st.Rows) == 0 && y == st.ScreenRows/3 {
				s.drawWelcome(buf, st.ScreenColumns)
			} else {
				buf.AppendByte('~')
			}
			buf.Append(terminal.EraseLineRight)
			buf.Append(terminal.CRLF)
			continue
		}

		r := &st.Rows[fileRow]
		n := r.RenderSize() - st.ColumnOffset
		if n > 0 {
			if n > st.ScreenColumns {
				n = st.ScreenColumns
			}
			buf.Append(r.Render[st.ColumnOffset : st.ColumnOffset+n])
		}

		buf.Append(terminal.DefaultFg)
		buf.Append(terminal.EraseLineRight)
		buf.Append(terminal.CRLF)
	}
}

// drawWelcome centers the banner; the first padding column keeps the filler '~'
func (s *Screen) drawWelcome(buf *Buffer, cols int) {
	welcome := fmt.Sprintf("%s -- v%s", editor.ProductName, editor.Version)
	if len(welcome) > cols {
		welcome = welcome[:cols]
	}

	padding := (cols - len(welcome)) / 2
	if padding > 0 {
		buf.AppendByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		buf.AppendByte(' ')
	}
	buf.AppendString(welcome)
}

// drawStatusBar renders the inverse-video file summary with the position right-aligned
func (s *Screen) drawStatusBar(buf *Buffer, st *editor.State) {
	buf.Append(terminal.EraseLineRight)
	buf.Append(terminal.ReverseOn)

	modified := ""
	if st.Dirty {
		modified = "(modified)"
	}
	// Byte clip: %.20s would count runes
	name := st.DisplayName()
	if len(name) > maxStatusName {
		name = name[:maxStatusName]
	}
	summary := fmt.Sprintf("%s - %d lines %s", name, len(st.Rows), modified)
	position := fmt.Sprintf("%d/%d", st.RowOffset+st.CursorY+1, len(st.Rows))

	cols := st.ScreenColumns
	if len(summary) > cols {
		summary = summary[:cols]
	}
	buf.AppendString(summary)

	// Pad until the position text ends exactly on the last column
	for n := len(summary); n < cols; n++ {
		if cols-n == len(position) {
			buf.AppendString(position)
			break
		}
		buf.AppendByte(' ')
	}

	buf.Append(terminal.SGR0)
	buf.Append(terminal.CRLF)
}

// drawMessageBar renders the transient status message without a trailing newline
func (s *Screen) drawMessageBar(buf *Buffer, st *editor.State) {
	buf.Append(terminal.EraseLineRight)
	if st.StatusMessage != "" {
		buf.AppendString(ansi.Truncate(st.StatusMessage, st.ScreenColumns, ""))
	}
}

// drawCursor positions the cursor, expanding TABs between the column offset and the cursor
func (s *Screen) drawCursor(buf *Buffer, st *editor.State) {
	buf.AppendCursorPos(st.CursorY+1, CursorColumn(st))
}

// CursorColumn returns the 1-based on-screen cursor column
func CursorColumn(st *editor.State) int {
	cx := 0
	if r := st.CurrentRow(); r != nil {
		end := st.ColumnOffset + st.CursorX
		for j := st.ColumnOffset; j < end; j++ {
			if j < r.Size() && r.Chars[j] == '\t' {
				cx += (editor.TabStop - 1) - (cx % editor.TabStop)
			}
			cx++
		}
	} else {
		cx = st.CursorX
	}
	return cx + 1
}
