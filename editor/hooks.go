package editor

import (
	"github.com/lixenwraith/cline/input"
)

// Hooks are the document editing operations the dispatcher forwards keys to.
// Implementations own all mutation of State.Rows.
type Hooks interface {
	InsertChar(c byte)
	DeleteChar()
	InsertLine()
	MoveCursor(k input.Key)
}

// ReadOnlyHooks reports every editing request in the status line and leaves
// the document untouched
type ReadOnlyHooks struct {
	state *State
}

var _ Hooks = (*ReadOnlyHooks)(nil)

// NewReadOnlyHooks creates hooks reporting into st
func NewReadOnlyHooks(st *State) *ReadOnlyHooks {
	return &ReadOnlyHooks{state: st}
}

func (h *ReadOnlyHooks) InsertChar(c byte) {
	h.state.SetStatusMessage("read-only: insert %q ignored", c)
}

func (h *ReadOnlyHooks) DeleteChar() {
	h.state.SetStatusMessage("read-only: delete ignored")
}

func (h *ReadOnlyHooks) InsertLine() {
	h.state.SetStatusMessage("read-only: new line ignored")
}

func (h *ReadOnlyHooks) MoveCursor(k input.Key) {
	h.state.SetStatusMessage("read-only: move %v ignored", k)
}
