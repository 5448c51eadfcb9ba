package render

import (
	"errors"
	"io"
	"strconv"

	"github.com/lixenwraith/cline/terminal"
)

// ErrAllocation is returned when a frame outgrows the buffer limit
var ErrAllocation = errors.New("render buffer: allocation failure")

// Buffer is an append-only byte accumulator for one screen refresh.
// All output of a frame is batched here and written with a single call.
// The first failure is sticky: later appends are no-ops returning the same error.
type Buffer struct {
	b     []byte
	limit int // 0 = unlimited
	err   error
}

// NewBuffer creates a buffer with an initial capacity hint and an optional byte limit
func NewBuffer(sizeHint, limit int) *Buffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	if limit > 0 && sizeHint > limit {
		sizeHint = limit
	}
	return &Buffer{b: make([]byte, 0, sizeHint), limit: limit}
}

// Append grows the buffer by exactly len(p). On failure the content is left unchanged.
func (b *Buffer) Append(p []byte) error {
	if b.err != nil {
		return b.err
	}
	if b.limit > 0 && len(b.b)+len(p) > b.limit {
		b.err = ErrAllocation
		return b.err
	}
	b.b = append(b.b, p...)
	return nil
}

// AppendString appends the bytes of s
func (b *Buffer) AppendString(s string) error {
	if b.err != nil {
		return b.err
	}
	if b.limit > 0 && len(b.b)+len(s) > b.limit {
		b.err = ErrAllocation
		return b.err
	}
	b.b = append(b.b, s...)
	return nil
}

// AppendByte appends a single byte
func (b *Buffer) AppendByte(c byte) error {
	return b.Append([]byte{c})
}

// AppendInt appends the decimal form of n
func (b *Buffer) AppendInt(n int) error {
	var scratch [20]byte
	return b.Append(strconv.AppendInt(scratch[:0], int64(n), 10))
}

// AppendCursorPos appends a cursor positioning sequence (1-indexed)
func (b *Buffer) AppendCursorPos(row, col int) error {
	var scratch [32]byte
	return b.Append(terminal.AppendCursorPos(scratch[:0], row, col))
}

// Err returns the sticky append error, if any
func (b *Buffer) Err() error {
	return b.err
}

// Len returns the number of buffered bytes
func (b *Buffer) Len() int {
	return len(b.b)
}

// Bytes returns the buffered content. Valid until the next append or Release.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// WriteTo writes the whole buffer to w in a single Write call
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if len(b.b) == 0 {
		return 0, nil
	}
	n, err := w.Write(b.b)
	return int64(n), err
}

// Release drops the backing storage. The buffer must not be reused.
func (b *Buffer) Release() {
	b.b = nil
}
