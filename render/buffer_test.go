package render

import (
	"bytes"
	"errors"
	"testing"
)

// countingWriter records every Write call
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestBufferAppendAssociative(t *testing.T) {
	a := NewBuffer(0, 0)
	a.AppendString("AB")
	a.AppendString("CD")

	b := NewBuffer(0, 0)
	for _, c := range []byte("ABCD") {
		b.AppendByte(c)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("Expected equal content, got %q and %q", a.Bytes(), b.Bytes())
	}
	if a.Len() != 4 {
		t.Errorf("Expected length 4, got %d", a.Len())
	}
}

func TestBufferAppendHelpers(t *testing.T) {
	b := NewBuffer(8, 0)
	b.AppendInt(-42)
	b.AppendByte(' ')
	b.AppendCursorPos(3, 14)

	if got := string(b.Bytes()); got != "-42 \x1b[3;14H" {
		t.Errorf("Expected %q, got %q", "-42 \x1b[3;14H", got)
	}
	if b.Err() != nil {
		t.Errorf("Unexpected error: %v", b.Err())
	}
}

func TestBufferLimitIsSticky(t *testing.T) {
	b := NewBuffer(0, 5)

	if err := b.AppendString("abc"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := b.Append([]byte("def")); !errors.Is(err, ErrAllocation) {
		t.Fatalf("Expected ErrAllocation, got %v", err)
	}
	if got := string(b.Bytes()); got != "abc" {
		t.Errorf("Expected content unchanged, got %q", got)
	}

	// A later append that would fit still fails
	if err := b.AppendByte('x'); !errors.Is(err, ErrAllocation) {
		t.Errorf("Expected sticky ErrAllocation, got %v", err)
	}
	if b.Len() != 3 {
		t.Errorf("Expected length 3, got %d", b.Len())
	}
	if !errors.Is(b.Err(), ErrAllocation) {
		t.Errorf("Expected Err() to report ErrAllocation, got %v", b.Err())
	}
}

func TestBufferWriteToSingleWrite(t *testing.T) {
	b := NewBuffer(0, 0)
	for i := 0; i < 100; i++ {
		b.AppendString("line\r\n")
	}

	w := &countingWriter{}
	n, err := b.WriteTo(w)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if w.writes != 1 {
		t.Errorf("Expected 1 write, got %d", w.writes)
	}
	if n != 600 || w.Len() != 600 {
		t.Errorf("Expected 600 bytes, got n=%d written=%d", n, w.Len())
	}

	empty := NewBuffer(0, 0)
	w2 := &countingWriter{}
	empty.WriteTo(w2)
	if w2.writes != 0 {
		t.Errorf("Expected no write for empty buffer, got %d", w2.writes)
	}
}
