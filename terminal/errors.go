package terminal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotATerminal is returned when raw mode is requested on a non-interactive fd
	ErrNotATerminal = errors.New("not a terminal")

	// ErrTerminalControl is returned when a terminal attribute get/set call fails
	ErrTerminalControl = errors.New("terminal control failed")

	// ErrGeometryQuery is returned when the cursor position report is missing or malformed
	ErrGeometryQuery = errors.New("geometry query failed")
)

// ModeError describes a failed raw mode transition
type ModeError struct {
	Op  string
	Err error
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *ModeError) Unwrap() error {
	return e.Err
}

// GeometryError describes a failed cursor position protocol exchange
type GeometryError struct {
	Reason string
	Err    error // underlying I/O or parse error, may be nil
}

func (e *GeometryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrGeometryQuery, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrGeometryQuery, e.Reason)
}

func (e *GeometryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrGeometryQuery}
	}
	return []error{ErrGeometryQuery, e.Err}
}
