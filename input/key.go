// @focus: #sys { io } #input { keys }
package input

// Key is a decoded logical key.
// Values 0-255 are literal bytes; synthesized keys live at 1000 and above so
// they cannot collide with any byte value.
type Key int

// Literal keys reported directly by the terminal
const (
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyEsc       Key = 27
	KeyBackspace Key = 127
)

// Synthesized keys decoded from escape sequences
const (
	KeyArrowLeft Key = 1000 + iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDel
)

// KeyNone means no key was produced (idle wake-up)
const KeyNone Key = -1

// IsByte reports whether k is a literal byte event
func (k Key) IsByte() bool {
	return k >= 0 && k <= 0xff
}

// IsArrow reports whether k is one of the four arrow keys
func (k Key) IsArrow() bool {
	return k >= KeyArrowLeft && k <= KeyArrowDown
}
