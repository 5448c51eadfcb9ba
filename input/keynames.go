package input

import (
	"fmt"
)

// keyToName maps named keys to readable strings for logs
var keyToName = map[Key]string{
	KeyNone:       "none",
	KeyTab:        "tab",
	KeyEnter:      "enter",
	KeyEsc:        "escape",
	KeyBackspace:  "backspace",
	KeyArrowLeft:  "left",
	KeyArrowRight: "right",
	KeyArrowUp:    "up",
	KeyArrowDown:  "down",
	KeyDel:        "delete",
}

// String returns the key name, the character for printable bytes, or a hex code
func (k Key) String() string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	if k.IsByte() {
		b := byte(k)
		if b >= 0x20 && b < 0x7f {
			return string(rune(b))
		}
		if b < 0x20 {
			return fmt.Sprintf("ctrl_%c", b+'@')
		}
		return fmt.Sprintf("0x%02x", b)
	}
	return fmt.Sprintf("key(%d)", int(k))
}
