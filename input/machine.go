package input

// State is the escape sequence decoder state
type State uint8

const (
	StateStart      State = iota // no pending bytes
	StateSawEsc                  // ESC read
	StateSawBracket              // ESC [ read
	StateSawDigit                // ESC [ <digit> read
	StateSawOther                // ESC <non-bracket> read, one byte left to consume
)

var stateNames = [...]string{"start", "esc", "bracket", "digit", "other"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Action tells the reader what a transition produced
type Action uint8

const (
	ActionWait Action = iota // need more bytes
	ActionEmit               // Transition.Key is a complete event
	ActionDrop               // sequence consumed, no event
)

// Transition is one row of the decoder table
type Transition struct {
	Next   State
	Key    Key
	Action Action
}

// csiFinal maps ESC [ <final> to synthesized keys
var csiFinal = map[byte]Key{
	'A': KeyArrowUp,
	'B': KeyArrowDown,
	'C': KeyArrowRight,
	'D': KeyArrowLeft,
}

// tildeCodes maps ESC [ <digit> ~ to synthesized keys
var tildeCodes = map[byte]Key{
	'3': KeyDel,
}

// Step is the pure transition function. digit is the pending digit while in
// StateSawDigit and is ignored otherwise.
func Step(s State, digit, b byte) Transition {
	switch s {
	case StateStart:
		if b == byte(KeyEsc) {
			return Transition{Next: StateSawEsc, Action: ActionWait}
		}
		return Transition{Next: StateStart, Key: Key(b), Action: ActionEmit}

	case StateSawEsc:
		if b == '[' {
			return Transition{Next: StateSawBracket, Action: ActionWait}
		}
		return Transition{Next: StateSawOther, Action: ActionWait}

	case StateSawBracket:
		if b >= '0' && b <= '9' {
			return Transition{Next: StateSawDigit, Action: ActionWait}
		}
		if k, ok := csiFinal[b]; ok {
			return Transition{Next: StateStart, Key: k, Action: ActionEmit}
		}
		return Transition{Next: StateStart, Action: ActionDrop}

	case StateSawDigit:
		if b == '~' {
			if k, ok := tildeCodes[digit]; ok {
				return Transition{Next: StateStart, Key: k, Action: ActionEmit}
			}
		}
		return Transition{Next: StateStart, Action: ActionDrop}
	}

	// StateSawOther and anything unexpected
	return Transition{Next: StateStart, Action: ActionDrop}
}

// StepTimeout is the transition taken when a read times out with no byte
func StepTimeout(s State) Transition {
	switch s {
	case StateSawEsc, StateSawBracket, StateSawOther:
		// A lone ESC keypress: the follow-up bytes never arrived
		return Transition{Next: StateStart, Key: KeyEsc, Action: ActionEmit}
	case StateSawDigit:
		return Transition{Next: StateStart, Action: ActionDrop}
	}
	return Transition{Next: StateStart, Action: ActionWait}
}

// Machine drives Step over a byte stream
type Machine struct {
	state State
	digit byte
}

// State returns the current decoder state
func (m *Machine) State() State {
	return m.state
}

// Reset discards any partial sequence
func (m *Machine) Reset() {
	m.state = StateStart
	m.digit = 0
}

// Feed advances the machine by one byte
func (m *Machine) Feed(b byte) Transition {
	t := Step(m.state, m.digit, b)
	if t.Next == StateSawDigit {
		m.digit = b
	}
	m.state = t.Next
	return t
}

// Timeout advances the machine on an empty read
func (m *Machine) Timeout() Transition {
	t := StepTimeout(m.state)
	m.state = t.Next
	return t
}
