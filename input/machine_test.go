package input

import (
	"testing"
)

func TestStepTable(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		digit  byte
		b      byte
		expect Transition
	}{
		{"Literal byte", StateStart, 0, 'a', Transition{Next: StateStart, Key: 'a', Action: ActionEmit}},
		{"Enter byte", StateStart, 0, 13, Transition{Next: StateStart, Key: KeyEnter, Action: ActionEmit}},
		{"ESC starts sequence", StateStart, 0, 27, Transition{Next: StateSawEsc, Action: ActionWait}},
		{"Bracket after ESC", StateSawEsc, 0, '[', Transition{Next: StateSawBracket, Action: ActionWait}},
		{"Other after ESC", StateSawEsc, 0, 'O', Transition{Next: StateSawOther, Action: ActionWait}},
		{"Arrow up", StateSawBracket, 0, 'A', Transition{Next: StateStart, Key: KeyArrowUp, Action: ActionEmit}},
		{"Arrow down", StateSawBracket, 0, 'B', Transition{Next: StateStart, Key: KeyArrowDown, Action: ActionEmit}},
		{"Arrow right", StateSawBracket, 0, 'C', Transition{Next: StateStart, Key: KeyArrowRight, Action: ActionEmit}},
		{"Arrow left", StateSawBracket, 0, 'D', Transition{Next: StateStart, Key: KeyArrowLeft, Action: ActionEmit}},
		{"Digit after bracket", StateSawBracket, 0, '3', Transition{Next: StateSawDigit, Action: ActionWait}},
		{"Unknown final", StateSawBracket, 0, 'Z', Transition{Next: StateStart, Action: ActionDrop}},
		{"Delete", StateSawDigit, '3', '~', Transition{Next: StateStart, Key: KeyDel, Action: ActionEmit}},
		{"Unknown tilde code", StateSawDigit, '5', '~', Transition{Next: StateStart, Action: ActionDrop}},
		{"Digit without tilde", StateSawDigit, '3', 'x', Transition{Next: StateStart, Action: ActionDrop}},
		{"Second byte after other", StateSawOther, 0, 'H', Transition{Next: StateStart, Action: ActionDrop}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Step(tt.state, tt.digit, tt.b)
			if got != tt.expect {
				t.Errorf("Expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestStepTimeout(t *testing.T) {
	tests := []struct {
		state  State
		expect Transition
	}{
		{StateStart, Transition{Next: StateStart, Action: ActionWait}},
		{StateSawEsc, Transition{Next: StateStart, Key: KeyEsc, Action: ActionEmit}},
		{StateSawBracket, Transition{Next: StateStart, Key: KeyEsc, Action: ActionEmit}},
		{StateSawOther, Transition{Next: StateStart, Key: KeyEsc, Action: ActionEmit}},
		{StateSawDigit, Transition{Next: StateStart, Action: ActionDrop}},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			got := StepTimeout(tt.state)
			if got != tt.expect {
				t.Errorf("Expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestMachineRemembersDigit(t *testing.T) {
	var m Machine
	for _, b := range []byte{27, '[', '3'} {
		if tr := m.Feed(b); tr.Action != ActionWait {
			t.Fatalf("Expected wait on %q, got %+v", b, tr)
		}
	}
	if m.State() != StateSawDigit {
		t.Fatalf("Expected state digit, got %v", m.State())
	}

	tr := m.Feed('~')
	if tr.Action != ActionEmit || tr.Key != KeyDel {
		t.Errorf("Expected delete, got %+v", tr)
	}
	if m.State() != StateStart {
		t.Errorf("Expected state start, got %v", m.State())
	}
}

func TestSynthesizedKeysDisjointFromBytes(t *testing.T) {
	for _, k := range []Key{KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown, KeyDel, KeyNone} {
		if k.IsByte() {
			t.Errorf("Expected %v outside byte range", k)
		}
	}
	for b := 0; b <= 0xff; b++ {
		if Key(b).IsArrow() {
			t.Errorf("Byte %d must not be an arrow", b)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key    Key
		expect string
	}{
		{KeyEsc, "escape"},
		{KeyArrowUp, "up"},
		{KeyDel, "delete"},
		{'a', "a"},
		{1, "ctrl_A"},
		{0xe9, "0xe9"},
		{Key(5000), "key(5000)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.expect {
			t.Errorf("Expected %q, got %q", tt.expect, got)
		}
	}
}
