package style

import "strings"

// State is a widget interaction bitmask.
type State uint8

const (
	StateHover State = 1 << iota
	StateActive
	StateFocus
	StateDisabled
	StateChecked
)

// Matches reports whether an entry pushed for want applies to a widget in
// state got. A zero want applies unconditionally.
func (want State) Matches(got State) bool {
	return want == 0 || want&got == want
}

func (s State) String() string {
	if s == 0 {
		return "normal"
	}
	var parts []string
	for _, n := range []struct {
		bit  State
		name string
	}{
		{StateHover, "hover"},
		{StateActive, "active"},
		{StateFocus, "focus"},
		{StateDisabled, "disabled"},
		{StateChecked, "checked"},
	} {
		if s&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseState maps a state name to its bit.
func ParseState(name string) (State, bool) {
	switch name {
	case "hover":
		return StateHover, true
	case "active":
		return StateActive, true
	case "focus":
		return StateFocus, true
	case "disabled":
		return StateDisabled, true
	case "checked":
		return StateChecked, true
	}
	return 0, false
}

// TextType selects the typographic role of text-bearing widgets.
type TextType uint8

const (
	TextBody TextType = iota
	TextHeading
	TextCaption
	TextMono
)

// Entry is one pushed style with the state it applies to.
type Entry struct {
	Style *Style
	State State
}

// Snapshot is the style context a widget saw when it was declared: the
// pushed entries in order, the innermost text type, and whether the stack
// was being ignored.
type Snapshot struct {
	Entries  []Entry
	TextType TextType
	Ignored  bool
}

// Equal compares two snapshots entry by entry (style pointers by identity).
func (s Snapshot) Equal(o Snapshot) bool {
	if s.TextType != o.TextType || s.Ignored != o.Ignored || len(s.Entries) != len(o.Entries) {
		return false
	}
	for i := range s.Entries {
		if s.Entries[i] != o.Entries[i] {
			return false
		}
	}
	return true
}

// Clone returns a snapshot that does not alias the stack it was taken from.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Entries = append([]Entry(nil), s.Entries...)
	return out
}
