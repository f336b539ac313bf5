// Package tape records the operations issued while a frame is declared so
// they can be interpreted again once geometry is final.
package tape

import (
	"fmt"

	"weft/pkg/style"
)

// Kind identifies an operation.
type Kind uint8

const (
	OpAddWidget Kind = iota
	OpAddLayout
	OpEndLayout
	OpPushScrollRegion
	OpPopScrollRegion
	OpPushStyle
	OpPopStyle
	OpPushRegion
	OpPopRegion
	OpPushTextType
	OpPopTextType
	OpIgnoreStyleStack
	OpRestoreStyleStack
)

var kindNames = [...]string{
	OpAddWidget:         "AddWidget",
	OpAddLayout:         "AddLayout",
	OpEndLayout:         "EndLayout",
	OpPushScrollRegion:  "PushScrollRegion",
	OpPopScrollRegion:   "PopScrollRegion",
	OpPushStyle:         "PushStyle",
	OpPopStyle:          "PopStyle",
	OpPushRegion:        "PushRegion",
	OpPopRegion:         "PopRegion",
	OpPushTextType:      "PushTextType",
	OpPopTextType:       "PopTextType",
	OpIgnoreStyleStack:  "IgnoreStyleStack",
	OpRestoreStyleStack: "RestoreStyleStack",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// closers maps each opening kind to the kind that must close it.
var closers = map[Kind]Kind{
	OpAddLayout:        OpEndLayout,
	OpPushScrollRegion: OpPopScrollRegion,
	OpPushStyle:        OpPopStyle,
	OpPushRegion:       OpPopRegion,
	OpPushTextType:     OpPopTextType,
	OpIgnoreStyleStack: OpRestoreStyleStack,
}

// Opens reports whether k starts a nested scope.
func (k Kind) Opens() bool {
	_, ok := closers[k]
	return ok
}

// Closes reports whether k ends a nested scope.
func (k Kind) Closes() bool {
	switch k {
	case OpEndLayout, OpPopScrollRegion, OpPopStyle, OpPopRegion, OpPopTextType, OpRestoreStyleStack:
		return true
	}
	return false
}

// Op is one tape entry. Which payload fields are meaningful depends on Kind.
type Op struct {
	Kind Kind

	// Ref is the item index for AddWidget and the container index for
	// layout, scroll and region operations.
	Ref int32

	// PushStyle
	Entry int32 // index into the frame's style pool
	State style.State

	// PushTextType
	Text style.TextType
}

func (op Op) String() string {
	switch op.Kind {
	case OpAddWidget, OpAddLayout, OpEndLayout, OpPushScrollRegion, OpPushRegion:
		return fmt.Sprintf("%s{%d}", op.Kind, op.Ref)
	case OpPushStyle:
		return fmt.Sprintf("%s{%d,%s}", op.Kind, op.Entry, op.State)
	case OpPushTextType:
		return fmt.Sprintf("%s{%d}", op.Kind, op.Text)
	}
	return op.Kind.String()
}

func AddWidget(item int) Op { return Op{Kind: OpAddWidget, Ref: int32(item)} }
func AddLayout(container int) Op { return Op{Kind: OpAddLayout, Ref: int32(container)} }
func EndLayout(container int) Op { return Op{Kind: OpEndLayout, Ref: int32(container)} }
func PushScroll(container int) Op { return Op{Kind: OpPushScrollRegion, Ref: int32(container)} }
func PopScroll() Op { return Op{Kind: OpPopScrollRegion} }
func PushRegion(container int) Op { return Op{Kind: OpPushRegion, Ref: int32(container)} }
func PopRegion() Op { return Op{Kind: OpPopRegion} }
func PopStyle() Op { return Op{Kind: OpPopStyle} }
func PushText(t style.TextType) Op { return Op{Kind: OpPushTextType, Text: t} }
func PopText() Op { return Op{Kind: OpPopTextType} }
func IgnoreStyles() Op { return Op{Kind: OpIgnoreStyleStack} }
func RestoreStyles() Op { return Op{Kind: OpRestoreStyleStack} }

// PushStyle references entry in the style pool, applied when the widget
// state matches state.
func PushStyle(entry int, state style.State) Op {
	return Op{Kind: OpPushStyle, Entry: int32(entry), State: state}
}

// Tape is an append-only operation log.
type Tape struct {
	ops []Op
}

// New returns a tape with room for capacity ops before it grows.
func New(capacity int) *Tape {
	return &Tape{ops: make([]Op, 0, capacity)}
}

// Append records op and returns its position.
func (t *Tape) Append(op Op) int {
	t.ops = append(t.ops, op)
	return len(t.ops) - 1
}

func (t *Tape) Len() int { return len(t.ops) }
func (t *Tape) Ops() []Op { return t.ops }
func (t *Tape) Reset() { t.ops = t.ops[:0] }

// Slice returns ops [from, to), aliasing the tape.
func (t *Tape) Slice(from, to int) []Op { return t.ops[from:to] }

// BalanceError reports the first operation that breaks nesting.
type BalanceError struct {
	Index  int // position of the offending op, or of the innermost unclosed op
	Op     Op
	Reason string
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("tape: %s at %d: %s", e.Op, e.Index, e.Reason)
}

// Validate checks that every scope-opening op is closed by its matching op
// in LIFO order and that layout pairs name the same container.
func Validate(ops []Op) error {
	var open []int
	for i, op := range ops {
		switch {
		case op.Kind.Opens():
			open = append(open, i)
		case op.Kind.Closes():
			if len(open) == 0 {
				return &BalanceError{Index: i, Op: op, Reason: "nothing open"}
			}
			top := ops[open[len(open)-1]]
			if want := closers[top.Kind]; op.Kind != want {
				return &BalanceError{Index: i, Op: op, Reason: fmt.Sprintf("want %s for %s", want, top)}
			}
			if op.Kind == OpEndLayout && op.Ref != top.Ref {
				return &BalanceError{Index: i, Op: op, Reason: fmt.Sprintf("closes %s", top)}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		i := open[len(open)-1]
		return &BalanceError{Index: i, Op: ops[i], Reason: "never closed"}
	}
	return nil
}
