package lr

import (
	"encoding/json"
	"fmt"
)

// ActionKind discriminates parser actions.
type ActionKind uint8

// Actions for parser action tables. Table cells hold shift, reduce and accept
// actions only; conflict and error actions are produced while simulating a parse.
// An empty table cell means error.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
	ConflictAction
	ErrorAction
)

var actionKindNames = [...]string{"none", "shift", "reduce", "accept", "conflict", "error"}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", k)
}

// MarshalText encodes an action kind by name.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes an action kind from its name.
func (k *ActionKind) UnmarshalText(text []byte) error {
	for i, name := range actionKindNames {
		if name == string(text) {
			*k = ActionKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action kind %q", text)
}

// Action is a parser action. Value is interpreted depending on Kind:
//
//    Shift      target state ID
//    Reduce     production ID
//    Conflict   number of conflicting actions
//
// and is 0 otherwise.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Value int        `json:"value,omitempty"`
}

// Shift creates a shift action to state.
func Shift(state int) Action { return Action{Kind: ShiftAction, Value: state} }

// Reduce creates a reduce action for production prod.
func Reduce(prod int) Action { return Action{Kind: ReduceAction, Value: prod} }

// Accept creates an accept action.
func Accept() Action { return Action{Kind: AcceptAction} }

// Conflict creates a conflict marker for count competing actions.
func Conflict(count int) Action { return Action{Kind: ConflictAction, Value: count} }

// Error creates an error action.
func Error() Action { return Action{Kind: ErrorAction} }

// IsTerminal is true for actions which end a parse.
func (a Action) IsTerminal() bool {
	switch a.Kind {
	case AcceptAction, ConflictAction, ErrorAction:
		return true
	case NoAction, ShiftAction, ReduceAction:
		return false
	}
	panic(fmt.Sprintf("unknown action kind %d", a.Kind))
}

func (a Action) String() string {
	switch a.Kind {
	case NoAction:
		return "-"
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Value)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Value)
	case AcceptAction:
		return "acc"
	case ConflictAction:
		return fmt.Sprintf("conflict(%d)", a.Value)
	case ErrorAction:
		return "error"
	}
	return a.Kind.String()
}

// MarshalJSON is needed to keep json from using String().
func (a Action) MarshalJSON() ([]byte, error) {
	type plain Action
	return json.Marshal(plain(a))
}

// actions are stored in sparse matrices as a single int32 each
const actionKindShift = 24

// maxActionValue is the largest state or production ID an action may carry.
const maxActionValue = 1<<actionKindShift - 1

func (a Action) encode() int32 {
	return int32(a.Kind)<<actionKindShift | int32(a.Value)
}

func decodeAction(v int32) Action {
	return Action{
		Kind:  ActionKind(v >> actionKindShift),
		Value: int(v & (1<<actionKindShift - 1)),
	}
}
