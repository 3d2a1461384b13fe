package lr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/npillmayer/lrdeck/lr/sparse"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Mode selects the flavour of parser table to construct.
type Mode uint8

// Table construction modes. Both result in the same table structure, but differ
// in the population of reduce actions. The zero value is SLR1.
const (
	SLR1 Mode = iota // reduce on FOLLOW(lhs) only
	LR0              // reduce on every terminal, regardless of lookahead
)

func (m Mode) String() string {
	switch m {
	case LR0:
		return "LR0"
	case SLR1:
		return "SLR1"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode reads a table mode, ignoring case. Accepted are "LR0", "LR(0)",
// "SLR1", "SLR(1)" and "SLR".
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LR0", "LR(0)":
		return LR0, nil
	case "SLR1", "SLR(1)", "SLR":
		return SLR1, nil
	}
	return SLR1, fmt.Errorf("unknown table mode %q, expected LR0 or SLR1", s)
}

// MarshalText encodes a mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode by name, see ParseMode.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// === Parser Tables =========================================================

// Table is an LR parser table, consisting of an ACTION part and a GOTO part.
// Columns of the ACTION part are the terminals of the grammar (in grammar order)
// plus the end marker. Columns of the GOTO part are the non-terminals, without
// the augmented start symbol. States and productions are referenced by ID.
//
// A table is never modified after construction.
type Table struct {
	Mode         Mode
	Terminals    []Symbol // ACTION columns, '$' last
	NonTerminals []Symbol // GOTO columns
	states       int
	tcol         map[Symbol]int
	ntcol        map[Symbol]int
	actions      *sparse.IntMatrix
	gotos        *sparse.IntMatrix
}

func newTable(g *Grammar, states int, mode Mode) *Table {
	t := &Table{
		Mode:   mode,
		states: states,
		tcol:   make(map[Symbol]int, len(g.Terminals)+1),
		ntcol:  make(map[Symbol]int, len(g.NonTerminals)),
	}
	for _, a := range g.Terminals {
		t.tcol[a] = len(t.Terminals)
		t.Terminals = append(t.Terminals, a)
	}
	t.tcol[EndMarker] = len(t.Terminals)
	t.Terminals = append(t.Terminals, EndMarker)
	for _, A := range g.NonTerminals {
		if A == g.AugmentedStart {
			continue
		}
		t.ntcol[A] = len(t.NonTerminals)
		t.NonTerminals = append(t.NonTerminals, A)
	}
	t.actions = sparse.NewIntMatrix(states, len(t.Terminals), sparse.DefaultNullValue)
	t.gotos = sparse.NewIntMatrix(states, len(t.NonTerminals), sparse.DefaultNullValue)
	return t
}

// BuildTable constructs the parser table for an augmented grammar g from its
// CFSM. For every state
//
// - a terminal transition creates a shift entry, a non-terminal transition a
//   GOTO entry;
//
// - a completed item S' ➞ S • creates an accept entry for '$';
//
// - any other completed item (including A ➞ • ε) creates a reduce entry for
//   every terminal and '$' (LR0), or for every symbol in FOLLOW(A) (SLR1).
//
// Adding an action identical to one already present in a cell is a no-op;
// any other action is appended, creating a conflict. Conflicts are recorded but
// never resolved, i.e. the table is returned even if it has conflicts.
func BuildTable(g *Grammar, cfsm *CFSM, mode Mode) *Table {
	var ga *LRAnalysis
	if mode == SLR1 {
		ga = Analysis(g)
	}
	t := newTable(g, cfsm.Size(), mode)
	tracer().Debugf("=== build %s table ==============================================", mode)
	for _, s := range cfsm.states {
		for _, A := range g.Symbols() { // sorted, for reproducible cell order
			target, ok := s.Transitions[A]
			if !ok {
				continue
			}
			if g.IsTerminal(A) {
				t.addAction(s.ID, A, Shift(target))
			} else {
				t.gotos.Set(s.ID, t.ntcol[A], int32(target))
			}
		}
		for _, i := range s.items.Items() {
			if !i.Completed(g) {
				continue
			}
			r := i.Rule(g)
			if r.LHS == g.AugmentedStart {
				t.addAction(s.ID, EndMarker, Accept())
				continue
			}
			var lookaheads []Symbol
			if mode == SLR1 {
				lookaheads = ga.Follow(r.LHS).Symbols()
				tracer().Debugf("    Follow(%v) = %v", r.LHS, lookaheads)
			} else {
				lookaheads = t.Terminals // reduce on all terminals + $
			}
			for _, la := range lookaheads {
				t.addAction(s.ID, la, Reduce(r.ID))
			}
		}
	}
	tracer().Infof("%s table: %d states, %d action cells, %d goto cells, %d conflicts",
		mode, t.states, t.actions.ValueCount(), t.gotos.ValueCount(), len(t.Conflicts()))
	return t
}

func (t *Table) addAction(state int, a Symbol, action Action) {
	if action.Value < 0 || action.Value > maxActionValue {
		panic(fmt.Sprintf("action %v exceeds table capacity of %d states/productions",
			action, maxActionValue+1))
	}
	col, ok := t.tcol[a]
	if !ok {
		tracer().Errorf("no ACTION column for symbol %v", a)
		return
	}
	for _, v := range t.actions.Values(state, col) {
		if decodeAction(v) == action {
			tracer().Debugf("    relax, double %v in state %d on %v", action, state, a)
			return
		}
	}
	if t.actions.Count(state, col) > 0 {
		tracer().Debugf("    %v is 2nd action in state %d on %v", action, state, a)
	}
	t.actions.Add(state, col, action.encode())
}

// StateCount returns the number of rows of t.
func (t *Table) StateCount() int {
	return t.states
}

// Actions returns the actions for state and terminal a, in order of insertion.
// An empty result denotes an error entry; more than one action denotes a
// conflict.
func (t *Table) Actions(state int, a Symbol) []Action {
	col, ok := t.tcol[a]
	if !ok || state < 0 || state >= t.states {
		return nil
	}
	vals := t.actions.Values(state, col)
	if len(vals) == 0 {
		return nil
	}
	actions := make([]Action, len(vals))
	for k, v := range vals {
		actions[k] = decodeAction(v)
	}
	return actions
}

// Goto returns the GOTO target for state and non-terminal A.
func (t *Table) Goto(state int, A Symbol) (int, bool) {
	col, ok := t.ntcol[A]
	if !ok || state < 0 || state >= t.states {
		return 0, false
	}
	v := t.gotos.Value(state, col)
	if v == t.gotos.NullValue() {
		return 0, false
	}
	return int(v), true
}

// --- Conflicts -------------------------------------------------------------

// ConflictKind classifies table conflicts.
type ConflictKind uint8

// A cell mixing a shift or accept action with a reduce action has a shift/reduce
// conflict; a cell holding two or more reduce actions only has a reduce/reduce
// conflict.
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ReduceReduce {
		return "reduce/reduce"
	}
	return "shift/reduce"
}

// MarshalText encodes a conflict kind by name.
func (k ConflictKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CellConflict is a table cell with more than one action.
type CellConflict struct {
	State   int          `json:"state"`
	Symbol  Symbol       `json:"symbol"`
	Kind    ConflictKind `json:"kind"`
	Actions []Action     `json:"actions"`
}

func (c CellConflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %s: %v", c.Kind, c.State, c.Symbol, c.Actions)
}

// Conflicts returns all conflicting cells of t, ordered by state and column.
func (t *Table) Conflicts() []CellConflict {
	var conflicts []CellConflict
	t.actions.Each(func(i, j int, values []int32) {
		if len(values) < 2 {
			return
		}
		c := CellConflict{State: i, Symbol: t.Terminals[j], Kind: ReduceReduce}
		for _, v := range values {
			a := decodeAction(v)
			c.Actions = append(c.Actions, a)
			if a.Kind != ReduceAction {
				c.Kind = ShiftReduce
			}
		}
		conflicts = append(conflicts, c)
	})
	return conflicts
}

// HasConflicts is true if any cell of t holds more than one action.
func (t *Table) HasConflicts() bool {
	conflict := false
	t.actions.Each(func(i, j int, values []int32) {
		conflict = conflict || len(values) > 1
	})
	return conflict
}

// --- Output ----------------------------------------------------------------

func (t *Table) cell(state int, a Symbol) string {
	actions := t.Actions(state, a)
	s := make([]string, len(actions))
	for k, action := range actions {
		s[k] = action.String()
	}
	return strings.Join(s, "/")
}

// String renders t as a text table, one row per state.
func (t *Table) String() string {
	var b bytes.Buffer
	// symbols are case sensitive, headers must not be re-formatted
	table := tablewriter.NewTable(&b, tablewriter.WithHeaderAutoFormat(tw.Off))
	header := []string{"state"}
	for _, a := range t.Terminals {
		header = append(header, string(a))
	}
	for _, A := range t.NonTerminals {
		header = append(header, string(A))
	}
	table.Header(header)
	for s := 0; s < t.states; s++ {
		row := []string{fmt.Sprintf("%d", s)}
		for _, a := range t.Terminals {
			row = append(row, t.cell(s, a))
		}
		for _, A := range t.NonTerminals {
			if target, ok := t.Goto(s, A); ok {
				row = append(row, fmt.Sprintf("%d", target))
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}
	table.Render()
	return b.String()
}

type tableRow struct {
	State   int                 `json:"state"`
	Actions map[Symbol][]Action `json:"action"`
	Goto    map[Symbol]int      `json:"goto"`
}

// MarshalJSON encodes t as a list of rows. Output is deterministic.
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := make([]tableRow, t.states)
	for s := range rows {
		rows[s] = tableRow{
			State:   s,
			Actions: map[Symbol][]Action{},
			Goto:    map[Symbol]int{},
		}
		for _, a := range t.Terminals {
			if actions := t.Actions(s, a); len(actions) > 0 {
				rows[s].Actions[a] = actions
			}
		}
		for _, A := range t.NonTerminals {
			if target, ok := t.Goto(s, A); ok {
				rows[s].Goto[A] = target
			}
		}
	}
	return json.Marshal(struct {
		Mode         Mode       `json:"mode"`
		Terminals    []Symbol   `json:"terminals"`
		NonTerminals []Symbol   `json:"nonterminals"`
		Rows         []tableRow `json:"rows"`
	}{
		Mode:         t.Mode,
		Terminals:    t.Terminals,
		NonTerminals: t.NonTerminals,
		Rows:         rows,
	})
}
