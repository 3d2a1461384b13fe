/*
Package sim provides a step-by-step shift-reduce parser, driven by the tables
of package lr. Every parse step is recorded in a history, which may be replayed
by moving a cursor back and forth.

The simulator follows the table, nothing else: if a table cell holds no action,
the parse ends with an error step; if it holds more than one action, the parse
ends with a conflict step. Conflicts are never resolved.

Usage

Clients construct a grammar and subject it to table generation:

    g, err := lr.ParseGrammar(…)
    ga, err := lr.Augment(g)
    cfsm, err := lr.BuildCFSM(ga)
    table := lr.BuildTable(ga, cfsm, lr.SLR1)

Then simulate a parse of some input:

    s, err := sim.New(ga, table, "id + id * id")
    last := s.Run()
    if s.Accepted() { … }
    for _, step := range s.History() {
        fmt.Println(step)
    }

Steps are immutable. Stepping backwards moves the cursor only; stepping forward
again returns the very same step values.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sim

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrdeck"
	"github.com/npillmayer/lrdeck/lr"
	"github.com/npillmayer/lrdeck/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrdeck.sim'.
func tracer() tracing.Trace {
	return tracing.Select("lrdeck.sim")
}

// RunLimit is the maximum number of steps Run will perform.
var RunLimit = 100000

// Step is a configuration of the shift-reduce parser, together with the action
// which led to it. State stack, symbol stack and span stack are co-indexed, with
// the bottom of the stacks at index 0. Input holds the remaining input,
// including the end marker.
//
// A step is never modified after it has been appended to the history; clients
// must not modify its slices.
type Step struct {
	Index       int
	StateStack  []int
	SymbolStack []lr.Symbol
	Spans       []lrdeck.Span // input span covered by each stack symbol
	Input       []lr.Symbol
	Action      lr.Action // NoAction for the initial step
	Err         error     // set for error and conflict steps
	pos         int       // number of tokens consumed
}

// Terminal is true if no step may follow s.
func (s *Step) Terminal() bool {
	return s.Action.IsTerminal()
}

// TOS returns the state on top of the stack.
func (s *Step) TOS() int {
	return s.StateStack[len(s.StateStack)-1]
}

// Lookahead returns the next input symbol.
func (s *Step) Lookahead() lr.Symbol {
	return s.Input[0]
}

func (s *Step) String() string {
	states := make([]string, len(s.StateStack))
	for i, st := range s.StateStack {
		states[i] = fmt.Sprintf("%d", st)
	}
	return fmt.Sprintf("%3d | %-20s | %-20s | %-20s | %v", s.Index,
		strings.Join(states, " "), joinSymbols(s.SymbolStack), joinSymbols(s.Input), s.Action)
}

func joinSymbols(syms []lr.Symbol) string {
	var b strings.Builder
	for i, sym := range syms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(sym))
	}
	return b.String()
}

// Simulator is a shift-reduce parser which records every step. Create one with
// New or NewWithTokens.
type Simulator struct {
	g       *lr.Grammar
	table   *lr.Table
	input   []lr.Symbol   // input symbols, '$' last
	spans   []lrdeck.Span // input spans, co-indexed with input
	history []*Step
	cursor  int
}

// New creates a simulator for an input string. The input is split into
// terminals at white space; it must not contain the end marker.
func New(g *lr.Grammar, table *lr.Table, input string) (*Simulator, error) {
	tokens, err := scanner.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return NewWithTokens(g, table, tokens)
}

// NewWithTokens creates a simulator for a sequence of tokens. Tokens are matched
// against terminals by their lexemes.
func NewWithTokens(g *lr.Grammar, table *lr.Table, tokens []lrdeck.Token) (*Simulator, error) {
	if g == nil || table == nil {
		return nil, fmt.Errorf("simulator needs a grammar and a table")
	}
	s := &Simulator{
		g:     g,
		table: table,
		input: make([]lr.Symbol, 0, len(tokens)+1),
		spans: make([]lrdeck.Span, 0, len(tokens)+1),
	}
	var end uint64
	for _, tok := range tokens {
		if lr.Symbol(tok.Lexeme()) == lr.EndMarker {
			return nil, scanner.ErrEndMarkerInInput
		}
		s.input = append(s.input, lr.Symbol(tok.Lexeme()))
		s.spans = append(s.spans, tok.Span())
		end = tok.Span().To()
	}
	s.input = append(s.input, lr.EndMarker)
	s.spans = append(s.spans, lrdeck.Span{end, end})
	s.history = []*Step{s.initialStep()}
	return s, nil
}

func (s *Simulator) initialStep() *Step {
	return &Step{
		Index:       0,
		StateStack:  []int{0},
		SymbolStack: []lr.Symbol{lr.EndMarker},
		Spans:       []lrdeck.Span{{}},
		Input:       s.input,
	}
}

// Input returns the input symbols, including the end marker.
func (s *Simulator) Input() []lr.Symbol {
	return append([]lr.Symbol(nil), s.input...)
}

// Current returns the step at the cursor position.
func (s *Simulator) Current() *Step {
	return s.history[s.cursor]
}

// Cursor returns the position of the cursor within the history.
func (s *Simulator) Cursor() int {
	return s.cursor
}

// History returns all steps computed so far, regardless of the cursor position.
func (s *Simulator) History() []*Step {
	return append([]*Step(nil), s.history...)
}

// Done is true if the last step of the history is terminal.
func (s *Simulator) Done() bool {
	return s.history[len(s.history)-1].Terminal()
}

// Accepted is true if the parse has terminated with an accept step.
func (s *Simulator) Accepted() bool {
	return s.history[len(s.history)-1].Action.Kind == lr.AcceptAction
}

// StepForward moves the cursor one step forward and returns the step at the new
// cursor position. Steps present in the history are not re-computed. If the
// cursor is at a terminal step, StepForward returns it and false.
func (s *Simulator) StepForward() (*Step, bool) {
	if s.cursor < len(s.history)-1 {
		s.cursor++
		return s.history[s.cursor], true
	}
	current := s.history[s.cursor]
	if current.Terminal() {
		return current, false
	}
	next := s.next(current)
	s.history = append(s.history, next)
	s.cursor++
	return next, true
}

// StepBackward moves the cursor one step backward. The history is left intact.
// If the cursor is at the initial step, StepBackward returns it and false.
func (s *Simulator) StepBackward() (*Step, bool) {
	if s.cursor == 0 {
		return s.history[0], false
	}
	s.cursor--
	return s.history[s.cursor], true
}

// Seek moves the cursor to step i, computing steps as necessary. If the parse
// terminates before step i, the cursor rests on the terminal step and an error
// is returned.
func (s *Simulator) Seek(i int) (*Step, error) {
	if i < 0 {
		return s.Current(), fmt.Errorf("cannot seek to step %d", i)
	}
	for s.cursor > i {
		s.StepBackward()
	}
	for s.cursor < i {
		if _, ok := s.StepForward(); !ok {
			return s.Current(), fmt.Errorf("parse terminated at step %d", s.cursor)
		}
	}
	return s.Current(), nil
}

// Run steps forward until a terminal step is reached, and returns it.
// Runs longer than RunLimit steps end with an error step.
func (s *Simulator) Run() *Step {
	for {
		step, ok := s.StepForward()
		if !ok {
			return step
		}
		if step.Index >= RunLimit && !step.Terminal() {
			tracer().Errorf("parse did not terminate within %d steps", RunLimit)
			halt := step.haltWith(lr.Error(), ErrStepLimit)
			s.history = append(s.history, halt)
			s.cursor = len(s.history) - 1
			return halt
		}
	}
}

// Reset moves the cursor to the initial step. The history is retained.
func (s *Simulator) Reset() *Step {
	s.cursor = 0
	return s.history[0]
}

// next computes the successor of step.
func (s *Simulator) next(step *Step) *Step {
	state, la := step.TOS(), step.Lookahead()
	actions := s.table.Actions(state, la)
	tracer().Debugf("action(%d,%s) = %v", state, la, actions)
	switch len(actions) {
	case 0:
		err := &ParseReject{
			State:     state,
			Lookahead: la,
			Span:      s.spans[step.pos],
			Expected:  s.expected(state),
		}
		tracer().Infof("%v", err)
		return step.haltWith(lr.Error(), err)
	case 1:
	default:
		err := &TableConflict{State: state, Lookahead: la, Actions: actions}
		tracer().Infof("%v", err)
		return step.haltWith(lr.Conflict(len(actions)), err)
	}
	action := actions[0]
	switch action.Kind {
	case lr.ShiftAction:
		tracer().Debugf("shifting, next state = %d", action.Value)
		next := step.successor(action)
		next.push(action.Value, la, s.spans[step.pos])
		next.pos = step.pos + 1
		next.Input = s.input[next.pos:]
		return next
	case lr.ReduceAction:
		return s.reduce(step, action)
	case lr.AcceptAction:
		tracer().Infof("input accepted")
		return step.haltWith(action, nil)
	case lr.NoAction, lr.ConflictAction, lr.ErrorAction:
		tracer().Errorf("illegal action %v in table", action)
		return step.haltWith(lr.Error(), fmt.Errorf("illegal table action %v", action))
	}
	panic(fmt.Sprintf("unknown action kind %v", action.Kind))
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// For an epsilon-production nothing is popped.
func (s *Simulator) reduce(step *Step, action lr.Action) *Step {
	rule := s.g.Rule(action.Value)
	if rule == nil {
		return step.haltWith(lr.Error(), fmt.Errorf("reduce by unknown production %d", action.Value))
	}
	tracer().Debugf("reduce %v", rule)
	n := rule.Len()
	if n >= len(step.StateStack) {
		tracer().Errorf("stack underflow reducing %v", rule)
		return step.haltWith(lr.Error(), &UndefinedSymbolReference{
			State: step.TOS(), Symbol: rule.LHS, Prod: rule.ID,
		})
	}
	next := step.successor(action)
	handle := len(next.StateStack) - n
	for i, sym := range rule.RHS[:n] {
		if next.SymbolStack[handle+i] != sym {
			tracer().Errorf("expected %v on stack, got %v", sym, next.SymbolStack[handle+i])
		}
	}
	var handlespan lrdeck.Span
	if n == 0 { // epsilon was just before lookahead
		pos := s.spans[step.pos].From()
		handlespan = lrdeck.Span{pos, pos}
	} else {
		handlespan = next.Spans[handle]
		for _, span := range next.Spans[handle+1:] {
			handlespan = handlespan.Extend(span)
		}
	}
	next.StateStack = next.StateStack[:handle]
	next.SymbolStack = next.SymbolStack[:handle]
	next.Spans = next.Spans[:handle]
	top := next.StateStack[len(next.StateStack)-1]
	target, ok := s.table.Goto(top, rule.LHS)
	if !ok {
		err := &UndefinedSymbolReference{State: top, Symbol: rule.LHS, Prod: rule.ID}
		tracer().Errorf("%v", err)
		return step.haltWith(lr.Error(), err)
	}
	tracer().Debugf("reduced to next state = %d", target)
	next.push(target, rule.LHS, handlespan)
	return next
}

// expected lists the terminals for which state has an action.
func (s *Simulator) expected(state int) []lr.Symbol {
	var syms []lr.Symbol
	for _, a := range s.table.Terminals {
		if len(s.table.Actions(state, a)) > 0 {
			syms = append(syms, a)
		}
	}
	return syms
}

// --- Helpers ----------------------------------------------------------

// successor creates a copy of step with fresh stacks, to be modified before it
// is appended to the history.
func (s *Step) successor(action lr.Action) *Step {
	return &Step{
		Index:       s.Index + 1,
		StateStack:  append(make([]int, 0, len(s.StateStack)+1), s.StateStack...),
		SymbolStack: append(make([]lr.Symbol, 0, len(s.SymbolStack)+1), s.SymbolStack...),
		Spans:       append(make([]lrdeck.Span, 0, len(s.Spans)+1), s.Spans...),
		Input:       s.Input,
		Action:      action,
		pos:         s.pos,
	}
}

// haltWith creates a terminal successor of step with unchanged stacks and input.
func (s *Step) haltWith(action lr.Action, err error) *Step {
	next := s.successor(action)
	next.Err = err
	return next
}

func (s *Step) push(state int, sym lr.Symbol, span lrdeck.Span) {
	s.StateStack = append(s.StateStack, state)
	s.SymbolStack = append(s.SymbolStack, sym)
	s.Spans = append(s.Spans, span)
}
