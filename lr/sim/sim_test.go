package sim

import (
	"errors"
	"testing"

	"github.com/npillmayer/lrdeck/lr"
	"github.com/npillmayer/lrdeck/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func makeTable(t *testing.T, text string, mode lr.Mode) (*lr.Grammar, *lr.Table) {
	g, err := lr.ParseGrammar(text)
	if err != nil {
		t.Fatal(err)
	}
	ga, err := lr.Augment(g)
	if err != nil {
		t.Fatal(err)
	}
	cfsm, err := lr.BuildCFSM(ga)
	if err != nil {
		t.Fatal(err)
	}
	return ga, lr.BuildTable(ga, cfsm, mode)
}

func TestExpressionTrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	g, table := makeTable(t, exprGrammar, lr.SLR1)
	s, err := New(g, table, "id + id * id")
	if err != nil {
		t.Fatal(err)
	}
	last := s.Run()
	for _, step := range s.History() {
		t.Logf("%v", step)
	}
	expected := []lr.Action{
		{}, lr.Shift(5), lr.Reduce(6), lr.Reduce(4), lr.Reduce(2), lr.Shift(7),
		lr.Shift(5), lr.Reduce(6), lr.Reduce(4), lr.Shift(8), lr.Shift(5),
		lr.Reduce(6), lr.Reduce(3), lr.Reduce(1), lr.Accept(),
	}
	history := s.History()
	if assert.Equal(len(expected), len(history)) {
		for i, step := range history {
			assert.Equal(expected[i], step.Action, "action of step %d", i)
			assert.Equal(i, step.Index)
			assert.Equal(len(step.StateStack), len(step.SymbolStack), "stacks of step %d", i)
			assert.NoError(step.Err)
		}
	}
	assert.True(s.Accepted())
	assert.True(s.Done())
	assert.Equal(lr.AcceptAction, last.Action.Kind)
	assert.Equal([]int{0, 2}, last.StateStack)
	assert.Equal([]lr.Symbol{lr.EndMarker, "E"}, last.SymbolStack)
	assert.Equal([]lr.Symbol{lr.EndMarker}, last.Input)
	assert.Equal(uint64(0), last.Spans[1].From())
	assert.Equal(uint64(12), last.Spans[1].To())
}

func TestInitialStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	g, table := makeTable(t, exprGrammar, lr.SLR1)
	s, err := New(g, table, "")
	if err != nil {
		t.Fatal(err)
	}
	step := s.Current()
	assert.Equal(0, s.Cursor())
	assert.Equal([]int{0}, step.StateStack)
	assert.Equal([]lr.Symbol{lr.EndMarker}, step.SymbolStack)
	assert.Equal([]lr.Symbol{lr.EndMarker}, step.Input)
	assert.Equal(lr.NoAction, step.Action.Kind)
	assert.Equal([]lr.Symbol{lr.EndMarker}, s.Input())
	assert.False(s.Done())
	last := s.Run()
	assert.Equal(lr.ErrorAction, last.Action.Kind)
	assert.False(s.Accepted())
}

func TestHistoryIsReplayed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	g, table := makeTable(t, exprGrammar, lr.SLR1)
	s, err := New(g, table, "( id )")
	if err != nil {
		t.Fatal(err)
	}
	first, ok := s.StepForward()
	assert.True(ok)
	second, _ := s.StepForward()
	third, _ := s.StepForward()
	back, ok := s.StepBackward()
	assert.True(ok)
	assert.Same(second, back)
	back, _ = s.StepBackward()
	assert.Same(first, back)
	assert.Equal(4, len(s.History()), "stepping back must not shorten the history")
	again, _ := s.StepForward()
	assert.Same(second, again)
	again, _ = s.StepForward()
	assert.Same(third, again)
	//
	s.Reset()
	assert.Equal(0, s.Cursor())
	_, ok = s.StepBackward()
	assert.False(ok)
	step, err := s.Seek(2)
	assert.NoError(err)
	assert.Same(second, step)
	last := s.Run()
	assert.Equal(lr.AcceptAction, last.Action.Kind)
	n := len(s.History())
	step, ok = s.StepForward()
	assert.False(ok)
	assert.Same(last, step)
	assert.Equal(n, len(s.History()))
	_, err = s.Seek(n + 5)
	assert.Error(err)
	assert.Equal(n-1, s.Cursor())
}

func TestEpsilonReducePopsNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	g, table := makeTable(t, "S -> A b\nA -> a | epsilon", lr.SLR1)
	s, err := New(g, table, "b")
	if err != nil {
		t.Fatal(err)
	}
	step, _ := s.StepForward()
	assert.Equal(lr.Reduce(3), step.Action)
	assert.Equal(2, len(step.StateStack))
	assert.Equal([]lr.Symbol{lr.EndMarker, "A"}, step.SymbolStack)
	assert.Equal([]lr.Symbol{"b", lr.EndMarker}, step.Input, "reduce must not consume input")
	s.Run()
	assert.True(s.Accepted())
}

func TestConflictHalts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	g, table := makeTable(t, `
		S -> i E t S | i E t S e S | a
		E -> b
	`, lr.SLR1)
	assert.True(table.HasConflicts())
	s, err := New(g, table, "i b t i b t a e a")
	if err != nil {
		t.Fatal(err)
	}
	last := s.Run()
	assert.Equal(lr.ConflictAction, last.Action.Kind)
	assert.Equal(2, last.Action.Value)
	var conflict *TableConflict
	if assert.True(errors.As(last.Err, &conflict)) {
		assert.Equal(lr.Symbol("e"), conflict.Lookahead)
		assert.Equal(2, len(conflict.Actions))
	}
	prev := s.History()[len(s.History())-2]
	assert.Equal(prev.StateStack, last.StateStack, "conflict step leaves stacks unchanged")
	assert.Equal(prev.Input, last.Input)
	assert.False(s.Accepted())
	_, ok := s.StepForward()
	assert.False(ok)
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	g, table := makeTable(t, "S -> A a | B a\nA -> c\nB -> c", lr.SLR1)
	s, err := New(g, table, "c a")
	if err != nil {
		t.Fatal(err)
	}
	last := s.Run()
	assert.Equal(lr.Conflict(2), last.Action)
	assert.Equal(2, len(s.History())-1, "shift c, then conflict")
}

func TestRejectedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	g, table := makeTable(t, exprGrammar, lr.SLR1)
	s, err := New(g, table, "id +")
	if err != nil {
		t.Fatal(err)
	}
	last := s.Run()
	assert.Equal(lr.ErrorAction, last.Action.Kind)
	var reject *ParseReject
	if assert.True(errors.As(last.Err, &reject)) {
		assert.Equal(lr.EndMarker, reject.Lookahead)
		assert.Equal(7, reject.State)
		assert.Contains(reject.Expected, lr.Symbol("id"))
		assert.Contains(reject.Expected, lr.Symbol("("))
	}
	assert.Greater(len(s.History()), 2, "history before the error is kept")
	//
	s, err = New(g, table, "x")
	if err != nil {
		t.Fatal(err)
	}
	last = s.Run()
	assert.Equal(1, last.Index)
	assert.True(errors.As(last.Err, &reject))
}

func TestEndMarkerInInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	g, table := makeTable(t, exprGrammar, lr.SLR1)
	_, err := New(g, table, "id $")
	assert.True(t, errors.Is(err, scanner.ErrEndMarkerInInput))
}

func TestMissingGotoIsAnErrorStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.sim")
	defer teardown()
	//
	assert := assert.New(t)
	_, table := makeTable(t, "S -> a", lr.SLR1)
	other, _ := makeTable(t, "X -> a", lr.SLR1) // same production IDs, other LHS
	s, err := New(other, table, "a")
	if err != nil {
		t.Fatal(err)
	}
	last := s.Run()
	assert.Equal(lr.ErrorAction, last.Action.Kind)
	var undef *UndefinedSymbolReference
	if assert.True(errors.As(last.Err, &undef)) {
		assert.Equal(lr.Symbol("X"), undef.Symbol)
		assert.Equal(1, undef.Prod)
	}
}
