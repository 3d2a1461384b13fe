package lr

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	g := makeGrammar(t, "S -> A b\nA -> a | epsilon")
	i := StartItem(g)
	if sym, ok := i.PeekSymbol(g); !ok || sym != "S" {
		t.Errorf("expected S after dot of %v", i.Format(g))
	}
	eps := Item{Prod: 3, Dot: 0}
	if !eps.Completed(g) {
		t.Errorf("expected %s to be completed", eps.Format(g))
	}
	if _, ok := eps.PeekSymbol(g); ok {
		t.Errorf("ε must never be seen after the dot")
	}
	if f := (Item{Prod: 1, Dot: 1}).Format(g); f != "S ➞ A • b" {
		t.Errorf("unexpected item format %q", f)
	}
	S := NewItemSet(Item{1, 1}, Item{0, 0}, Item{1, 0})
	if S.Add(Item{0, 0}) {
		t.Errorf("adding a duplicate item must not change the set")
	}
	items := S.Items()
	if len(items) != 3 || items[0] != (Item{0, 0}) || items[2] != (Item{1, 1}) {
		t.Errorf("items not in canonical order: %v", items)
	}
}

func TestItemSetKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	S1 := NewItemSet(Item{2, 0}, Item{1, 1}, Item{4, 2})
	S2 := NewItemSet(Item{4, 2}, Item{2, 0}, Item{1, 1})
	S3 := NewItemSet(Item{4, 2}, Item{2, 0})
	if S1.Key() != S2.Key() || !S1.Equals(S2) {
		t.Errorf("insertion order must not influence item set keys")
	}
	if S1.Key() == S3.Key() || S1.Equals(S3) {
		t.Errorf("different item sets must have different keys")
	}
	C := S1.Copy()
	C.Add(Item{5, 0})
	if S1.Size() != 3 {
		t.Errorf("copy of item set must be independent")
	}
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	g := makeGrammar(t, exprGrammar)
	C := Closure(g, NewItemSet(StartItem(g)))
	t.Logf("closure = %v", C.Format(g))
	if C.Size() != 7 {
		t.Errorf("expected closure of start item to contain 7 items, has %d", C.Size())
	}
	if !Closure(g, C).Equals(C) {
		t.Errorf("closure must be idempotent")
	}
	C2 := Closure(g, NewItemSet(Item{6, 0}, Item{0, 0}))
	if !C2.Equals(C) {
		t.Errorf("closure must not depend on order of items")
	}
	G := GotoSet(g, C, "T")
	expected := NewItemSet(Item{2, 1}, Item{3, 1})
	if !G.Equals(expected) {
		t.Errorf("expected goto(C,T) = %v, is %v", expected.Format(g), G.Format(g))
	}
	if !GotoSet(g, C, ")").Empty() {
		t.Errorf("expected goto(C,')') to be empty")
	}
}

func TestClosureEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	g := makeGrammar(t, "S -> A b\nA -> a | epsilon")
	C := Closure(g, NewItemSet(StartItem(g)))
	if !C.Contains(Item{3, 0}) {
		t.Errorf("expected A ➞ • ε in closure")
	}
	G := GotoSet(g, C, Epsilon)
	if !G.Empty() {
		t.Errorf("the dot must never move over ε")
	}
}

func TestCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	g := makeGrammar(t, exprGrammar)
	tracing.Select("lrdeck.lr").SetTraceLevel(tracing.LevelInfo)
	cfsm, err := BuildCFSM(g)
	if err != nil {
		t.Fatal(err)
	}
	if cfsm.Size() != 12 {
		t.Errorf("expected CFSM to have 12 states, has %d", cfsm.Size())
	}
	if cfsm.S0.ID != 0 || cfsm.State(0) != cfsm.S0 {
		t.Errorf("expected start state to have ID 0")
	}
	// transitions in order of state discovery, symbols in lexicographic order
	for _, x := range []struct {
		from int
		sym  Symbol
		to   int
	}{
		{0, "(", 1}, {0, "E", 2}, {0, "F", 3}, {0, "T", 4}, {0, "id", 5},
		{1, "(", 1}, {1, "E", 6}, {2, "+", 7}, {4, "*", 8}, {6, ")", 9},
		{6, "+", 7}, {7, "T", 10}, {8, "F", 11}, {10, "*", 8},
	} {
		if to, ok := cfsm.State(x.from).Transitions[x.sym]; !ok || to != x.to {
			t.Errorf("expected transition %d --%s--> %d, have %d", x.from, x.sym, x.to, to)
		}
	}
	accepting := 0
	for _, s := range cfsm.States() {
		if s.Accept {
			accepting++
			if s.ID != 2 {
				t.Errorf("expected state 2 to be accepting, is %d", s.ID)
			}
		}
		if !Closure(g, s.ItemSet()).Equals(s.ItemSet()) {
			t.Errorf("state %d is not closed", s.ID)
		}
	}
	if accepting != 1 {
		t.Errorf("expected 1 accepting state, have %d", accepting)
	}
	edges := 0
	for _, s := range cfsm.States() {
		edges += len(s.Transitions)
	}
	if edges != len(cfsm.Edges()) {
		t.Errorf("edge list and transitions differ: %d / %d", len(cfsm.Edges()), edges)
	}
}

func TestCFSMNotAugmented(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	g, _ := ParseGrammar(exprGrammar)
	if _, err := BuildCFSM(g); err != ErrNotAugmented {
		t.Errorf("expected CFSM construction to fail for grammar which is not augmented")
	}
}

func TestCFSMDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	tracing.Select("lrdeck.lr").SetTraceLevel(tracing.LevelError)
	var previous []byte
	for i := 0; i < 3; i++ {
		cfsm, err := BuildCFSM(makeGrammar(t, exprGrammar))
		if err != nil {
			t.Fatal(err)
		}
		data, err := json.Marshal(cfsm)
		if err != nil {
			t.Fatal(err)
		}
		if previous != nil && !bytes.Equal(previous, data) {
			t.Errorf("CFSM #%d differs from previous build", i)
		}
		previous = data
	}
}

func TestCFSMEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	g := makeGrammar(t, "S -> A b\nA -> a | epsilon")
	cfsm, err := BuildCFSM(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range cfsm.States() {
		if _, ok := s.Transitions[Epsilon]; ok {
			t.Errorf("state %d has a transition on ε", s.ID)
		}
	}
	// 0: closure, A: 1, S: 2, a: 3, then A b: 4
	if cfsm.Size() != 5 {
		t.Errorf("expected 5 states, have %d", cfsm.Size())
	}
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.lr")
	defer teardown()
	//
	tracing.Select("lrdeck.lr").SetTraceLevel(tracing.LevelError)
	cfsm, err := BuildCFSM(makeGrammar(t, exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := cfsm.CFSM2GraphViz(&b); err != nil {
		t.Fatal(err)
	}
	dot := b.String()
	if !strings.HasPrefix(dot, "digraph {") {
		t.Errorf("expected DOT output to start with digraph")
	}
	if n := strings.Count(dot, " -> s"); n != len(cfsm.Edges()) {
		t.Errorf("expected %d edges in DOT output, have %d", len(cfsm.Edges()), n)
	}
	if !strings.Contains(dot, `s006 -> s009 [label=")"]`) {
		t.Errorf("expected edge 6 --)--> 9 in DOT output")
	}
}
