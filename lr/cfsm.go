package lr

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// ErrNotAugmented is returned for operations requiring an augmented grammar.
var ErrNotAugmented = errors.New("grammar is not augmented")

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar. The item set of a state is
// always closed.
type CFSMState struct {
	ID          int            // serial ID of this state
	items       *ItemSet       // configuration items within this state
	Transitions map[Symbol]int // goto-transitions to other states
	Accept      bool           // does this state contain S' ➞ S • ?
}

// CFSM edge between 2 states, directed and with a terminal
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label Symbol
}

// Edge is a transition of the CFSM, referencing states by ID.
type Edge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label Symbol `json:"label"`
}

// Create a state from an item set
func state(id int, iset *ItemSet) *CFSMState {
	s := &CFSMState{ID: id, Transitions: make(map[Symbol]int)}
	if iset == nil {
		s.items = NewItemSet()
	} else {
		s.items = iset
	}
	return s
}

// Items returns the (closed) item set of s in canonical order.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

// ItemSet returns a copy of the item set of s.
func (s *CFSMState) ItemSet() *ItemSet {
	return s.items.Copy()
}

// Dump is a debugging helper
func (s *CFSMState) Dump(g *Grammar) {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.items.Items() {
		tracer().Debugf("    %s", i.Format(g))
	}
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule(g *Grammar) bool {
	for _, i := range s.items.Items() {
		if i.Prod == 0 && i.Completed(g) {
			return true
		}
	}
	return false
}

// MarshalJSON encodes a state with its items and transitions.
func (s *CFSMState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int            `json:"id"`
		Items       []Item         `json:"items"`
		Transitions map[Symbol]int `json:"transitions"`
		Accept      bool           `json:"accept,omitempty"`
	}{
		ID:          s.ID,
		Items:       s.items.Items(),
		Transitions: s.Transitions,
		Accept:      s.Accept,
	})
}

// We need this for the worklist of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram, also called the canonical collection of LR(0) item sets.
// State IDs are assigned in order of discovery, starting with 0.
type CFSM struct {
	g      *Grammar                    // this CFSM is for Grammar g
	states []*CFSMState                // all the states, indexed by ID
	index  map[ItemSetKey][]*CFSMState // states by item set key
	edges  *arraylist.List             // all the edges between states
	S0     *CFSMState                  // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:     g,
		index: make(map[ItemSetKey][]*CFSMState),
		edges: arraylist.New(),
	}
}

// Add a state to the CFSM. Checks first if state is present.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	key := iset.Key()
	if s := c.findStateByItems(key, iset); s != nil {
		return s, false
	}
	s := state(len(c.states), iset)
	c.states = append(c.states, s)
	c.index[key] = append(c.index[key], s)
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(key ItemSetKey, iset *ItemSet) *CFSMState {
	for _, s := range c.index[key] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym Symbol) {
	s0.Transitions[sym] = s1.ID
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
}

// Grammar returns the grammar this CFSM has been built for.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// State returns the state with serial ID id, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	return append([]*CFSMState(nil), c.states...)
}

// Edges returns all transitions in order of construction.
func (c *CFSM) Edges() []Edge {
	r := make([]Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		r = append(r, Edge{From: e.from.ID, To: e.to.ID, Label: e.label})
	}
	return r
}

// MarshalJSON encodes the canonical collection.
func (c *CFSM) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Initial int          `json:"initial"`
		States  []*CFSMState `json:"states"`
	}{
		Initial: c.S0.ID,
		States:  c.states,
	})
}

// BuildCFSM constructs the characteristic finite state machine CFSM for an
// augmented grammar.
//
// States are processed in order of discovery. For each state, goto-sets are
// computed for all grammar symbols in lexicographic order. Building the CFSM
// twice for the same grammar results in identical state IDs and transitions.
func BuildCFSM(g *Grammar) (*CFSM, error) {
	if !g.IsAugmented() {
		return nil, ErrNotAugmented
	}
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(g)
	closure0 := Closure(g, NewItemSet(StartItem(g)))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump(g)
	alphabet := g.Symbols()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range alphabet {
			gotoset := GotoSet(g, s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				tracer().Debugf("checking goto-set for symbol = %v: new state %d", A, snew.ID)
				snew.Accept = snew.containsCompletedStartRule(g)
				S.Add(snew)
				snew.Dump(g)
			}
			cfsm.addEdge(s, snew, A)
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for grammar has %d states", cfsm.Size())
	return cfsm, nil
}
