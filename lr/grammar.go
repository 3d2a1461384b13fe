package lr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Symbol is a grammar symbol. Whether a symbol is a terminal or a non-terminal
// is not stored with the symbol, but derived from the grammar it is part of:
// a symbol is a non-terminal iff it is the left-hand side of some production.
type Symbol string

// Reserved symbols.
const (
	Epsilon   Symbol = "ε" // marker for the empty right-hand side
	EndMarker Symbol = "$" // end of input
)

const (
	epsilonWord   = "epsilon"
	arrow         = "->"
	augmentMarker = "'"
)

// ErrAugmentCollision is returned by Augment if the name of the synthesized start
// symbol is already in use by the grammar.
var ErrAugmentCollision = errors.New("augmented start symbol collides with grammar symbol")

// ErrAlreadyAugmented is returned by Augment for a grammar which carries an
// augmented start symbol already.
var ErrAlreadyAugmented = errors.New("grammar is already augmented")

// GrammarSyntaxError is returned for malformed grammar input. Row is the 1-based
// number of the offending rule line, counting non-blank lines only.
type GrammarSyntaxError struct {
	Cause error
	Row   int
	Line  string
}

func (e *GrammarSyntaxError) Error() string {
	var b strings.Builder
	if e.Row != 0 {
		fmt.Fprintf(&b, "line %d: ", e.Row)
	}
	fmt.Fprintf(&b, "grammar syntax error: %v", e.Cause)
	if e.Line != "" {
		fmt.Fprintf(&b, "\n    %v", strings.TrimSpace(e.Line))
	}
	return b.String()
}

func (e *GrammarSyntaxError) Unwrap() error {
	return e.Cause
}

func syntaxError(row int, line string, format string, args ...interface{}) *GrammarSyntaxError {
	return &GrammarSyntaxError{
		Cause: fmt.Errorf(format, args...),
		Row:   row,
		Line:  line,
	}
}

// --- Productions -----------------------------------------------------------

// Production is a grammar rule LHS ➞ RHS. An empty right-hand side is always
// represented as [ε].
type Production struct {
	ID  int      `json:"id"`
	LHS Symbol   `json:"lhs"`
	RHS []Symbol `json:"rhs"`
}

// IsEpsilon is true for productions A ➞ ε.
func (p *Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0] == Epsilon
}

// Len returns the number of symbols a reduce by p pops off the parse stack,
// i.e. 0 for an epsilon-production.
func (p *Production) Len() int {
	if p.IsEpsilon() {
		return 0
	}
	return len(p.RHS)
}

func (p *Production) String() string {
	var b bytes.Buffer
	b.WriteString(string(p.LHS))
	b.WriteString(" ➞")
	for _, sym := range p.RHS {
		b.WriteString(" ")
		b.WriteString(string(sym))
	}
	return b.String()
}

func (p *Production) copy(id int) *Production {
	return &Production{
		ID:  id,
		LHS: p.LHS,
		RHS: append([]Symbol(nil), p.RHS...),
	}
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar. Productions are numbered in declaration
// order. Terminals and non-terminals are listed in order of first appearance.
//
// A Grammar is never modified after construction; Augment creates a new one.
type Grammar struct {
	Productions    []*Production `json:"productions"`
	Terminals      []Symbol      `json:"terminals"`
	NonTerminals   []Symbol      `json:"nonterminals"`
	Start          Symbol        `json:"start"`
	AugmentedStart Symbol        `json:"augmentedStart,omitempty"`

	terms    map[Symbol]bool
	nonterms map[Symbol]bool
	rules    map[Symbol][]*Production
}

// ParseGrammar reads a grammar from text. Every non-blank line holds a rule
//
//     LHS -> RHS1 | RHS2 | …
//
// Parse errors are reported as *GrammarSyntaxError; no partial grammar is returned.
func ParseGrammar(text string) (*Grammar, error) {
	g := &Grammar{}
	nonterms := map[Symbol]bool{}
	row := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row++
		if n := strings.Count(line, arrow); n != 1 {
			return nil, syntaxError(row, line, "expected exactly one '%s', found %d", arrow, n)
		}
		parts := strings.SplitN(line, arrow, 2)
		lhs, err := parseLHS(parts[0])
		if err != nil {
			return nil, syntaxError(row, line, "%v", err)
		}
		if g.Start == "" {
			g.Start = lhs
		}
		if !nonterms[lhs] {
			nonterms[lhs] = true
			g.NonTerminals = append(g.NonTerminals, lhs)
		}
		for _, alt := range strings.Split(parts[1], "|") {
			rhs, err := parseAlternative(alt)
			if err != nil {
				return nil, syntaxError(row, line, "%v", err)
			}
			g.Productions = append(g.Productions, &Production{
				ID:  len(g.Productions),
				LHS: lhs,
				RHS: rhs,
			})
		}
	}
	if len(g.Productions) == 0 {
		return nil, &GrammarSyntaxError{Cause: errors.New("grammar has no rules")}
	}
	terms := map[Symbol]bool{}
	for _, p := range g.Productions {
		for _, sym := range p.RHS {
			if sym == Epsilon || nonterms[sym] || terms[sym] {
				continue
			}
			terms[sym] = true
			g.Terminals = append(g.Terminals, sym)
		}
	}
	g.index()
	tracer().Debugf("grammar has %d rules, %d terminals, %d non-terminals",
		len(g.Productions), len(g.Terminals), len(g.NonTerminals))
	return g, nil
}

func parseLHS(s string) (Symbol, error) {
	fields := strings.Fields(s)
	switch {
	case len(fields) == 0:
		return "", errors.New("missing left-hand side")
	case len(fields) > 1:
		return "", fmt.Errorf("left-hand side must be a single symbol, have %q", strings.TrimSpace(s))
	}
	lhs := Symbol(fields[0])
	if isEpsilonToken(fields[0]) || lhs == EndMarker {
		return "", fmt.Errorf("reserved symbol %q cannot be a left-hand side", lhs)
	}
	return lhs, nil
}

func parseAlternative(s string) ([]Symbol, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return []Symbol{Epsilon}, nil
	}
	rhs := make([]Symbol, 0, len(fields))
	for _, f := range fields {
		if isEpsilonToken(f) {
			if len(fields) > 1 {
				return nil, fmt.Errorf("epsilon must stand alone in alternative %q", strings.TrimSpace(s))
			}
			return []Symbol{Epsilon}, nil
		}
		if Symbol(f) == EndMarker {
			return nil, fmt.Errorf("end marker %q is reserved", EndMarker)
		}
		rhs = append(rhs, Symbol(f))
	}
	return rhs, nil
}

func isEpsilonToken(s string) bool {
	return s == epsilonWord || Symbol(s) == Epsilon
}

// Augment creates a new grammar with an additional start rule S' ➞ S at
// position 0. All other rules are re-numbered, starting from 1, keeping their
// relative order. g is not modified.
func Augment(g *Grammar) (*Grammar, error) {
	if g.AugmentedStart != "" {
		return nil, ErrAlreadyAugmented
	}
	start := g.Start + augmentMarker
	if g.IsTerminal(start) || g.IsNonTerminal(start) {
		return nil, fmt.Errorf("%w: %s", ErrAugmentCollision, start)
	}
	ga := &Grammar{
		Start:          g.Start,
		AugmentedStart: start,
		Terminals:      append([]Symbol(nil), g.Terminals...),
		NonTerminals:   append(append([]Symbol(nil), g.NonTerminals...), start),
	}
	ga.Productions = make([]*Production, 0, len(g.Productions)+1)
	ga.Productions = append(ga.Productions, &Production{ID: 0, LHS: start, RHS: []Symbol{g.Start}})
	for i, p := range g.Productions {
		ga.Productions = append(ga.Productions, p.copy(i+1))
	}
	ga.index()
	return ga, nil
}

func (g *Grammar) index() {
	g.terms = make(map[Symbol]bool, len(g.Terminals))
	for _, t := range g.Terminals {
		g.terms[t] = true
	}
	g.nonterms = make(map[Symbol]bool, len(g.NonTerminals))
	for _, n := range g.NonTerminals {
		g.nonterms[n] = true
	}
	g.rules = make(map[Symbol][]*Production, len(g.NonTerminals))
	for _, p := range g.Productions {
		g.rules[p.LHS] = append(g.rules[p.LHS], p)
	}
}

// UnmarshalJSON restores a grammar and its symbol index.
func (g *Grammar) UnmarshalJSON(data []byte) error {
	type plain Grammar
	var pg plain
	if err := json.Unmarshal(data, &pg); err != nil {
		return err
	}
	*g = Grammar(pg)
	g.index()
	return nil
}

// IsTerminal returns true if sym is a terminal of g.
func (g *Grammar) IsTerminal(sym Symbol) bool {
	return g.terms[sym]
}

// IsNonTerminal returns true if sym is a non-terminal of g.
func (g *Grammar) IsNonTerminal(sym Symbol) bool {
	return g.nonterms[sym]
}

// IsAugmented is true for grammars created by Augment.
func (g *Grammar) IsAugmented() bool {
	return g.AugmentedStart != ""
}

// Rule returns the production with serial ID id, or nil.
func (g *Grammar) Rule(id int) *Production {
	if id < 0 || id >= len(g.Productions) {
		return nil
	}
	return g.Productions[id]
}

// RulesFor returns all productions with left-hand side A, in declaration order.
func (g *Grammar) RulesFor(A Symbol) []*Production {
	return g.rules[A]
}

// Symbols returns the alphabet of g (terminals and non-terminals, without ε)
// in lexicographic order.
func (g *Grammar) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(g.Terminals)+len(g.NonTerminals))
	syms = append(syms, g.Terminals...)
	syms = append(syms, g.NonTerminals...)
	slices.Sort(syms)
	return syms
}

// Dump is a debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar, start symbol %s ---------------", g.Start)
	for _, p := range g.Productions {
		tracer().Debugf("%3d: %s", p.ID, p)
	}
	tracer().Debugf("-------------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	for _, p := range g.Productions {
		fmt.Fprintf(&b, "%3d: %s\n", p.ID, p)
	}
	return b.String()
}
