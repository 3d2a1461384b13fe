package lr

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// fixpointObserver, if set, is called after every round of the FIRST and FOLLOW
// fixpoint iterations.
var fixpointObserver func(kind string, round int, sets map[Symbol]*SymbolSet)

// ComputeFirst computes FIRST(X) for every symbol X of g, including ε and the
// end marker. FIRST(A) contains ε iff A is nullable.
func ComputeFirst(g *Grammar) map[Symbol]*SymbolSet {
	first := make(map[Symbol]*SymbolSet, len(g.Terminals)+len(g.NonTerminals)+2)
	for _, t := range g.Terminals {
		first[t] = NewSymbolSet(t)
	}
	first[Epsilon] = NewSymbolSet(Epsilon)
	first[EndMarker] = NewSymbolSet(EndMarker)
	for _, A := range g.NonTerminals {
		first[A] = NewSymbolSet()
	}
	for round := 1; ; round++ {
		changed := false
		for _, p := range g.Productions {
			firstLHS := first[p.LHS]
			nullable := true
			for _, X := range p.RHS {
				firstX, ok := first[X]
				if !ok {
					tracer().Errorf("FIRST(%s) undefined, grammar is inconsistent", X)
					continue
				}
				if firstLHS.Union(firstX, Epsilon) {
					changed = true
				}
				if !firstX.Contains(Epsilon) {
					nullable = false
					break // stop if current symbol is not nullable
				}
			}
			if (nullable || p.IsEpsilon()) && firstLHS.Add(Epsilon) {
				changed = true
			}
		}
		if fixpointObserver != nil {
			fixpointObserver("FIRST", round, first)
		}
		if !changed {
			tracer().Debugf("FIRST sets stable after %d rounds", round)
			break
		}
	}
	return first
}

// ComputeFollow computes FOLLOW(A) for every non-terminal A of g, given the
// FIRST sets of g. The augmented start symbol (or the start symbol, for a
// grammar which is not augmented) is followed by the end marker.
func ComputeFollow(g *Grammar, first map[Symbol]*SymbolSet) map[Symbol]*SymbolSet {
	follow := make(map[Symbol]*SymbolSet, len(g.NonTerminals))
	for _, A := range g.NonTerminals {
		follow[A] = NewSymbolSet()
	}
	if g.IsAugmented() {
		follow[g.AugmentedStart].Add(EndMarker)
	} else if S, ok := follow[g.Start]; ok {
		S.Add(EndMarker)
	}
	for round := 1; ; round++ {
		changed := false
		for _, p := range g.Productions {
			for i, B := range p.RHS { // A ➞ α B β
				if !g.IsNonTerminal(B) {
					continue
				}
				firstBeta, nullable := firstOfSequence(first, p.RHS[i+1:])
				if follow[B].Union(firstBeta, Epsilon) {
					changed = true
				}
				if nullable && follow[B].Union(follow[p.LHS]) {
					changed = true
				}
			}
		}
		if fixpointObserver != nil {
			fixpointObserver("FOLLOW", round, follow)
		}
		if !changed {
			tracer().Debugf("FOLLOW sets stable after %d rounds", round)
			break
		}
	}
	return follow
}

// firstOfSequence computes FIRST(β)\{ε} symbol by symbol and reports whether
// β is nullable. An empty β is nullable.
func firstOfSequence(first map[Symbol]*SymbolSet, beta []Symbol) (*SymbolSet, bool) {
	F := NewSymbolSet()
	for _, X := range beta {
		firstX, ok := first[X]
		if !ok {
			return F, false
		}
		F.Union(firstX, Epsilon)
		if !firstX.Contains(Epsilon) {
			return F, false
		}
	}
	return F, true
}

// --- Analysis --------------------------------------------------------------

// LRAnalysis holds the FIRST and FOLLOW sets of a grammar.
type LRAnalysis struct {
	g      *Grammar
	first  map[Symbol]*SymbolSet
	follow map[Symbol]*SymbolSet
}

// Analysis computes FIRST and FOLLOW sets for g.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{g: g}
	ga.first = ComputeFirst(g)
	ga.follow = ComputeFollow(g, ga.first)
	return ga
}

// Grammar returns the grammar analysed.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(X), or an empty set for unknown symbols.
// Clients must not modify the set returned.
func (ga *LRAnalysis) First(X Symbol) *SymbolSet {
	if F, ok := ga.first[X]; ok {
		return F
	}
	return NewSymbolSet()
}

// Follow returns FOLLOW(A), or an empty set if A is not a non-terminal.
// Clients must not modify the set returned.
func (ga *LRAnalysis) Follow(A Symbol) *SymbolSet {
	if F, ok := ga.follow[A]; ok {
		return F
	}
	return NewSymbolSet()
}

// Nullable is true if A derives ε.
func (ga *LRAnalysis) Nullable(A Symbol) bool {
	return ga.First(A).Contains(Epsilon)
}

// FirstOfSequence returns FIRST(β) for a sequence of symbols. The result
// contains ε iff β is nullable.
func (ga *LRAnalysis) FirstOfSequence(beta []Symbol) *SymbolSet {
	F, nullable := firstOfSequence(ga.first, beta)
	if nullable {
		F.Add(Epsilon)
	}
	return F
}

// Dump is a debugging helper
func (ga *LRAnalysis) Dump() {
	syms := maps.Keys(ga.first)
	slices.Sort(syms)
	for _, X := range syms {
		tracer().Debugf("FIRST(%s) = %v", X, ga.first[X])
	}
	syms = maps.Keys(ga.follow)
	slices.Sort(syms)
	for _, A := range syms {
		tracer().Debugf("FOLLOW(%s) = %v", A, ga.follow[A])
	}
}
