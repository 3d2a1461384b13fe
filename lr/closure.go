package lr

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the closure of an item set: for every item with a
// non-terminal A immediately after the dot, all items A ➞ . γ are added, until
// nothing more can be added. S is not modified.
func Closure(g *Grammar, S *ItemSet) *ItemSet {
	C := S.Copy() // add start items to closure
	work := C.Items()
	for len(work) > 0 {
		item := work[0]
		work = work[1:]
		A, ok := item.PeekSymbol(g) // get symbol A after dot
		if !ok || !g.IsNonTerminal(A) {
			continue
		}
		for _, r := range g.RulesFor(A) {
			if i := (Item{Prod: r.ID, Dot: 0}); C.Add(i) {
				work = append(work, i)
			}
		}
	}
	return C
}

// gotoSet collects the items of S with the dot advanced over A. The
// result is not closed.
func gotoSet(g *Grammar, S *ItemSet, A Symbol) *ItemSet {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := NewItemSet()
	for _, i := range S.Items() {
		if sym, ok := i.PeekSymbol(g); ok && sym == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

// GotoSet computes goto(S, A), i.e. the closure of all items of S with the
// dot moved over A. The result may be empty.
func GotoSet(g *Grammar, S *ItemSet, A Symbol) *ItemSet {
	gclosure := Closure(g, gotoSet(g, S, A))
	if !gclosure.Empty() {
		tracer().Debugf("goto(%s) --%s--> %s", S, A, gclosure)
	}
	return gclosure
}
