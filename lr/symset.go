package lr

import (
	"bytes"
	"encoding/json"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// SymbolSet is an ordered set of grammar symbols, as used for FIRST and FOLLOW
// sets. Iteration is in lexicographic order.
type SymbolSet struct {
	set *treeset.Set
}

func symbolComparator(a, b interface{}) int {
	return utils.StringComparator(string(a.(Symbol)), string(b.(Symbol)))
}

// NewSymbolSet creates a set, optionally containing symbols.
func NewSymbolSet(syms ...Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	for _, sym := range syms {
		S.set.Add(sym)
	}
	return S
}

// Add inserts sym and returns true if sym has not been a member of S.
func (S *SymbolSet) Add(sym Symbol) bool {
	if S.set.Contains(sym) {
		return false
	}
	S.set.Add(sym)
	return true
}

// Union adds all members of other, except for symbols listed in except.
// It returns true if S has grown.
func (S *SymbolSet) Union(other *SymbolSet, except ...Symbol) bool {
	changed := false
	for _, sym := range other.Symbols() {
		if isOneOf(sym, except) {
			continue
		}
		if S.Add(sym) {
			changed = true
		}
	}
	return changed
}

func (S *SymbolSet) Contains(sym Symbol) bool {
	return S.set.Contains(sym)
}

func (S *SymbolSet) Size() int {
	return S.set.Size()
}

// Symbols returns the members of S in lexicographic order.
func (S *SymbolSet) Symbols() []Symbol {
	syms := make([]Symbol, 0, S.set.Size())
	for _, x := range S.set.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}

func (S *SymbolSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for _, sym := range S.Symbols() {
		b.WriteString(" ")
		b.WriteString(string(sym))
	}
	b.WriteString(" }")
	return b.String()
}

// MarshalJSON encodes S as a sorted array.
func (S *SymbolSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(S.Symbols())
}

func isOneOf(sym Symbol, syms []Symbol) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}
