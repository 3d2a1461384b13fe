package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Item is an LR(0) item, i.e. a production together with a position within its
// right-hand side. Dot symbols of the production have been matched.
//
// Items are values and may be compared with ==.
type Item struct {
	Prod int `json:"prod"` // serial ID of the production
	Dot  int `json:"dot"`  // 0 ≤ Dot ≤ |RHS|
}

// StartItem returns the item S' ➞ . S for an augmented grammar.
func StartItem(g *Grammar) Item {
	return Item{Prod: 0, Dot: 0}
}

// Rule returns the production of item i.
func (i Item) Rule(g *Grammar) *Production {
	return g.Rule(i.Prod)
}

// PeekSymbol returns the symbol immediately after the dot. If the dot is at the
// end of the production, ok is false. ε is never returned: an item A ➞ . ε
// counts as completed.
func (i Item) PeekSymbol(g *Grammar) (sym Symbol, ok bool) {
	r := g.Rule(i.Prod)
	if r == nil || r.IsEpsilon() || i.Dot >= len(r.RHS) {
		return "", false
	}
	return r.RHS[i.Dot], true
}

// Completed is true if the dot has reached the end of the item's production.
func (i Item) Completed(g *Grammar) bool {
	_, ok := i.PeekSymbol(g)
	return !ok
}

// Advance returns the item with the dot moved one position to the right.
func (i Item) Advance() Item {
	return Item{Prod: i.Prod, Dot: i.Dot + 1}
}

// Format returns a readable representation "A ➞ B . c".
func (i Item) Format(g *Grammar) string {
	r := g.Rule(i.Prod)
	if r == nil {
		return i.String()
	}
	var b bytes.Buffer
	b.WriteString(string(r.LHS))
	b.WriteString(" ➞")
	for n, sym := range r.RHS {
		if n == i.Dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(string(sym))
	}
	if i.Dot >= len(r.RHS) {
		b.WriteString(" •")
	}
	return b.String()
}

func (i Item) String() string {
	return fmt.Sprintf("[%d,%d]", i.Prod, i.Dot)
}

// itemComparator orders items by production, then by dot position.
func itemComparator(a, b interface{}) int {
	i1 := a.(Item)
	i2 := b.(Item)
	if c := utils.IntComparator(i1.Prod, i2.Prod); c != 0 {
		return c
	}
	return utils.IntComparator(i1.Dot, i2.Dot)
}

// --- Item sets -------------------------------------------------------------

// ItemSet is an ordered set of LR(0) items. Iteration order is by production ID,
// then by dot position, independent of insertion order.
type ItemSet struct {
	set *treeset.Set
}

// NewItemSet creates an item set, optionally containing items.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{set: treeset.NewWith(itemComparator)}
	for _, i := range items {
		S.set.Add(i)
	}
	return S
}

// Add inserts an item. It returns true if the item has not been present.
func (S *ItemSet) Add(i Item) bool {
	if S.set.Contains(i) {
		return false
	}
	S.set.Add(i)
	return true
}

func (S *ItemSet) Contains(i Item) bool {
	return S.set.Contains(i)
}

func (S *ItemSet) Size() int {
	return S.set.Size()
}

func (S *ItemSet) Empty() bool {
	return S.set.Empty()
}

// Items returns the items in canonical order.
func (S *ItemSet) Items() []Item {
	items := make([]Item, 0, S.set.Size())
	for _, x := range S.set.Values() {
		items = append(items, x.(Item))
	}
	return items
}

// Copy returns a shallow copy of S.
func (S *ItemSet) Copy() *ItemSet {
	return NewItemSet(S.Items()...)
}

// Equals compares two item sets structurally.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if other == nil || S.Size() != other.Size() {
		return false
	}
	a, b := S.Items(), other.Items()
	for n := range a {
		if a[n] != b[n] {
			return false
		}
	}
	return true
}

// Key returns the canonical key of S.
func (S *ItemSet) Key() ItemSetKey {
	var k ItemSetKey
	copy(k[:], structhash.Sha1(canonicalItems{Items: S.Items()}, 1))
	return k
}

// Format returns a readable representation of all items in S.
func (S *ItemSet) Format(g *Grammar) string {
	var b bytes.Buffer
	b.WriteString("{")
	for n, i := range S.Items() {
		if n > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(i.Format(g))
	}
	b.WriteString(" }")
	return b.String()
}

func (S *ItemSet) String() string {
	return fmt.Sprintf("%v", S.Items())
}

// ItemSetKey is a digest over the sorted list of (production, dot) pairs of an
// item set. Equal item sets have equal keys; as with any digest, equal keys do
// not prove equal sets, so lookups compare sets structurally as well.
type ItemSetKey [20]byte

func (k ItemSetKey) String() string {
	return fmt.Sprintf("%x", k[:4])
}

// canonicalItems is the structure hashed for an item set key.
type canonicalItems struct {
	Items []Item
}
