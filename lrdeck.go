package lrdeck

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token for a simulated parse. Tokens are produced by
// a scanner and are matched against grammar terminals by their lexeme.
//
// An example would be a token for an identifier:
//
//    Lexeme  = "id"        // lexeme how it appeared in the input stream
//    Span    = 5…7         // occured from position 5 in the input stream
//
type Token interface {
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run.
// A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
