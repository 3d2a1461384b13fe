/*
Package scanner defines an interface for scanners to be used with the parse
simulator of package lr/sim.

Input for a simulated parse is a sequence of terminal names, separated by white
space. The default scanner implementation is an adapter for lexmachine, which
splits the input into words and records the byte span of every word.

    tokens, err := scanner.Tokenize("id + id * id")
    // tokens: id (0…2), + (3…4), id (5…7), * (8…9), id (10…12)

The end marker '$' is appended by the simulator and must not occur in the input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/lrdeck"
	"github.com/npillmayer/lrdeck/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrdeck.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrdeck.scanner")
}

// ErrEndMarkerInInput is returned if the input contains the reserved end marker.
var ErrEndMarkerInInput = fmt.Errorf("end marker %q must not appear in input", lr.EndMarker)

// Tokenizer is a scanner interface. NextToken returns false as soon as the
// input is exhausted.
type Tokenizer interface {
	NextToken() (lrdeck.Token, bool)
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Tokenize splits input into white space separated words. It is an error for
// the input to contain the end marker as a word of its own. An empty input
// results in an empty token slice.
func Tokenize(input string) ([]lrdeck.Token, error) {
	lm, err := wordAdapter()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	return collect(sc)
}

// collect drains a tokenizer, reporting the first scanner error, if any.
func collect(sc Tokenizer) ([]lrdeck.Token, error) {
	var scanErr error
	sc.SetErrorHandler(func(e error) {
		logError(e)
		if scanErr == nil {
			scanErr = e
		}
	})
	tokens := make([]lrdeck.Token, 0, 16)
	for {
		tok, ok := sc.NextToken()
		if !ok {
			break
		}
		for _, word := range splitAtSpace(tok) {
			if lr.Symbol(word.Lexeme()) == lr.EndMarker {
				return nil, fmt.Errorf("%w, at %v", ErrEndMarkerInInput, word.Span())
			}
			tokens = append(tokens, word)
		}
	}
	if scanErr != nil {
		return nil, scanErr
	}
	tracer().Debugf("scanned %d tokens", len(tokens))
	return tokens, nil
}

// splitAtSpace splits a token at Unicode white space the DFA does not know
// about (e.g. '\v' or U+00A0). Words are split the way strings.Fields does.
func splitAtSpace(tok lrdeck.Token) []lrdeck.Token {
	lexeme := tok.Lexeme()
	if strings.IndexFunc(lexeme, unicode.IsSpace) < 0 {
		return []lrdeck.Token{tok}
	}
	from := tok.Span().From()
	var words []lrdeck.Token
	start := -1
	word := func(end int) {
		pos := from + uint64(start)
		words = append(words, MakeDefaultToken(Word, lexeme[start:end],
			lrdeck.Span{pos, from + uint64(end)}))
		start = -1
	}
	for i, r := range lexeme {
		if unicode.IsSpace(r) {
			if start >= 0 {
				word(i)
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		word(len(lexeme))
	}
	return words
}

// Lexemes returns the lexemes of a token sequence.
func Lexemes(tokens []lrdeck.Token) []string {
	lexemes := make([]string, len(tokens))
	for i, t := range tokens {
		lexemes[i] = t.Lexeme()
	}
	return lexemes
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// LexMachine scanner.
type DefaultToken struct {
	kind   int
	lexeme string
	span   lrdeck.Span
}

var _ lrdeck.Token = DefaultToken{}

// MakeDefaultToken creates a token from its parts.
func MakeDefaultToken(typ int, lexeme string, span lrdeck.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType returns the token category assigned by the lexer.
func (t DefaultToken) TokType() int {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() lrdeck.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q%v", t.lexeme, t.span)
}

var errNoScanner = errors.New("scanner not initialized")
