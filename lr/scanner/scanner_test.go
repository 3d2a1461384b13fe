package scanner

import (
	"errors"
	"testing"

	"github.com/npillmayer/lrdeck"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"",
	"id",
	"id + id * id",
	"  ( id\t+ id )\n",
	"i b t i b t a e a",
}

var tokenCounts = []int{0, 1, 5, 5, 9}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("input #%d: %v", i, err)
		}
		for _, token := range tokens {
			t.Logf(" %15s | @%5d", token.Lexeme(), token.Span().From())
		}
		if len(tokens) != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], len(tokens))
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestTokenSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.scanner")
	defer teardown()
	//
	tokens, err := Tokenize("id  +\tnum")
	if err != nil {
		t.Fatal(err)
	}
	expected := []lrdeck.Span{{0, 2}, {4, 5}, {6, 9}}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, tok := range tokens {
		if tok.Span() != expected[i] {
			t.Errorf("token %q: expected span %v, have %v", tok.Lexeme(), expected[i], tok.Span())
		}
	}
	lexemes := Lexemes(tokens)
	if lexemes[0] != "id" || lexemes[1] != "+" || lexemes[2] != "num" {
		t.Errorf("unexpected lexemes %v", lexemes)
	}
}

func TestEndMarkerRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.scanner")
	defer teardown()
	//
	if _, err := Tokenize("id + $"); !errors.Is(err, ErrEndMarkerInInput) {
		t.Errorf("expected end marker to be rejected, have err = %v", err)
	}
	tokens, err := Tokenize("a$ $b")
	if err != nil {
		t.Errorf("'$' within words should be accepted, have err = %v", err)
	}
	if len(tokens) != 2 {
		t.Errorf("expected 2 tokens, have %d", len(tokens))
	}
}

func TestLMAdapterKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.scanner")
	defer teardown()
	//
	tokenIds := map[string]int{"+": 10, "*": 11, "id": 12}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, []string{"+", "*"}, []string{"id"}, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("id+id *id")
	if err != nil {
		t.Fatal(err)
	}
	expected := []int{12, 10, 12, 11, 12}
	count := 0
	for token, ok := sc.NextToken(); ok; token, ok = sc.NextToken() {
		if count < len(expected) && token.(DefaultToken).TokType() != expected[count] {
			t.Errorf("token #%d: expected type %d, have %d", count, expected[count], token.(DefaultToken).TokType())
		}
		count++
	}
	if count != len(expected) {
		t.Errorf("expected %d tokens, have %d", len(expected), count)
	}
}

func TestUnicodeWhiteSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrdeck.scanner")
	defer teardown()
	//
	for _, sep := range []string{"\v", "\f", "\u00a0", "\u2003", " \t\u00a0\v "} {
		input := "id" + sep + "num"
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("input %q: %v", input, err)
		}
		if len(tokens) != 2 {
			t.Errorf("input %q: expected 2 tokens, have %v", input, Lexemes(tokens))
			continue
		}
		if tokens[0].Lexeme() != "id" || tokens[1].Lexeme() != "num" {
			t.Errorf("input %q: unexpected lexemes %v", input, Lexemes(tokens))
		}
		last := lrdeck.Span{uint64(len(input) - 3), uint64(len(input))}
		if tokens[1].Span() != last {
			t.Errorf("input %q: expected span %v, have %v", input, last, tokens[1].Span())
		}
	}
	if _, err := Tokenize("id\u00a0$"); !errors.Is(err, ErrEndMarkerInInput) {
		t.Errorf("expected end marker to be rejected, have err = %v", err)
	}
}
