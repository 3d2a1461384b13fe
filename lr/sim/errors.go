package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lrdeck"
	"github.com/npillmayer/lrdeck/lr"
)

// ErrStepLimit is set on an error step if a parse did not terminate within
// the step limit of Run.
var ErrStepLimit = errors.New("step limit exceeded")

// ParseReject is the error of a parse step for which the table holds no action,
// i.e. the input is not a sentence of the grammar.
type ParseReject struct {
	State     int
	Lookahead lr.Symbol
	Span      lrdeck.Span
	Expected  []lr.Symbol // terminals with an action in State
}

func (e *ParseReject) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error: unexpected %s at %v in state %d", e.Lookahead, e.Span, e.State)
	if len(e.Expected) > 0 {
		syms := make([]string, len(e.Expected))
		for i, sym := range e.Expected {
			syms[i] = string(sym)
		}
		fmt.Fprintf(&b, ", expected one of [%s]", strings.Join(syms, " "))
	}
	return b.String()
}

// TableConflict is the error of a parse step which ran into a table cell with
// more than one action. The simulator does not choose between them.
type TableConflict struct {
	State     int
	Lookahead lr.Symbol
	Actions   []lr.Action
}

func (e *TableConflict) Error() string {
	return fmt.Sprintf("conflict in state %d on %s: %d actions %v",
		e.State, e.Lookahead, len(e.Actions), e.Actions)
}

// UndefinedSymbolReference is the error of a reduce step for which the table
// holds no GOTO entry. It indicates an inconsistent table.
type UndefinedSymbolReference struct {
	State  int
	Symbol lr.Symbol
	Prod   int
}

func (e *UndefinedSymbolReference) Error() string {
	return fmt.Sprintf("no GOTO entry for %s in state %d, reducing by production %d",
		e.Symbol, e.State, e.Prod)
}
