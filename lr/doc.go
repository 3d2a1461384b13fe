/*
Package lr implements prerequisites for LR parsing: grammars, LR(0) item sets,
the characteristic finite state machine (CFSM) of a grammar, FIRST and FOLLOW
sets, and LR(0) / SLR(1) parser tables.

Reading a Grammar

Grammars are given as text, one rule per line. Alternatives are separated by
'|', symbols by white space. The literal word 'epsilon' or an empty alternative
denotes an epsilon-production. Every symbol appearing on the left side of an
arrow is a non-terminal, all others are terminals. The left side of the first
rule is the start symbol.

Example:

    g, err := lr.ParseGrammar(`
        E -> E + T | T
        T -> T * F | F
        F -> ( E ) | id
    `)
    ga, err := lr.Augment(g)
    ga.Dump()

This results in the following augmented grammar:

   0: E' ➞ E
   1: E ➞ E + T
   2: E ➞ T
   3: T ➞ T * F
   4: T ➞ F
   5: F ➞ ( E )
   6: F ➞ id

Static Grammar Analysis

An augmented grammar may be subjected to an LRAnalysis object, which computes
FIRST and FOLLOW sets for the grammar.

    analysis := lr.Analysis(ga)
    for _, A := range ga.NonTerminals {
        fmt.Printf("FOLLOW(%s) = %v\n", A, analysis.Follow(A))
    }

    // Output:
    FOLLOW(E) = { $ ) + }
    FOLLOW(T) = { $ ) * + }
    FOLLOW(F) = { $ ) * + }
    FOLLOW(E') = { $ }

Parser Construction

Using the augmented grammar as input, the CFSM is built. The CFSM will then be
transformed into a GOTO table and an ACTION table, either for an LR(0) or an
SLR(1) parser. Table construction never resolves conflicts: a table cell may
hold more than one action, and clients decide what to do about it.

Example:

    cfsm, err := lr.BuildCFSM(ga)
    table := lr.BuildTable(ga, cfsm, lr.SLR1)
    if table.HasConflicts() { … }

The CFSM will not be thrown away after table construction, but is made available
to the client. It can be exported to Graphviz's Dot-format.
Re-building the table for a different mode re-uses the CFSM.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrdeck.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrdeck.lr")
}
