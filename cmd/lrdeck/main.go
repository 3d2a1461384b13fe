/*
Command lrdeck constructs LR(0) and SLR(1) parser tables for a grammar and
simulates shift-reduce parses, step by step.

    lrdeck table grammar.txt            # CFSM states, parser table, conflicts
    lrdeck parse grammar.txt -i "id + id * id"
    lrdeck dot grammar.txt -o cfsm.dot  # CFSM in Graphviz format
    lrdeck repl grammar.txt             # interactive stepping

Instead of a grammar file, a session seed file (*.json) may be given, which
holds grammar text, input string and table mode.

The table mode is selected by flag --mode, or by environment variable
LRDECK_MODE. It defaults to SLR1.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
