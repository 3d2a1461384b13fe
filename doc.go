/*
Package lrdeck is a workbench for bottom-up parsing.

It turns a context-free grammar into the canonical collection of LR(0) item
sets and an LR(0) or SLR(1) parsing table, and it simulates shift-reduce parses
step by step, keeping a replayable trace. Package structure is
as follows:

■ lr: Package lr implements grammars, item sets, the characteristic finite state
machine (CFSM), FIRST/FOLLOW analysis and parser table construction.

■ lr/sim: Package sim drives a parsing table over a token sequence, one step
at a time.

■ lr/scanner: Package scanner tokenizes simulation input.

■ session: Package session bundles a grammar text, an input string and a table
mode into a reproducible session.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrdeck
