/*
Package session bundles grammar, CFSM, parser table and parse simulation for a
pair of grammar text and input string.

A session is fully determined by its seed. Seeds may be persisted as JSON

    {"grammarText": "E -> E + T | T\n…", "inputString": "id + id", "mode": "SLR1"}

and re-creating a session from a seed reproduces grammar, CFSM, table and
history exactly.

Sessions are plain values; there is no global session store. A session is not
safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import (
	"encoding/json"
	"fmt"

	"github.com/npillmayer/lrdeck/lr"
	"github.com/npillmayer/lrdeck/lr/sim"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrdeck.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrdeck.lr")
}

// Seed is the minimal reproducible description of a session. The zero Mode
// is SLR1, as for decoded seeds without a mode.
type Seed struct {
	GrammarText string  `json:"grammarText"`
	InputString string  `json:"inputString"`
	Mode        lr.Mode `json:"mode"`
}

// ParseSeed decodes a seed from JSON. A missing mode defaults to SLR1.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("cannot read session seed: %w", err)
	}
	return seed, nil
}

// Session holds the results of every stage of the pipeline
//
//    grammar text → Grammar → CFSM → Table → Simulator
//
// Grammar is the augmented grammar.
type Session struct {
	Seed    Seed
	Grammar *lr.Grammar
	CFSM    *lr.CFSM
	Table   *lr.Table
	Sim     *sim.Simulator
}

// New runs the whole pipeline for a seed. Grammar errors abort the pipeline;
// no partial session is returned.
func New(seed Seed) (*Session, error) {
	g, err := lr.ParseGrammar(seed.GrammarText)
	if err != nil {
		return nil, err
	}
	ga, err := lr.Augment(g)
	if err != nil {
		return nil, fmt.Errorf("cannot augment grammar: %w", err)
	}
	cfsm, err := lr.BuildCFSM(ga)
	if err != nil {
		return nil, err
	}
	s := &Session{Seed: seed, Grammar: ga, CFSM: cfsm}
	s.Table = lr.BuildTable(ga, cfsm, seed.Mode)
	if s.Sim, err = sim.New(ga, s.Table, seed.InputString); err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	tracer().Infof("session: %d productions, %d states, %d conflicts",
		len(ga.Productions), cfsm.Size(), len(s.Table.Conflicts()))
	return s, nil
}

// WithMode returns a session for a different table mode. Grammar and CFSM are
// shared with s; table and simulation are re-created.
func (s *Session) WithMode(mode lr.Mode) (*Session, error) {
	seed := s.Seed
	seed.Mode = mode
	table := lr.BuildTable(s.Grammar, s.CFSM, mode)
	simulator, err := sim.New(s.Grammar, table, seed.InputString)
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	return &Session{
		Seed:    seed,
		Grammar: s.Grammar,
		CFSM:    s.CFSM,
		Table:   table,
		Sim:     simulator,
	}, nil
}

// WithInput returns a session for a different input string, with a fresh
// simulation. Grammar, CFSM and table are shared with s.
func (s *Session) WithInput(input string) (*Session, error) {
	seed := s.Seed
	seed.InputString = input
	simulator, err := sim.New(s.Grammar, s.Table, input)
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	return &Session{
		Seed:    seed,
		Grammar: s.Grammar,
		CFSM:    s.CFSM,
		Table:   s.Table,
		Sim:     simulator,
	}, nil
}

// Snapshot is the structured, read-only data of a session, as handed to
// rendering layers.
type Snapshot struct {
	Seed      Seed              `json:"seed"`
	Grammar   *lr.Grammar       `json:"grammar"`
	CFSM      *lr.CFSM          `json:"cfsm"`
	Table     *lr.Table         `json:"table"`
	Conflicts []lr.CellConflict `json:"conflicts,omitempty"`
}

// Snapshot collects the structured data of s.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Seed:      s.Seed,
		Grammar:   s.Grammar,
		CFSM:      s.CFSM,
		Table:     s.Table,
		Conflicts: s.Table.Conflicts(),
	}
}
