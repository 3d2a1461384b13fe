package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lrdeck/lr"
	"github.com/npillmayer/lrdeck/lr/sim"
	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
)

// printGrammar lists the productions of the (augmented) grammar.
func printGrammar(g *lr.Grammar) {
	pterm.Info.Println("Grammar")
	fmt.Print(g.String())
	fmt.Println()
}

// printStates renders every CFSM state as a tree of its items and transitions.
func printStates(c *lr.CFSM) {
	g := c.Grammar()
	pterm.Info.Printf("CFSM with %d states\n", c.Size())
	for _, s := range c.States() {
		pterm.DefaultTree.WithRoot(stateTree(g, s)).Render()
	}
}

func stateTree(g *lr.Grammar, s *lr.CFSMState) pterm.TreeNode {
	label := fmt.Sprintf("state %d", s.ID)
	if s.Accept {
		label += " (accept)"
	}
	ll := pterm.LeveledList{{Level: 0, Text: label}}
	for _, i := range s.Items() {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: i.Format(g)})
	}
	for _, A := range g.Symbols() {
		if target, ok := s.Transitions[A]; ok {
			ll = append(ll, pterm.LeveledListItem{
				Level: 1,
				Text:  fmt.Sprintf("--%s--> %d", A, target),
			})
		}
	}
	return pterm.NewTreeFromLeveledList(ll)
}

// printConflicts lists the conflicting cells of a table, if any.
func printConflicts(t *lr.Table) {
	conflicts := t.Conflicts()
	if len(conflicts) == 0 {
		pterm.Info.Printf("%s table has no conflicts\n", t.Mode)
		return
	}
	pterm.Error.Printf("%s table has %d conflicts\n", t.Mode, len(conflicts))
	for _, c := range conflicts {
		fmt.Printf("    %v\n", c)
	}
}

// writeTrace renders a simulation history as a table.
func writeTrace(w io.Writer, steps []*sim.Step, cursor int) {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"", "step", "states", "symbols", "input", "action"})
	for _, step := range steps {
		mark := ""
		if step.Index == cursor {
			mark = "▶"
		}
		table.Append([]string{
			mark,
			fmt.Sprintf("%d", step.Index),
			joinInts(step.StateStack),
			joinSymbols(step.SymbolStack),
			joinSymbols(step.Input),
			step.Action.String(),
		})
	}
	table.Render()
}

// printOutcome reports the terminal step of a simulation.
func printOutcome(step *sim.Step) {
	switch step.Action.Kind {
	case lr.AcceptAction:
		pterm.Info.Println("input accepted")
	case lr.ErrorAction, lr.ConflictAction:
		pterm.Error.Println(step.Err.Error())
	case lr.NoAction, lr.ShiftAction, lr.ReduceAction:
		pterm.Info.Printf("step %d: %v\n", step.Index, step.Action)
	}
}

func joinInts(ints []int) string {
	s := make([]string, len(ints))
	for i, n := range ints {
		s[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(s, " ")
}

func joinSymbols(syms []lr.Symbol) string {
	s := make([]string, len(syms))
	for i, sym := range syms {
		s[i] = string(sym)
	}
	return strings.Join(s, " ")
}
