package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tableFlags = struct {
	states *bool
	json   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table <grammar file path>",
		Short:   "Print the CFSM and the parser table of a grammar",
		Example: `  lrdeck table --mode LR0 expr.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTable,
	}
	tableFlags.states = cmd.Flags().BoolP("states", "s", true, "print the item sets of all CFSM states")
	tableFlags.json = cmd.Flags().Bool("json", false, "print grammar, CFSM and table as JSON")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	s, err := loadSession(cmd, args[0], nil)
	if err != nil {
		return err
	}
	if *tableFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Snapshot())
	}
	printGrammar(s.Grammar)
	if *tableFlags.states {
		printStates(s.CFSM)
	}
	fmt.Println(s.Table.String())
	printConflicts(s.Table)
	return nil
}
