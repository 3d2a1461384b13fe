package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var dotFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "dot <grammar file path>",
		Short:   "Export the CFSM of a grammar in Graphviz DOT format",
		Example: `  lrdeck dot expr.txt | dot -Tsvg > cfsm.svg`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDot,
	}
	dotFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runDot(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	s, err := loadSession(cmd, args[0], nil)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if *dotFlags.output != "" {
		f, err := os.Create(*dotFlags.output)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", *dotFlags.output, err)
		}
		defer f.Close()
		w = f
	}
	return s.CFSM.CFSM2GraphViz(w)
}
