package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseFlags = struct {
	input *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Simulate a shift-reduce parse of an input",
		Example: `  lrdeck parse expr.txt -i "id + id * id"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.input = cmd.Flags().StringP("input", "i", "", "input, terminals separated by white space")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	s, err := loadSession(cmd, args[0], parseFlags.input)
	if err != nil {
		return err
	}
	last := s.Sim.Run()
	writeTrace(os.Stdout, s.Sim.History(), -1)
	printOutcome(last)
	if !s.Sim.Accepted() {
		return fmt.Errorf("input %q not accepted", s.Seed.InputString)
	}
	return nil
}
