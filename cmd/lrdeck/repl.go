package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrdeck/lr"
	"github.com/npillmayer/lrdeck/session"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	input *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Step through a shift-reduce parse interactively",
		Long: `repl starts an interactive session. Commands are

  next | n            step forward
  back | b            step backward
  seek <step>         move to a step
  run  | r            step forward until the parse terminates
  reset               move back to the first step
  trace               print all steps computed so far
  input <terminals>   start over with a new input
  mode <LR0|SLR1>     rebuild the table, keeping the CFSM
  table               print the parser table
  save <file>         write the session seed as JSON
  quit | q            leave

Quit with <ctrl>D as well.`,
		Example: `  lrdeck repl expr.txt -i "id + id"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.input = cmd.Flags().StringP("input", "i", "", "input, terminals separated by white space")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverError(&retErr)

	s, err := loadSession(cmd, args[0], replFlags.input)
	if err != nil {
		return err
	}
	repl, err := readline.New("lrdeck> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{session: s, repl: repl, out: os.Stdout}
	pterm.Info.Printf("%s table with %d states, input %q\n", s.Table.Mode, s.CFSM.Size(), s.Seed.InputString)
	printConflicts(s.Table)
	intp.REPL()
	return nil
}

// Intp is our command interpreter object
type Intp struct {
	session *session.Session
	repl    *readline.Instance
	out     io.Writer
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	fmt.Fprintln(intp.out, "Good bye!")
}

// Eval executes a single command line.
func (intp *Intp) Eval(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	cmd, rest := args[0], strings.TrimSpace(strings.TrimPrefix(line, args[0]))
	tracer().Debugf("command %q, args %q", cmd, rest)
	simulator := intp.session.Sim
	switch cmd {
	case "quit", "q", "exit":
		return true, nil
	case "next", "n":
		step, ok := simulator.StepForward()
		intp.show(step)
		if !ok {
			printOutcome(step)
		}
	case "back", "b":
		step, _ := simulator.StepBackward()
		intp.show(step)
	case "seek":
		i, err := strconv.Atoi(rest)
		if err != nil {
			return false, fmt.Errorf("seek needs a step number: %w", err)
		}
		step, err := simulator.Seek(i)
		intp.show(step)
		return false, err
	case "run", "r":
		printOutcome(simulator.Run())
		writeTrace(intp.out, simulator.History(), simulator.Cursor())
	case "reset":
		intp.show(simulator.Reset())
	case "trace":
		writeTrace(intp.out, simulator.History(), simulator.Cursor())
	case "input":
		s, err := intp.session.WithInput(rest)
		if err != nil {
			return false, err
		}
		intp.session = s
		intp.show(s.Sim.Current())
	case "mode":
		mode, err := lr.ParseMode(rest)
		if err != nil {
			return false, err
		}
		s, err := intp.session.WithMode(mode)
		if err != nil {
			return false, err
		}
		intp.session = s
		pterm.Info.Printf("switched to %s table\n", mode)
		printConflicts(s.Table)
	case "table":
		fmt.Fprintln(intp.out, intp.session.Table.String())
		printConflicts(intp.session.Table)
	case "save":
		return false, intp.save(rest)
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

func (intp *Intp) show(step interface{ String() string }) {
	fmt.Fprintln(intp.out, step.String())
}

func (intp *Intp) save(filename string) error {
	if filename == "" {
		return fmt.Errorf("save needs a file name")
	}
	data, err := json.MarshalIndent(intp.session.Seed, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("cannot save session: %w", err)
	}
	pterm.Info.Printf("session saved to %s\n", filename)
	return nil
}
