package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/npillmayer/lrdeck/lr"
	"github.com/npillmayer/lrdeck/session"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'lrdeck.cli'.
func tracer() tracing.Trace {
	return tracing.Select("lrdeck.cli")
}

// modeEnv names the environment variable holding the default table mode.
const modeEnv = "LRDECK_MODE"

var traceKeys = []string{"lrdeck.cli", "lrdeck.lr", "lrdeck.scanner", "lrdeck.sim"}

var rootFlags = struct {
	mode  *string
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lrdeck",
	Short: "Construct LR(0)/SLR(1) parser tables and simulate shift-reduce parses",
	Long: `lrdeck provides the following features:
- Builds the CFSM (canonical collection of LR(0) item sets) for a grammar.
- Builds an LR(0) or SLR(1) parser table, listing conflicts instead of resolving them.
- Simulates a shift-reduce parse of an input, step by step.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	defaultMode := os.Getenv(modeEnv)
	if defaultMode == "" {
		defaultMode = lr.SLR1.String()
	}
	rootFlags.mode = rootCmd.PersistentFlags().StringP("mode", "m", defaultMode,
		"table mode [LR0|SLR1], default from $"+modeEnv)
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error",
		"trace level [Debug|Info|Error]")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// setup is called before every sub command. It configures tracing and output.
func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	if _, err := lr.ParseMode(*rootFlags.mode); err != nil {
		return err
	}
	tracer().Debugf("trace level is %s", *rootFlags.trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadSession reads a grammar file or a session seed file and runs the
// pipeline. A mode given on the command line overrides the mode of a seed;
// input overrides the input string of a seed, if set.
func loadSession(cmd *cobra.Command, path string, input *string) (*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	mode, err := lr.ParseMode(*rootFlags.mode)
	if err != nil {
		return nil, err
	}
	var seed session.Seed
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if seed, err = session.ParseSeed(data); err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("mode") || os.Getenv(modeEnv) != "" {
			seed.Mode = mode
		}
	} else {
		seed = session.Seed{GrammarText: string(data), Mode: mode}
	}
	if input != nil && cmd.Flags().Changed("input") {
		seed.InputString = *input
	}
	tracer().Infof("%s table for %s", seed.Mode, path)
	s, err := session.New(seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// recoverError turns a panic of a sub command into an error.
func recoverError(retErr *error) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("an unexpected error occurred: %v", v)
		}
		fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
		*retErr = err
	}
}
