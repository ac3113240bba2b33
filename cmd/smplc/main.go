// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"smpl/internal/errors"
	"smpl/internal/lower"
)

type options struct {
	verbosity int
	noColor   bool
	path      string
}

func parseArgs(args []string) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet("smplc", pflag.ContinueOnError)
	flags.IntVarP(&opts.verbosity, "verbose", "v", 0, "log verbosity (0 = warnings only, 2 = debug)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: smplc [-v N] [--no-color] <file.smpl>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return nil, fmt.Errorf("expected exactly one source file, got %d", flags.NArg())
	}
	opts.path = flags.Arg(0)
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err == pflag.ErrHelp {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if opts.noColor {
		color.NoColor = true
	}
	commonlog.Configure(opts.verbosity, nil)

	startTime := time.Now()
	path := opts.path

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	res, err := lower.Compile(path, string(source))
	if err != nil {
		internal := errors.InternalError(err, errors.Position{Filename: path, Line: 1, Column: 1})
		res = &lower.Result{Diagnostics: []errors.CompilerError{internal}}
	}

	errorReporter := errors.NewErrorReporter(path, string(source))
	for _, d := range res.Diagnostics {
		fmt.Print(errorReporter.FormatError(d))
	}

	duration := time.Since(startTime)
	formattedDuration := formatDuration(duration)

	if res.HasErrors() {
		color.Red("Compilation failed after %s", formattedDuration)
		os.Exit(1)
	}

	if err := res.CFG.Dump(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write CFG: %v\n", err)
		os.Exit(1)
	}
	color.Green("Successfully processed %s in %s (%d blocks, %d instructions, %d warnings)",
		path, formattedDuration, res.CFG.NumBlocks(), res.CFG.NumInstrs(), len(res.Warnings()))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
