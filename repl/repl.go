// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"smpl/internal/errors"
	"smpl/internal/lower"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Start reads programs from in, one per line group ending in ".", and
// writes each program's diagnostics and CFG dump to out.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	var program strings.Builder
	count := 0

	for {
		if program.Len() == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		program.WriteString(line)
		program.WriteString("\n")
		if !strings.HasSuffix(strings.TrimSpace(line), ".") {
			continue
		}

		count++
		Eval(out, fmt.Sprintf("<repl %d>", count), program.String())
		program.Reset()
	}
}

// Eval compiles one program and prints the result.
func Eval(out io.Writer, name, source string) {
	res, err := lower.Compile(name, source)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "internal error: %v\n", err)
		return
	}

	reporter := errors.NewErrorReporter(name, source)
	for _, d := range res.Diagnostics {
		fmt.Fprint(out, reporter.FormatError(d))
	}
	if res.CFG == nil {
		return
	}
	if err := res.CFG.Dump(out); err != nil {
		color.New(color.FgRed).Fprintf(out, "dump failed: %v\n", err)
	}
}
