package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestStartAccumulatesUntilPeriod(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("main var a;\n{ let a <- 1;\ncall OutputNum(a) }.\n"), &out)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, PROMPT+CONTINUATION+CONTINUATION))
	assert.Contains(t, text, "BB0:")
	assert.Contains(t, text, "write (")
	assert.Contains(t, text, "Dom Predecessors:")
}

func TestEvalReportsDiagnostics(t *testing.T) {
	var out bytes.Buffer
	Eval(&out, "<repl 1>", "main var a; { let b <- 1 }.")

	text := out.String()
	assert.Contains(t, text, "error[E0001]: undefined variable 'b'")
	assert.Contains(t, text, "<repl 1>:1:19")
	assert.Contains(t, text, "BB1:")
}

func TestEvalSyntaxErrorHasNoDump(t *testing.T) {
	var out bytes.Buffer
	Eval(&out, "<repl 1>", "main { let }.")

	text := out.String()
	assert.Contains(t, text, "error[E0100]")
	assert.NotContains(t, text, "BB0:")
}

func TestEvalDumpNamesCalledFunction(t *testing.T) {
	var out bytes.Buffer
	Eval(&out, "<repl 1>", "main var a; { let a <- call InputNum(); let a <- call scale(a) }.")

	text := out.String()
	assert.Contains(t, text, ": read\n")
	assert.Contains(t, text, ": call scale (")
}
