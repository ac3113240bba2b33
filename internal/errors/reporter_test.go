package errors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := `main
var a;
{
    let b <- 1
}.`

	reporter := NewErrorReporter("test.smpl", source)

	err := UndefinedVariable("b", Position{Line: 4, Column: 9}, []string{"a"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable 'b'")
	assert.Contains(t, formatted, "test.smpl:4:9")
	assert.Contains(t, formatted, "let b <- 1")
	assert.Contains(t, formatted, "help: did you mean 'a'?")
	assert.Contains(t, formatted, "    let a <- 1\n")
	assert.Contains(t, formatted, "│         +\n")
	assert.NotContains(t, formatted, "}.", "only the preceding line is shown as context")
}

func TestFormatErrorPrefersDiagnosticFilename(t *testing.T) {
	reporter := NewErrorReporter("fallback.smpl", "main { let a <- 1 }.")

	formatted := reporter.FormatError(SyntaxError("unexpected token", Position{Filename: "real.smpl", Line: 1, Column: 8}))
	assert.Contains(t, formatted, "--> real.smpl:1:8")
	assert.NotContains(t, formatted, "fallback.smpl")

	formatted = reporter.FormatError(SyntaxError("unexpected token", Position{Line: 1, Column: 8}))
	assert.Contains(t, formatted, "--> fallback.smpl:1:8")
}

func TestFormatErrorOutsideSource(t *testing.T) {
	reporter := NewErrorReporter("f.smpl", "main {}.")

	formatted := reporter.FormatError(InternalError(assert.AnError, Position{Line: 9, Column: 1}))
	assert.Contains(t, formatted, "error[E0900]")
	assert.NotContains(t, formatted, "^")
	assert.Contains(t, formatted, "= note: this is a compiler bug")
}

func TestUndefinedVariableError(t *testing.T) {
	pos := Position{Line: 1, Column: 5}

	err := UndefinedVariable("cnt", pos, []string{"count", "x"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'count'")

	err = UndefinedVariable("xyz", pos, []string{"counter"})
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "make sure the variable is declared")
	assert.NotEmpty(t, err.Notes)
}

func TestUseBeforeDefinitionWarning(t *testing.T) {
	err := UseBeforeDefinition("y", Position{Filename: "f.smpl", Line: 3, Column: 12}, false)

	assert.Equal(t, Warning, err.Level)
	assert.Len(t, err.Notes, 1)
	assert.Equal(t, WarningUseBeforeDefinition, err.Code)
	assert.True(t, IsWarning(err.Code))
	assert.Equal(t, "f.smpl:3:12: warning[W0003]: 'y' referenced before assignment", err.Error())

	partial := UseBeforeDefinition("y", Position{Line: 3, Column: 12}, true)
	require.Len(t, partial.Notes, 2)
	assert.Equal(t, "'y' is assigned on some paths to this read but not all", partial.Notes[0])
}

func TestFormatWarningWithHelp(t *testing.T) {
	reporter := NewErrorReporter("w.smpl", "main var total; {\n  call OutputNum(total)\n}.")

	formatted := reporter.FormatError(UseBeforeDefinition("total", Position{Line: 2, Column: 18}, true))
	assert.Contains(t, formatted, "warning[W0003]")
	assert.Contains(t, formatted, "  1 │ main var total; {\n")
	assert.Contains(t, formatted, "│                  ~~~~~\n")
	assert.NotContains(t, formatted, "^")
	assert.Contains(t, formatted, "= note: 'total' is assigned on some paths")
	assert.Contains(t, formatted, "= help: assign 'total'")
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Name Resolution", GetErrorCategory(ErrorUndefinedVariable))
	assert.Equal(t, "Parser", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Internal", GetErrorCategory(ErrorInternal))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnreachableCode))
	assert.False(t, IsWarning(ErrorSyntax))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E4242"))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("abc", "abc"))
	assert.Equal(t, 1, levenshteinDistance("abc", "abd"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 2, levenshteinDistance("cnt", "count"))
}
