package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Position locates a diagnostic in source, 1-based.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    Position     // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Error renders the one-line form used in logs and LSP messages.
func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Level, e.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string   // Description of the suggestion
	Replacement string   // Suggested replacement text (optional)
	Position    Position // Position to apply the fix (optional)
	Length      int      // Length of text to replace (optional)
}

// ErrorReporter renders diagnostics against the source they were raised on.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for source. filename is used for
// diagnostics whose position carries none.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

var (
	levelStyles = map[ErrorLevel]*color.Color{
		Error:   color.New(color.FgRed, color.Bold),
		Warning: color.New(color.FgYellow, color.Bold),
		Note:    color.New(color.FgBlue, color.Bold),
		Help:    color.New(color.FgGreen, color.Bold),
	}
	fixStyle  = color.New(color.FgCyan)
	noteStyle = color.New(color.FgBlue)
	helpStyle = color.New(color.FgGreen)
	dim       = color.New(color.Faint).SprintFunc()
)

// underline characters; errors and warnings are told apart without color
var markers = map[ErrorLevel]string{
	Error:   "^",
	Warning: "~",
}

func styleOf(level ErrorLevel) *color.Color {
	if c, ok := levelStyles[level]; ok {
		return c
	}
	return levelStyles[Error]
}

// FormatError renders err as a header, the offending source line with its
// span underlined, and then any suggestions, notes and help.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var out strings.Builder
	gutter := strings.Repeat(" ", gutterWidth(err.Position.Line))
	bar := dim("│")

	level := styleOf(err.Level).Sprint(string(err.Level))
	if err.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", level, err.Code, err.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", level, err.Message)
	}
	fmt.Fprintf(&out, "%s %s %s\n", gutter, dim("-->"), er.location(err.Position))
	fmt.Fprintf(&out, "%s %s\n", gutter, bar)

	if text, ok := er.line(err.Position.Line); ok {
		if prev, ok := er.line(err.Position.Line - 1); ok && strings.TrimSpace(prev) != "" {
			fmt.Fprintf(&out, "%s %s %s\n", dim(lineNumber(err.Position.Line-1, gutter)), bar, prev)
		}
		fmt.Fprintf(&out, "%s %s %s\n", lineNumber(err.Position.Line, gutter), bar, text)
		fmt.Fprintf(&out, "%s %s %s\n", gutter, bar, underline(err.Position.Column, err.Length, err.Level))
	}

	for _, s := range err.Suggestions {
		fmt.Fprintf(&out, "%s %s %s\n", gutter, fixStyle.Sprint("help:"), s.Message)
		if s.Replacement == "" {
			continue
		}
		if fixed, ok := er.apply(s); ok {
			fmt.Fprintf(&out, "%s %s %s\n", lineNumber(s.Position.Line, gutter), bar, fixed)
			mark := strings.Repeat(" ", max(0, s.Position.Column-1)) + strings.Repeat("+", len(s.Replacement))
			fmt.Fprintf(&out, "%s %s %s\n", gutter, bar, fixStyle.Sprint(mark))
		}
	}
	for _, note := range err.Notes {
		fmt.Fprintf(&out, "%s = %s %s\n", gutter, noteStyle.Sprint("note:"), note)
	}
	if err.HelpText != "" {
		fmt.Fprintf(&out, "%s = %s %s\n", gutter, helpStyle.Sprint("help:"), err.HelpText)
	}

	out.WriteString("\n")
	return out.String()
}

// location prefers the file recorded on the diagnostic itself.
func (er *ErrorReporter) location(pos Position) string {
	if pos.Filename == "" {
		pos.Filename = er.filename
	}
	return pos.String()
}

func (er *ErrorReporter) line(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

// apply returns the source line of s with its span replaced.
func (er *ErrorReporter) apply(s Suggestion) (string, bool) {
	text, ok := er.line(s.Position.Line)
	start := s.Position.Column - 1
	if !ok || start < 0 || start+s.Length > len(text) {
		return "", false
	}
	return text[:start] + s.Replacement + text[start+s.Length:], true
}

func underline(column, length int, level ErrorLevel) string {
	marker, ok := markers[level]
	if !ok {
		marker = markers[Error]
	}
	return strings.Repeat(" ", max(0, column-1)) + styleOf(level).Sprint(strings.Repeat(marker, max(1, length)))
}

func gutterWidth(line int) int {
	return max(3, len(strconv.Itoa(line)))
}

func lineNumber(n int, gutter string) string {
	return fmt.Sprintf("%*d", len(gutter), n)
}
