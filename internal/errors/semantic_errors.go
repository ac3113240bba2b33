package errors

import (
	"fmt"
	"strings"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, pos Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// UndefinedVariable creates an error for undeclared variables with suggestions
func UndefinedVariable(name string, pos Position, declared []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	similar := findSimilarNames(name, declared)
	switch len(similar) {
	case 0:
		builder = builder.WithSuggestion("make sure the variable is declared before use").
			WithNote("variables must be declared with 'var' before the opening '{'")
	case 1:
		builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", similar[0]), similar[0], pos, len(name))
	default:
		suggestions := strings.Join(similar, "', '")
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", suggestions))
	}

	return builder.Build()
}

// DuplicateDeclaration creates an error for a variable declared twice
func DuplicateDeclaration(name string, pos Position) CompilerError {
	return NewSemanticError(ErrorDuplicateDeclaration, fmt.Sprintf("variable '%s' is already declared", name), pos).
		WithLength(len(name)).
		WithSuggestion("remove the duplicate declaration").
		Build()
}

// InvalidArguments creates an error for a built-in called with the wrong arity
func InvalidArguments(functionName string, expected, actual int, pos Position) CompilerError {
	return NewSemanticError(ErrorInvalidArguments,
		fmt.Sprintf("function '%s' expects %d argument(s), found %d", functionName, expected, actual), pos).
		WithLength(len(functionName)).
		Build()
}

// SyntaxError wraps a parser message
func SyntaxError(message string, pos Position) CompilerError {
	return NewSemanticError(ErrorSyntax, message, pos).Build()
}

// InternalError reports a violated graph construction protocol
func InternalError(err error, pos Position) CompilerError {
	return NewSemanticError(ErrorInternal, fmt.Sprintf("internal compiler error: %v", err), pos).
		WithNote("this is a compiler bug, the build was aborted").
		Build()
}

// UseBeforeDefinition creates a warning for a read that no assignment
// reaches on at least one path. partial is set when other paths to the read
// do assign the variable.
func UseBeforeDefinition(name string, pos Position, partial bool) CompilerError {
	builder := NewSemanticWarning(WarningUseBeforeDefinition, fmt.Sprintf("'%s' referenced before assignment", name), pos).
		WithLength(len(name))
	if partial {
		builder = builder.WithNote(fmt.Sprintf("'%s' is assigned on some paths to this read but not all", name))
	}
	return builder.
		WithNote("the variable reads as 0 on paths where it was never assigned").
		WithHelp(fmt.Sprintf("assign '%s' with 'let %s <- ...' before reading it", name, name)).
		Build()
}

// UnreachableCode creates a warning for statements following a return
func UnreachableCode(pos Position) CompilerError {
	return NewSemanticWarning(WarningUnreachableCode, "unreachable code", pos).
		WithSuggestion("remove the unreachable code").
		WithNote("code after a return statement will never be executed").
		Build()
}

// findSimilarNames returns candidates within edit distance 2 of target
func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if levenshteinDistance(target, candidate) <= 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
