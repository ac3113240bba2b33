package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"smpl/grammar"
	"smpl/internal/errors"
)

// ParseError is a syntax error with its source location.
type ParseError struct {
	Message  string
	Position errors.Position
}

func (e ParseError) Diagnostic() errors.CompilerError {
	return errors.SyntaxError(e.Message, e.Position)
}

// PositionOf converts a lexer position to a diagnostic position.
func PositionOf(pos lexer.Position) errors.Position {
	return errors.Position{Filename: pos.Filename, Line: pos.Line, Column: pos.Column}
}

func ParseFile(path string) (*grammar.Computation, []ParseError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	program, parseErrors := ParseSource(path, string(source))
	return program, parseErrors, nil
}

// ParseSource parses source; program is nil when parseErrors is not empty.
func ParseSource(sourceName string, source string) (*grammar.Computation, []ParseError) {
	program, err := grammar.ParseString(sourceName, source)
	if err == nil {
		return program, nil
	}

	if pe, ok := err.(participle.Error); ok {
		return nil, []ParseError{{Message: pe.Message(), Position: PositionOf(pe.Position())}}
	}
	return nil, []ParseError{{Message: err.Error(), Position: errors.Position{Filename: sourceName, Line: 1, Column: 1}}}
}
