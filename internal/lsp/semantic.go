package lsp

import (
	"github.com/alecthomas/participle/v2/lexer"

	"smpl/grammar"
	"smpl/internal/lower"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"function",
	"number",
	"operator",
	"comment",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"defaultLibrary",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

var symbolNames = lexer.SymbolsByRune(grammar.SmplLexer)

// collectSemanticTokens classifies the lexical tokens of text. Lexing stops
// at the first invalid character; tokens before it are still returned.
func collectSemanticTokens(filename, text string) []SemanticToken {
	var tokens []SemanticToken

	lex, err := grammar.SmplLexer.LexString(filename, text)
	if err != nil {
		return tokens
	}

	inDecl, afterCall := false, false
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return tokens
		}

		var kind string
		modifiers := 0
		switch symbolNames[tok.Type] {
		case "Keyword":
			kind = "keyword"
			switch tok.Value {
			case "var":
				inDecl = true
			case "call":
				afterCall = true
			}
		case "Ident":
			kind = "variable"
			switch {
			case afterCall:
				kind = "function"
				if lower.IsBuiltin(tok.Value) {
					modifiers |= modifierMask("defaultLibrary")
				}
				afterCall = false
			case inDecl:
				modifiers |= modifierMask("declaration")
			}
		case "Integer":
			kind = "number"
		case "Operator":
			kind = "operator"
		case "Comment":
			kind = "comment"
		case "Punctuation":
			if tok.Value == ";" {
				inDecl = false
			}
			continue
		default:
			continue
		}

		tokens = append(tokens, makeToken(tok.Pos, tok.Value, kind, modifiers))
	}
}

func makeToken(pos lexer.Position, value, kind string, modifiers int) SemanticToken {
	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(len(value)),
		TokenType:      tokenTypeIndex(kind),
		TokenModifiers: modifiers,
	}
}

// encodeSemanticTokens produces the LSP wire format (delta-line, delta-start compression)
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	var data []uint32
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return data
}

func tokenTypeIndex(kind string) int {
	for i, name := range SemanticTokenTypes {
		if name == kind {
			return i
		}
	}
	return 0
}

func modifierMask(name string) int {
	for i, m := range SemanticTokenModifiers {
		if m == name {
			return 1 << i
		}
	}
	return 0
}
