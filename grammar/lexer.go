package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var SmplLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords are never identifiers
		{"Keyword", `(main|var|let|call|if|then|else|fi|while|do|od|return)\b`, nil},

		// Identifiers
		{"Ident", `[a-zA-Z][a-zA-Z0-9_]*`, nil},

		// Integer literals
		{"Integer", `[0-9]+`, nil},

		// Operators (<- before the relational ones)
		{"Operator", `(<-|==|!=|<=|>=|[-+*/<>])`, nil},

		// Punctuation
		{"Punctuation", `[{}(),;.]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
