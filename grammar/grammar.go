package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Computation is a whole SMPL program:
//
//	main var a, b; { let a <- 1; ... }.
type Computation struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Vars   []*VarDecl   `"main" @@*`
	Body   []*Statement `"{" ( @@ ";"? )* "}" "."`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

type VarDecl struct {
	Pos   lexer.Position
	Names []*PosIdent `"var" @@ ( "," @@ )* ";"`
}

type Statement struct {
	Pos    lexer.Position
	Let    *Assignment `  @@`
	Call   *FuncCall   `| @@`
	If     *IfStmt     `| @@`
	While  *WhileStmt  `| @@`
	Return *ReturnStmt `| @@`
}

type Assignment struct {
	Pos   lexer.Position
	Name  PosIdent    `"let" @@ "<-"`
	Value *Expression `@@`
}

type FuncCall struct {
	Pos    lexer.Position
	Name   PosIdent      `"call" @@`
	Parens bool          `( @"("`
	Args   []*Expression `  ( @@ ( "," @@ )* )? ")" )?`
}

type IfStmt struct {
	Pos     lexer.Position
	Cond    *Relation    `"if" @@ "then"`
	Then    []*Statement `( @@ ";"? )*`
	HasElse bool         `( @"else"`
	Else    []*Statement `  ( @@ ";"? )* )? "fi"`
}

type WhileStmt struct {
	Pos  lexer.Position
	Cond *Relation    `"while" @@ "do"`
	Body []*Statement `( @@ ";"? )* "od"`
}

type ReturnStmt struct {
	Pos   lexer.Position
	Value *Expression `"return" @@?`
}

type Relation struct {
	Pos   lexer.Position
	Left  *Expression `@@`
	Op    string      `@( "==" | "!=" | "<=" | ">=" | "<" | ">" )`
	Right *Expression `@@`
}

type Expression struct {
	Pos  lexer.Position
	Head *Term     `@@`
	Tail []*OpTerm `@@*`
}

type OpTerm struct {
	Pos  lexer.Position
	Op   string `@( "+" | "-" )`
	Term *Term  `@@`
}

type Term struct {
	Pos  lexer.Position
	Head *Factor     `@@`
	Tail []*OpFactor `@@*`
}

type OpFactor struct {
	Pos    lexer.Position
	Op     string  `@( "*" | "/" )`
	Factor *Factor `@@`
}

type Factor struct {
	Pos    lexer.Position
	Call   *FuncCall   `  @@`
	Ident  *PosIdent   `| @@`
	Number *int64      `| @Integer`
	Sub    *Expression `| "(" @@ ")"`
}
