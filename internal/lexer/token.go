// Package lexer is the upstream-boundary tokenizer (§6, §1 "Out of
// scope"): this repo carries a minimal implementation so the pipeline is
// runnable end-to-end, grounded on the teacher's internal/lexer
// (Token/TokenType/Lexer shape, Unicode normalization at the boundary)
// but scoped to the Language's own concrete syntax instead of AILANG's.
package lexer

import "fmt"

// TokenType enumerates the lexical categories of the Language's surface
// syntax: struct/bits/enum/external declarations, physical-field offset
// and size brackets, bracketed attributes, and the small expression
// grammar of §3.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	NEWLINE
	INDENT
	DEDENT

	IDENT
	BUILTIN // $name
	INT
	STRING

	STRUCT
	BITS
	ENUM
	EXTERNAL
	IMPORT
	AS
	LET
	IF
	TRUE
	FALSE

	PLUS
	MINUS
	STAR
	EQ
	NEQ
	LT
	LE
	GT
	GE
	AND
	OR
	NOT
	QUESTION
	COLON
	COMMA
	DOT
	LBRACKET
	RBRACKET
	LPAREN
	RPAREN
)

var keywords = map[string]TokenType{
	"struct":   STRUCT,
	"bits":     BITS,
	"enum":     ENUM,
	"external": EXTERNAL,
	"import":   IMPORT,
	"as":       AS,
	"let":      LET,
	"if":       IF,
	"true":     TRUE,
	"false":    FALSE,
}

// Token is one lexical token: its type, literal text, and source
// position (line/column, 1-based, matching diag.Position).
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %v %q", t.Line, t.Column, t.Type, t.Literal)
}
