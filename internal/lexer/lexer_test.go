package lexer

import (
	"fmt"
	"testing"
)

func tokenTypes(src string) []TokenType {
	lx := New("test.emb", Normalize([]byte(src)))
	var got []TokenType
	for {
		t := lx.Next()
		got = append(got, t.Type)
		if t.Type == EOF {
			break
		}
	}
	return got
}

func assertTypes(t *testing.T, src string, want []TokenType) {
	t.Helper()
	got := tokenTypes(src)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestLexKeywordsAndIdents(t *testing.T) {
	assertTypes(t, "struct Foo", []TokenType{STRUCT, IDENT, EOF})
}

func TestLexIndentationEmitsIndentAndDedent(t *testing.T) {
	src := "struct Foo:\n  0 [+4]  UInt  x\nenum Bar:\n"
	assertTypes(t, src, []TokenType{
		STRUCT, IDENT, COLON, NEWLINE,
		INDENT, INT, LBRACKET, PLUS, INT, RBRACKET, IDENT, IDENT, NEWLINE,
		DEDENT, ENUM, IDENT, COLON, NEWLINE,
		EOF,
	})
}

func TestLexBlankAndCommentOnlyLinesAreSkipped(t *testing.T) {
	src := "struct Foo:\n\n  # a comment\n  0 [+4]  UInt  x\n"
	assertTypes(t, src, []TokenType{
		STRUCT, IDENT, COLON, NEWLINE,
		INDENT, INT, LBRACKET, PLUS, INT, RBRACKET, IDENT, IDENT, NEWLINE,
		DEDENT, EOF,
	})
}

func TestLexBuiltinReference(t *testing.T) {
	lx := New("test.emb", Normalize([]byte("$max(a, b)")))
	tok := lx.Next()
	if tok.Type != BUILTIN || tok.Literal != "$max" {
		t.Fatalf("got %+v, want BUILTIN $max", tok)
	}
}

func TestLexTwoCharOperatorsVsSingle(t *testing.T) {
	assertTypes(t, "a == b", []TokenType{IDENT, EQ, IDENT, EOF})
	assertTypes(t, "a != b", []TokenType{IDENT, NEQ, IDENT, EOF})
	assertTypes(t, "a < b", []TokenType{IDENT, LT, IDENT, EOF})
	assertTypes(t, "a <= b", []TokenType{IDENT, LE, IDENT, EOF})
}

func TestLexString(t *testing.T) {
	lx := New("test.emb", Normalize([]byte(`"hello \"world\""`)))
	tok := lx.Next()
	if tok.Type != STRING || tok.Literal != `hello "world"` {
		t.Fatalf("got %+v, want unescaped string literal", tok)
	}
}

func TestLexIllegalCharacter(t *testing.T) {
	lx := New("test.emb", Normalize([]byte("@")))
	tok := lx.Next()
	if tok.Type != ILLEGAL || tok.Literal != "@" {
		t.Fatalf("got %+v, want ILLEGAL \"@\"", tok)
	}
}

func TestTokenStringIncludesPosition(t *testing.T) {
	tok := Token{Type: IDENT, Literal: "x", Line: 3, Column: 5}
	s := tok.String()
	want := fmt.Sprintf(`3:5 %d "x"`, IDENT)
	if s != want {
		t.Fatalf("got %q, want %q", s, want)
	}
}
