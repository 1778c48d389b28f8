// Package parser is the upstream-boundary parser (§6, §1 "Out of
// scope"): a minimal recursive-descent reader for the Language's
// concrete syntax, just complete enough to turn source text into the
// initial ir.IR the semantic-analysis pipeline (components A-L) then
// decorates. It is intentionally not the production LR(1) grammar the
// spec excludes from this repo's scope — only ParseModuleText's
// signature (§6) is a hard contract.
package parser

import (
	"fmt"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/lexer"
)

// Parser holds the full token stream for one module (small source files
// make this simpler than a streaming lexer/parser pair, and the pipeline
// never needs to re-lex).
type Parser struct {
	file   string
	toks   []lexer.Token
	pos    int
	anon   int // counter for emboss_reserved_anonymous_N names (§4.B)
	errors []diag.Bundle
}

// ParseModuleText is the external interface boundary (§6):
// parse_module_text(source, file_name) -> (module_ir, debug_info, errors).
// debug_info is reserved for future tokenization/parse-tree dumps
// (--debug-show-tokenization, --debug-show-parse-tree, §6) and is always
// nil from this minimal implementation.
func ParseModuleText(source []byte, fileName string) (*ir.Module, any, []diag.Bundle) {
	normalized := lexer.Normalize(source)
	lx := lexer.New(fileName, normalized)
	var toks []lexer.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Type == lexer.EOF {
			break
		}
	}
	p := &Parser{file: fileName, toks: toks}
	mod := p.parseModule()
	mod.SourceText = string(normalized)
	return mod, nil, p.errors
}

// ModuleReader loads a file's text by name, returning (nil, errors) on
// failure. This is the pluggable reader read_fn of §6. Nothing in this
// repository calls ParseModule: the loader, the prelude, the CLI and the
// tests all parse with ParseModuleText directly.
type ModuleReader func(fileName string) ([]byte, []diag.Bundle)

// ParseModule loads fileName via read and parses it (§6
// parse_module(file_name, read_fn)).
func ParseModule(fileName string, read ModuleReader) (*ir.Module, any, []diag.Bundle) {
	text, errs := read(fileName)
	if len(errs) > 0 {
		return nil, nil, errs
	}
	return ParseModuleText(text, fileName)
}

func (p *Parser) cur() lexer.Token { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) loc(t lexer.Token) diag.Location {
	return diag.Location{
		File:  p.file,
		Start: diag.Position{Line: t.Line, Column: t.Column},
		End:   diag.Position{Line: t.Line, Column: t.Column + len(t.Literal)},
	}
}

func (p *Parser) errorf(t lexer.Token, code, format string, args ...any) {
	p.errors = append(p.errors, diag.NewBundle(diag.Errorf(code, "parser", p.file, p.loc(t), fmt.Sprintf(format, args...))))
}

// expect consumes and returns the current token if it matches tt,
// otherwise records a parse error and returns the unconsumed token so
// recovery can continue on the same token.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.cur().Type != tt {
		p.errorf(p.cur(), diag.UnexpectedToken, "unexpected token %q", p.cur().Literal)
		return p.cur()
	}
	return p.advance()
}

// skipNewlines consumes any run of NEWLINE tokens (blank separators
// between declarations are not significant).
func (p *Parser) skipNewlines() {
	for p.at(lexer.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) nextAnonName(loc diag.Location) ir.NameDefinition {
	p.anon++
	return ir.NameDefinition{
		Name:        ir.Word{Text: fmt.Sprintf("emboss_reserved_anonymous_%d", p.anon), Loc: loc},
		IsAnonymous: true,
	}
}

func (p *Parser) nextAnonTypeName(loc diag.Location) ir.Word {
	p.anon++
	return ir.Word{Text: fmt.Sprintf("EmbossReservedAnonymous%d", p.anon), Loc: loc}
}
