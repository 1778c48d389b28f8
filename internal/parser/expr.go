package parser

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/lexer"
)

// parseReference parses a dotted identifier path: `a.b.c`. Used for type
// names, constant references, and each FieldReference path segment.
func (p *Parser) parseReference() ir.Reference {
	var words []ir.Word
	t := p.expect(lexer.IDENT)
	words = append(words, ir.Word{Text: t.Literal, Loc: p.loc(t)})
	for p.at(lexer.DOT) {
		p.advance()
		t = p.expect(lexer.IDENT)
		words = append(words, ir.Word{Text: t.Literal, Loc: p.loc(t)})
	}
	return ir.Reference{Components: words}
}

func (p *Parser) parseCallArgs() []ir.Expr {
	p.advance() // LPAREN
	var args []ir.Expr
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		args = append(args, p.parseExpr())
		if p.at(lexer.COMMA) {
			p.advance()
		}
	}
	if p.at(lexer.RPAREN) {
		p.advance()
	}
	return args
}

// Expression grammar, low to high precedence:
//   ternary  ::= or ('?' expr ':' expr)?
//   or       ::= and ('||' and)*
//   and      ::= equality ('&&' equality)*
//   equality ::= relational (('==' | '!=') relational)*
//   relational ::= additive (('<'|'<='|'>'|'>=') additive)*
//   additive ::= multiplicative (('+'|'-') multiplicative)*
//   multiplicative ::= unary ('*' unary)*
//   unary    ::= '-' unary | primary
//   primary  ::= INT | TRUE | FALSE | '(' expr ')' | BUILTIN ['(' args ')'] | reference
func (p *Parser) parseExpr() ir.Expr {
	return p.parseTernary()
}

func (p *Parser) parseTernary() ir.Expr {
	cond := p.parseOr()
	if p.at(lexer.QUESTION) {
		q := p.advance()
		thenE := p.parseExpr()
		p.expect(lexer.COLON)
		elseE := p.parseExpr()
		return &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(q)}, Function: ir.Choice, Args: []ir.Expr{cond, thenE, elseE}}
	}
	return cond
}

func (p *Parser) parseOr() ir.Expr {
	left := p.parseAnd()
	for p.at(lexer.OR) {
		t := p.advance()
		right := p.parseAnd()
		left = &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: ir.Or, Args: []ir.Expr{left, right}}
	}
	return left
}

func (p *Parser) parseAnd() ir.Expr {
	left := p.parseEquality()
	for p.at(lexer.AND) {
		t := p.advance()
		right := p.parseEquality()
		left = &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: ir.And, Args: []ir.Expr{left, right}}
	}
	return left
}

func (p *Parser) parseEquality() ir.Expr {
	left := p.parseRelational()
	for p.at(lexer.EQ) || p.at(lexer.NEQ) {
		t := p.advance()
		fn := ir.Equality
		if t.Type == lexer.NEQ {
			fn = ir.Inequality
		}
		right := p.parseRelational()
		left = &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: fn, Args: []ir.Expr{left, right}}
	}
	return left
}

func (p *Parser) parseRelational() ir.Expr {
	left := p.parseAdditive()
	for p.at(lexer.LT) || p.at(lexer.LE) || p.at(lexer.GT) || p.at(lexer.GE) {
		t := p.advance()
		var fn ir.FunctionKind
		switch t.Type {
		case lexer.LT:
			fn = ir.Less
		case lexer.LE:
			fn = ir.LessOrEqual
		case lexer.GT:
			fn = ir.Greater
		case lexer.GE:
			fn = ir.GreaterOrEqual
		}
		right := p.parseAdditive()
		left = &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: fn, Args: []ir.Expr{left, right}}
	}
	return left
}

func (p *Parser) parseAdditive() ir.Expr {
	left := p.parseMultiplicative()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		t := p.advance()
		fn := ir.Addition
		if t.Type == lexer.MINUS {
			fn = ir.Subtraction
		}
		right := p.parseMultiplicative()
		left = &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: fn, Args: []ir.Expr{left, right}}
	}
	return left
}

func (p *Parser) parseMultiplicative() ir.Expr {
	left := p.parseUnary()
	for p.at(lexer.STAR) {
		t := p.advance()
		right := p.parseUnary()
		left = &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: ir.Multiplication, Args: []ir.Expr{left, right}}
	}
	return left
}

func (p *Parser) parseUnary() ir.Expr {
	if p.at(lexer.MINUS) {
		t := p.advance()
		operand := p.parseUnary()
		zero := &ir.Constant{ExprBase: ir.ExprBase{Location: p.loc(t)}, Value: ir.NewInt(0)}
		return &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: ir.Subtraction, Args: []ir.Expr{zero, operand}}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ir.Expr {
	t := p.cur()
	switch t.Type {
	case lexer.INT:
		p.advance()
		v, _ := ir.NewIntFromString(t.Literal)
		return &ir.Constant{ExprBase: ir.ExprBase{Location: p.loc(t)}, Value: v}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ir.BooleanConstant{ExprBase: ir.ExprBase{Location: p.loc(t)}, Value: t.Type == lexer.TRUE}
	case lexer.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(lexer.RPAREN)
		return e
	case lexer.BUILTIN:
		return p.parseBuiltin()
	case lexer.IDENT:
		return p.parseFieldOrConstantReference()
	default:
		p.errorf(t, diag.UnexpectedToken, "unexpected token %q in expression", t.Literal)
		p.advance()
		return &ir.BooleanConstant{ExprBase: ir.ExprBase{Location: p.loc(t)}, Value: false}
	}
}

var builtinFunctionKind = map[string]ir.FunctionKind{
	"$present":     ir.Presence,
	"$upper_bound": ir.UpperBound,
	"$lower_bound": ir.LowerBound,
	"$max":         ir.Maximum,
}

func (p *Parser) parseBuiltin() ir.Expr {
	t := p.advance() // BUILTIN
	if !p.at(lexer.LPAREN) {
		return &ir.BuiltinReference{ExprBase: ir.ExprBase{Location: p.loc(t)}, Reference: ir.Reference{Components: []ir.Word{{Text: t.Literal, Loc: p.loc(t)}}}}
	}
	args := p.parseCallArgs()
	if fn, ok := builtinFunctionKind[t.Literal]; ok {
		return &ir.Function{ExprBase: ir.ExprBase{Location: p.loc(t)}, Function: fn, Args: args}
	}
	p.errorf(t, diag.UnexpectedToken, "unknown builtin function %q", t.Literal)
	return &ir.BooleanConstant{ExprBase: ir.ExprBase{Location: p.loc(t)}, Value: false}
}

// parseFieldOrConstantReference parses a dotted identifier path as a
// FieldReference. The parser always emits FieldReference, and the symbol
// resolver (§4.F) keeps that node kind: a path that names an enum value
// or another constant is resolved in place and is not turned into a
// ConstantReference.
func (p *Parser) parseFieldOrConstantReference() ir.Expr {
	start := p.cur()
	ref := p.parseReference()
	path := make([]ir.Reference, len(ref.Components))
	for i, w := range ref.Components {
		path[i] = ir.Reference{Components: []ir.Word{w}}
	}
	return &ir.FieldReference{ExprBase: ir.ExprBase{Location: p.loc(start)}, Path: path}
}
