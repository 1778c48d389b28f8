package parser

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/lexer"
)

// parseVirtualField parses `let name = expr`.
func (p *Parser) parseVirtualField() *ir.Field {
	kw := p.advance() // LET
	name := p.expect(lexer.IDENT)
	p.expect(lexer.EQ)
	transform := p.parseExpr()

	f := &ir.Field{
		Location:       p.loc(kw),
		NameDefinition: ir.NameDefinition{Name: ir.Word{Text: name.Literal, Loc: p.loc(name)}},
		ReadTransform:  transform,
	}
	f.ExistenceCondition = p.defaultExistence(p.loc(kw))
	p.parseTrailingAttributeBlock(&f.Attributes)
	return f
}

// parsePhysicalField parses `start [+size] Type[(args)][count] name [if cond]`.
// A Type of `struct:`/`bits:` with no name introduces an anonymous inner
// type, desugared later by component E (§4.E.2).
func (p *Parser) parsePhysicalField(owner *ir.Structure) *ir.Field {
	startTok := p.cur()
	start := p.parseExpr()
	p.expect(lexer.LBRACKET)
	p.expect(lexer.PLUS)
	size := p.parseExpr()
	p.expect(lexer.RBRACKET)

	if p.at(lexer.BITS) || p.at(lexer.STRUCT) {
		return p.parseAnonymousInnerField(owner, p.loc(startTok), start, size)
	}

	typeRef := p.parseReference()
	ft := &ir.FieldType{Location: typeRef.Loc(), Reference: typeRef}
	if p.at(lexer.LPAREN) {
		ft.Parameters = p.parseCallArgs()
	}
	if p.at(lexer.LBRACKET) {
		p.advance()
		ft.IsArray = true
		if !p.at(lexer.RBRACKET) {
			ft.ElementCount = p.parseExpr()
		}
		p.expect(lexer.RBRACKET)
	}

	var name ir.NameDefinition
	if p.at(lexer.IDENT) {
		t := p.advance()
		name = ir.NameDefinition{Name: ir.Word{Text: t.Literal, Loc: p.loc(t)}}
	} else {
		name = p.nextAnonName(p.loc(startTok))
	}

	f := &ir.Field{
		Location:         p.loc(startTok),
		NameDefinition:   name,
		PhysicalLocation: &ir.PhysicalLocation{Start: start, Size: size},
		Type:             ft,
	}
	f.ExistenceCondition = p.parseOptionalExistence(p.loc(startTok))
	p.parseTrailingAttributeBlock(&f.Attributes)
	return f
}

// parseAnonymousInnerField parses `start [+size] struct|bits: <INDENT body DEDENT>`
// as one physical field of an anonymous inner Structure type, which
// component E later expands into field aliases (§4.E.2).
func (p *Parser) parseAnonymousInnerField(owner *ir.Structure, loc diag.Location, start, size ir.Expr) *ir.Field {
	unit := ir.Byte
	if p.at(lexer.BITS) {
		unit = ir.Bit
	}
	kw := p.advance()
	p.expect(lexer.COLON)
	p.skipNewlines()

	inner := &ir.Structure{TypeDefBase: ir.TypeDefBase{
		Location:        p.loc(kw),
		NameDefinition:  ir.NameDefinition{Name: p.nextAnonTypeName(p.loc(kw)), IsAnonymous: true},
		AddressableUnit: unit,
	}}
	if p.at(lexer.INDENT) {
		p.advance()
		for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
			p.skipNewlines()
			if p.at(lexer.DEDENT) {
				break
			}
			p.parseBodyItem(inner)
			p.skipNewlines()
		}
		if p.at(lexer.DEDENT) {
			p.advance()
		}
	}
	owner.Subtype = append(owner.Subtype, inner)

	f := &ir.Field{
		Location:         loc,
		NameDefinition:   p.nextAnonName(loc),
		PhysicalLocation: &ir.PhysicalLocation{Start: start, Size: size},
		Type:             &ir.FieldType{Reference: ir.Reference{Components: []ir.Word{inner.NameDefinition.Name}}},
	}
	f.ExistenceCondition = p.defaultExistence(loc)
	return f
}

func (p *Parser) defaultExistence(loc diag.Location) ir.Expr {
	return &ir.BooleanConstant{ExprBase: ir.ExprBase{Location: loc}, Value: true}
}

// parseOptionalExistence parses a trailing `if <expr>` clause, defaulting
// to the boolean constant `true` (§3).
func (p *Parser) parseOptionalExistence(loc diag.Location) ir.Expr {
	if p.at(lexer.IF) {
		p.advance()
		return p.parseExpr()
	}
	return p.defaultExistence(loc)
}

// parseTrailingAttributeBlock consumes an optional indented run of
// bracketed attributes following a field's header line.
func (p *Parser) parseTrailingAttributeBlock(out *[]ir.Attribute) {
	p.skipNewlines()
	if !p.at(lexer.INDENT) {
		return
	}
	p.advance()
	for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
		p.skipNewlines()
		if p.at(lexer.DEDENT) {
			break
		}
		if p.at(lexer.LBRACKET) {
			*out = append(*out, p.parseAttribute())
		} else {
			p.skipToNewline()
		}
		p.skipNewlines()
	}
	if p.at(lexer.DEDENT) {
		p.advance()
	}
}

// parseAttribute parses `[name: value]` or `[(backend) name: value]`,
// or a `$default` value marker.
func (p *Parser) parseAttribute() ir.Attribute {
	open := p.advance() // LBRACKET
	backEnd := ""
	if p.at(lexer.LPAREN) {
		p.advance()
		be := p.expect(lexer.IDENT)
		backEnd = be.Literal
		p.expect(lexer.RPAREN)
	}
	name := p.expect(lexer.IDENT)
	attr := ir.Attribute{Location: p.loc(open), BackEnd: backEnd, Name: ir.Word{Text: name.Literal, Loc: p.loc(name)}}
	if p.at(lexer.COLON) {
		p.advance()
		attr.Value = p.parseAttributeValue()
	}
	p.expect(lexer.RBRACKET)
	return attr
}

func (p *Parser) parseAttributeValue() ir.AttributeValue {
	t := p.cur()
	switch t.Type {
	case lexer.STRING:
		p.advance()
		s := t.Literal
		return ir.AttributeValue{Location: p.loc(t), String: &s}
	case lexer.INT:
		p.advance()
		v, _ := ir.NewIntFromString(t.Literal)
		return ir.AttributeValue{Location: p.loc(t), Int: v}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		b := t.Type == lexer.TRUE
		return ir.AttributeValue{Location: p.loc(t), Bool: &b}
	case lexer.BUILTIN:
		if t.Literal == "$default" {
			p.advance()
			return ir.AttributeValue{Location: p.loc(t), IsDefault: true}
		}
		p.advance()
		return ir.AttributeValue{Location: p.loc(t)}
	default:
		p.errorf(t, diag.UnexpectedToken, "expected an attribute value, found %q", t.Literal)
		p.advance()
		return ir.AttributeValue{Location: p.loc(t)}
	}
}
