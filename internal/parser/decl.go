package parser

import (
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/lexer"
)

func (p *Parser) parseModule() *ir.Module {
	mod := &ir.Module{SourceFileName: p.file}
	// implicit prelude self-import (§3 ForeignImport invariant)
	mod.ForeignImport = append(mod.ForeignImport, ir.ForeignImport{LocalName: ""})

	p.skipNewlines()
	for p.at(lexer.IMPORT) {
		mod.ForeignImport = append(mod.ForeignImport, p.parseImport())
		p.skipNewlines()
	}

	for !p.at(lexer.EOF) {
		p.skipNewlines()
		if p.at(lexer.EOF) {
			break
		}
		if p.at(lexer.LBRACKET) {
			mod.Attributes = append(mod.Attributes, p.parseAttribute())
			p.skipNewlines()
			continue
		}
		td := p.parseTypeDefinition()
		if td != nil {
			mod.TypeDefinition = append(mod.TypeDefinition, td)
		}
		p.skipNewlines()
	}
	return mod
}

func (p *Parser) parseImport() ir.ForeignImport {
	kw := p.advance() // IMPORT
	pathTok := p.expect(lexer.STRING)
	fi := ir.ForeignImport{Location: p.loc(kw), FileName: pathTok.Literal}
	if p.at(lexer.AS) {
		p.advance()
		name := p.expect(lexer.IDENT)
		fi.LocalName = name.Literal
	}
	return fi
}

// parseTypeDefinition parses `struct|bits|enum|external Name[(params)]:`
// followed by an indented block of Fields/EnumValues/Attributes/nested
// TypeDefinitions.
func (p *Parser) parseTypeDefinition() ir.TypeDef {
	var kind ir.TypeDefKind
	var unit ir.AddressableUnit
	switch p.cur().Type {
	case lexer.STRUCT:
		kind, unit = ir.KindStructure, ir.Byte
	case lexer.BITS:
		kind, unit = ir.KindStructure, ir.Bit
	case lexer.ENUM:
		kind, unit = ir.KindEnumeration, ir.Byte
	case lexer.EXTERNAL:
		kind, unit = ir.KindExternal, ir.Byte
	default:
		p.errorf(p.cur(), "PAR003", "expected a type definition, found %q", p.cur().Literal)
		p.advance()
		return nil
	}
	kwTok := p.advance()
	name := p.expect(lexer.IDENT)

	base := ir.TypeDefBase{
		Location: p.loc(kwTok),
		NameDefinition: ir.NameDefinition{
			Name: ir.Word{Text: name.Literal, Loc: p.loc(name)},
		},
		AddressableUnit: unit,
	}

	if p.at(lexer.LPAREN) {
		base.RuntimeParameter = p.parseRuntimeParameters()
	}
	p.expect(lexer.COLON)
	p.skipNewlines()

	var td ir.TypeDef
	switch kind {
	case ir.KindStructure:
		td = &ir.Structure{TypeDefBase: base}
	case ir.KindEnumeration:
		td = &ir.Enumeration{TypeDefBase: base, MaximumBits: 64}
	case ir.KindExternal:
		td = &ir.External{TypeDefBase: base}
	}

	if !p.at(lexer.INDENT) {
		return td // empty body, e.g. a bare `external Foo:`
	}
	p.advance() // INDENT
	for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
		p.skipNewlines()
		if p.at(lexer.DEDENT) || p.at(lexer.EOF) {
			break
		}
		p.parseBodyItem(td)
		p.skipNewlines()
	}
	if p.at(lexer.DEDENT) {
		p.advance()
	}
	return td
}

func (p *Parser) parseRuntimeParameters() []ir.RuntimeParameter {
	p.advance() // LPAREN
	var params []ir.RuntimeParameter
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		name := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		typeName := p.expect(lexer.IDENT)
		typeRef := ir.Reference{Components: []ir.Word{{Text: typeName.Literal, Loc: p.loc(typeName)}}}
		rp := ir.RuntimeParameter{
			NameDefinition: ir.NameDefinition{Name: ir.Word{Text: name.Literal, Loc: p.loc(name)}},
			PhysicalType:   typeRef,
		}
		if p.at(lexer.COLON) {
			p.advance()
			width := p.expect(lexer.INT)
			rp.Width, _ = ir.NewIntFromString(width.Literal)
		}
		params = append(params, rp)
		if p.at(lexer.COMMA) {
			p.advance()
		}
	}
	if p.at(lexer.RPAREN) {
		p.advance()
	}
	return params
}

// parseBodyItem dispatches on the shape of one line inside a
// struct/bits/enum body: a bracketed attribute, a `let` virtual field,
// an enum value `NAME = expr`, or a physical field.
func (p *Parser) parseBodyItem(td ir.TypeDef) {
	base := td.Base()
	if p.at(lexer.LBRACKET) {
		base.Attributes = append(base.Attributes, p.parseAttribute())
		return
	}
	switch v := td.(type) {
	case *ir.Enumeration:
		v.EnumValue = append(v.EnumValue, p.parseEnumValue())
	case *ir.Structure:
		if p.at(lexer.LET) {
			v.Field = append(v.Field, p.parseVirtualField())
		} else {
			v.Field = append(v.Field, p.parsePhysicalField(v))
		}
	default:
		p.errorf(p.cur(), "PAR005", "unexpected token %q in type body", p.cur().Literal)
		p.skipToNewline()
	}
}

func (p *Parser) skipToNewline() {
	for !p.at(lexer.NEWLINE) && !p.at(lexer.EOF) && !p.at(lexer.DEDENT) {
		p.advance()
	}
}

func (p *Parser) parseEnumValue() ir.EnumValue {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.EQ)
	val := p.parseExpr()
	ev := ir.EnumValue{
		NameDefinition: ir.NameDefinition{Name: ir.Word{Text: name.Literal, Loc: p.loc(name)}},
		Value:          val,
	}
	p.skipNewlines()
	for p.at(lexer.INDENT) {
		p.advance()
		for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
			p.skipNewlines()
			if p.at(lexer.DEDENT) {
				break
			}
			if p.at(lexer.LBRACKET) {
				ev.Attributes = append(ev.Attributes, p.parseAttribute())
			} else {
				p.skipToNewline()
			}
			p.skipNewlines()
		}
		if p.at(lexer.DEDENT) {
			p.advance()
		}
	}
	return ev
}
