// Package traverse implements the generic top-down visitor engine (§4.C)
// that every later pass is built on. Rather than hard-coding a walk at
// each call site, every IR shape is expanded through one schema table
// (expand.go) — the "small trait/interface each node type implements"
// approach SPEC_FULL.md's design notes call for, centralized instead of
// spread across the IR package so ir stays a plain data model.
package traverse

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// Kind tags which IR shape a Node wraps, the "node-kind" the engine
// dispatches targets, skip sets and incidental actions by (§4.C).
type Kind int

const (
	KindModule Kind = iota
	KindTypeDef
	KindField
	KindExpr
	KindAttribute
	KindEnumValue
	KindRuntimeParameter
	KindForeignImport
)

// Node is a tagged union over every IR shape the engine can visit. Only
// the field matching Kind is populated. This is the "small interface"
// boundary: everything the engine needs to know about an IR node —
// its kind, its location, its children — is derived from a Node value
// without any of that logic leaking into package ir itself.
type Node struct {
	Kind Kind

	Module           *ir.Module
	TypeDef          ir.TypeDef
	Field            *ir.Field
	Expr             ir.Expr
	Attribute        *ir.Attribute
	EnumValue        *ir.EnumValue
	RuntimeParameter *ir.RuntimeParameter
	ForeignImport    *ir.ForeignImport
}

func ModuleNode(m *ir.Module) Node           { return Node{Kind: KindModule, Module: m} }
func TypeDefNode(t ir.TypeDef) Node           { return Node{Kind: KindTypeDef, TypeDef: t} }
func FieldNode(f *ir.Field) Node             { return Node{Kind: KindField, Field: f} }
func ExprNode(e ir.Expr) Node                 { return Node{Kind: KindExpr, Expr: e} }
func AttributeNode(a *ir.Attribute) Node       { return Node{Kind: KindAttribute, Attribute: a} }
func EnumValueNode(e *ir.EnumValue) Node       { return Node{Kind: KindEnumValue, EnumValue: e} }
func RuntimeParameterNode(p *ir.RuntimeParameter) Node {
	return Node{Kind: KindRuntimeParameter, RuntimeParameter: p}
}
func ForeignImportNode(f *ir.ForeignImport) Node { return Node{Kind: KindForeignImport, ForeignImport: f} }

// Loc returns the source location of whichever IR value this Node wraps.
func (n Node) Loc() diag.Location {
	switch n.Kind {
	case KindModule:
		return diag.Location{File: n.Module.SourceFileName}
	case KindTypeDef:
		return n.TypeDef.Base().Location
	case KindField:
		return n.Field.Location
	case KindExpr:
		return n.Expr.Loc()
	case KindAttribute:
		return n.Attribute.Location
	case KindEnumValue:
		return n.EnumValue.NameDefinition.Name.Loc
	case KindRuntimeParameter:
		return n.RuntimeParameter.NameDefinition.Name.Loc
	case KindForeignImport:
		return n.ForeignImport.Location
	default:
		return diag.Location{}
	}
}
