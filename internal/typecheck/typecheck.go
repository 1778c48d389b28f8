// Package typecheck implements component H (§4.H): a bottom-up
// annotation pass that fills every Expression's type slot, followed by a
// placement-checking pass verifying each annotated type is used where
// the language requires it. It runs after components F (resolver) and G
// (depcheck), and relies on depcheck's per-structure dependency order so
// a virtual field's read_transform is always annotated before any
// sibling field that refers to it.
package typecheck

import (
	"fmt"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
	"github.com/go-emboss/embossc/internal/prelude"
)

// checker carries the one piece of cross-field state the annotation pass
// needs: what type a reference to field/enum-value X evaluates to. Physical
// fields and enum values are seeded up front (their declared type never
// depends on any other expression); virtual fields are added as their
// read_transform is annotated.
type checker struct {
	tree      *ir.IR
	fieldType map[string]ir.ExprType
	bundles   []diag.Bundle
}

// Check runs both sub-passes of component H over tree and returns every
// diagnostic bundle produced.
func Check(tree *ir.IR) []diag.Bundle {
	c := &checker{tree: tree, fieldType: map[string]ir.ExprType{}}

	for _, m := range tree.Module {
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) { c.seedDeclaredTypes(td) })
	}
	for _, m := range tree.Module {
		file := m.SourceFileName
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			switch v := td.(type) {
			case *ir.Enumeration:
				c.annotateEnum(file, v)
			case *ir.Structure:
				c.annotateStructure(file, v)
			}
		})
	}
	for _, m := range tree.Module {
		file := m.SourceFileName
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			if s, ok := td.(*ir.Structure); ok {
				c.checkPlacement(file, s)
			}
		})
	}
	return c.bundles
}

// seedDeclaredTypes records the type a FieldReference/ConstantReference
// to a physical field or an enum value resolves to, independent of
// annotation order: a physical field's type comes straight from its
// Type.Reference, never from an expression this pass computes.
func (c *checker) seedDeclaredTypes(td ir.TypeDef) {
	switch v := td.(type) {
	case *ir.Structure:
		for _, f := range v.Field {
			if f.IsVirtual() {
				continue
			}
			kind, enum := c.declaredKind(f.Type.Reference)
			if f.Type.IsArray {
				kind, enum = ir.TypeOpaque, nil
			}
			c.fieldType[f.NameDefinition.CanonicalName.String()] = ir.ExprType{Kind: kind, Enum: enum}
		}
	case *ir.Enumeration:
		for i := range v.EnumValue {
			info := &ir.EnumTypeInfo{EnumName: v.NameDefinition.CanonicalName}
			c.fieldType[v.EnumValue[i].NameDefinition.CanonicalName.String()] = ir.ExprType{Kind: ir.TypeEnumeration, Enum: info}
		}
	}
}

// declaredKind resolves ref to its target TypeDef and classifies it: the
// prelude's integer externals (UInt, Int, Bcd) are TypeInteger, Flag is
// TypeBoolean, Float and user Structures are TypeOpaque, and a reference
// to an Enumeration is TypeEnumeration.
func (c *checker) declaredKind(ref ir.Reference) (ir.TypeKind, *ir.EnumTypeInfo) {
	if !ref.IsResolved {
		return ir.TypeUnresolved, nil
	}
	obj := irutil.FindObject(ref.CanonicalName, c.tree)
	switch v := obj.(type) {
	case *ir.External:
		attr := irutil.GetAttribute(v.Attributes, "", "is_integer")
		if attr != nil && attr.Value.Bool != nil && *attr.Value.Bool {
			return ir.TypeInteger, nil
		}
		if ref.CanonicalName.ModuleFile == "" && len(ref.CanonicalName.Path) == 1 && ref.CanonicalName.Path[0] == prelude.Flag {
			return ir.TypeBoolean, nil
		}
		return ir.TypeOpaque, nil
	case *ir.Enumeration:
		return ir.TypeEnumeration, &ir.EnumTypeInfo{EnumName: ref.CanonicalName}
	case *ir.Structure:
		return ir.TypeOpaque, nil
	default:
		return ir.TypeUnresolved, nil
	}
}

// lookupFieldType returns the type a reference to the entity named by
// canon evaluates to, falling back to declaredKind for anything the seed
// pass or a prior sibling annotation hasn't already recorded (forward
// references across structures, or a field resolved from another
// module).
func (c *checker) lookupFieldType(canon ir.CanonicalName) ir.ExprType {
	if t, ok := c.fieldType[canon.String()]; ok {
		return t
	}
	obj := irutil.FindObject(canon, c.tree)
	switch v := obj.(type) {
	case *ir.Field:
		if v.IsVirtual() {
			if v.ReadTransform != nil && v.ReadTransform.Type() != nil {
				return *v.ReadTransform.Type()
			}
			return ir.ExprType{Kind: ir.TypeUnresolved}
		}
		kind, enum := c.declaredKind(v.Type.Reference)
		if v.Type.IsArray {
			kind, enum = ir.TypeOpaque, nil
		}
		return ir.ExprType{Kind: kind, Enum: enum}
	case *ir.EnumValue:
		return ir.ExprType{Kind: ir.TypeEnumeration, Enum: &ir.EnumTypeInfo{EnumName: canon}}
	default:
		return ir.ExprType{Kind: ir.TypeUnresolved}
	}
}

func (c *checker) errf(file string, loc diag.Location, code, format string, args ...any) {
	c.bundles = append(c.bundles, diag.NewBundle(diag.Errorf(code, "typecheck", file, loc, fmt.Sprintf(format, args...))))
}
