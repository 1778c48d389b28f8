// Package constraints implements component K (§4.K): verifying a
// `requires` attribute is only placed on a field whose declared type can
// support it, and range-fitting enum values and constant field arguments
// against the widths components H/I already computed. It runs after
// components H (typecheck), I (bounds), and J (attrs), since it needs
// every expression's Kind, Bounds, and the attrs-synthesized
// Enumeration.IsSigned/MaximumBits.
package constraints

import (
	"fmt"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
	"github.com/go-emboss/embossc/internal/prelude"
)

type checker struct {
	tree    *ir.IR
	bundles []diag.Bundle
}

// Check runs component K over tree and returns every diagnostic bundle
// produced.
func Check(tree *ir.IR) []diag.Bundle {
	c := &checker{tree: tree}
	for _, m := range tree.Module {
		file := m.SourceFileName
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			switch v := td.(type) {
			case *ir.Structure:
				c.checkStructure(file, v)
			case *ir.Enumeration:
				c.checkEnumeration(file, v)
			}
		})
	}
	return c.bundles
}

func (c *checker) checkStructure(file string, s *ir.Structure) {
	for _, f := range s.Field {
		c.checkRequires(file, f)
		if !f.IsVirtual() {
			c.checkInstantiationRange(file, f)
		}
	}
}

// checkRequires implements §4.K's placement rule: `requires` is only
// legal on a field whose declared type is integer, enum, or boolean —
// never on an array, a composite structure, or a float.
func (c *checker) checkRequires(file string, f *ir.Field) {
	attr := irutil.GetAttribute(f.Attributes, "", "requires")
	if attr == nil {
		return
	}
	if !f.IsVirtual() && f.Type != nil && f.Type.IsArray {
		c.errf(file, attr.Location, diag.RequiresOnArray,
			"'requires' is not allowed on array field '%s'", f.NameDefinition.Name.Text)
		return
	}
	kind := c.declaredFieldKind(f)
	if kind != ir.TypeInteger && kind != ir.TypeEnumeration && kind != ir.TypeBoolean && kind != ir.TypeUnresolved {
		c.errf(file, attr.Location, diag.RequiresOnComposite,
			"'requires' is only allowed on integer, enum, or boolean fields, not '%s'", f.NameDefinition.Name.Text)
	}
}

// declaredFieldKind classifies a field the same way component H's
// declaredKind does, without importing the typecheck package: physical
// fields resolve through their Type.Reference, virtual fields read their
// already-annotated ReadTransform type.
func (c *checker) declaredFieldKind(f *ir.Field) ir.TypeKind {
	if f.IsVirtual() {
		if f.ReadTransform == nil || f.ReadTransform.Type() == nil {
			return ir.TypeUnresolved
		}
		return f.ReadTransform.Type().Kind
	}
	if f.Type == nil || !f.Type.Reference.IsResolved {
		return ir.TypeUnresolved
	}
	obj := irutil.FindObject(f.Type.Reference.CanonicalName, c.tree)
	switch v := obj.(type) {
	case *ir.Enumeration:
		return ir.TypeEnumeration
	case *ir.Structure:
		return ir.TypeOpaque
	case *ir.External:
		attr := irutil.GetAttribute(v.Attributes, "", "is_integer")
		if attr != nil && attr.Value.Bool != nil && *attr.Value.Bool {
			return ir.TypeInteger
		}
		ref := f.Type.Reference
		if ref.CanonicalName.ModuleFile == "" && len(ref.CanonicalName.Path) == 1 && ref.CanonicalName.Path[0] == prelude.Flag {
			return ir.TypeBoolean
		}
		return ir.TypeOpaque
	default:
		return ir.TypeUnresolved
	}
}

func (c *checker) errf(file string, loc diag.Location, code, format string, args ...any) {
	c.bundles = append(c.bundles, diag.NewBundle(diag.Errorf(code, "constraints", file, loc, fmt.Sprintf(format, args...))))
}
