package typecheck

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
)

// annotateEnum types every EnumValue's Value expression (always a
// Constant in practice, but annotated generically like any Expression).
func (c *checker) annotateEnum(file string, e *ir.Enumeration) {
	for i := range e.EnumValue {
		c.annotateExpr(file, e.EnumValue[i].Value)
	}
}

// annotateStructure types every Field's expressions, in dependency
// order (§4.G) so a virtual field's read_transform is annotated before
// any sibling that refers to it. Falls back to declaration order if
// depcheck did not run (e.g. an isolated unit test of this package),
// since every field still independently resolves via lookupFieldType.
func (c *checker) annotateStructure(file string, s *ir.Structure) {
	order := s.FieldsInDependencyOrder
	if order == nil {
		order = make([]int, len(s.Field))
		for i := range order {
			order[i] = i
		}
	}
	for _, idx := range order {
		f := s.Field[idx]
		c.annotateExpr(file, f.ExistenceCondition)
		if f.PhysicalLocation != nil {
			c.annotateExpr(file, f.PhysicalLocation.Start)
			c.annotateExpr(file, f.PhysicalLocation.Size)
		}
		if f.Type != nil {
			for _, p := range f.Type.Parameters {
				c.annotateExpr(file, p)
			}
			c.annotateExpr(file, f.Type.ElementCount)
		}
		if f.IsVirtual() {
			t := c.annotateExpr(file, f.ReadTransform)
			c.fieldType[f.NameDefinition.CanonicalName.String()] = t
		}
	}
}

// annotateExpr fills e's type slot bottom-up (§4.H "Annotation") and
// returns the type computed, for callers that need it without a second
// Type() lookup. A nil e (an optional slot left unset, e.g. an unbounded
// array's ElementCount) is a no-op.
func (c *checker) annotateExpr(file string, e ir.Expr) ir.ExprType {
	if e == nil {
		return ir.ExprType{Kind: ir.TypeUnresolved}
	}
	var t ir.ExprType
	switch v := e.(type) {
	case *ir.Constant:
		t = ir.ExprType{Kind: ir.TypeInteger}
	case *ir.BooleanConstant:
		t = ir.ExprType{Kind: ir.TypeBoolean, BoolValue: &v.Value}
	case *ir.FieldReference:
		t = c.annotateFieldReference(v)
	case *ir.ConstantReference:
		if v.Reference.IsResolved {
			t = c.lookupFieldType(v.Reference.CanonicalName)
		} else {
			t = ir.ExprType{Kind: ir.TypeUnresolved}
		}
	case *ir.BuiltinReference:
		t = ir.ExprType{Kind: ir.TypeOpaque}
	case *ir.Function:
		t = c.annotateFunction(file, v)
	default:
		t = ir.ExprType{Kind: ir.TypeUnresolved}
	}
	e.SetType(t)
	return t
}

// annotateFieldReference types a dotted field-access path by the type
// the path's final segment declares, and — when the path is a "static"
// one (its leading segment names a type, not a field already in scope)
// — checks the physical-field prohibition (§4.H: "Static references to
// physical fields are not allowed").
func (c *checker) annotateFieldReference(v *ir.FieldReference) ir.ExprType {
	if len(v.Path) == 0 || !v.Path[len(v.Path)-1].IsResolved {
		return ir.ExprType{Kind: ir.TypeUnresolved}
	}
	last := v.Path[len(v.Path)-1].CanonicalName
	if v.Alias != nil {
		last = *v.Alias
	}
	t := c.lookupFieldType(last)

	if v.Path[0].IsResolved {
		if obj0 := irutil.FindObject(v.Path[0].CanonicalName, c.tree); obj0 != nil {
			if _, isType := obj0.(ir.TypeDef); isType {
				if f, ok := irutil.FindObject(last, c.tree).(*ir.Field); ok && !f.IsVirtual() {
					c.errf(v.Loc().File, v.Loc(), diag.StaticPhysicalField,
						"static reference to physical field '%s' is not allowed", last.String())
				}
			}
		}
	}
	return t
}
