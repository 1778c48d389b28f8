package typecheck

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
)

// checkPlacement verifies every expression-typed slot of s's fields and
// runtime parameters against the requirement §4.H's second sub-pass
// places on it.
func (c *checker) checkPlacement(file string, s *ir.Structure) {
	for i := range s.RuntimeParameter {
		c.checkRuntimeParameterType(file, &s.RuntimeParameter[i])
	}
	for _, f := range s.Field {
		c.checkExistenceCondition(file, f)
		if f.PhysicalLocation != nil {
			c.requireInteger(file, f.PhysicalLocation.Start, "field location.start")
			c.requireInteger(file, f.PhysicalLocation.Size, "field location.size")
		}
		if f.Type != nil {
			if f.Type.IsArray && f.Type.ElementCount != nil {
				c.requireInteger(file, f.Type.ElementCount, "array element_count")
			}
			c.checkParameterizedInstantiation(file, f)
		}
	}
}

func (c *checker) requireInteger(file string, e ir.Expr, what string) {
	if e == nil || e.Type() == nil {
		return
	}
	if e.Type().Kind != ir.TypeInteger && e.Type().Kind != ir.TypeUnresolved {
		c.errf(file, e.Loc(), diag.TypeMismatch, "%s must be integer, got %s", what, e.Type().Kind)
	}
}

func (c *checker) checkExistenceCondition(file string, f *ir.Field) {
	e := f.ExistenceCondition
	if e == nil || e.Type() == nil {
		return
	}
	if e.Type().Kind != ir.TypeBoolean && e.Type().Kind != ir.TypeUnresolved {
		c.errf(file, e.Loc(), diag.TypeMismatch, "existence condition must be boolean, got %s", e.Type().Kind)
	}
}

// checkRuntimeParameterType enforces "declared type must be integer or
// enum (not boolean, not array)".
func (c *checker) checkRuntimeParameterType(file string, p *ir.RuntimeParameter) {
	kind, _ := c.declaredKind(p.PhysicalType)
	if kind == ir.TypeUnresolved {
		return
	}
	if kind != ir.TypeInteger && kind != ir.TypeEnumeration {
		c.errf(file, p.PhysicalType.Loc(), diag.BadParameterType,
			"runtime parameter '%s' must be integer or enum, got %s", p.NameDefinition.Name.Text, kind)
	}
}

// checkParameterizedInstantiation enforces arity and per-argument type
// matching when f instantiates a parameterized type.
func (c *checker) checkParameterizedInstantiation(file string, f *ir.Field) {
	if len(f.Type.Parameters) == 0 || !f.Type.Reference.IsResolved {
		return
	}
	td, ok := irutil.FindObject(f.Type.Reference.CanonicalName, c.tree).(ir.TypeDef)
	if !ok {
		return
	}
	params := td.Base().RuntimeParameter
	if len(f.Type.Parameters) != len(params) {
		c.errf(file, f.Type.Location, diag.ArityMismatch,
			"'%s' takes %d parameter(s), got %d", f.Type.Reference.Text(), len(params), len(f.Type.Parameters))
		return
	}
	for i, arg := range f.Type.Parameters {
		if arg == nil || arg.Type() == nil {
			continue
		}
		wantKind, wantEnum := c.declaredKind(params[i].PhysicalType)
		if wantKind == ir.TypeUnresolved || arg.Type().Kind == ir.TypeUnresolved {
			continue
		}
		if arg.Type().Kind != wantKind {
			c.errf(file, arg.Loc(), diag.BadParameterType,
				"parameter %d of '%s' must be %s, got %s", i, f.Type.Reference.Text(), wantKind, arg.Type().Kind)
			continue
		}
		if wantKind == ir.TypeEnumeration && wantEnum != nil {
			if arg.Type().Enum == nil || !arg.Type().Enum.EnumName.Equal(wantEnum.EnumName) {
				c.errf(file, arg.Loc(), diag.BadParameterType,
					"parameter %d of '%s' must be enum '%s'", i, f.Type.Reference.Text(), wantEnum.EnumName.String())
			}
		}
	}
}
