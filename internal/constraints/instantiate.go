package constraints

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
	"github.com/go-emboss/embossc/internal/prelude"
)

// checkInstantiationRange range-fits every constant argument to a
// parameterized type instantiation against the width of the runtime
// parameter it feeds (§4.K "consistent with the field's declared
// physical width"). Component H already checked the argument's Kind
// matches; this pass checks the actual VALUE, now that component I has
// computed it.
func (c *checker) checkInstantiationRange(file string, f *ir.Field) {
	if f.Type == nil || len(f.Type.Parameters) == 0 || !f.Type.Reference.IsResolved {
		return
	}
	td, ok := irutil.FindObject(f.Type.Reference.CanonicalName, c.tree).(ir.TypeDef)
	if !ok {
		return
	}
	params := td.Base().RuntimeParameter
	if len(f.Type.Parameters) != len(params) {
		return // arity mismatch already reported by component H
	}
	for i, arg := range f.Type.Parameters {
		v, ok := constantInt(arg)
		if !ok {
			continue
		}
		lo, hi, ok := c.runtimeParameterRange(&params[i])
		if !ok {
			continue
		}
		if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
			c.errf(file, arg.Loc(), diag.FieldOutOfRange,
				"argument %d = %s is out of range [%s, %s] for parameter '%s'",
				i, v.String(), lo.String(), hi.String(), params[i].NameDefinition.Name.Text)
		}
	}
}

// runtimeParameterRange computes the [min, max] an integer-typed runtime
// parameter's declared width allows, following the same UInt:n/Int:n
// formulas component I uses for ordinary fields.
func (c *checker) runtimeParameterRange(p *ir.RuntimeParameter) (lo, hi *ir.Int, ok bool) {
	if !p.PhysicalType.IsResolved || p.Width == nil {
		return nil, nil, false
	}
	ref := p.PhysicalType
	if ref.CanonicalName.ModuleFile != "" || len(ref.CanonicalName.Path) != 1 {
		return nil, nil, false
	}
	width := int(p.Width.Int64())
	switch ref.CanonicalName.Path[0] {
	case prelude.UInt:
		return ir.NewInt(0), ir.Pow2(width).Sub(ir.NewInt(1)), true
	case prelude.Int:
		half := ir.Pow2(width - 1)
		return half.Neg(), half.Sub(ir.NewInt(1)), true
	default:
		return nil, nil, false
	}
}
