package constraints

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
)

// checkEnumeration range-fits every enum value's integer value against
// the enumeration's IsSigned/MaximumBits (§4.J.3, §4.K), both synthesized
// by component J before this pass runs.
func (c *checker) checkEnumeration(file string, e *ir.Enumeration) {
	lo, hi := enumRange(e)
	for i := range e.EnumValue {
		v, ok := constantInt(e.EnumValue[i].Value)
		if !ok {
			continue
		}
		if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
			c.errf(file, e.EnumValue[i].Value.Loc(), diag.EnumOutOfRange,
				"enum value '%s' = %s is out of range [%s, %s] for maximum_bits %d",
				e.EnumValue[i].NameDefinition.Name.Text, v.String(), lo.String(), hi.String(), e.MaximumBits)
		}
	}
}

func enumRange(e *ir.Enumeration) (lo, hi *ir.Int) {
	if e.IsSigned {
		half := ir.Pow2(e.MaximumBits - 1)
		return half.Neg(), half.Sub(ir.NewInt(1))
	}
	return ir.NewInt(0), ir.Pow2(e.MaximumBits).Sub(ir.NewInt(1))
}

func constantInt(e ir.Expr) (*ir.Int, bool) {
	v, ok := irutil.ConstantValue(e)
	if !ok {
		return nil, false
	}
	iv, ok := v.(*ir.Int)
	return iv, ok
}
