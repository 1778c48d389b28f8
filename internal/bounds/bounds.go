// Package bounds implements component I (§4.I): computing a
// (minimum, maximum, modulus, modular_value) tuple for every integer
// Expression in the tree, plus the known compile-time value of references
// to enum values. Boolean values are not computed here: only a
// BooleanConstant carries one, set by component H. It runs after
// component H, which already filled in every Expression's Kind.
package bounds

import (
	"math/big"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
	"github.com/go-emboss/embossc/internal/prelude"
)

// inferrer carries, per field/enum-value canonical name, the bounds a
// reference to it resolves to — seeded for physical fields and runtime
// parameters (whose bounds come from their declared bit width, not from
// any expression) and filled in for virtual fields/enum values as their
// defining expression is inferred.
type inferrer struct {
	tree    *ir.IR
	bounds  map[string]ir.IntegerBounds
	enumVal map[string]*ir.Int
	bundles []diag.Bundle
}

// Check runs component I over tree. Bounds inference reports no
// diagnostics of its own, so the returned slice is always empty; it is
// returned so Check has the same shape as the other passes.
func Check(tree *ir.IR) []diag.Bundle {
	inf := &inferrer{tree: tree, bounds: map[string]ir.IntegerBounds{}, enumVal: map[string]*ir.Int{}}
	for _, m := range tree.Module {
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) { inf.seed(td) })
	}
	for _, m := range tree.Module {
		file := m.SourceFileName
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			switch v := td.(type) {
			case *ir.Enumeration:
				inf.inferEnum(file, v)
			case *ir.Structure:
				inf.inferStructure(file, v)
			}
		})
	}
	return inf.bundles
}

// seed populates bounds for every physical field and runtime parameter
// whose bit width is statically known: their declared type (UInt:n,
// Int:n, Bcd:n) gives a bounds formula directly, with no dependency on
// any other expression's inferred value.
func (inf *inferrer) seed(td ir.TypeDef) {
	s, ok := td.(*ir.Structure)
	if !ok {
		return
	}
	for i := range s.RuntimeParameter {
		p := &s.RuntimeParameter[i]
		if ib, ok := inf.widthBounds(p.PhysicalType, p.Width); ok {
			inf.bounds[p.NameDefinition.CanonicalName.String()] = ib
		}
	}
	for _, f := range s.Field {
		if f.IsVirtual() {
			continue
		}
		if f.Type.IsArray || !f.Type.Reference.IsResolved {
			continue
		}
		n, ok := inf.fieldBitWidth(s, f)
		if !ok {
			continue
		}
		if ib, ok := inf.widthBounds(f.Type.Reference, ir.NewInt(int64(n))); ok {
			inf.bounds[f.NameDefinition.CanonicalName.String()] = ib
		}
	}
}

// fieldBitWidth returns f's bit width, derived from its
// location.size — scaled by 8 for byte-addressed structs, taken
// directly for bit-addressed ones — when that size is a known constant.
func (inf *inferrer) fieldBitWidth(s *ir.Structure, f *ir.Field) (int, bool) {
	if f.PhysicalLocation == nil || f.PhysicalLocation.Size == nil {
		return 0, false
	}
	v, ok := constantValue(f.PhysicalLocation.Size)
	if !ok {
		return 0, false
	}
	n := int(v.Int64())
	if s.AddressableUnit == ir.Byte {
		n *= 8
	}
	return n, true
}

// widthBounds computes the bounds formula for a prelude integer
// external (UInt, Int, Bcd) of bit width n. Returns ok=false for any
// other type (Flag, Float, user structures/enums) or an unresolved
// reference.
func (inf *inferrer) widthBounds(ref ir.Reference, n *ir.Int) (ir.IntegerBounds, bool) {
	if !ref.IsResolved || ref.CanonicalName.ModuleFile != "" || len(ref.CanonicalName.Path) != 1 || n == nil {
		return ir.IntegerBounds{}, false
	}
	width := int(n.Int64())
	switch ref.CanonicalName.Path[0] {
	case prelude.UInt:
		return ir.IntegerBounds{
			Minimum: ir.FiniteBound(ir.NewInt(0)), Maximum: ir.FiniteBound(ir.Pow2(width).Sub(ir.NewInt(1))),
			Modulus: ir.NewInt(1), ModularValue: ir.NewInt(0),
		}, true
	case prelude.Int:
		half := ir.Pow2(width - 1)
		return ir.IntegerBounds{
			Minimum: ir.FiniteBound(half.Neg()), Maximum: ir.FiniteBound(half.Sub(ir.NewInt(1))),
			Modulus: ir.NewInt(1), ModularValue: ir.NewInt(0),
		}, true
	case prelude.Bcd:
		return ir.IntegerBounds{
			Minimum: ir.FiniteBound(ir.NewInt(0)), Maximum: ir.FiniteBound(bcdMax(width)),
			Modulus: ir.NewInt(1), ModularValue: ir.NewInt(0),
		}, true
	default:
		return ir.IntegerBounds{}, false
	}
}

// bcdMax computes the largest value representable in n bits of
// binary-coded decimal (§4.I: "min(10^floor(n/4)*2^(n mod 4)-1, ...)").
func bcdMax(n int) *ir.Int {
	tenPow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n/4)), nil)
	twoPow := new(big.Int).Lsh(big.NewInt(1), uint(n%4))
	prod := new(big.Int).Mul(tenPow, twoPow)
	prod.Sub(prod, big.NewInt(1))
	v, _ := ir.NewIntFromString(prod.String())
	return v
}

// constantValue returns e's value if it is (or has already been
// inferred to be) a single known integer.
func constantValue(e ir.Expr) (*ir.Int, bool) {
	if e == nil {
		return nil, false
	}
	if c, ok := e.(*ir.Constant); ok {
		return c.Value, true
	}
	t := e.Type()
	if t == nil || t.Kind != ir.TypeInteger || t.Bounds == nil {
		return nil, false
	}
	b := t.Bounds
	if b.Minimum.Infinite || b.Maximum.Infinite || b.Minimum.Value == nil || b.Maximum.Value == nil {
		return nil, false
	}
	if b.Minimum.Value.Cmp(b.Maximum.Value) != 0 {
		return nil, false
	}
	return b.Minimum.Value, true
}

func (inf *inferrer) inferEnum(file string, e *ir.Enumeration) {
	for i := range e.EnumValue {
		inf.inferExpr(file, e.EnumValue[i].Value)
		if v, ok := constantValue(e.EnumValue[i].Value); ok {
			inf.enumVal[e.EnumValue[i].NameDefinition.CanonicalName.String()] = v
		}
	}
}

// inferStructure computes bounds for every field's expressions, in
// dependency order (§4.G) so a virtual field's read_transform bounds
// are known before any sibling field that refers to it needs them.
func (inf *inferrer) inferStructure(file string, s *ir.Structure) {
	order := s.FieldsInDependencyOrder
	if order == nil {
		order = make([]int, len(s.Field))
		for i := range order {
			order[i] = i
		}
	}
	for _, idx := range order {
		f := s.Field[idx]
		inf.inferExpr(file, f.ExistenceCondition)
		if f.PhysicalLocation != nil {
			inf.inferExpr(file, f.PhysicalLocation.Start)
			inf.inferExpr(file, f.PhysicalLocation.Size)
		}
		if f.Type != nil {
			for _, p := range f.Type.Parameters {
				inf.inferExpr(file, p)
			}
			inf.inferExpr(file, f.Type.ElementCount)
		}
		if f.IsVirtual() {
			inf.inferExpr(file, f.ReadTransform)
			canon := f.NameDefinition.CanonicalName.String()
			if t := f.ReadTransform.Type(); t != nil {
				switch t.Kind {
				case ir.TypeInteger:
					if t.Bounds != nil {
						inf.bounds[canon] = *t.Bounds
					}
				case ir.TypeEnumeration:
					if t.Enum != nil && t.Enum.Value != nil {
						inf.enumVal[canon] = t.Enum.Value
					}
				}
			}
		}
	}
}

// inferExpr fills e's Bounds (for integers) or EnumTypeInfo.Value (for
// enums with a known compile-time value), recursing bottom-up.
func (inf *inferrer) inferExpr(file string, e ir.Expr) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *ir.Constant:
		e.Type().Bounds = &ir.IntegerBounds{
			Minimum: ir.FiniteBound(v.Value), Maximum: ir.FiniteBound(v.Value),
			ModularValue: v.Value,
		}
	case *ir.BooleanConstant:
		// type already carries BoolValue from component H.
	case *ir.FieldReference:
		if len(v.Path) > 0 && v.Path[len(v.Path)-1].IsResolved {
			inf.inferReference(v, v.Path[len(v.Path)-1].CanonicalName, v.Alias)
		}
	case *ir.ConstantReference:
		if v.Reference.IsResolved {
			inf.inferReference(v, v.Reference.CanonicalName, nil)
		}
	case *ir.BuiltinReference:
		// opaque; no bounds to compute.
	case *ir.Function:
		inf.inferFunction(file, v)
	}
}

// inferReference fills e's type slot from the cached bounds/enum-value
// for the entity canon names (chasing alias when present).
func (inf *inferrer) inferReference(e ir.Expr, canon ir.CanonicalName, alias *ir.CanonicalName) {
	target := canon
	if alias != nil {
		target = *alias
	}
	t := e.Type()
	if t == nil {
		return
	}
	switch t.Kind {
	case ir.TypeInteger:
		if ib, ok := inf.bounds[target.String()]; ok {
			t.Bounds = &ib
		} else if v, ok := inf.lookupFallback(target); ok {
			t.Bounds = &ir.IntegerBounds{Minimum: ir.FiniteBound(v), Maximum: ir.FiniteBound(v), ModularValue: v}
		}
	case ir.TypeEnumeration:
		if t.Enum == nil {
			return
		}
		if v, ok := inf.enumVal[target.String()]; ok {
			t.Enum.Value = v
		}
	}
}

// lookupFallback re-derives a constant value for an entity the seed
// pass didn't cover (e.g. a field in another module processed out of
// the structure-local dependency order), by reading the node directly.
func (inf *inferrer) lookupFallback(canon ir.CanonicalName) (*ir.Int, bool) {
	obj := irutil.FindObject(canon, inf.tree)
	f, ok := obj.(*ir.Field)
	if !ok || !f.IsVirtual() || f.ReadTransform == nil {
		return nil, false
	}
	return constantValue(f.ReadTransform)
}
