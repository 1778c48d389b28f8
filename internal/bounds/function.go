package bounds

import "github.com/go-emboss/embossc/internal/ir"

// inferFunction computes bounds for an operator/builtin application
// (§4.I), after recursively inferring every argument.
func (inf *inferrer) inferFunction(file string, fn *ir.Function) {
	for _, a := range fn.Args {
		inf.inferExpr(file, a)
	}
	t := fn.Type()
	if t == nil || t.Kind != ir.TypeInteger {
		return // boolean/enum-result operators carry no numeric bounds
	}

	switch fn.Function {
	case ir.Addition:
		t.Bounds = addBounds(boundsOf(fn.Args[0]), boundsOf(fn.Args[1]))
	case ir.Subtraction:
		t.Bounds = addBounds(boundsOf(fn.Args[0]), negateBounds(boundsOf(fn.Args[1])))
	case ir.Multiplication:
		t.Bounds = mulBounds(boundsOf(fn.Args[0]), boundsOf(fn.Args[1]))
	case ir.Choice:
		t.Bounds = ternaryBounds(boundsOf(fn.Args[1]), boundsOf(fn.Args[2]))
	case ir.UpperBound:
		if b := boundsOf(fn.Args[0]); b != nil {
			t.Bounds = &ir.IntegerBounds{Minimum: b.Maximum, Maximum: b.Maximum, ModularValue: zeroOr(b.Maximum)}
		}
	case ir.LowerBound:
		if b := boundsOf(fn.Args[0]); b != nil {
			t.Bounds = &ir.IntegerBounds{Minimum: b.Minimum, Maximum: b.Minimum, ModularValue: zeroOr(b.Minimum)}
		}
	case ir.Maximum:
		t.Bounds = maxBounds(fn.Args)
	}
}

func boundsOf(e ir.Expr) *ir.IntegerBounds {
	if e == nil || e.Type() == nil {
		return nil
	}
	return e.Type().Bounds
}

func zeroOr(b ir.Bound) *ir.Int {
	if b.Infinite || b.Value == nil {
		return ir.NewInt(0)
	}
	return b.Value
}

// isZeroRange reports whether b is known to be exactly {0} (§4.I: "any
// operand whose entire range is {0}").
func isZeroRange(b *ir.IntegerBounds) bool {
	if b == nil || b.Minimum.Infinite || b.Maximum.Infinite || b.Minimum.Value == nil || b.Maximum.Value == nil {
		return false
	}
	return b.Minimum.Value.IsZero() && b.Maximum.Value.IsZero()
}

func negateBounds(b *ir.IntegerBounds) *ir.IntegerBounds {
	if b == nil {
		return nil
	}
	mv := b.ModularValue
	if mv != nil && b.Modulus != nil {
		mv = mv.Neg().Mod(b.Modulus)
	} else if mv != nil {
		mv = mv.Neg()
	}
	return &ir.IntegerBounds{
		Minimum: negBound(b.Maximum), Maximum: negBound(b.Minimum),
		Modulus: b.Modulus, ModularValue: mv,
	}
}

func addBounds(a, b *ir.IntegerBounds) *ir.IntegerBounds {
	if a == nil || b == nil {
		return nil
	}
	mod := combineAddMod(a.Modulus, b.Modulus)
	var mv *ir.Int
	if a.ModularValue != nil && b.ModularValue != nil {
		sum := a.ModularValue.Add(b.ModularValue)
		if mod != nil {
			sum = sum.Mod(mod)
		}
		mv = sum
	}
	return &ir.IntegerBounds{
		Minimum: addBound(a.Minimum, b.Minimum), Maximum: addBound(a.Maximum, b.Maximum),
		Modulus: mod, ModularValue: mv,
	}
}

// mulBounds implements §4.I's multiplication rule, with explicit
// handling of the two cases the shared pairwise gcd formula doesn't
// apply to directly: an all-zero operand, and an exactly-known operand
// (whose "modulus" is the degenerate infinite/exact encoding, not a true
// period).
func mulBounds(a, b *ir.IntegerBounds) *ir.IntegerBounds {
	if a == nil || b == nil {
		return nil
	}
	if isZeroRange(a) || isZeroRange(b) {
		return &ir.IntegerBounds{Minimum: ir.FiniteBound(ir.NewInt(0)), Maximum: ir.FiniteBound(ir.NewInt(0)), ModularValue: ir.NewInt(0)}
	}
	corners := []ir.Bound{
		mulBound(a.Minimum, b.Minimum), mulBound(a.Minimum, b.Maximum),
		mulBound(a.Maximum, b.Minimum), mulBound(a.Maximum, b.Maximum),
	}
	min, max := corners[0], corners[0]
	for _, c := range corners[1:] {
		min, max = minBound(min, c), maxBound(max, c)
	}

	var mod, mv *ir.Int
	switch {
	case a.Modulus == nil && b.Modulus == nil && a.ModularValue != nil && b.ModularValue != nil:
		mv = a.ModularValue.Mul(b.ModularValue)
	case a.Modulus == nil && a.ModularValue != nil && b.Modulus != nil && b.ModularValue != nil:
		mod, mv = exactTimesRanged(a.ModularValue, b.Modulus, b.ModularValue)
	case b.Modulus == nil && b.ModularValue != nil && a.Modulus != nil && a.ModularValue != nil:
		mod, mv = exactTimesRanged(b.ModularValue, a.Modulus, a.ModularValue)
	case a.Modulus != nil && b.Modulus != nil && a.ModularValue != nil && b.ModularValue != nil:
		mod = effectiveMod(a.Modulus.Mul(b.ModularValue)).GCD(a.ModularValue.Mul(b.Modulus)).GCD(a.Modulus.Mul(b.Modulus))
		if mod.IsZero() {
			mod = ir.NewInt(1)
		}
		mv = a.ModularValue.Mul(b.ModularValue).Mod(mod)
	}
	return &ir.IntegerBounds{Minimum: min, Maximum: max, Modulus: mod, ModularValue: mv}
}

// exactTimesRanged computes the modulus/value of an exactly-known value
// k times a ranged (mod, mv) quantity: k*b ≡ k*mv (mod |k|*mod).
func exactTimesRanged(k, mod, mv *ir.Int) (*ir.Int, *ir.Int) {
	if k.IsZero() {
		return ir.NewInt(1), ir.NewInt(0)
	}
	absK := k
	if k.Sign() < 0 {
		absK = k.Neg()
	}
	newMod := absK.Mul(mod)
	return newMod, k.Mul(mv).Mod(newMod)
}

func ternaryBounds(a, b *ir.IntegerBounds) *ir.IntegerBounds {
	if a == nil || b == nil {
		return nil
	}
	mod, mv := sharedModularValue(a.Modulus, a.ModularValue, b.Modulus, b.ModularValue)
	return &ir.IntegerBounds{
		Minimum: minBound(a.Minimum, b.Minimum), Maximum: maxBound(a.Maximum, b.Maximum),
		Modulus: mod, ModularValue: mv,
	}
}

func maxBounds(args []ir.Expr) *ir.IntegerBounds {
	var acc *ir.IntegerBounds
	for _, a := range args {
		b := boundsOf(a)
		if b == nil {
			return nil
		}
		if acc == nil {
			acc = b
			continue
		}
		mod, mv := sharedModularValue(acc.Modulus, acc.ModularValue, b.Modulus, b.ModularValue)
		acc = &ir.IntegerBounds{
			Minimum: maxBound(acc.Minimum, b.Minimum), Maximum: maxBound(acc.Maximum, b.Maximum),
			Modulus: mod, ModularValue: mv,
		}
	}
	return acc
}
