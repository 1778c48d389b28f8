package bounds

import "github.com/go-emboss/embossc/internal/ir"

// addBound and friends implement extended-integer arithmetic over Bound
// (a finite value or a signed infinity), the primitive §4.I's rules are
// built from.

func signOf(b ir.Bound) int {
	if b.Negative {
		return -1
	}
	return 1
}

func cmpBound(a, b ir.Bound) int {
	if a.Infinite && b.Infinite {
		as, bs := signOf(a), signOf(b)
		switch {
		case as == bs:
			return 0
		case as < bs:
			return -1
		default:
			return 1
		}
	}
	if a.Infinite {
		if a.Negative {
			return -1
		}
		return 1
	}
	if b.Infinite {
		if b.Negative {
			return 1
		}
		return -1
	}
	return a.Value.Cmp(b.Value)
}

func minBound(a, b ir.Bound) ir.Bound {
	if cmpBound(a, b) <= 0 {
		return a
	}
	return b
}

func maxBound(a, b ir.Bound) ir.Bound {
	if cmpBound(a, b) >= 0 {
		return a
	}
	return b
}

func negBound(a ir.Bound) ir.Bound {
	if a.Infinite {
		return ir.Bound{Infinite: true, Negative: !a.Negative}
	}
	return ir.FiniteBound(a.Value.Neg())
}

func addBound(a, b ir.Bound) ir.Bound {
	if a.Infinite || b.Infinite {
		if a.Infinite {
			return ir.Bound{Infinite: true, Negative: a.Negative}
		}
		return ir.Bound{Infinite: true, Negative: b.Negative}
	}
	return ir.FiniteBound(a.Value.Add(b.Value))
}

func subBound(a, b ir.Bound) ir.Bound { return addBound(a, negBound(b)) }

// mulBound multiplies two bounds. Callers special-case an all-zero
// operand range before reaching here (§4.I: "any operand whose entire
// range is {0} produces (0, 0, ∞, 0)"), but a corner product of wider
// ranges can still pair an infinite endpoint with a zero endpoint: that
// product is returned as infinite, its sign taken from the operands'
// signs with zero counted as positive.
func mulBound(a, b ir.Bound) ir.Bound {
	if !a.Infinite && !b.Infinite {
		return ir.FiniteBound(a.Value.Mul(b.Value))
	}
	aNeg := signOf(a) < 0
	if !a.Infinite {
		aNeg = a.Value.Sign() < 0
	}
	bNeg := signOf(b) < 0
	if !b.Infinite {
		bNeg = b.Value.Sign() < 0
	}
	return ir.Bound{Infinite: true, Negative: aNeg != bNeg}
}

// effectiveMod maps a nil (infinite/"exact value") modulus to 0, the GCD
// identity element, so combining it with a finite modulus via GCD leaves
// the finite one unchanged — the concrete mechanism behind §4.I's
// "treat it as contributing no constraint".
func effectiveMod(m *ir.Int) *ir.Int {
	if m == nil {
		return ir.NewInt(0)
	}
	return m
}

// combineAddMod computes the modulus of a sum/difference: gcd(mod_a,
// mod_b), or nil (exact) when both operands are themselves exact.
func combineAddMod(modA, modB *ir.Int) *ir.Int {
	if modA == nil && modB == nil {
		return nil
	}
	g := effectiveMod(modA).GCD(effectiveMod(modB))
	if g.IsZero() {
		return ir.NewInt(1)
	}
	return g
}

// sharedModularValue implements §4.I's shared_modular_value: the
// largest modulus (and matching residue) both (m1, v1) and (m2, v2)
// agree on.
func sharedModularValue(m1, v1, m2, v2 *ir.Int) (*ir.Int, *ir.Int) {
	if m1 == nil && m2 == nil && v1.Cmp(v2) == 0 {
		return nil, v1
	}
	diff := v1.Sub(v2)
	g := effectiveMod(m1).GCD(effectiveMod(m2))
	g = g.GCD(diff)
	if g.IsZero() {
		g = ir.NewInt(1)
	}
	return g, v1.Mod(g)
}
