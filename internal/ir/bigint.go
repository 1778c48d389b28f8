package ir

import "math/big"

// Int is a finite big integer, serialized as a decimal string per §3
// ("value: big integer as decimal string"). Infinite bounds are
// represented separately by Bound, never by Int, so every Int is always
// a concrete, finite value.
type Int struct {
	v *big.Int
}

// NewInt wraps a native int64.
func NewInt(i int64) *Int { return &Int{v: big.NewInt(i)} }

// NewIntFromString parses a decimal string, as the wire format requires.
func NewIntFromString(s string) (*Int, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return &Int{v: v}, true
}

// MustNewIntFromString panics on malformed input; used only for literals
// the caller already knows are well-formed (tests, synthesized constants).
func MustNewIntFromString(s string) *Int {
	i, ok := NewIntFromString(s)
	if !ok {
		panic("ir: malformed integer literal " + s)
	}
	return i
}

// String renders the decimal form used in the JSON wire format.
func (i *Int) String() string {
	if i == nil {
		return "0"
	}
	return i.v.String()
}

func (i *Int) Big() *big.Int { return i.v }

func (i *Int) Cmp(o *Int) int { return i.v.Cmp(o.v) }

func (i *Int) Add(o *Int) *Int { return &Int{v: new(big.Int).Add(i.v, o.v)} }
func (i *Int) Sub(o *Int) *Int { return &Int{v: new(big.Int).Sub(i.v, o.v)} }
func (i *Int) Mul(o *Int) *Int { return &Int{v: new(big.Int).Mul(i.v, o.v)} }
func (i *Int) Neg() *Int       { return &Int{v: new(big.Int).Neg(i.v)} }

func (i *Int) Sign() int { return i.v.Sign() }
func (i *Int) IsZero() bool { return i.v.Sign() == 0 }

// Mod returns the Euclidean remainder of i mod m, always in [0, m).
func (i *Int) Mod(m *Int) *Int {
	r := new(big.Int).Mod(i.v, m.v)
	return &Int{v: r}
}

// GCD returns the non-negative greatest common divisor of the absolute
// values of i and o.
func (i *Int) GCD(o *Int) *Int {
	a := new(big.Int).Abs(i.v)
	b := new(big.Int).Abs(o.v)
	return &Int{v: new(big.Int).GCD(nil, nil, a, b)}
}

func (i *Int) Int64() int64 { return i.v.Int64() }

func (i *Int) Min(o *Int) *Int {
	if i.Cmp(o) <= 0 {
		return i
	}
	return o
}

func (i *Int) Max(o *Int) *Int {
	if i.Cmp(o) >= 0 {
		return i
	}
	return o
}

// Pow2 returns 2^n as an Int, n >= 0.
func Pow2(n int) *Int {
	return &Int{v: new(big.Int).Lsh(big.NewInt(1), uint(n))}
}
