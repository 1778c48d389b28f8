package ir

import "github.com/go-emboss/embossc/internal/diag"

// ExprKind is the tag of the Expression sum type (§3).
type ExprKind int

const (
	KindConstant ExprKind = iota
	KindBooleanConstant
	KindFieldReference
	KindConstantReference
	KindBuiltinReference
	KindFunction
)

// TypeKind is the tag of an Expression's type slot (§3).
type TypeKind int

const (
	TypeUnresolved TypeKind = iota
	TypeInteger
	TypeBoolean
	TypeEnumeration
	TypeOpaque
)

func (k TypeKind) String() string {
	switch k {
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeEnumeration:
		return "enumeration"
	case TypeOpaque:
		return "opaque"
	default:
		return "unresolved"
	}
}

// Bound is one endpoint of an integer bound: either a finite decimal
// value or +/-infinity (§3, §4.I).
type Bound struct {
	Infinite bool
	Negative bool // only meaningful when Infinite
	Value    *Int // finite value; big integer as decimal per §3
}

// FiniteBound constructs a finite Bound from an Int.
func FiniteBound(v *Int) Bound { return Bound{Value: v} }

// PosInf and NegInf are the two infinite bounds.
func PosInf() Bound { return Bound{Infinite: true, Negative: false} }
func NegInf() Bound { return Bound{Infinite: true, Negative: true} }

// IntegerBounds is the (minimum, maximum, modulus, modular_value) tuple
// carried by every integer Expression (§3, §4.I). An infinite Modulus
// means the value is known exactly: ModularValue holds that value, not
// zero (e.g. the constant k has bounds (k, k, infinity, k)). When
// Modulus is finite, 0 <= ModularValue < Modulus and the value is only
// known to fall in that residue class.
type IntegerBounds struct {
	Minimum      Bound
	Maximum      Bound
	Modulus      *Int // nil means infinite modulus (exact value)
	ModularValue *Int // always set; the exact value itself when Modulus is infinite
}

// EnumTypeInfo is attached to Expressions of TypeEnumeration kind: the
// enum's canonical name, and — for compile-time-known values — the
// underlying integer value as a decimal string.
type EnumTypeInfo struct {
	EnumName CanonicalName
	Value    *Int // nil if not compile-time known
}

// ExprType is the type slot every Expression carries (§3 invariant 3).
type ExprType struct {
	Kind         TypeKind
	Bounds       *IntegerBounds // set iff Kind == TypeInteger
	BoolValue    *bool          // set iff Kind == TypeBoolean and compile-time known
	Enum         *EnumTypeInfo  // set iff Kind == TypeEnumeration
}

// Expr is the Expression sum-type interface (§3). Each concrete node
// embeds ExprBase and implements the private exprNode marker, the idiom
// the teacher uses for its Core IR (internal/core.CoreExpr / CoreNode).
type Expr interface {
	Loc() diag.Location
	Type() *ExprType
	SetType(ExprType)
	Kind() ExprKind
	exprNode()
}

// ExprBase carries the fields every Expression has: its source location
// and its type slot (nil until annotation runs, §4.H).
type ExprBase struct {
	Location diag.Location
	ResolvedType *ExprType
}

func (b *ExprBase) Loc() diag.Location { return b.Location }
func (b *ExprBase) Type() *ExprType     { return b.ResolvedType }
func (b *ExprBase) SetType(t ExprType)  { b.ResolvedType = &t }

// Constant is an integer literal, stored as a big-integer decimal string
// per §3.
type Constant struct {
	ExprBase
	Value *Int
}

func (c *Constant) Kind() ExprKind { return KindConstant }
func (c *Constant) exprNode()       {}

// BooleanConstant is a `true`/`false` literal.
type BooleanConstant struct {
	ExprBase
	Value bool
}

func (b *BooleanConstant) Kind() ExprKind { return KindBooleanConstant }
func (b *BooleanConstant) exprNode()       {}

// FieldReference is a path of at least one Reference segment, walking
// into composite fields (§3, §4.F.2). Alias is non-nil once the resolver
// has transparently followed a chain of alias virtual fields to their
// ultimate physical target (alias transparency, §4.F.2).
type FieldReference struct {
	ExprBase
	Path  []Reference
	Alias *CanonicalName
}

func (f *FieldReference) Kind() ExprKind { return KindFieldReference }
func (f *FieldReference) exprNode()       {}

// ConstantReference is a dotted symbolic path to a constant: an enum
// value, or a virtual field whose read_transform is itself constant.
type ConstantReference struct {
	ExprBase
	Reference Reference
}

func (c *ConstantReference) Kind() ExprKind { return KindConstantReference }
func (c *ConstantReference) exprNode()       {}

// BuiltinReference names a builtin such as $size_in_bits, $next,
// $logical_value, $present, $upper_bound, $lower_bound, $max used as a
// bare value (not applied as a function call — those are Function nodes
// with the matching FunctionKind).
type BuiltinReference struct {
	ExprBase
	Reference Reference
}

func (b *BuiltinReference) Kind() ExprKind { return KindBuiltinReference }
func (b *BuiltinReference) exprNode()       {}

// FunctionKind enumerates the operators and builtin calls of the
// expression language (§3).
type FunctionKind int

const (
	Addition FunctionKind = iota
	Subtraction
	Multiplication
	Equality
	Inequality
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
	And
	Or
	Choice // ternary cond ? a : b
	Presence
	UpperBound
	LowerBound
	Maximum
)

// Function is an n-ary operator or builtin-function application.
type Function struct {
	ExprBase
	Function FunctionKind
	Args     []Expr
}

func (f *Function) Kind() ExprKind { return KindFunction }
func (f *Function) exprNode()       {}
