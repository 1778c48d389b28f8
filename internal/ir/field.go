package ir

import "github.com/go-emboss/embossc/internal/diag"

// PhysicalLocation is a physical field's `start [+ size]` pair (§3).
type PhysicalLocation struct {
	Start Expr
	Size  Expr
}

// FieldType names a field's physical type: a possibly-parameterized
// AtomicType, or — when IsArray is true — an ArrayType wrapping it.
// ElementCount is nil for an unbounded ("0+" style) array.
type FieldType struct {
	Location     diag.Location
	Reference    Reference // resolved by pass F.1
	Parameters   []Expr    // runtime-parameter arguments, instantiating a parameterized type
	IsArray      bool
	ElementCount Expr // nil when IsArray is false, or when the array is unbounded
}

// WriteMethodKind tags the WriteMethod sum type (§3, component L).
type WriteMethodKind int

const (
	WritePhysical WriteMethodKind = iota
	WriteReadOnly
	WriteAlias
	WriteTransform
)

// WriteMethod classifies how a field may be written (§4.L). Physical
// fields are always WritePhysical. Virtual fields get one of the other
// three kinds during the write-inference pass.
type WriteMethod struct {
	Kind WriteMethodKind

	// set iff Kind == WriteAlias: the ultimate physical field this
	// virtual field is a transparent alias for.
	AliasTarget CanonicalName

	// set iff Kind == WriteTransform: the physical field being written,
	// and the expression computing its new value in terms of
	// $logical_value (invariant 6, §3).
	TransformDestination   CanonicalName
	TransformFunctionBody  Expr
}

// Field is either Physical (has Location+Type) or Virtual (has
// ReadTransform); exactly one of the two groups is populated (§3).
type Field struct {
	NameDefinition NameDefinition
	Location       diag.Location
	Attributes     []Attribute

	// ExistenceCondition defaults to the boolean constant `true` (§3).
	ExistenceCondition Expr

	// Physical fields:
	PhysicalLocation *PhysicalLocation
	Type             *FieldType

	// Virtual fields:
	ReadTransform Expr

	// Populated by pass L (component L) for virtual fields; physical
	// fields are always WritePhysical.
	WriteMethod *WriteMethod
}

// IsVirtual reports whether this is a virtual (computed) field.
func (f *Field) IsVirtual() bool { return f.PhysicalLocation == nil }

// RuntimeParameter is a value a parameterized type is instantiated with
// (§3). PhysicalType must resolve to an integer or enum type, never an
// array (§4.H).
type RuntimeParameter struct {
	NameDefinition NameDefinition
	PhysicalType   Reference
	// Width carries an explicit "Type:n" bit-width annotation (e.g.
	// `UInt:8`), used by the bounds engine when the parameter has no
	// physical field location to derive a width from. Nil for
	// enum-typed parameters and for physical fields (which always
	// derive width from their own location.size instead).
	Width *Int
}
