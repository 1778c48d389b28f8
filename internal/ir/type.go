package ir

import "github.com/go-emboss/embossc/internal/diag"

// TypeDefKind tags the TypeDefinition sum type (§3).
type TypeDefKind int

const (
	KindStructure TypeDefKind = iota
	KindEnumeration
	KindExternal
)

// TypeDef is the TypeDefinition sum-type interface: Structure,
// Enumeration or External (§3). Each variant embeds TypeDefBase and
// implements the private typeDefNode marker, the same closed-sum idiom
// used for Expr (and for the teacher's CoreExpr in internal/core/core.go).
type TypeDef interface {
	Base() *TypeDefBase
	DefKind() TypeDefKind
	typeDefNode()
}

// TypeDefBase carries the fields every TypeDefinition has.
type TypeDefBase struct {
	Location         diag.Location
	NameDefinition   NameDefinition
	RuntimeParameter []RuntimeParameter
	Attributes       []Attribute
	Subtype          []TypeDef // nested type definitions
	AddressableUnit  AddressableUnit
}

func (b *TypeDefBase) Base() *TypeDefBase { return b }

// Structure is a `struct` or `bits` type definition: an ordered list of
// Fields plus the dependency order computed by pass G.
type Structure struct {
	TypeDefBase
	Field                  []*Field
	FieldsInDependencyOrder []int // permutation of indices into Field, populated by component G
}

func (s *Structure) DefKind() TypeDefKind { return KindStructure }
func (s *Structure) typeDefNode()          {}

// EnumValue is one member of an Enumeration.
type EnumValue struct {
	NameDefinition NameDefinition
	Value          Expr
	Attributes     []Attribute
}

// Enumeration is an `enum` type definition.
type Enumeration struct {
	TypeDefBase
	EnumValue []EnumValue

	// Synthesized by the attribute checker (§4.J.3): true iff any enum
	// value is negative.
	IsSigned bool
	// Synthesized by the attribute checker; defaults to 64, must be in
	// [1, 64] (§4.J.3).
	MaximumBits int
}

func (e *Enumeration) DefKind() TypeDefKind { return KindEnumeration }
func (e *Enumeration) typeDefNode()          {}

// External is an opaque, externally-defined primitive type; it carries
// only attributes (§3).
type External struct {
	TypeDefBase
}

func (e *External) DefKind() TypeDefKind { return KindExternal }
func (e *External) typeDefNode()          {}
