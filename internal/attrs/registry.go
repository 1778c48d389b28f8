// Package attrs implements component J (§4.J): the attribute registry
// (known attributes, their required type/context/defaultability),
// byte_order defaulting and propagation, and synthesis of the computed
// attributes (fixed_size_in_bits, is_signed, maximum_bits) every back
// end depends on.
package attrs

import "github.com/go-emboss/embossc/internal/ir"

// Context is where an attribute may legally appear (§4.J.1).
type Context int

const (
	ContextModule Context = iota
	ContextStruct
	ContextBits
	ContextEnum
	ContextExternal
	ContextPhysicalField
	ContextVirtualField
	ContextEnumValue
)

func (c Context) String() string {
	switch c {
	case ContextModule:
		return "module"
	case ContextStruct:
		return "struct"
	case ContextBits:
		return "bits"
	case ContextEnum:
		return "enum"
	case ContextExternal:
		return "external"
	case ContextPhysicalField:
		return "field"
	case ContextVirtualField:
		return "field"
	case ContextEnumValue:
		return "enum value"
	default:
		return "unknown"
	}
}

// ValueType is the required attribute value type.
type ValueType int

const (
	ValueString ValueType = iota
	ValueInteger
	ValueBoolean
)

// Key is the (back_end_specifier, attribute_name, context) triple the
// registry is keyed on. An empty BackEnd means unqualified (applies to
// the language core, not any particular code generator).
type Key struct {
	BackEnd string
	Name    string
	Context Context
}

// Spec describes one known attribute (§4.J.1).
type Spec struct {
	Type        ValueType
	Defaultable bool
	Required    bool
	// AllowedValues restricts ValueString attributes to a closed set;
	// nil means any string is accepted.
	AllowedValues []string
}

// Registry is the set of known (backend, name, context) attributes.
type Registry map[Key]Spec

// byteOrderContexts lists every context byte_order may appear in,
// defaultable everywhere except the ones §4.J.2 names as illegal to
// default on (bits blocks, enums, individual fields).
var byteOrderContexts = []Context{ContextModule, ContextStruct, ContextPhysicalField, ContextBits, ContextEnum}

// NewDefault builds the registry of attributes this compiler recognizes
// out of the box (§4.J.1), grounded on the attribute names exercised by
// attribute_checker_test.py: byte_order, fixed_size_in_bits, is_signed,
// maximum_bits, expected_back_ends, text_output (synthesized by
// desugaring), and the (cpp)-qualified namespace/enum_case/include_file
// family.
func NewDefault() Registry {
	r := Registry{}
	for _, ctx := range byteOrderContexts {
		defaultable := ctx != ContextBits && ctx != ContextEnum && ctx != ContextPhysicalField
		r[Key{Name: "byte_order", Context: ctx}] = Spec{Type: ValueString, Defaultable: defaultable,
			AllowedValues: []string{"BigEndian", "LittleEndian", "Null"}}
	}
	r[Key{Name: "fixed_size_in_bits", Context: ContextStruct}] = Spec{Type: ValueInteger}
	r[Key{Name: "fixed_size_in_bits", Context: ContextBits}] = Spec{Type: ValueInteger}
	r[Key{Name: "is_signed", Context: ContextEnum}] = Spec{Type: ValueBoolean}
	r[Key{Name: "maximum_bits", Context: ContextEnum}] = Spec{Type: ValueInteger}
	r[Key{Name: "expected_back_ends", Context: ContextModule}] = Spec{Type: ValueString}
	r[Key{Name: "text_output", Context: ContextPhysicalField}] = Spec{Type: ValueString}
	r[Key{Name: "text_output", Context: ContextVirtualField}] = Spec{Type: ValueString}
	r[Key{Name: "is_integer", Context: ContextExternal}] = Spec{Type: ValueBoolean}
	r[Key{Name: "requires", Context: ContextPhysicalField}] = Spec{Type: ValueBoolean}

	r[Key{BackEnd: "cpp", Name: "namespace", Context: ContextModule}] = Spec{Type: ValueString}
	r[Key{BackEnd: "cpp", Name: "include_file", Context: ContextExternal}] = Spec{Type: ValueString}
	r[Key{BackEnd: "cpp", Name: "enum_case", Context: ContextEnum}] = Spec{Type: ValueString}
	return r
}

// Lookup returns the Spec for a (backend, name, context) triple, or
// (Spec{}, false) if the attribute is unknown there.
func (r Registry) Lookup(backEnd, name string, ctx Context) (Spec, bool) {
	s, ok := r[Key{BackEnd: backEnd, Name: name, Context: ctx}]
	return s, ok
}

// contextOf classifies td by its concrete kind, distinguishing a `bits`
// block from a `struct` by its AddressableUnit (GLOSSARY).
func contextOf(td ir.TypeDef) Context {
	switch v := td.(type) {
	case *ir.Structure:
		if v.AddressableUnit == ir.Bit {
			return ContextBits
		}
		return ContextStruct
	case *ir.Enumeration:
		return ContextEnum
	case *ir.External:
		return ContextExternal
	default:
		return ContextStruct
	}
}
