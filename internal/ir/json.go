package ir

import (
	"encoding/json"
	"fmt"

	"github.com/go-emboss/embossc/internal/diag"
)

// This file is what makes the IR JSON contract (§6, SPEC_FULL.md §1
// "Serialization") round-trip: Expr and TypeDef are closed sum types
// behind interfaces, which encoding/json can marshal through directly
// (it just reflects on the dynamic value) but cannot unmarshal back
// into on its own, since it has no way to know which concrete type an
// interface-typed field should become. Every type that carries an Expr,
// []Expr, TypeDef, or []TypeDef field gets a matching "wire" shadow
// struct that stores those slots as tagged envelopes instead.

// ---- Int ----

func (i *Int) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("null"), nil
	}
	return json.Marshal(i.v.String())
}

func (i *Int) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := NewIntFromString(s)
	if !ok {
		return fmt.Errorf("ir: malformed integer %q", s)
	}
	*i = *v
	return nil
}

// ---- Expr envelope ----

type exprEnvelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type functionWire struct {
	ExprBase
	Function FunctionKind      `json:"function"`
	Args     []json.RawMessage `json:"args"`
}

func marshalExpr(e Expr) (json.RawMessage, error) {
	if e == nil {
		return json.Marshal(nil)
	}
	var kind string
	var payload any
	switch v := e.(type) {
	case *Constant:
		kind, payload = "constant", v
	case *BooleanConstant:
		kind, payload = "boolean_constant", v
	case *FieldReference:
		kind, payload = "field_reference", v
	case *ConstantReference:
		kind, payload = "constant_reference", v
	case *BuiltinReference:
		kind, payload = "builtin_reference", v
	case *Function:
		args := make([]json.RawMessage, len(v.Args))
		for i, a := range v.Args {
			raw, err := marshalExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = raw
		}
		kind, payload = "function", functionWire{ExprBase: v.ExprBase, Function: v.Function, Args: args}
	default:
		return nil, fmt.Errorf("ir: unknown Expr type %T", e)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exprEnvelope{Kind: kind, Data: data})
}

func unmarshalExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env exprEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case "constant":
		var v Constant
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case "boolean_constant":
		var v BooleanConstant
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case "field_reference":
		var v FieldReference
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case "constant_reference":
		var v ConstantReference
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case "builtin_reference":
		var v BuiltinReference
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case "function":
		var wire functionWire
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, err
		}
		args := make([]Expr, len(wire.Args))
		for i, raw := range wire.Args {
			a, err := unmarshalExpr(raw)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &Function{ExprBase: wire.ExprBase, Function: wire.Function, Args: args}, nil
	default:
		return nil, fmt.Errorf("ir: unknown expression kind %q", env.Kind)
	}
}

func marshalExprSlice(es []Expr) ([]json.RawMessage, error) {
	if es == nil {
		return nil, nil
	}
	out := make([]json.RawMessage, len(es))
	for i, e := range es {
		raw, err := marshalExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalExprSlice(raws []json.RawMessage) ([]Expr, error) {
	if raws == nil {
		return nil, nil
	}
	out := make([]Expr, len(raws))
	for i, raw := range raws {
		e, err := unmarshalExpr(raw)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// ---- PhysicalLocation ----

type physicalLocationWire struct {
	Start json.RawMessage `json:"start"`
	Size  json.RawMessage `json:"size"`
}

func (p PhysicalLocation) MarshalJSON() ([]byte, error) {
	start, err := marshalExpr(p.Start)
	if err != nil {
		return nil, err
	}
	size, err := marshalExpr(p.Size)
	if err != nil {
		return nil, err
	}
	return json.Marshal(physicalLocationWire{Start: start, Size: size})
}

func (p *PhysicalLocation) UnmarshalJSON(data []byte) error {
	var wire physicalLocationWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	start, err := unmarshalExpr(wire.Start)
	if err != nil {
		return err
	}
	size, err := unmarshalExpr(wire.Size)
	if err != nil {
		return err
	}
	p.Start, p.Size = start, size
	return nil
}

// ---- FieldType ----

type fieldTypeWire struct {
	Location     diag.Location     `json:"location"`
	Reference    Reference         `json:"reference"`
	Parameters   []json.RawMessage `json:"parameters"`
	IsArray      bool              `json:"is_array"`
	ElementCount json.RawMessage   `json:"element_count"`
}

func (f FieldType) MarshalJSON() ([]byte, error) {
	params, err := marshalExprSlice(f.Parameters)
	if err != nil {
		return nil, err
	}
	count, err := marshalExpr(f.ElementCount)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fieldTypeWire{
		Location:     f.Location,
		Reference:    f.Reference,
		Parameters:   params,
		IsArray:      f.IsArray,
		ElementCount: count,
	})
}

func (f *FieldType) UnmarshalJSON(data []byte) error {
	var wire fieldTypeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	params, err := unmarshalExprSlice(wire.Parameters)
	if err != nil {
		return err
	}
	count, err := unmarshalExpr(wire.ElementCount)
	if err != nil {
		return err
	}
	f.Location = wire.Location
	f.Reference = wire.Reference
	f.Parameters = params
	f.IsArray = wire.IsArray
	f.ElementCount = count
	return nil
}

// ---- WriteMethod ----

type writeMethodWire struct {
	Kind                  WriteMethodKind `json:"kind"`
	AliasTarget           CanonicalName   `json:"alias_target,omitempty"`
	TransformDestination  CanonicalName   `json:"transform_destination,omitempty"`
	TransformFunctionBody json.RawMessage `json:"transform_function_body,omitempty"`
}

func (w WriteMethod) MarshalJSON() ([]byte, error) {
	body, err := marshalExpr(w.TransformFunctionBody)
	if err != nil {
		return nil, err
	}
	return json.Marshal(writeMethodWire{
		Kind:                  w.Kind,
		AliasTarget:           w.AliasTarget,
		TransformDestination:  w.TransformDestination,
		TransformFunctionBody: body,
	})
}

func (w *WriteMethod) UnmarshalJSON(data []byte) error {
	var wire writeMethodWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	body, err := unmarshalExpr(wire.TransformFunctionBody)
	if err != nil {
		return err
	}
	w.Kind = wire.Kind
	w.AliasTarget = wire.AliasTarget
	w.TransformDestination = wire.TransformDestination
	w.TransformFunctionBody = body
	return nil
}

// ---- EnumValue ----

type enumValueWire struct {
	NameDefinition NameDefinition  `json:"name_definition"`
	Value          json.RawMessage `json:"value"`
	Attributes     []Attribute     `json:"attributes"`
}

func (e EnumValue) MarshalJSON() ([]byte, error) {
	v, err := marshalExpr(e.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(enumValueWire{NameDefinition: e.NameDefinition, Value: v, Attributes: e.Attributes})
}

func (e *EnumValue) UnmarshalJSON(data []byte) error {
	var wire enumValueWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	v, err := unmarshalExpr(wire.Value)
	if err != nil {
		return err
	}
	e.NameDefinition = wire.NameDefinition
	e.Value = v
	e.Attributes = wire.Attributes
	return nil
}

// ---- Field ----

type fieldWire struct {
	NameDefinition     NameDefinition    `json:"name_definition"`
	Location           diag.Location     `json:"location"`
	Attributes         []Attribute       `json:"attributes"`
	ExistenceCondition json.RawMessage   `json:"existence_condition"`
	PhysicalLocation   *PhysicalLocation `json:"physical_location,omitempty"`
	Type               *FieldType        `json:"type,omitempty"`
	ReadTransform      json.RawMessage   `json:"read_transform,omitempty"`
	WriteMethod        *WriteMethod      `json:"write_method,omitempty"`
}

func (f Field) MarshalJSON() ([]byte, error) {
	cond, err := marshalExpr(f.ExistenceCondition)
	if err != nil {
		return nil, err
	}
	transform, err := marshalExpr(f.ReadTransform)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fieldWire{
		NameDefinition:     f.NameDefinition,
		Location:           f.Location,
		Attributes:         f.Attributes,
		ExistenceCondition: cond,
		PhysicalLocation:   f.PhysicalLocation,
		Type:               f.Type,
		ReadTransform:      transform,
		WriteMethod:        f.WriteMethod,
	})
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var wire fieldWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	cond, err := unmarshalExpr(wire.ExistenceCondition)
	if err != nil {
		return err
	}
	transform, err := unmarshalExpr(wire.ReadTransform)
	if err != nil {
		return err
	}
	f.NameDefinition = wire.NameDefinition
	f.Location = wire.Location
	f.Attributes = wire.Attributes
	f.ExistenceCondition = cond
	f.PhysicalLocation = wire.PhysicalLocation
	f.Type = wire.Type
	f.ReadTransform = transform
	f.WriteMethod = wire.WriteMethod
	return nil
}

// ---- TypeDef envelope ----

type typeDefEnvelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type typeDefBaseWire struct {
	Location         diag.Location      `json:"location"`
	NameDefinition   NameDefinition     `json:"name_definition"`
	RuntimeParameter []RuntimeParameter `json:"runtime_parameter,omitempty"`
	Attributes       []Attribute        `json:"attributes,omitempty"`
	Subtype          []json.RawMessage  `json:"subtype,omitempty"`
	AddressableUnit  AddressableUnit    `json:"addressable_unit"`
}

func marshalTypeDefBase(b TypeDefBase) (typeDefBaseWire, error) {
	subs, err := marshalTypeDefSlice(b.Subtype)
	if err != nil {
		return typeDefBaseWire{}, err
	}
	return typeDefBaseWire{
		Location:         b.Location,
		NameDefinition:   b.NameDefinition,
		RuntimeParameter: b.RuntimeParameter,
		Attributes:       b.Attributes,
		Subtype:          subs,
		AddressableUnit:  b.AddressableUnit,
	}, nil
}

func (w typeDefBaseWire) toBase() (TypeDefBase, error) {
	subs, err := unmarshalTypeDefSlice(w.Subtype)
	if err != nil {
		return TypeDefBase{}, err
	}
	return TypeDefBase{
		Location:         w.Location,
		NameDefinition:   w.NameDefinition,
		RuntimeParameter: w.RuntimeParameter,
		Attributes:       w.Attributes,
		Subtype:          subs,
		AddressableUnit:  w.AddressableUnit,
	}, nil
}

type structureWire struct {
	typeDefBaseWire
	Field                   []*Field `json:"field"`
	FieldsInDependencyOrder []int    `json:"fields_in_dependency_order,omitempty"`
}

type enumerationWire struct {
	typeDefBaseWire
	EnumValue   []EnumValue `json:"enum_value"`
	IsSigned    bool        `json:"is_signed"`
	MaximumBits int         `json:"maximum_bits"`
}

func marshalTypeDef(td TypeDef) (json.RawMessage, error) {
	if td == nil {
		return json.Marshal(nil)
	}
	var kind string
	var payload any
	switch v := td.(type) {
	case *Structure:
		base, err := marshalTypeDefBase(v.TypeDefBase)
		if err != nil {
			return nil, err
		}
		kind, payload = "structure", structureWire{typeDefBaseWire: base, Field: v.Field, FieldsInDependencyOrder: v.FieldsInDependencyOrder}
	case *Enumeration:
		base, err := marshalTypeDefBase(v.TypeDefBase)
		if err != nil {
			return nil, err
		}
		kind, payload = "enumeration", enumerationWire{typeDefBaseWire: base, EnumValue: v.EnumValue, IsSigned: v.IsSigned, MaximumBits: v.MaximumBits}
	case *External:
		base, err := marshalTypeDefBase(v.TypeDefBase)
		if err != nil {
			return nil, err
		}
		kind, payload = "external", base
	default:
		return nil, fmt.Errorf("ir: unknown TypeDef type %T", td)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(typeDefEnvelope{Kind: kind, Data: data})
}

func unmarshalTypeDef(raw json.RawMessage) (TypeDef, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env typeDefEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case "structure":
		var wire structureWire
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, err
		}
		base, err := wire.toBase()
		if err != nil {
			return nil, err
		}
		return &Structure{TypeDefBase: base, Field: wire.Field, FieldsInDependencyOrder: wire.FieldsInDependencyOrder}, nil
	case "enumeration":
		var wire enumerationWire
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, err
		}
		base, err := wire.toBase()
		if err != nil {
			return nil, err
		}
		return &Enumeration{TypeDefBase: base, EnumValue: wire.EnumValue, IsSigned: wire.IsSigned, MaximumBits: wire.MaximumBits}, nil
	case "external":
		var wire typeDefBaseWire
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, err
		}
		base, err := wire.toBase()
		if err != nil {
			return nil, err
		}
		return &External{TypeDefBase: base}, nil
	default:
		return nil, fmt.Errorf("ir: unknown type definition kind %q", env.Kind)
	}
}

func marshalTypeDefSlice(tds []TypeDef) ([]json.RawMessage, error) {
	if tds == nil {
		return nil, nil
	}
	out := make([]json.RawMessage, len(tds))
	for i, td := range tds {
		raw, err := marshalTypeDef(td)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalTypeDefSlice(raws []json.RawMessage) ([]TypeDef, error) {
	if raws == nil {
		return nil, nil
	}
	out := make([]TypeDef, len(raws))
	for i, raw := range raws {
		td, err := unmarshalTypeDef(raw)
		if err != nil {
			return nil, err
		}
		out[i] = td
	}
	return out, nil
}

// ---- Module ----

type moduleWire struct {
	SourceFileName string            `json:"source_file_name"`
	SourceText     string            `json:"source_text"`
	TypeDefinition []json.RawMessage `json:"type_definition"`
	ForeignImport  []ForeignImport   `json:"foreign_import"`
	Attributes     []Attribute       `json:"attributes"`
}

func (m Module) MarshalJSON() ([]byte, error) {
	tds, err := marshalTypeDefSlice(m.TypeDefinition)
	if err != nil {
		return nil, err
	}
	return json.Marshal(moduleWire{
		SourceFileName: m.SourceFileName,
		SourceText:     m.SourceText,
		TypeDefinition: tds,
		ForeignImport:  m.ForeignImport,
		Attributes:     m.Attributes,
	})
}

func (m *Module) UnmarshalJSON(data []byte) error {
	var wire moduleWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	tds, err := unmarshalTypeDefSlice(wire.TypeDefinition)
	if err != nil {
		return err
	}
	m.SourceFileName = wire.SourceFileName
	m.SourceText = wire.SourceText
	m.TypeDefinition = tds
	m.ForeignImport = wire.ForeignImport
	m.Attributes = wire.Attributes
	return nil
}
