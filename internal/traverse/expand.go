package traverse

import "github.com/go-emboss/embossc/internal/ir"

// children returns the direct child Nodes of n in source order. This is
// the one place the engine needs to know the shape of every IR node;
// every pass built on TopDown is shape-agnostic.
func children(n Node) []Node {
	switch n.Kind {
	case KindModule:
		return moduleChildren(n.Module)
	case KindTypeDef:
		return typeDefChildren(n.TypeDef)
	case KindField:
		return fieldChildren(n.Field)
	case KindExpr:
		return exprChildren(n.Expr)
	case KindAttribute:
		return attributeChildren(n.Attribute)
	case KindEnumValue:
		return enumValueChildren(n.EnumValue)
	case KindRuntimeParameter:
		return nil
	case KindForeignImport:
		return nil
	default:
		return nil
	}
}

func moduleChildren(m *ir.Module) []Node {
	var out []Node
	for i := range m.ForeignImport {
		out = append(out, ForeignImportNode(&m.ForeignImport[i]))
	}
	for _, a := range m.Attributes {
		a := a
		out = append(out, AttributeNode(&a))
	}
	for _, t := range m.TypeDefinition {
		out = append(out, TypeDefNode(t))
	}
	return out
}

func typeDefChildren(t ir.TypeDef) []Node {
	var out []Node
	base := t.Base()
	for i := range base.RuntimeParameter {
		out = append(out, RuntimeParameterNode(&base.RuntimeParameter[i]))
	}
	for _, a := range base.Attributes {
		a := a
		out = append(out, AttributeNode(&a))
	}
	switch v := t.(type) {
	case *ir.Structure:
		for _, f := range v.Field {
			out = append(out, FieldNode(f))
		}
	case *ir.Enumeration:
		for i := range v.EnumValue {
			out = append(out, EnumValueNode(&v.EnumValue[i]))
		}
	case *ir.External:
		// no further children beyond base
	}
	for _, s := range base.Subtype {
		out = append(out, TypeDefNode(s))
	}
	return out
}

func fieldChildren(f *ir.Field) []Node {
	var out []Node
	for _, a := range f.Attributes {
		a := a
		out = append(out, AttributeNode(&a))
	}
	if f.ExistenceCondition != nil {
		out = append(out, ExprNode(f.ExistenceCondition))
	}
	if f.PhysicalLocation != nil {
		if f.PhysicalLocation.Start != nil {
			out = append(out, ExprNode(f.PhysicalLocation.Start))
		}
		if f.PhysicalLocation.Size != nil {
			out = append(out, ExprNode(f.PhysicalLocation.Size))
		}
	}
	if f.Type != nil {
		for _, p := range f.Type.Parameters {
			out = append(out, ExprNode(p))
		}
		if f.Type.ElementCount != nil {
			out = append(out, ExprNode(f.Type.ElementCount))
		}
	}
	if f.ReadTransform != nil {
		out = append(out, ExprNode(f.ReadTransform))
	}
	return out
}

func exprChildren(e ir.Expr) []Node {
	if fn, ok := e.(*ir.Function); ok {
		out := make([]Node, len(fn.Args))
		for i, a := range fn.Args {
			out[i] = ExprNode(a)
		}
		return out
	}
	return nil
}

func attributeChildren(a *ir.Attribute) []Node { return nil }

func enumValueChildren(e *ir.EnumValue) []Node {
	var out []Node
	for _, a := range e.Attributes {
		a := a
		out = append(out, AttributeNode(&a))
	}
	if e.Value != nil {
		out = append(out, ExprNode(e.Value))
	}
	return out
}
