package inspect

import (
	"fmt"

	"github.com/go-emboss/embossc/internal/ir"
)

// node is one entry in the browsable IR tree (modules -> type definitions
// -> fields -> expressions). It implements bubbles/list.Item so the
// browser can hand nodes straight to a list.Model.
type node struct {
	title    string
	desc     string
	children []node
}

func (n node) FilterValue() string { return n.title }
func (n node) Title() string       { return n.title }
func (n node) Description() string { return n.desc }

// BuildTree turns a whole *ir.IR into the root node of the browser's tree,
// the top level being one child per module.
func BuildTree(tree *ir.IR) node {
	root := node{title: "IR", desc: fmt.Sprintf("%d modules", len(tree.Module))}
	for _, m := range tree.Module {
		root.children = append(root.children, moduleNode(m))
	}
	return root
}

func moduleNode(m *ir.Module) node {
	name := m.SourceFileName
	if name == "" {
		name = "(prelude)"
	}
	n := node{title: name, desc: fmt.Sprintf("%d type definitions", len(m.TypeDefinition))}
	for _, td := range m.TypeDefinition {
		n.children = append(n.children, typeDefNode(td))
	}
	return n
}

func typeDefNode(td ir.TypeDef) node {
	base := td.Base()
	switch v := td.(type) {
	case *ir.Structure:
		n := node{title: base.NameDefinition.Name.Text, desc: fmt.Sprintf("struct, %s-addressed, %d fields", base.AddressableUnit, len(v.Field))}
		for _, f := range v.Field {
			n.children = append(n.children, fieldNode(f))
		}
		for _, s := range base.Subtype {
			n.children = append(n.children, typeDefNode(s))
		}
		return n
	case *ir.Enumeration:
		n := node{title: base.NameDefinition.Name.Text, desc: fmt.Sprintf("enum, %d bits, %d values", v.MaximumBits, len(v.EnumValue))}
		for _, ev := range v.EnumValue {
			n.children = append(n.children, node{
				title: ev.NameDefinition.Name.Text,
				desc:  ExprString(ev.Value),
			})
		}
		return n
	case *ir.External:
		return node{title: base.NameDefinition.Name.Text, desc: "external type"}
	default:
		return node{title: base.NameDefinition.Name.Text, desc: "type definition"}
	}
}

func fieldNode(f *ir.Field) node {
	n := node{title: f.NameDefinition.Name.Text}
	if f.IsVirtual() {
		n.desc = fmt.Sprintf("virtual = %s [%s]", ExprString(f.ReadTransform), writeMethodString(f.WriteMethod))
		n.children = append(n.children, exprNode("read_transform", f.ReadTransform))
	} else {
		n.desc = fmt.Sprintf("%s [+%s]  %s", ExprString(f.PhysicalLocation.Start), ExprString(f.PhysicalLocation.Size), typeString(f.Type))
		n.children = append(n.children,
			exprNode("start", f.PhysicalLocation.Start),
			exprNode("size", f.PhysicalLocation.Size),
		)
	}
	if f.ExistenceCondition != nil {
		n.children = append(n.children, exprNode("existence_condition", f.ExistenceCondition))
	}
	return n
}

func exprNode(label string, e ir.Expr) node {
	n := node{title: label, desc: ExprString(e)}
	if fn, ok := e.(*ir.Function); ok {
		for i, a := range fn.Args {
			n.children = append(n.children, exprNode(fmt.Sprintf("arg[%d]", i), a))
		}
	}
	return n
}
