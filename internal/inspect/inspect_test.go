package inspect

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/go-emboss/embossc/internal/depcheck"
	"github.com/go-emboss/embossc/internal/desugar"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/parser"
	"github.com/go-emboss/embossc/internal/prelude"
	"github.com/go-emboss/embossc/internal/resolver"
	"github.com/go-emboss/embossc/internal/typecheck"
	"github.com/go-emboss/embossc/internal/writeinfer"
)

func buildIR(t *testing.T, src string) *ir.IR {
	t.Helper()
	mod, _, errs := parser.ParseModuleText([]byte(src), "test.emb")
	require.Empty(t, errs)
	pre, preErrs := prelude.Get()
	require.Empty(t, preErrs)
	tree := &ir.IR{Module: []*ir.Module{mod, pre}}
	require.Empty(t, desugar.Run(tree))
	require.Empty(t, resolver.Resolve(tree))
	require.Empty(t, depcheck.Check(tree))
	require.Empty(t, typecheck.Check(tree))
	writeinfer.Run(tree)
	return tree
}

func TestExprStringRendersArithmetic(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = x + 50\n")
	f := fieldByName(tree.Module[0], "Foo", "y")
	require.Equal(t, "(x + 50)", ExprString(f.ReadTransform))
}

func TestExprStringRendersBuiltinCall(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  let y = $max(1, 2)\n")
	f := fieldByName(tree.Module[0], "Foo", "y")
	require.Equal(t, "$max(1, 2)", ExprString(f.ReadTransform))
}

func TestBuildTreeHasOneChildPerModule(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n")
	root := BuildTree(tree)
	require.Len(t, root.children, len(tree.Module))
	require.Equal(t, "test.emb", root.children[0].title)
}

func TestBuildTreeWalksStructFieldsAndExpressions(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = x + 50\n")
	root := BuildTree(tree)
	mod := root.children[0]
	require.Equal(t, "Foo", mod.children[0].title)
	foo := mod.children[0]

	var xNode, yNode *node
	for i := range foo.children {
		switch foo.children[i].title {
		case "x":
			xNode = &foo.children[i]
		case "y":
			yNode = &foo.children[i]
		}
	}
	require.NotNil(t, xNode)
	require.NotNil(t, yNode)
	require.Contains(t, yNode.desc, "x + 50")
	require.Contains(t, yNode.desc, "transform")
}

func fieldByName(mod *ir.Module, structName, fieldName string) *ir.Field {
	for _, td := range mod.TypeDefinition {
		if td.Base().NameDefinition.Name.Text != structName {
			continue
		}
		s := td.(*ir.Structure)
		for _, f := range s.Field {
			if f.NameDefinition.Name.Text == fieldName {
				return f
			}
		}
	}
	return nil
}

func TestModelEnterDrillsIntoChildAndEscGoesBack(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n")
	m := NewModel(tree)
	require.Len(t, m.stack, 1)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.Len(t, m.stack, 2, "expected Enter to drill into the selected module")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	require.Len(t, m.stack, 1, "expected Esc to pop back to the root")
}

func TestModelQuitsOnCtrlC(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n")
	m := NewModel(tree)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}
