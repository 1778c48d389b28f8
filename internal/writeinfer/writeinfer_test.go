package writeinfer

import (
	"testing"

	"github.com/go-emboss/embossc/internal/depcheck"
	"github.com/go-emboss/embossc/internal/desugar"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/parser"
	"github.com/go-emboss/embossc/internal/prelude"
	"github.com/go-emboss/embossc/internal/resolver"
)

func buildIR(t *testing.T, src string) *ir.IR {
	t.Helper()
	mod, _, errs := parser.ParseModuleText([]byte(src), "test.emb")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	pre, preErrs := prelude.Get()
	if len(preErrs) > 0 {
		t.Fatalf("prelude parse errors: %v", preErrs)
	}
	tree := &ir.IR{Module: []*ir.Module{mod, pre}}
	if bundles := desugar.Run(tree); len(bundles) != 0 {
		t.Fatalf("desugar errors: %v", bundles)
	}
	if bundles := resolver.Resolve(tree); len(bundles) != 0 {
		t.Fatalf("resolve errors: %v", bundles)
	}
	if bundles := depcheck.Check(tree); len(bundles) != 0 {
		t.Fatalf("depcheck errors: %v", bundles)
	}
	return tree
}

func fieldNamed(t *testing.T, mod *ir.Module, structName, fieldName string) *ir.Field {
	t.Helper()
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
	t.Fatalf("no field %s.%s", structName, fieldName)
	return nil
}

func TestPhysicalFieldGetsPhysicalWriteMethod(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "x")
	if f.WriteMethod.Kind != ir.WritePhysical {
		t.Fatalf("expected WritePhysical, got %v", f.WriteMethod.Kind)
	}
}

func TestNonAliasVirtualFieldGetsReadOnly(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  let x = 5\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "x")
	if f.WriteMethod.Kind != ir.WriteReadOnly {
		t.Fatalf("expected WriteReadOnly, got %v", f.WriteMethod.Kind)
	}
}

func TestAliasOfPhysicalFieldGetsAlias(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  let x = y\n  0 [+1]  UInt  y\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "x")
	if f.WriteMethod.Kind != ir.WriteAlias {
		t.Fatalf("expected WriteAlias, got %v", f.WriteMethod.Kind)
	}
	if got := f.WriteMethod.AliasTarget.Path[len(f.WriteMethod.AliasTarget.Path)-1]; got != "y" {
		t.Fatalf("expected alias target y, got %s", got)
	}
}

func TestAliasOfAliasOfPhysicalFieldGetsAlias(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  let x = z\n  let z = y\n  0 [+1]  UInt  y\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "x")
	if f.WriteMethod.Kind != ir.WriteAlias {
		t.Fatalf("expected WriteAlias, got %v", f.WriteMethod.Kind)
	}
	if got := f.WriteMethod.AliasTarget.Path[len(f.WriteMethod.AliasTarget.Path)-1]; got != "y" {
		t.Fatalf("expected alias target y, got %s", got)
	}
}

func TestAliasOfReadOnlyGetsReadOnly(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  let x = y\n  let y = 5\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "x")
	if f.WriteMethod.Kind != ir.WriteReadOnly {
		t.Fatalf("expected WriteReadOnly, got %v", f.WriteMethod.Kind)
	}
}

func TestAliasOfRuntimeParameterGetsReadOnly(t *testing.T) {
	tree := buildIR(t, "struct Foo(x: UInt:8):\n  let y = x\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	if f.WriteMethod.Kind != ir.WriteReadOnly {
		t.Fatalf("expected WriteReadOnly, got %v", f.WriteMethod.Kind)
	}
}

func TestTransformWriteMethodForBaseValueField(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = x + 50\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	if f.WriteMethod.Kind != ir.WriteTransform {
		t.Fatalf("expected WriteTransform, got %v", f.WriteMethod.Kind)
	}
	if got := f.WriteMethod.TransformDestination.Path[len(f.WriteMethod.TransformDestination.Path)-1]; got != "x" {
		t.Fatalf("expected destination x, got %s", got)
	}
	fn, ok := f.WriteMethod.TransformFunctionBody.(*ir.Function)
	if !ok || fn.Function != ir.Subtraction {
		t.Fatalf("expected top-level Subtraction, got %#v", f.WriteMethod.TransformFunctionBody)
	}
	if _, ok := fn.Args[0].(*ir.BuiltinReference); !ok {
		t.Fatalf("expected $logical_value as first operand, got %#v", fn.Args[0])
	}
}

func TestTransformWriteMethodForNegativeBaseValueField(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = x - 50\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	fn, ok := f.WriteMethod.TransformFunctionBody.(*ir.Function)
	if !ok || fn.Function != ir.Addition {
		t.Fatalf("expected top-level Addition, got %#v", f.WriteMethod.TransformFunctionBody)
	}
}

func TestTransformWriteMethodForReversedBaseValueField(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = 50 + x\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	fn, ok := f.WriteMethod.TransformFunctionBody.(*ir.Function)
	if !ok || fn.Function != ir.Subtraction {
		t.Fatalf("expected top-level Subtraction, got %#v", f.WriteMethod.TransformFunctionBody)
	}
}

func TestTransformWriteMethodForReversedNegativeBaseValueField(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = 50 - x\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	fn, ok := f.WriteMethod.TransformFunctionBody.(*ir.Function)
	if !ok || fn.Function != ir.Subtraction {
		t.Fatalf("expected top-level Subtraction, got %#v", f.WriteMethod.TransformFunctionBody)
	}
	if _, ok := fn.Args[0].(*ir.Constant); !ok {
		t.Fatalf("expected constant 50 as first operand, got %#v", fn.Args[0])
	}
	if _, ok := fn.Args[1].(*ir.BuiltinReference); !ok {
		t.Fatalf("expected $logical_value as second operand, got %#v", fn.Args[1])
	}
}

func TestTransformWriteMethodForNestedInvertibleField(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = 30 + (50 - x)\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	fn, ok := f.WriteMethod.TransformFunctionBody.(*ir.Function)
	if !ok || fn.Function != ir.Subtraction {
		t.Fatalf("expected top-level Subtraction, got %#v", f.WriteMethod.TransformFunctionBody)
	}
	inner, ok := fn.Args[1].(*ir.Function)
	if !ok || inner.Function != ir.Subtraction {
		t.Fatalf("expected nested Subtraction, got %#v", fn.Args[1])
	}
	if _, ok := inner.Args[0].(*ir.BuiltinReference); !ok {
		t.Fatalf("expected $logical_value nested inside, got %#v", inner.Args[0])
	}
}

func TestNoTransformWriteMethodForParameterTarget(t *testing.T) {
	tree := buildIR(t, "struct Foo(x: UInt:8):\n  let y = 50 + x\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	if f.WriteMethod.Kind != ir.WriteReadOnly {
		t.Fatalf("expected WriteReadOnly, got %v", f.WriteMethod.Kind)
	}
}

func TestTransformWriteMethodWithComplexAuxiliarySubexpression(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+1]  UInt  x\n"+
		"  let y = x - $max(z, 500)\n"+
		"  let z = 500\n")
	Run(tree)
	f := fieldNamed(t, tree.Module[0], "Foo", "y")
	fn, ok := f.WriteMethod.TransformFunctionBody.(*ir.Function)
	if !ok || fn.Function != ir.Addition {
		t.Fatalf("expected top-level Addition, got %#v", f.WriteMethod.TransformFunctionBody)
	}
	if _, ok := fn.Args[1].(*ir.Function); !ok {
		t.Fatalf("expected the $max(...) auxiliary copied through unchanged, got %#v", fn.Args[1])
	}
}
