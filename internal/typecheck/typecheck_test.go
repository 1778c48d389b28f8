package typecheck

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

func structureNamed(t *testing.T, mod *ir.Module, name string) *ir.Structure {
	t.Helper()
	for _, td := range mod.TypeDefinition {
		if td.Base().NameDefinition.Name.Text == name {
			return td.(*ir.Structure)
		}
	}
	t.Fatalf("no type definition named %s", name)
	return nil
}

func fieldNamed(t *testing.T, s *ir.Structure, name string) *ir.Field {
	t.Helper()
	for _, f := range s.Field {
		if f.NameDefinition.Name.Text == name {
			return f
		}
	}
	t.Fatalf("no field named %s", name)
	return nil
}

func TestArithmeticOperandMustBeInteger(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  let b = a + true\n")
	bundles := Check(tree)
	found := false
	for _, b := range bundles {
		if b[0].Code == "TYP001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a TYP001 bundle, got %v", bundles)
	}
}

func TestPresentArgumentMustBeFieldReference(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  let flag = $present(1)\n")
	bundles := Check(tree)
	found := false
	for _, b := range bundles {
		if b[0].Code == "TYP003" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a TYP003 bundle, got %v", bundles)
	}
}

func TestTernaryBranchesMustMatchKind(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  0 [+1]  Flag  flag\n"+
		"  let x = flag ? a : flag\n")
	bundles := Check(tree)
	found := false
	for _, b := range bundles {
		if b[0].Code == "TYP001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a TYP001 bundle, got %v", bundles)
	}
}

func TestValidStructureAnnotatesWithoutErrors(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  let b = a + 1\n"+
		"  let present_a = $present(a)\n"+
		"  let biggest = $max(a, b)\n")
	if bundles := Check(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")

	a := fieldNamed(t, s, "a")
	if a.Type.Reference.Text() != "UInt" {
		t.Fatalf("expected a's type to be UInt, got %v", a.Type.Reference)
	}

	b := fieldNamed(t, s, "b")
	if b.ReadTransform.Type().Kind != ir.TypeInteger {
		t.Fatalf("expected b to be integer, got %v", b.ReadTransform.Type().Kind)
	}

	presentA := fieldNamed(t, s, "present_a")
	if presentA.ReadTransform.Type().Kind != ir.TypeBoolean {
		t.Fatalf("expected present_a to be boolean, got %v", presentA.ReadTransform.Type().Kind)
	}

	biggest := fieldNamed(t, s, "biggest")
	if biggest.ReadTransform.Type().Kind != ir.TypeInteger {
		t.Fatalf("expected biggest to be integer, got %v", biggest.ReadTransform.Type().Kind)
	}
}

func TestRuntimeParameterMustBeIntegerOrEnum(t *testing.T) {
	tree := buildIR(t, ""+
		"enum Color:\n"+
		"  RED = 0\n"+
		"  BLUE = 1\n"+
		"struct Foo(c: Color):\n"+
		"  0 [+4]  UInt  a\n")
	if bundles := Check(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles for enum-typed runtime parameter: %v", bundles)
	}
}
