package desugar

import (
	"testing"

	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/parser"
	"github.com/go-emboss/embossc/internal/prelude"
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
	return &ir.IR{Module: []*ir.Module{mod, pre}}
}

func structureNamed(t *testing.T, mod *ir.Module, name string) *ir.Structure {
	t.Helper()
	for _, td := range mod.TypeDefinition {
		if td.Base().NameDefinition.Name.Text == name {
			s, ok := td.(*ir.Structure)
			if !ok {
				t.Fatalf("%s is not a Structure", name)
			}
			return s
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

func TestReplaceNextChainsPhysicalLocations(t *testing.T) {
	src := "struct Foo:\n" +
		"  0 [+4]  UInt  a\n" +
		"  $next [+4]  UInt  b\n"
	tree := buildIR(t, src)
	if bundles := Run(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")
	b := fieldNamed(t, s, "b")
	if containsBuiltin(b.PhysicalLocation.Start, nextBuiltin) {
		t.Fatalf("$next was not replaced in b.start")
	}
	fn, ok := b.PhysicalLocation.Start.(*ir.Function)
	if !ok || fn.Function != ir.Addition {
		t.Fatalf("expected b.start to be an addition, got %#v", b.PhysicalLocation.Start)
	}
}

func TestNextInFirstFieldIsAnError(t *testing.T) {
	src := "struct Foo:\n" +
		"  $next [+4]  UInt  a\n"
	tree := buildIR(t, src)
	bundles := Run(tree)
	if len(bundles) != 1 {
		t.Fatalf("expected exactly one bundle, got %d", len(bundles))
	}
	if bundles[0][0].Code != "NXT001" {
		t.Fatalf("expected NXT001, got %s", bundles[0][0].Code)
	}
}

func TestAnonymousBitsAliasExpansion(t *testing.T) {
	src := "struct Foo:\n" +
		"  0 [+1]  bits:\n" +
		"    0 [+4]  UInt  low\n" +
		"    4 [+4]  UInt  high\n"
	tree := buildIR(t, src)
	if bundles := Run(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")
	low := fieldNamed(t, s, "low")
	if !low.IsVirtual() {
		t.Fatalf("expected alias field 'low' to be virtual")
	}
	ref, ok := low.ReadTransform.(*ir.FieldReference)
	if !ok || len(ref.Path) != 2 {
		t.Fatalf("expected a two-segment field reference, got %#v", low.ReadTransform)
	}
}

func TestSizeFieldsAreSynthesizedWithSkipAttribute(t *testing.T) {
	src := "struct Foo:\n" +
		"  0 [+4]  UInt  a\n"
	tree := buildIR(t, src)
	if bundles := Run(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")
	size := fieldNamed(t, s, "$size_in_bytes")
	if !size.Location.IsSynthetic {
		t.Fatalf("expected $size_in_bytes to carry a synthetic location")
	}
	attr := size.Attributes[0]
	if attr.Name.Text != "text_output" || attr.Value.String == nil || *attr.Value.String != "Skip" {
		t.Fatalf("expected a [text_output: \"Skip\"] attribute, got %#v", attr)
	}
}

func TestMaxMinSizeFieldsWrapSizeInBoundsFunctions(t *testing.T) {
	src := "struct Foo:\n" +
		"  0 [+4]  UInt  a\n"
	tree := buildIR(t, src)
	if bundles := Run(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")

	max := fieldNamed(t, s, "$max_size_in_bytes")
	maxFn, ok := max.ReadTransform.(*ir.Function)
	if !ok || maxFn.Function != ir.UpperBound {
		t.Fatalf("expected $max_size_in_bytes.ReadTransform to be $upper_bound(...), got %#v", max.ReadTransform)
	}
	ref, ok := maxFn.Args[0].(*ir.FieldReference)
	if !ok || len(ref.Path) != 1 || ref.Path[0].Components[0].Text != "$size_in_bytes" {
		t.Fatalf("expected $upper_bound to wrap a reference to $size_in_bytes, got %#v", maxFn.Args[0])
	}

	min := fieldNamed(t, s, "$min_size_in_bytes")
	minFn, ok := min.ReadTransform.(*ir.Function)
	if !ok || minFn.Function != ir.LowerBound {
		t.Fatalf("expected $min_size_in_bytes.ReadTransform to be $lower_bound(...), got %#v", min.ReadTransform)
	}
	ref, ok = minFn.Args[0].(*ir.FieldReference)
	if !ok || len(ref.Path) != 1 || ref.Path[0].Components[0].Text != "$size_in_bytes" {
		t.Fatalf("expected $lower_bound to wrap a reference to $size_in_bytes, got %#v", minFn.Args[0])
	}
}
