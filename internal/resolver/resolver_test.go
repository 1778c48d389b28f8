package resolver

import (
	"testing"

	"github.com/go-emboss/embossc/internal/desugar"
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
	tree := &ir.IR{Module: []*ir.Module{mod, pre}}
	if bundles := desugar.Run(tree); len(bundles) != 0 {
		t.Fatalf("desugar errors: %v", bundles)
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

func TestResolvePhysicalFieldType(t *testing.T) {
	tree := buildIR(t, "struct Foo:\n  0 [+4]  UInt  a\n")
	if bundles := Resolve(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")
	a := fieldNamed(t, s, "a")
	if !a.Type.Reference.IsResolved {
		t.Fatalf("expected a's type reference to be resolved")
	}
	if a.Type.Reference.CanonicalName.ModuleFile != "" {
		t.Fatalf("expected UInt to resolve into the prelude, got %v", a.Type.Reference.CanonicalName)
	}
}

func TestResolveSiblingFieldReference(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  let b = a + 1\n")
	if bundles := Resolve(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")
	b := fieldNamed(t, s, "b")
	fn := b.ReadTransform.(*ir.Function)
	ref := fn.Args[0].(*ir.FieldReference)
	if !ref.Path[0].IsResolved {
		t.Fatalf("expected b's reference to a to resolve")
	}
	if ref.Path[0].CanonicalName.Path[len(ref.Path[0].CanonicalName.Path)-1] != "a" {
		t.Fatalf("expected reference to resolve to field 'a', got %v", ref.Path[0].CanonicalName)
	}
}

func TestUnknownFieldReferenceIsAnError(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  let b = nonexistent + 1\n")
	bundles := Resolve(tree)
	found := false
	for _, b := range bundles {
		if b[0].Code == "RES002" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a RES002 no-candidate bundle, got %v", bundles)
	}
}

func TestDuplicateFieldNameIsAnError(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  4 [+4]  UInt  a\n")
	bundles := Resolve(tree)
	found := false
	for _, b := range bundles {
		if b[0].Code == "RES001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a RES001 duplicate-name bundle, got %v", bundles)
	}
}

func TestAliasFieldTransparentlyResolvesToPhysicalTarget(t *testing.T) {
	tree := buildIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  real_value\n"+
		"  let alias = real_value\n"+
		"  let doubled = alias + alias\n")
	if bundles := Resolve(tree); len(bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", bundles)
	}
	s := structureNamed(t, tree.Module[0], "Foo")
	doubled := fieldNamed(t, s, "doubled")
	fn := doubled.ReadTransform.(*ir.Function)
	ref := fn.Args[0].(*ir.FieldReference)
	if ref.Alias == nil {
		t.Fatalf("expected doubled's reference to alias to record an alias target")
	}
	if ref.Alias.Path[len(ref.Alias.Path)-1] != "real_value" {
		t.Fatalf("expected alias target to be real_value, got %v", *ref.Alias)
	}
}
