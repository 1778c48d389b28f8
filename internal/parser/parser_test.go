package parser

import (
	"testing"

	"github.com/go-emboss/embossc/internal/ir"
)

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

func TestParseModuleTextSetsSourceTextAndImplicitPreludeImport(t *testing.T) {
	src := "struct Foo:\n  0 [+4]  UInt  x\n"
	mod, _, errs := ParseModuleText([]byte(src), "test.emb")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if mod.SourceText != src {
		t.Fatalf("SourceText = %q, want %q", mod.SourceText, src)
	}
	if len(mod.ForeignImport) == 0 || mod.ForeignImport[0].LocalName != "" || mod.ForeignImport[0].FileName != "" {
		t.Fatalf("expected an implicit prelude self-import first, got %+v", mod.ForeignImport)
	}
}

func TestParsePhysicalFieldWithArrayAndCondition(t *testing.T) {
	mod, _, errs := ParseModuleText([]byte(""+
		"struct Foo:\n"+
		"  0 [+1]  UInt  flag\n"+
		"  1 [+4]  UInt[2]  items  if flag == 1\n"), "test.emb")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	s := structureNamed(t, mod, "Foo")
	items := fieldNamed(t, s, "items")
	if items.Type == nil || !items.Type.IsArray {
		t.Fatalf("items should be an array field, got %+v", items.Type)
	}
	if items.ExistenceCondition == nil {
		t.Fatal("items should carry an `if` existence condition")
	}
}

func TestParseVirtualFieldDefaultsToAlwaysPresent(t *testing.T) {
	mod, _, errs := ParseModuleText([]byte(""+
		"struct Foo:\n"+
		"  0 [+1]  UInt  x\n"+
		"  let y = x + 1\n"), "test.emb")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	s := structureNamed(t, mod, "Foo")
	y := fieldNamed(t, s, "y")
	if y.PhysicalLocation != nil {
		t.Fatal("a `let` field must not have a physical location")
	}
	if y.ExistenceCondition == nil {
		t.Fatal("a `let` field still gets a default existence condition")
	}
}

func TestParseEnumerationValues(t *testing.T) {
	mod, _, errs := ParseModuleText([]byte(""+
		"enum Color:\n"+
		"  RED = 0\n"+
		"  GREEN = 1\n"+
		"  BLUE = 2\n"), "test.emb")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	var enum *ir.Enumeration
	for _, td := range mod.TypeDefinition {
		if e, ok := td.(*ir.Enumeration); ok {
			enum = e
		}
	}
	if enum == nil || len(enum.EnumValue) != 3 {
		t.Fatalf("got %+v, want 3 enum values", enum)
	}
	if enum.EnumValue[0].NameDefinition.Name.Text != "RED" {
		t.Fatalf("first value = %s, want RED", enum.EnumValue[0].NameDefinition.Name.Text)
	}
}

func TestParseImportWithAlias(t *testing.T) {
	mod, _, errs := ParseModuleText([]byte(`import "common.emb" as common`+"\n"), "test.emb")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if len(mod.ForeignImport) != 2 {
		t.Fatalf("want implicit prelude import plus 1 explicit, got %d", len(mod.ForeignImport))
	}
	explicit := mod.ForeignImport[1]
	if explicit.FileName != "common.emb" || explicit.LocalName != "common" {
		t.Fatalf("got %+v", explicit)
	}
}

func TestParseBitsStructUsesBitAddressableUnit(t *testing.T) {
	mod, _, errs := ParseModuleText([]byte(""+
		"bits Flags:\n"+
		"  0 [+1]  Flag  a\n"), "test.emb")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	s := structureNamed(t, mod, "Flags")
	if s.AddressableUnit != ir.Bit {
		t.Fatalf("got %v, want ir.Bit", s.AddressableUnit)
	}
}

func TestParseReportsErrorOnUnexpectedToken(t *testing.T) {
	_, _, errs := ParseModuleText([]byte("struct 123:\n"), "test.emb")
	if len(errs) == 0 {
		t.Fatal("expected a parse error for a struct named with a numeral")
	}
}
