package prelude

import "testing"

func TestGetParsesWithoutErrors(t *testing.T) {
	mod, errs := Get()
	if len(errs) != 0 {
		t.Fatalf("prelude failed to parse: %v", errs)
	}
	if mod == nil {
		t.Fatal("Get returned a nil module")
	}
}

func TestGetDefinesEveryPrimitiveType(t *testing.T) {
	mod, errs := Get()
	if len(errs) != 0 {
		t.Fatalf("prelude failed to parse: %v", errs)
	}
	want := map[string]bool{UInt: false, Int: false, Bcd: false, Flag: false, Float: false}
	for _, td := range mod.TypeDefinition {
		name := td.Base().NameDefinition.Name.Text
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("prelude is missing primitive type %s", name)
		}
	}
}

func TestGetReturnsFreshModuleEachCall(t *testing.T) {
	a, _ := Get()
	b, _ := Get()
	if a == b {
		t.Fatal("Get should return a new *ir.Module instance on each call")
	}
}
