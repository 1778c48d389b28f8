package traverse

import (
	"testing"

	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/parser"
)

func parseModule(t *testing.T, src string) *ir.Module {
	t.Helper()
	mod, _, errs := parser.ParseModuleText([]byte(src), "test.emb")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return mod
}

func TestTopDownVisitsEveryFieldInSourceOrder(t *testing.T) {
	mod := parseModule(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  4 [+4]  UInt  b\n"+
		"  8 [+4]  UInt  c\n")

	var names []string
	TopDown(ModuleNode(mod), Options{
		Target: Kinds(KindField),
		Action: func(n Node, _ Params) {
			names = append(names, n.Field.NameDefinition.Name.Text)
		},
	})
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestTopDownSkipPrunesDescent(t *testing.T) {
	mod := parseModule(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  let b = a + 1\n")

	var exprsSeen int
	TopDown(ModuleNode(mod), Options{
		Target: Kinds(KindExpr),
		Skip:   Kinds(KindField),
		Action: func(n Node, _ Params) { exprsSeen++ },
	})
	if exprsSeen != 0 {
		t.Fatalf("skipping KindField should prune all nested expressions, saw %d", exprsSeen)
	}
}

func TestTopDownIncidentalAugmentsParamsForSubtreeOnly(t *testing.T) {
	mod := parseModule(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n")

	var sawInsideStruct bool
	TopDown(ModuleNode(mod), Options{
		Target: Kinds(KindField),
		Incidental: map[Kind]IncidentalAction{
			KindTypeDef: func(n Node, params Params) Params {
				return Params{"struct_name": n.TypeDef.Base().NameDefinition.Name.Text}
			},
		},
		Action: func(n Node, params Params) {
			if params["struct_name"] == "Foo" {
				sawInsideStruct = true
			}
		},
	})
	if !sawInsideStruct {
		t.Fatal("field visit should see the incidental param set by its enclosing struct")
	}
}

func TestParamsCloneDoesNotLeakMutations(t *testing.T) {
	base := Params{"x": 1}
	clone := base.Clone()
	clone["x"] = 2
	clone["y"] = 3
	if base["x"] != 1 {
		t.Fatalf("mutating the clone changed the original: %v", base)
	}
	if _, ok := base["y"]; ok {
		t.Fatal("a key added to the clone leaked back to the original")
	}
}

func TestNodeLocForField(t *testing.T) {
	mod := parseModule(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n")
	var loc string
	TopDown(ModuleNode(mod), Options{
		Target: Kinds(KindField),
		Action: func(n Node, _ Params) { loc = n.Loc().File },
	})
	if loc != "test.emb" {
		t.Fatalf("got %q, want test.emb", loc)
	}
}
