package diag

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestRenderIncludesSourceLineAndCaret(t *testing.T) {
	color.NoColor = true
	loc := Location{File: "a.emb", Start: Position{Line: 2, Column: 3}, End: Position{Line: 2, Column: 6}}
	bundle := NewBundle(Errorf("TYP001", "typecheck", "a.emb", loc, "bad expression"))

	lookup := func(file string) (string, bool) {
		if file != "a.emb" {
			return "", false
		}
		return "struct Foo:\n  0 [+bar]  UInt  x\n", true
	}

	var sb strings.Builder
	Render(&sb, bundle, ColorNever, lookup)
	out := sb.String()

	if !strings.Contains(out, "a.emb:2:3: error: bad expression") {
		t.Fatalf("missing header line, got:\n%s", out)
	}
	if !strings.Contains(out, "0 [+bar]  UInt  x") {
		t.Fatalf("missing source line, got:\n%s", out)
	}
	if !strings.Contains(out, "  ^^^") {
		t.Fatalf("missing caret underline at column 3 width 3, got:\n%s", out)
	}
}

func TestRenderSuppressesSourceLineForSyntheticLocation(t *testing.T) {
	loc := Location{File: "a.emb", IsSynthetic: true}
	bundle := NewBundle(Errorf("TYP099", "typecheck", "a.emb", loc, "internal error"))
	lookup := func(string) (string, bool) { t.Fatal("lookup should never be called for a synthetic location"); return "", false }

	var sb strings.Builder
	Render(&sb, bundle, ColorNever, lookup)
	out := sb.String()
	if !strings.Contains(out, "[compiler bug]") {
		t.Fatalf("got %q", out)
	}
}

func TestRenderHandlesNilLookup(t *testing.T) {
	loc := Location{File: "a.emb", Start: Position{Line: 1, Column: 1}}
	bundle := NewBundle(Errorf("TYP001", "typecheck", "a.emb", loc, "bad"))
	var sb strings.Builder
	Render(&sb, bundle, ColorNever, nil)
	if !strings.Contains(sb.String(), "bad") {
		t.Fatalf("got %q", sb.String())
	}
}

func TestRenderAllSeparatesBundlesWithBlankLine(t *testing.T) {
	loc := Location{File: "a.emb", Start: Position{Line: 1, Column: 1}}
	one := NewBundle(Errorf("TYP001", "typecheck", "a.emb", loc, "first"))
	two := NewBundle(Errorf("TYP002", "typecheck", "a.emb", loc, "second"))
	out := RenderAll([]Bundle{one, two}, ColorNever, nil)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("got %q", out)
	}
}
