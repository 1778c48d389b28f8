package pipeline

import (
	"testing"

	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/parser"
	"github.com/go-emboss/embossc/internal/prelude"
)

func buildTree(t *testing.T, src string) *ir.IR {
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

func TestRunCompletesCleanOnValidInput(t *testing.T) {
	tree := buildTree(t, ""+
		"[byte_order: \"LittleEndian\"]\n"+
		"struct Foo:\n"+
		"  0 [+4]  UInt  a\n"+
		"  let b = a + 1\n")
	res := Run(tree, "")
	if len(res.Bundles) != 0 {
		t.Fatalf("unexpected bundles: %v", res.Bundles)
	}
	if res.StoppedAt != "" {
		t.Fatalf("expected a full run, stopped at %q", res.StoppedAt)
	}
	for _, stage := range Stages {
		if _, ok := res.PhaseTimings[stage.Name]; !ok {
			t.Fatalf("missing phase timing for stage %q", stage.Name)
		}
	}
}

func TestRunStopsAtFirstNonSyntheticError(t *testing.T) {
	tree := buildTree(t, "struct Foo:\n  0 [+4]  NoSuchType  a\n")
	res := Run(tree, "")
	if len(res.Bundles) == 0 {
		t.Fatalf("expected bundles, got none")
	}
	if res.StoppedAt != "resolve" {
		t.Fatalf("expected the pipeline to stop at resolve, stopped at %q", res.StoppedAt)
	}
	// depcheck and everything after resolve never ran.
	if _, ran := res.PhaseTimings["depcheck"]; ran {
		t.Fatalf("expected depcheck to be skipped after a resolve error")
	}
}

func TestRunHonorsStopBeforeStage(t *testing.T) {
	tree := buildTree(t, "struct Foo:\n  0 [+1]  UInt  a\n")
	res := Run(tree, "typecheck")
	if res.StoppedAt != "typecheck" {
		t.Fatalf("expected StoppedAt typecheck, got %q", res.StoppedAt)
	}
	if _, ran := res.PhaseTimings["typecheck"]; ran {
		t.Fatalf("typecheck should not have run")
	}
	if _, ran := res.PhaseTimings["bounds"]; ran {
		t.Fatalf("bounds should not have run")
	}
}
