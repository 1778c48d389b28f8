// Package pipeline is the A→L driver (§7): a fixed ordered sequence of
// passes, each a synchronous function from an *ir.IR to the diagnostic
// bundles it produced. It mirrors the original compiler's process_ir
// pass list (synthetics, symbol_resolver, dependency_checker, type_check,
// expression_bounds, attribute_checker, constraints, write_inference),
// adapted to this repo's component names, and keeps the teacher's
// PhaseTimings/Result idiom for reporting how long each stage took.
package pipeline

import (
	"time"

	"github.com/go-emboss/embossc/internal/attrs"
	"github.com/go-emboss/embossc/internal/bounds"
	"github.com/go-emboss/embossc/internal/constraints"
	"github.com/go-emboss/embossc/internal/depcheck"
	"github.com/go-emboss/embossc/internal/desugar"
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/resolver"
	"github.com/go-emboss/embossc/internal/typecheck"
	"github.com/go-emboss/embossc/internal/writeinfer"
)

// Stage is one named step of the pipeline.
type Stage struct {
	Name string
	Run  func(tree *ir.IR) []diag.Bundle
}

// Stages is the fixed A→L pass order.
var Stages = []Stage{
	{"desugar", desugar.Run},
	{"resolve", resolver.Resolve},
	{"depcheck", depcheck.Check},
	{"typecheck", typecheck.Check},
	{"bounds", bounds.Check},
	{"attrs", attrs.Check},
	{"constraints", constraints.Check},
	{"writeinfer", func(tree *ir.IR) []diag.Bundle { writeinfer.Run(tree); return nil }},
}

// Result is what Run returns: the (possibly partially-processed) IR, the
// diagnostics that stopped the pipeline (if any), per-stage timings, and
// the name of the stage the pipeline stopped at.
type Result struct {
	Tree         *ir.IR
	Bundles      []diag.Bundle
	PhaseTimings map[string]time.Duration
	StoppedAt    string
}

// Run executes Stages in order over tree (§5 "linear sequence of
// passes"). A stage's bundles are partitioned into synthetic and
// non-synthetic (§7): a non-synthetic bundle stops the pipeline
// immediately; synthetic bundles accumulate silently and are surfaced
// only if the pipeline otherwise completes clean (the deferred-error
// policy in ERROR HANDLING DESIGN). stopBeforeStage, if non-empty, ends
// the run just before the named stage — the driver-level analog of the
// original compiler's stop_before_step, used by tests that need to
// inspect a mid-pipeline IR.
func Run(tree *ir.IR, stopBeforeStage string) Result {
	res := Result{Tree: tree, PhaseTimings: make(map[string]time.Duration)}
	var deferred []diag.Bundle

	for _, stage := range Stages {
		if stage.Name == stopBeforeStage {
			res.StoppedAt = stage.Name
			return res
		}
		start := time.Now()
		bundles := stage.Run(tree)
		res.PhaseTimings[stage.Name] = time.Since(start)

		var nonSynthetic []diag.Bundle
		for _, b := range bundles {
			if b.IsSynthetic() {
				deferred = append(deferred, b)
			} else {
				nonSynthetic = append(nonSynthetic, b)
			}
		}
		if len(nonSynthetic) > 0 {
			res.Bundles = nonSynthetic
			res.StoppedAt = stage.Name
			return res
		}
	}

	if len(deferred) > 0 {
		res.Bundles = deferred
	}
	return res
}
