// Package prelude embeds the Language's built-in module (§6 "Prelude"):
// the primitive external types (UInt, Int, Bcd, Flag, Float) every user
// module implicitly imports. Its source text is a compiled-in resource,
// parsed through the same upstream parser as user modules.
package prelude

import (
	_ "embed"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/parser"
)

//go:embed source.emb
var source []byte

// Names of the built-in external primitive types (GLOSSARY "Prelude").
const (
	UInt  = "UInt"
	Int   = "Int"
	Bcd   = "Bcd"
	Flag  = "Flag"
	Float = "Float"
)

// Get returns a freshly parsed copy of the prelude module. A per-process
// parse cache is explicitly optional (§5): since the prelude source is a
// few lines, re-parsing on every call already gives the "deep-copied on
// retrieval" guarantee §5 asks for (no pass can ever observe another
// pipeline run's mutations) without the bookkeeping of hand-rolling a
// tree clone for the full IR schema.
func Get() (*ir.Module, []diag.Bundle) {
	mod, _, errs := parser.ParseModuleText(source, "")
	return mod, errs
}
