package resolver

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// Resolve runs both symbol-resolution sub-passes over tree (§4.F):
// first type/constant references, then field-path references. Both
// must succeed — in practice field-path resolution depends on field
// types already being resolved (isComposite, descend's field case) —
// so a tree with unresolved type references simply resolves as many
// field paths as it can and reports both sets of bundles together.
func Resolve(tree *ir.IR) []diag.Bundle {
	u, bundles := build(tree)
	bundles = append(bundles, u.resolveTypeReferences(tree)...)
	bundles = append(bundles, u.resolveFieldReferences(tree)...)
	return bundles
}
