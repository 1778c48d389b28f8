package desugar

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

const nextBuiltin = "$next"

// replaceNext implements §4.E's first sub-pass: within one Structure,
// walk physical fields in source order and replace any `$next` appearing
// in a field's start expression with `<previous field>.start +
// <previous field>.size`. `$next` in the first physical field's start,
// or anywhere in a size expression, is an error; processing this
// Structure aborts on the first such error (later fields are left
// unexamined, matching the "abort per structure" rule).
func replaceNext(file string, s *ir.Structure) []diag.Bundle {
	var bundles []diag.Bundle
	var prev *ir.Field
	for _, f := range s.Field {
		if f.PhysicalLocation == nil {
			continue
		}
		if containsBuiltin(f.PhysicalLocation.Size, nextBuiltin) {
			bundles = append(bundles, diag.NewBundle(diag.Errorf(
				diag.NextInSize, "desugar", file, f.PhysicalLocation.Size.Loc(),
				"$next may only be used in the start expression of a physical field.")))
			return bundles
		}
		if containsBuiltin(f.PhysicalLocation.Start, nextBuiltin) {
			if prev == nil {
				bundles = append(bundles, diag.NewBundle(diag.Errorf(
					diag.NextInFirstField, "desugar", file, f.PhysicalLocation.Start.Loc(),
					"$next may not be used in the first physical field of a structure; perhaps you meant 0?")))
				return bundles
			}
			next := fn(f.PhysicalLocation.Start.Loc(), ir.Addition, prev.PhysicalLocation.Start, prev.PhysicalLocation.Size)
			f.PhysicalLocation.Start = replaceBuiltin(f.PhysicalLocation.Start, nextBuiltin, next)
		}
		prev = f
	}
	return bundles
}

// containsBuiltin reports whether e contains a bare BuiltinReference
// named name anywhere in its expression tree.
func containsBuiltin(e ir.Expr, name string) bool {
	switch v := e.(type) {
	case *ir.BuiltinReference:
		return v.Reference.Text() == name
	case *ir.Function:
		for _, a := range v.Args {
			if containsBuiltin(a, name) {
				return true
			}
		}
	}
	return false
}

// replaceBuiltin returns a copy of e with every bare BuiltinReference
// named name replaced by replacement. Only Function nodes carry
// sub-expressions, so that is the only case recursed into.
func replaceBuiltin(e ir.Expr, name string, replacement ir.Expr) ir.Expr {
	switch v := e.(type) {
	case *ir.BuiltinReference:
		if v.Reference.Text() == name {
			return replacement
		}
		return v
	case *ir.Function:
		args := make([]ir.Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = replaceBuiltin(a, name, replacement)
		}
		return &ir.Function{ExprBase: v.ExprBase, Function: v.Function, Args: args}
	default:
		return e
	}
}
