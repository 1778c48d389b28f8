// Package desugar implements component E (§4.E): the pass that lowers
// source-level conveniences — the `$next` keyword, anonymous-bits
// aliasing, and synthesized `$size_*` virtual fields — into explicit IR
// before name resolution and later passes ever see them.
package desugar

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// Run applies the three desugaring sub-passes, in order, to every
// Structure reachable from tree (§4.E: "$next replacement", "anonymous
// inner type alias expansion", "size virtual field insertion").
func Run(tree *ir.IR) []diag.Bundle {
	var bundles []diag.Bundle
	for _, m := range tree.Module {
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			s, ok := td.(*ir.Structure)
			if !ok {
				return
			}
			bundles = append(bundles, replaceNext(m.SourceFileName, s)...)
			expandAnonymousAliases(s)
			insertSizeFields(s)
		})
	}
	return bundles
}

func synthLoc(loc diag.Location) diag.Location {
	loc.IsSynthetic = true
	return loc
}

func markSynthetic(e ir.Expr) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *ir.Constant:
		v.Location = synthLoc(v.Location)
	case *ir.BooleanConstant:
		v.Location = synthLoc(v.Location)
	case *ir.FieldReference:
		v.Location = synthLoc(v.Location)
	case *ir.ConstantReference:
		v.Location = synthLoc(v.Location)
	case *ir.BuiltinReference:
		v.Location = synthLoc(v.Location)
	case *ir.Function:
		v.Location = synthLoc(v.Location)
		for _, a := range v.Args {
			markSynthetic(a)
		}
	}
}

func boolConst(loc diag.Location, v bool) ir.Expr {
	return &ir.BooleanConstant{ExprBase: ir.ExprBase{Location: loc}, Value: v}
}

func intConst(loc diag.Location, v int64) ir.Expr {
	return &ir.Constant{ExprBase: ir.ExprBase{Location: loc}, Value: ir.NewInt(v)}
}

func fieldRef(loc diag.Location, segments ...string) ir.Expr {
	path := make([]ir.Reference, len(segments))
	for i, s := range segments {
		path[i] = ir.Reference{Components: []ir.Word{{Text: s, Loc: loc}}}
	}
	return &ir.FieldReference{ExprBase: ir.ExprBase{Location: loc}, Path: path}
}

func fn(loc diag.Location, kind ir.FunctionKind, args ...ir.Expr) ir.Expr {
	return &ir.Function{ExprBase: ir.ExprBase{Location: loc}, Function: kind, Args: args}
}
