// Package writeinfer implements component L (§4.L): classifying how each
// virtual field may be written. Physical fields are always Physical. A
// virtual field whose read_transform is a transparent alias chain down to
// a physical field becomes Alias; one built purely of +/- over a single
// physical-or-alias operand and an opaque auxiliary becomes Transform,
// with the algebraic inverse computed in terms of $logical_value; anything
// else is ReadOnly. This pass never rejects input — every field gets some
// WriteMethod — so it returns no diagnostics, the same shape as
// component G's dependency-order pass.
package writeinfer

import "github.com/go-emboss/embossc/internal/ir"

// Run populates WriteMethod on every field of every module in tree.
func Run(tree *ir.IR) {
	for _, m := range tree.Module {
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			s, ok := td.(*ir.Structure)
			if !ok {
				return
			}
			for _, f := range s.Field {
				setWriteMethod(f)
			}
		})
	}
}

func setWriteMethod(f *ir.Field) {
	if !f.IsVirtual() {
		f.WriteMethod = &ir.WriteMethod{Kind: ir.WritePhysical}
		return
	}

	if fr, ok := f.ReadTransform.(*ir.FieldReference); ok && len(fr.Path) >= 1 && fr.Alias != nil {
		f.WriteMethod = &ir.WriteMethod{Kind: ir.WriteAlias, AliasTarget: *fr.Alias}
		return
	}

	if target, ok := findArithmeticTarget(f.ReadTransform); ok {
		logical := &ir.BuiltinReference{
			ExprBase:  ir.ExprBase{Location: f.ReadTransform.Loc()},
			Reference: ir.Reference{Components: []ir.Word{{Text: "$logical_value", Loc: f.ReadTransform.Loc()}}},
		}
		if body, ok := solve(f.ReadTransform, target, logical); ok {
			f.WriteMethod = &ir.WriteMethod{
				Kind:                  ir.WriteTransform,
				TransformDestination:  target,
				TransformFunctionBody: body,
			}
			return
		}
	}

	f.WriteMethod = &ir.WriteMethod{Kind: ir.WriteReadOnly}
}

// findArithmeticTarget walks read_transform along its +/- spine looking
// for the single physical-or-alias field reference it is invertible
// around (§4.L). Anything outside that spine — a $max(...) call, a
// comparison, another field's own read_transform — is treated as an
// opaque auxiliary value and never descended into, matching the
// original compiler's "complex auxiliary subexpression" behavior.
func findArithmeticTarget(e ir.Expr) (ir.CanonicalName, bool) {
	var found []ir.CanonicalName
	var walk func(e ir.Expr)
	walk = func(e ir.Expr) {
		switch v := e.(type) {
		case *ir.FieldReference:
			if v.Alias != nil {
				found = append(found, *v.Alias)
			}
		case *ir.Function:
			if v.Function == ir.Addition || v.Function == ir.Subtraction {
				for _, a := range v.Args {
					walk(a)
				}
			}
		}
	}
	walk(e)
	if len(found) != 1 {
		return ir.CanonicalName{}, false
	}
	return found[0], true
}

// containsTarget reports whether target occurs somewhere along e's +/-
// spine (the same spine findArithmeticTarget walks).
func containsTarget(e ir.Expr, target ir.CanonicalName) bool {
	switch v := e.(type) {
	case *ir.FieldReference:
		return v.Alias != nil && v.Alias.Equal(target)
	case *ir.Function:
		if v.Function != ir.Addition && v.Function != ir.Subtraction {
			return false
		}
		for _, a := range v.Args {
			if containsTarget(a, target) {
				return true
			}
		}
	}
	return false
}

// solve rewrites e = rhs into target = <expression over rhs>, unwinding
// the +/- spine one level at a time (the standard "move to the other
// side" algebraic inversion).
func solve(e ir.Expr, target ir.CanonicalName, rhs ir.Expr) (ir.Expr, bool) {
	if fr, ok := e.(*ir.FieldReference); ok && fr.Alias != nil && fr.Alias.Equal(target) {
		return rhs, true
	}
	fn, ok := e.(*ir.Function)
	if !ok || len(fn.Args) != 2 || (fn.Function != ir.Addition && fn.Function != ir.Subtraction) {
		return nil, false
	}
	a, b := fn.Args[0], fn.Args[1]
	aHas, bHas := containsTarget(a, target), containsTarget(b, target)
	if aHas == bHas {
		return nil, false
	}
	switch fn.Function {
	case ir.Addition:
		if aHas {
			return solve(a, target, sub(rhs, b))
		}
		return solve(b, target, sub(rhs, a))
	default: // Subtraction: a - b = rhs
		if aHas {
			return solve(a, target, add(rhs, b))
		}
		return solve(b, target, sub(a, rhs))
	}
}

func add(a, b ir.Expr) ir.Expr {
	return &ir.Function{ExprBase: ir.ExprBase{Location: a.Loc()}, Function: ir.Addition, Args: []ir.Expr{a, b}}
}

func sub(a, b ir.Expr) ir.Expr {
	return &ir.Function{ExprBase: ir.ExprBase{Location: a.Loc()}, Function: ir.Subtraction, Args: []ir.Expr{a, b}}
}
