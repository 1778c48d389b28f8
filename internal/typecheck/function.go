package typecheck

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// annotateFunction types an operator or builtin-function application by
// the per-operator rules of §4.H. Each argument is annotated first
// (bottom-up), then the result kind is computed from the argument kinds.
func (c *checker) annotateFunction(file string, fn *ir.Function) ir.ExprType {
	argTypes := make([]ir.ExprType, len(fn.Args))
	for i, a := range fn.Args {
		argTypes[i] = c.annotateExpr(file, a)
	}
	loc := fn.Location

	switch fn.Function {
	case ir.Addition, ir.Subtraction, ir.Multiplication:
		for i, t := range argTypes {
			if t.Kind != ir.TypeInteger && t.Kind != ir.TypeUnresolved {
				c.errf(file, fn.Args[i].Loc(), diag.TypeMismatch,
					"arithmetic operand must be integer, got %s", t.Kind)
			}
		}
		return ir.ExprType{Kind: ir.TypeInteger}

	case ir.Less, ir.LessOrEqual, ir.Greater, ir.GreaterOrEqual:
		if len(argTypes) == 2 {
			checkSameComparableKind(c, file, fn.Args[0].Loc(), argTypes[0], argTypes[1])
		}
		return ir.ExprType{Kind: ir.TypeBoolean}

	case ir.Equality, ir.Inequality:
		if len(argTypes) == 2 {
			checkSameEqualityKind(c, file, fn.Args[0].Loc(), argTypes[0], argTypes[1])
		}
		return ir.ExprType{Kind: ir.TypeBoolean}

	case ir.And, ir.Or:
		for i, t := range argTypes {
			if t.Kind != ir.TypeBoolean && t.Kind != ir.TypeUnresolved {
				c.errf(file, fn.Args[i].Loc(), diag.TypeMismatch,
					"logical operand must be boolean, got %s", t.Kind)
			}
		}
		return ir.ExprType{Kind: ir.TypeBoolean}

	case ir.Choice:
		if len(argTypes) != 3 {
			c.errf(file, loc, diag.WrongArgCount, "ternary requires exactly 3 arguments, got %d", len(argTypes))
			return ir.ExprType{Kind: ir.TypeUnresolved}
		}
		if argTypes[0].Kind != ir.TypeBoolean && argTypes[0].Kind != ir.TypeUnresolved {
			c.errf(file, fn.Args[0].Loc(), diag.TypeMismatch, "ternary condition must be boolean, got %s", argTypes[0].Kind)
		}
		checkSameEqualityKind(c, file, fn.Args[1].Loc(), argTypes[1], argTypes[2])
		if argTypes[1].Kind != ir.TypeUnresolved {
			return argTypes[1]
		}
		return argTypes[2]

	case ir.Presence:
		if len(fn.Args) != 1 {
			c.errf(file, loc, diag.WrongArgCount, "$present requires exactly 1 argument, got %d", len(fn.Args))
			return ir.ExprType{Kind: ir.TypeBoolean}
		}
		if _, ok := fn.Args[0].(*ir.FieldReference); !ok {
			c.errf(file, fn.Args[0].Loc(), diag.NotAFieldReference, "$present argument must be a field reference")
		}
		return ir.ExprType{Kind: ir.TypeBoolean}

	case ir.UpperBound, ir.LowerBound:
		name := "$upper_bound"
		if fn.Function == ir.LowerBound {
			name = "$lower_bound"
		}
		if len(fn.Args) != 1 {
			c.errf(file, loc, diag.WrongArgCount, "%s requires exactly 1 argument, got %d", name, len(fn.Args))
			return ir.ExprType{Kind: ir.TypeInteger}
		}
		if argTypes[0].Kind != ir.TypeInteger && argTypes[0].Kind != ir.TypeUnresolved {
			c.errf(file, fn.Args[0].Loc(), diag.TypeMismatch, "%s argument must be integer, got %s", name, argTypes[0].Kind)
		}
		return ir.ExprType{Kind: ir.TypeInteger}

	case ir.Maximum:
		if len(fn.Args) < 1 {
			c.errf(file, loc, diag.WrongArgCount, "$max requires at least 1 argument")
			return ir.ExprType{Kind: ir.TypeInteger}
		}
		for i, t := range argTypes {
			if t.Kind != ir.TypeInteger && t.Kind != ir.TypeUnresolved {
				c.errf(file, fn.Args[i].Loc(), diag.TypeMismatch, "$max argument must be integer, got %s", t.Kind)
			}
		}
		return ir.ExprType{Kind: ir.TypeInteger}

	default:
		return ir.ExprType{Kind: ir.TypeUnresolved}
	}
}

// checkSameComparableKind enforces §4.H's ordering-comparison rule: both
// operands integer-or-enum, and of the same kind (and same enum type, if
// enum).
func checkSameComparableKind(c *checker, file string, loc diag.Location, a, b ir.ExprType) {
	if a.Kind == ir.TypeUnresolved || b.Kind == ir.TypeUnresolved {
		return
	}
	if a.Kind != ir.TypeInteger && a.Kind != ir.TypeEnumeration {
		c.errf(file, loc, diag.TypeMismatch, "comparison operand must be integer or enum, got %s", a.Kind)
		return
	}
	if a.Kind != b.Kind {
		c.errf(file, loc, diag.TypeMismatch, "comparison operands must be the same kind, got %s and %s", a.Kind, b.Kind)
		return
	}
	if a.Kind == ir.TypeEnumeration && (a.Enum == nil || b.Enum == nil || !a.Enum.EnumName.Equal(b.Enum.EnumName)) {
		c.errf(file, loc, diag.TypeMismatch, "comparison operands must be the same enum type")
	}
}

// checkSameEqualityKind enforces §4.H's equality/ternary-branch rule:
// both operands integer, boolean, or enum, of the same type (same
// canonical name, for enums).
func checkSameEqualityKind(c *checker, file string, loc diag.Location, a, b ir.ExprType) {
	if a.Kind == ir.TypeUnresolved || b.Kind == ir.TypeUnresolved {
		return
	}
	if a.Kind == ir.TypeOpaque || b.Kind == ir.TypeOpaque {
		c.errf(file, loc, diag.TypeMismatch, "operands must be integer, boolean, or enum, got %s and %s", a.Kind, b.Kind)
		return
	}
	if a.Kind != b.Kind {
		c.errf(file, loc, diag.TypeMismatch, "operands must be the same type, got %s and %s", a.Kind, b.Kind)
		return
	}
	if a.Kind == ir.TypeEnumeration && (a.Enum == nil || b.Enum == nil || !a.Enum.EnumName.Equal(b.Enum.EnumName)) {
		c.errf(file, loc, diag.TypeMismatch, "operands must be the same enum type")
	}
}
