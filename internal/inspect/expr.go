package inspect

import (
	"fmt"
	"strings"

	"github.com/go-emboss/embossc/internal/ir"
)

// ExprString renders an Expression back to source-like text, the same
// recursive-switch idiom as the teacher's formatCore/formatTyped
// (internal/repl/repl_format.go), adapted to the Expression sum type
// instead of Core/TypedAST.
func ExprString(e ir.Expr) string {
	switch v := e.(type) {
	case nil:
		return "<nil>"
	case *ir.Constant:
		return v.Value.String()
	case *ir.BooleanConstant:
		if v.Value {
			return "true"
		}
		return "false"
	case *ir.FieldReference:
		parts := make([]string, len(v.Path))
		for i, r := range v.Path {
			parts[i] = r.Text()
		}
		s := strings.Join(parts, ".")
		if v.Alias != nil && len(v.Path) > 0 && !v.Alias.Equal(v.Path[len(v.Path)-1].CanonicalName) {
			s += fmt.Sprintf(" (alias of %s)", v.Alias)
		}
		return s
	case *ir.ConstantReference:
		return v.Reference.Text()
	case *ir.BuiltinReference:
		return v.Reference.Text()
	case *ir.Function:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = ExprString(a)
		}
		if sym, ok := infixSymbol(v.Function); ok && len(args) == 2 {
			return fmt.Sprintf("(%s %s %s)", args[0], sym, args[1])
		}
		return fmt.Sprintf("%s(%s)", functionName(v.Function), strings.Join(args, ", "))
	default:
		return fmt.Sprintf("%T", e)
	}
}

func infixSymbol(k ir.FunctionKind) (string, bool) {
	switch k {
	case ir.Addition:
		return "+", true
	case ir.Subtraction:
		return "-", true
	case ir.Multiplication:
		return "*", true
	case ir.Equality:
		return "==", true
	case ir.Inequality:
		return "!=", true
	case ir.Less:
		return "<", true
	case ir.LessOrEqual:
		return "<=", true
	case ir.Greater:
		return ">", true
	case ir.GreaterOrEqual:
		return ">=", true
	case ir.And:
		return "&&", true
	case ir.Or:
		return "||", true
	default:
		return "", false
	}
}

func functionName(k ir.FunctionKind) string {
	switch k {
	case ir.Choice:
		return "$choice"
	case ir.Presence:
		return "$present"
	case ir.UpperBound:
		return "$upper_bound"
	case ir.LowerBound:
		return "$lower_bound"
	case ir.Maximum:
		return "$max"
	default:
		return "$fn"
	}
}

// typeString renders a field's physical type reference plus array/parameter
// decoration, for the summary line shown next to a field in the browser.
func typeString(t *ir.FieldType) string {
	if t == nil {
		return ""
	}
	s := t.Reference.Text()
	if len(t.Parameters) > 0 {
		args := make([]string, len(t.Parameters))
		for i, p := range t.Parameters {
			args[i] = ExprString(p)
		}
		s += "(" + strings.Join(args, ", ") + ")"
	}
	if t.IsArray {
		if t.ElementCount != nil {
			s += "[" + ExprString(t.ElementCount) + "]"
		} else {
			s += "[]"
		}
	}
	return s
}

func writeMethodString(w *ir.WriteMethod) string {
	if w == nil {
		return "unresolved"
	}
	switch w.Kind {
	case ir.WritePhysical:
		return "physical"
	case ir.WriteAlias:
		return "alias of " + w.AliasTarget.String()
	case ir.WriteTransform:
		return fmt.Sprintf("transform -> %s = %s", w.TransformDestination, ExprString(w.TransformFunctionBody))
	default:
		return "read_only"
	}
}
