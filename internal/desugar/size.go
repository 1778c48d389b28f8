package desugar

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// insertSizeFields implements §4.E.3: every Structure gets three
// synthetic virtual fields appended — $size_in_bits or $size_in_bytes
// (the structure's own addressable unit) and the matching $max_size_*/
// $min_size_* pair — each `[text_output: "Skip"]` so they never appear
// in generated accessor text. The size field's read_transform is the
// maximum, over every non-virtual field, of
// `$present(field) ? field.start + field.size : 0`, floored at 0 via
// $max so an all-absent structure still reports size 0 rather than
// -infinity; $max_size_* and $min_size_* are $upper_bound and
// $lower_bound of that size field.
func insertSizeFields(s *ir.Structure) {
	loc := s.Location
	loc.IsSynthetic = true

	sizeExpr := structureSizeExpr(s, loc)

	unitName := "bytes"
	if s.AddressableUnit == ir.Bit {
		unitName = "bits"
	}

	sizeName := "$size_in_" + unitName

	s.Field = append(s.Field,
		sizeField(sizeName, sizeExpr, loc),
		sizeField("$max_size_in_"+unitName, fn(loc, ir.UpperBound, fieldRef(loc, sizeName)), loc),
		sizeField("$min_size_in_"+unitName, fn(loc, ir.LowerBound, fieldRef(loc, sizeName)), loc),
	)
}

func sizeField(name string, transform ir.Expr, loc diag.Location) *ir.Field {
	f := &ir.Field{
		Location:           loc,
		NameDefinition:     ir.NameDefinition{Name: ir.Word{Text: name, Loc: loc}},
		ExistenceCondition: boolConst(loc, true),
		ReadTransform:      transform,
		Attributes: []ir.Attribute{{
			Location:        loc,
			Name:            ir.Word{Text: "text_output", Loc: loc},
			Value:           ir.AttributeValue{Location: loc, String: strPtr("Skip")},
			IsSyntheticName: true,
		}},
	}
	return f
}

// structureSizeExpr computes $max(0, term1, term2, ...) over s's physical
// fields, one term per field: `$present(field) ? field.start + field.size
// : 0`. It builds that value as nested two-argument $max calls, so a
// multi-field structure becomes $max(f1term, $max(f2term, $max(f3term, 0))).
func structureSizeExpr(s *ir.Structure, loc diag.Location) ir.Expr {
	acc := intConst(loc, 0)
	for i := len(s.Field) - 1; i >= 0; i-- {
		f := s.Field[i]
		if f.PhysicalLocation == nil {
			continue
		}
		end := fn(loc, ir.Addition, cloneExpr(f.PhysicalLocation.Start), cloneExpr(f.PhysicalLocation.Size))
		term := fn(loc, ir.Choice, fn(loc, ir.Presence, fieldRef(loc, f.NameDefinition.Name.Text)), end, intConst(loc, 0))
		acc = fn(loc, ir.Maximum, term, acc)
	}
	markSynthetic(acc)
	return acc
}

// cloneExpr deep-copies an expression tree. Each synthetic field needs
// its own copy of any shared sub-expression (rather than aliasing the
// same *ir.Function/*ir.Constant nodes across fields), since later
// passes annotate nodes in place via pointer receivers.
func cloneExpr(e ir.Expr) ir.Expr {
	switch v := e.(type) {
	case *ir.Constant:
		c := *v
		return &c
	case *ir.BooleanConstant:
		c := *v
		return &c
	case *ir.FieldReference:
		c := *v
		c.Path = append([]ir.Reference(nil), v.Path...)
		return &c
	case *ir.ConstantReference:
		c := *v
		return &c
	case *ir.BuiltinReference:
		c := *v
		return &c
	case *ir.Function:
		args := make([]ir.Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = cloneExpr(a)
		}
		return &ir.Function{ExprBase: v.ExprBase, Function: v.Function, Args: args}
	default:
		return e
	}
}
