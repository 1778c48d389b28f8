package irutil

import (
	"testing"

	"github.com/go-emboss/embossc/internal/ir"
)

func TestGetAttributeMatchesNameAndBackEnd(t *testing.T) {
	attrs := []ir.Attribute{
		{Name: ir.Word{Text: "byte_order"}, BackEnd: ""},
		{Name: ir.Word{Text: "byte_order"}, BackEnd: "cpp"},
	}
	if GetAttribute(attrs, "", "byte_order") == nil {
		t.Fatal("expected to find the default-backend attribute")
	}
	if GetAttribute(attrs, "cpp", "byte_order") == nil {
		t.Fatal("expected to find the cpp-backend attribute")
	}
	if GetAttribute(attrs, "java", "byte_order") != nil {
		t.Fatal("should not find an attribute for an unrelated back end")
	}
	if GetAttribute(attrs, "", "made_up") != nil {
		t.Fatal("should not find an attribute that isn't present")
	}
}

func TestConstantValueForExactIntegerBounds(t *testing.T) {
	e := &ir.Constant{ExprBase: ir.ExprBase{}, Value: ir.NewInt(5)}
	e.SetType(ir.ExprType{
		Kind:   ir.TypeInteger,
		Bounds: &ir.IntegerBounds{Minimum: ir.FiniteBound(ir.NewInt(5)), Maximum: ir.FiniteBound(ir.NewInt(5)), ModularValue: ir.NewInt(5)},
	})
	v, ok := ConstantValue(e)
	if !ok {
		t.Fatal("expected a known constant value")
	}
	n, ok := v.(*ir.Int)
	if !ok || n.Cmp(ir.NewInt(5)) != 0 {
		t.Fatalf("got %v, want 5", v)
	}
}

func TestConstantValueForNonExactBoundsIsUnknown(t *testing.T) {
	e := &ir.Constant{Value: ir.NewInt(5)}
	e.SetType(ir.ExprType{
		Kind: ir.TypeInteger,
		Bounds: &ir.IntegerBounds{
			Minimum: ir.FiniteBound(ir.NewInt(0)), Maximum: ir.FiniteBound(ir.NewInt(255)),
			Modulus: ir.NewInt(1), ModularValue: ir.NewInt(0),
		},
	})
	if _, ok := ConstantValue(e); ok {
		t.Fatal("a range, not a single value, should not be a known constant")
	}
}

func TestConstantValueForBoolean(t *testing.T) {
	e := &ir.BooleanConstant{Value: true}
	tv := true
	e.SetType(ir.ExprType{Kind: ir.TypeBoolean, BoolValue: &tv})
	v, ok := ConstantValue(e)
	if !ok || v != true {
		t.Fatalf("got (%v, %v), want (true, true)", v, ok)
	}
}

func TestCanonicalKeyJoinsPathSegments(t *testing.T) {
	a := CanonicalKey(ir.CanonicalName{ModuleFile: "m.emb", Path: []string{"Foo", "x"}})
	b := CanonicalKey(ir.CanonicalName{ModuleFile: "m.emb", Path: []string{"Foo", "x"}})
	if a != b {
		t.Fatal("identical canonical names should produce identical keys")
	}
	c := CanonicalKey(ir.CanonicalName{ModuleFile: "m.emb", Path: []string{"Foo", "y"}})
	if a == c {
		t.Fatal("different paths should produce different keys")
	}
}

func TestFieldIsVirtualDelegatesToField(t *testing.T) {
	physical := &ir.Field{PhysicalLocation: &ir.PhysicalLocation{}}
	virtual := &ir.Field{}
	if FieldIsVirtual(physical) {
		t.Fatal("a field with a physical location is not virtual")
	}
	if !FieldIsVirtual(virtual) {
		t.Fatal("a field with no physical location is virtual")
	}
}
