package ir

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-emboss/embossc/internal/depcheck"
	"github.com/go-emboss/embossc/internal/desugar"
	"github.com/go-emboss/embossc/internal/parser"
	"github.com/go-emboss/embossc/internal/prelude"
	"github.com/go-emboss/embossc/internal/resolver"
	"github.com/go-emboss/embossc/internal/typecheck"
	"github.com/go-emboss/embossc/internal/writeinfer"
)

// cmpOpts treats two Ints as equal when their decimal strings match,
// since *big.Int carries unexported state cmp can't otherwise see into.
var cmpOpts = cmp.Comparer(func(a, b *Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})

func buildFullIR(t *testing.T, src string) *IR {
	t.Helper()
	mod, _, errs := parser.ParseModuleText([]byte(src), "round_trip.emb")
	require.Empty(t, errs)
	pre, preErrs := prelude.Get()
	require.Empty(t, preErrs)
	tree := &IR{Module: []*Module{mod, pre}}
	require.Empty(t, desugar.Run(tree))
	require.Empty(t, resolver.Resolve(tree))
	require.Empty(t, depcheck.Check(tree))
	require.Empty(t, typecheck.Check(tree))
	writeinfer.Run(tree)
	return tree
}

// TestIRJSONRoundTrip exercises the invariant from the round-trip laws:
// re-serializing the final IR to JSON and re-loading it yields a
// structurally identical IR.
func TestIRJSONRoundTrip(t *testing.T) {
	tree := buildFullIR(t, ""+
		"struct Foo:\n"+
		"  0 [+4]  UInt  x\n"+
		"  let y = x + 50\n"+
		"  let z = $max(x, y)\n"+
		"enum Bar:\n"+
		"  A = 0\n"+
		"  B = 1\n")

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var got IR
	require.NoError(t, json.Unmarshal(data, &got))

	if diff := cmp.Diff(tree, &got, cmpOpts); diff != "" {
		t.Fatalf("round trip changed the IR (-want +got):\n%s", diff)
	}
}

func TestIntJSONRoundTrip(t *testing.T) {
	want := MustNewIntFromString("340282366920938463463374607431768211456")
	data, err := json.Marshal(want)
	require.NoError(t, err)
	require.Equal(t, `"340282366920938463463374607431768211456"`, string(data))

	var got Int
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, want.String(), got.String())
}

func TestExprJSONRoundTripPreservesFunctionArgs(t *testing.T) {
	tree := buildFullIR(t, "struct Foo:\n  0 [+1]  UInt  x\n  let y = x + 50\n")
	var y Expr
	for _, f := range tree.Module[0].TypeDefinition[0].(*Structure).Field {
		if f.NameDefinition.Name.Text == "y" {
			y = f.ReadTransform
		}
	}
	require.NotNil(t, y)

	data, err := marshalExpr(y)
	require.NoError(t, err)
	got, err := unmarshalExpr(data)
	require.NoError(t, err)

	fn, ok := got.(*Function)
	require.True(t, ok)
	require.Equal(t, Addition, fn.Function)
	require.Len(t, fn.Args, 2)
}
