package depcheck

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// orderFields populates s.FieldsInDependencyOrder by repeated scanning
// (§4.G): scan the remaining fields in input order for the first one
// whose dependencies are all already placed, move it to the output,
// and loop until no progress is possible. This preserves input order
// among fields with no relative dependency (keeping synthesized
// $size_* fields at the end, since nothing depends on them), unlike a
// DFS post-order which would not make that guarantee.
func orderFields(file string, s *ir.Structure) *diag.Bundle {
	n := len(s.Field)
	placed := make([]bool, n)
	deps := make([][]int, n)

	index := make(map[string]int, n)
	for i, f := range s.Field {
		index[f.NameDefinition.CanonicalName.String()] = i
	}
	for i, f := range s.Field {
		seen := map[int]bool{}
		addFieldDeps(f, index, seen)
		for dep := range seen {
			if dep != i {
				deps[i] = append(deps[i], dep)
			}
		}
	}

	order := make([]int, 0, n)
	remaining := n
	for remaining > 0 {
		progressed := false
		for i := 0; i < n; i++ {
			if placed[i] {
				continue
			}
			if allPlaced(deps[i], placed) {
				placed[i] = true
				order = append(order, i)
				remaining--
				progressed = true
				break
			}
		}
		if !progressed {
			b := diag.NewBundle(diag.Errorf(diag.Unplaceable, "depcheck", file, s.Location,
				"[compiler bug] could not topologically place all fields of '"+s.NameDefinition.Name.Text+"'"))
			return &b
		}
	}
	s.FieldsInDependencyOrder = order
	return nil
}

func allPlaced(deps []int, placed []bool) bool {
	for _, d := range deps {
		if !placed[d] {
			return false
		}
	}
	return true
}

// addFieldDeps collects, into seen, the index of every sibling field f
// depends on through its expressions.
func addFieldDeps(f *ir.Field, index map[string]int, seen map[int]bool) {
	collectFieldDeps(f.ExistenceCondition, index, seen)
	if f.PhysicalLocation != nil {
		collectFieldDeps(f.PhysicalLocation.Start, index, seen)
		collectFieldDeps(f.PhysicalLocation.Size, index, seen)
	}
	if f.Type != nil {
		collectFieldDeps(f.Type.ElementCount, index, seen)
		for _, a := range f.Type.Parameters {
			collectFieldDeps(a, index, seen)
		}
	}
	collectFieldDeps(f.ReadTransform, index, seen)
}

func collectFieldDeps(e ir.Expr, index map[string]int, seen map[int]bool) {
	switch v := e.(type) {
	case *ir.FieldReference:
		if len(v.Path) > 0 && v.Path[0].IsResolved {
			if i, ok := index[v.Path[0].CanonicalName.String()]; ok {
				seen[i] = true
			}
		}
	case *ir.Function:
		for _, a := range v.Args {
			collectFieldDeps(a, index, seen)
		}
	}
}
