package depcheck

import (
	"sort"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// reservedInUserPaths are builtins §4.G singles out as illegal inside a
// user-written reference path at this stage: `$next` should already
// have been replaced by desugaring (component E), and the two
// static-size builtins are reserved for back-end consumption only.
var reservedInUserPaths = map[string]bool{
	"$next":                true,
	"$is_statically_sized": true,
	"$static_size_in_bits": true,
}

// Check builds the field-level dependency graph and the module-import
// graph, reports cycles in each, and — if neither graph has a cycle —
// populates Structure.FieldsInDependencyOrder everywhere (§4.G).
func Check(tree *ir.IR) []diag.Bundle {
	fieldGraph, fieldLocs, bundles := buildFieldGraph(tree)
	importGraph, importLocs, importBundles := buildImportGraph(tree)
	bundles = append(bundles, importBundles...)

	bundles = append(bundles, cycleBundles(fieldGraph, fieldLocs, diag.DependencyCycle, "dependency")...)
	bundles = append(bundles, cycleBundles(importGraph, importLocs, diag.ImportCycle, "import")...)
	if len(bundles) > 0 {
		return bundles
	}

	for _, m := range tree.Module {
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			s, ok := td.(*ir.Structure)
			if !ok {
				return
			}
			if b := orderFields(m.SourceFileName, s); b != nil {
				bundles = append(bundles, *b)
			}
		})
	}
	return bundles
}

// buildFieldGraph walks every Field/EnumValue/RuntimeParameter in the
// tree and adds one edge per reference found in its expressions to the
// containing entity's dependency graph node (§4.G). It also records
// each node's declaration location, so a reported cycle can point at
// the field/enum value itself rather than an empty location (§6, §8).
func buildFieldGraph(tree *ir.IR) (*Graph[string], map[string]diag.Location, []diag.Bundle) {
	g := NewGraph[string]()
	locs := map[string]diag.Location{}
	var bundles []diag.Bundle
	for _, m := range tree.Module {
		file := m.SourceFileName
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			switch v := td.(type) {
			case *ir.Structure:
				for _, f := range v.Field {
					from := f.NameDefinition.CanonicalName.String()
					g.AddNode(from)
					locs[from] = f.Location
					collectEdges(g, file, from, f.ExistenceCondition, &bundles)
					if f.PhysicalLocation != nil {
						collectEdges(g, file, from, f.PhysicalLocation.Start, &bundles)
						collectEdges(g, file, from, f.PhysicalLocation.Size, &bundles)
					}
					if f.Type != nil {
						collectEdges(g, file, from, f.Type.ElementCount, &bundles)
						for _, a := range f.Type.Parameters {
							collectEdges(g, file, from, a, &bundles)
						}
					}
					collectEdges(g, file, from, f.ReadTransform, &bundles)
				}
				for i := range v.RuntimeParameter {
					p := &v.RuntimeParameter[i]
					name := p.NameDefinition.CanonicalName.String()
					g.AddNode(name)
					locs[name] = p.NameDefinition.Name.Loc
				}
			case *ir.Enumeration:
				for i := range v.EnumValue {
					from := v.EnumValue[i].NameDefinition.CanonicalName.String()
					g.AddNode(from)
					locs[from] = v.EnumValue[i].NameDefinition.Name.Loc
					collectEdges(g, file, from, v.EnumValue[i].Value, &bundles)
				}
			}
		})
	}
	return g, locs, bundles
}

// collectEdges recurses through e, adding a from -> target edge for
// every FieldReference/ConstantReference it finds, and reporting a
// reserved-name error for any disallowed bare BuiltinReference.
func collectEdges(g *Graph[string], file, from string, e ir.Expr, bundles *[]diag.Bundle) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *ir.FieldReference:
		if len(v.Path) > 0 && v.Path[0].IsResolved {
			g.AddEdge(from, v.Path[0].CanonicalName.String())
		}
	case *ir.ConstantReference:
		if v.Reference.IsResolved {
			g.AddEdge(from, v.Reference.CanonicalName.String())
		}
	case *ir.BuiltinReference:
		if reservedInUserPaths[v.Reference.Text()] {
			*bundles = append(*bundles, diag.NewBundle(diag.Errorf(
				diag.ReservedName, "depcheck", file, v.Location,
				"'"+v.Reference.Text()+"' may not appear in a reference path here")))
		}
	case *ir.Function:
		for _, a := range v.Args {
			collectEdges(g, file, from, a, bundles)
		}
	}
}

// buildImportGraph builds the module-import graph (§4.G: "detected
// identically on a separate graph of source_file -> imported file
// names, excluding the implicit prelude self-import"). It also records,
// for every file that imports something, the location of that import
// statement — always anchored in the importing file itself — so a
// reported import cycle can point at a real line in each participating
// file instead of an empty location (§6, §8). Since every file in a
// cycle must import its successor, every cycle participant is
// guaranteed an entry here.
func buildImportGraph(tree *ir.IR) (*Graph[string], map[string]diag.Location, []diag.Bundle) {
	g := NewGraph[string]()
	locs := map[string]diag.Location{}
	for _, m := range tree.Module {
		g.AddNode(m.SourceFileName)
		for i, imp := range m.ForeignImport {
			if i == 0 && imp.LocalName == "" && imp.FileName == "" {
				continue // implicit prelude self-import
			}
			g.AddEdge(m.SourceFileName, imp.FileName)
			if _, ok := locs[m.SourceFileName]; !ok {
				locs[m.SourceFileName] = imp.Location
			}
		}
	}
	return g, locs, nil
}

// cycleBundles reports every nontrivial strongly-connected component of
// g as one bundle: a primary error on the lexicographically-smallest
// member, notes on the rest in lexicographic order (§4.G), each
// anchored at that member's own declaration location in locs.
func cycleBundles(g *Graph[string], locs map[string]diag.Location, code, kind string) []diag.Bundle {
	var bundles []diag.Bundle
	for _, scc := range g.SCCs() {
		if len(scc) == 1 && !g.HasSelfEdge(scc[0]) {
			continue
		}
		sort.Strings(scc)
		primaryLoc := locs[scc[0]]
		primary := diag.Errorf(code, "depcheck", primaryLoc.File, primaryLoc,
			kind+" cycle detected, starting at '"+scc[0]+"'")
		notes := make([]diag.Message, 0, len(scc)-1)
		for _, n := range scc[1:] {
			loc := locs[n]
			notes = append(notes, diag.Notef(code, "depcheck", loc.File, loc, "also in the cycle: '"+n+"'"))
		}
		bundles = append(bundles, diag.NewBundle(primary, notes...))
	}
	return bundles
}
