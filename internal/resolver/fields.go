package resolver

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
)

// resolveFieldReferences implements §4.F.2: every FieldReference.Path
// appearing in a field's, enum value's, or runtime parameter's
// expressions is resolved against the scope owned by the Structure or
// Enumeration that expression lives in, with composite-access checks
// and alias transparency.
func (u *universe) resolveFieldReferences(tree *ir.IR) []diag.Bundle {
	var bundles []diag.Bundle
	for _, m := range tree.Module {
		file := m.SourceFileName
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			own := u.typeScope[td.Base().NameDefinition.CanonicalName.String()]
			switch v := td.(type) {
			case *ir.Structure:
				for _, f := range v.Field {
					bundles = append(bundles, u.resolveFieldExprs(tree, own, file, f)...)
				}
			case *ir.Enumeration:
				for i := range v.EnumValue {
					bundles = append(bundles, u.resolveExprTree(tree, own, file, v.EnumValue[i].Value)...)
				}
			}
		})
	}
	return bundles
}

func (u *universe) resolveFieldExprs(tree *ir.IR, own *scope, file string, f *ir.Field) []diag.Bundle {
	var bundles []diag.Bundle
	bundles = append(bundles, u.resolveExprTree(tree, own, file, f.ExistenceCondition)...)
	if f.PhysicalLocation != nil {
		bundles = append(bundles, u.resolveExprTree(tree, own, file, f.PhysicalLocation.Start)...)
		bundles = append(bundles, u.resolveExprTree(tree, own, file, f.PhysicalLocation.Size)...)
	}
	if f.Type != nil {
		bundles = append(bundles, u.resolveExprTree(tree, own, file, f.Type.ElementCount)...)
		for _, a := range f.Type.Parameters {
			bundles = append(bundles, u.resolveExprTree(tree, own, file, a)...)
		}
	}
	bundles = append(bundles, u.resolveExprTree(tree, own, file, f.ReadTransform)...)
	return bundles
}

// resolveExprTree recurses through e, resolving every FieldReference it
// contains. Attribute values never hold references (§4.G: "references
// inside attribute values are ignored"), so no caller passes those in.
func (u *universe) resolveExprTree(tree *ir.IR, own *scope, file string, e ir.Expr) []diag.Bundle {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *ir.FieldReference:
		if b := u.resolveFieldPath(tree, own, file, v); b != nil {
			return []diag.Bundle{b}
		}
		return nil
	case *ir.Function:
		var bundles []diag.Bundle
		for _, a := range v.Args {
			bundles = append(bundles, u.resolveExprTree(tree, own, file, a)...)
		}
		return bundles
	default:
		return nil
	}
}

// resolveFieldPath resolves fr.Path segment by segment (§4.F.2),
// stopping at the first failure (error cascades are suppressed).
func (u *universe) resolveFieldPath(tree *ir.IR, own *scope, file string, fr *ir.FieldReference) diag.Bundle {
	if len(fr.Path) == 0 {
		return nil
	}
	leading := &fr.Path[0]
	name := leading.Components[0].Text
	cands := climb(own, name, false)
	if len(cands) == 0 {
		return diag.NewBundle(diag.Errorf(diag.NoCandidate, "resolver", file, leading.Loc(),
			"no candidate for '"+name+"'"))
	}
	if len(cands) > 1 {
		return diag.NewBundle(diag.Errorf(diag.AmbiguousReference, "resolver", file, leading.Loc(),
			"ambiguous reference to '"+name+"'"))
	}
	cur := cands[0]
	leading.CanonicalName = cur.canonical
	leading.IsResolved = true

	for i := 1; i < len(fr.Path); i++ {
		seg := &fr.Path[i]
		segName := seg.Components[0].Text
		if cur.kind != memberField {
			return diag.NewBundle(diag.Errorf(diag.NotComposite, "resolver", file, seg.Loc(),
				"cannot access member of noncomposite field '"+segName+"'"))
		}
		if cur.field.Type != nil && cur.field.Type.IsArray {
			return diag.NewBundle(diag.Errorf(diag.ArrayMemberAccess, "resolver", file, seg.Loc(),
				"cannot access member of array '"+segName+"'"))
		}
		if !u.isComposite(cur.field) {
			return diag.NewBundle(diag.Errorf(diag.NotComposite, "resolver", file, seg.Loc(),
				"cannot access member of noncomposite field '"+segName+"'"))
		}
		next := u.descend(cur, segName, false)
		if next == nil {
			return diag.NewBundle(diag.Errorf(diag.NoCandidate, "resolver", file, seg.Loc(),
				"no candidate for '"+segName+"'"))
		}
		if next.kind != memberField {
			return diag.NewBundle(diag.Errorf(diag.NotComposite, "resolver", file, seg.Loc(),
				"cannot access member of noncomposite field '"+segName+"'"))
		}
		seg.CanonicalName = next.canonical
		seg.IsResolved = true
		cur = next
	}

	if cur.kind == memberField {
		if target := followAlias(tree, cur.field, cur.canonical, nil); target != nil {
			fr.Alias = target
		}
	}
	return nil
}

// isComposite reports whether f's resolved physical type names a
// Structure (struct or bits) — the only kind a FieldReference path may
// descend further into.
func (u *universe) isComposite(f *ir.Field) bool {
	if f.Type == nil || !f.Type.Reference.IsResolved {
		return false
	}
	own := u.typeScope[f.Type.Reference.CanonicalName.String()]
	if own == nil || own.typeDef == nil {
		return false
	}
	return own.typeDef.DefKind() == ir.KindStructure
}

// followAlias walks a chain of alias virtual fields (a field whose
// read_transform is itself a pure single-segment FieldReference) down
// to its ultimate physical target, per the alias-transparency rule
// (§4.F.2). A physical f yields its own canonical name, so a direct
// reference to a physical field also gets an Alias. Returns nil if f is
// a virtual field whose read_transform is something other than a bare
// single-segment reference. visited guards against a cycle that
// component G has not yet had a chance to reject.
func followAlias(tree *ir.IR, f *ir.Field, canon ir.CanonicalName, visited map[string]bool) *ir.CanonicalName {
	if f.PhysicalLocation != nil {
		return &canon
	}
	ref, ok := f.ReadTransform.(*ir.FieldReference)
	if !ok || len(ref.Path) != 1 || !ref.Path[0].IsResolved {
		return nil
	}
	target := ref.Path[0].CanonicalName
	key := target.String()
	if visited == nil {
		visited = map[string]bool{}
	}
	if visited[key] {
		return nil
	}
	visited[key] = true
	obj := irutil.FindObject(target, tree)
	tf, ok := obj.(*ir.Field)
	if !ok {
		return nil
	}
	return followAlias(tree, tf, target, visited)
}
