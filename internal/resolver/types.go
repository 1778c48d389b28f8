package resolver

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// resolveTypeReferences implements §4.F.1 over every FieldType.Reference
// and RuntimeParameter.PhysicalType in the tree: a type name, resolved
// with type-only climbing rooted at the scope the reference is written
// in.
func (u *universe) resolveTypeReferences(tree *ir.IR) []diag.Bundle {
	var bundles []diag.Bundle
	for _, m := range tree.Module {
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			base := td.Base()
			// Runtime parameters are visible at the scope enclosing the
			// type definition itself — a parameter's declared type is an
			// external/enum name from the surrounding module, never one
			// of this type's own nested subtypes.
			enclosing := u.enclosingScope(m, base)
			for i := range base.RuntimeParameter {
				rp := &base.RuntimeParameter[i]
				if b := u.resolveOne(enclosing, &rp.PhysicalType, m.SourceFileName, true); b != nil {
					bundles = append(bundles, b)
				}
			}
			s, ok := td.(*ir.Structure)
			if !ok {
				return
			}
			own := u.typeScope[base.NameDefinition.CanonicalName.String()]
			for _, f := range s.Field {
				if f.Type == nil {
					continue
				}
				if b := u.resolveOne(own, &f.Type.Reference, m.SourceFileName, true); b != nil {
					bundles = append(bundles, b)
				}
			}
		})
	}
	return bundles
}

// enclosingScope returns the scope that was in effect where td itself
// was declared: td's own scope's parent, or the module scope for a
// top-level TypeDef.
func (u *universe) enclosingScope(m *ir.Module, base *ir.TypeDefBase) *scope {
	own := u.typeScope[base.NameDefinition.CanonicalName.String()]
	if own != nil && own.parent != nil {
		return own.parent
	}
	return u.moduleScope[m.SourceFileName]
}

// resolveOne resolves one dotted Reference against start, writing
// CanonicalName/IsResolved on success.
func (u *universe) resolveOne(start *scope, ref *ir.Reference, file string, typeOnly bool) diag.Bundle {
	if len(ref.Components) == 0 {
		return nil
	}
	leading := ref.Components[0]
	cands := climb(start, leading.Text, typeOnly)
	if len(cands) == 0 {
		return diag.NewBundle(diag.Errorf(diag.NoCandidate, "resolver", file, leading.Loc,
			"no candidate for '"+leading.Text+"'"))
	}
	if len(cands) > 1 {
		return diag.NewBundle(diag.Errorf(diag.AmbiguousReference, "resolver", file, leading.Loc,
			"ambiguous reference to '"+leading.Text+"'"))
	}
	cur := cands[0]
	for _, seg := range ref.Components[1:] {
		next := u.descend(cur, seg.Text, typeOnly)
		if next == nil {
			return diag.NewBundle(diag.Errorf(diag.NoCandidate, "resolver", file, seg.Loc,
				"no candidate for '"+seg.Text+"'"))
		}
		cur = next
	}
	if cur.kind == memberModule {
		return diag.NewBundle(diag.Errorf(diag.NoCandidate, "resolver", file, leading.Loc,
			"'"+leading.Text+"' names a module, not a type"))
	}
	ref.CanonicalName = cur.canonical
	ref.IsResolved = true
	return nil
}
