package desugar

import "github.com/go-emboss/embossc/internal/ir"

// expandAnonymousAliases implements §4.E.2: every physical field whose
// type is an anonymous inner Structure (the `bits:`/`struct:` inline
// syntax, parsed by parseAnonymousInnerField) gets a [text_output:
// "Skip"] attribute so it is elided from generated accessor text, and
// one synthetic alias virtual field is appended to s for each of the
// inner type's own fields, so callers can write `outer.inner_field`
// instead of `outer.anon.inner_field`.
//
// Per the duplicate-name-suppression rule (§9 Open Question 3), once a
// subfield has been lifted out as an alias, its original name (and
// abbreviation, if any) inside the anonymous inner type is marked
// synthetic. That keeps a genuine conflict between the lifted alias and
// a sibling field of s reported as a real error, while a resolver that
// later starts treating an anonymous inner type's members as also
// visible in the enclosing scope won't double-report the same
// collision once against the alias and once against the original.
func expandAnonymousAliases(s *ir.Structure) {
	// snapshot: appending aliases below must not make this pass see its
	// own output as another anonymous field to expand.
	original := append([]*ir.Field(nil), s.Field...)
	for _, f := range original {
		if f.PhysicalLocation == nil || f.Type == nil {
			continue
		}
		inner := findAnonymousSubtype(s, f.Type.Reference.Text())
		if inner == nil {
			continue
		}
		f.Attributes = append(f.Attributes, ir.Attribute{
			Location:        synthLoc(f.Location),
			Name:            ir.Word{Text: "text_output", Loc: synthLoc(f.Location)},
			Value:           ir.AttributeValue{Location: synthLoc(f.Location), String: strPtr("Skip")},
			IsSyntheticName: true,
		})
		anonName := f.NameDefinition.Name.Text
		for _, sub := range inner.Field {
			s.Field = append(s.Field, aliasField(anonName, sub))
			markNameDefinitionSynthetic(&sub.NameDefinition)
		}
	}
}

// markNameDefinitionSynthetic flags nd's own name (and abbreviation, if
// present) as synthetic locations, without touching nd.CanonicalName.
func markNameDefinitionSynthetic(nd *ir.NameDefinition) {
	nd.Name.Loc.IsSynthetic = true
	if nd.Abbreviation != nil {
		abbrev := *nd.Abbreviation
		abbrev.Loc.IsSynthetic = true
		nd.Abbreviation = &abbrev
	}
}

func strPtr(s string) *string { return &s }

// findAnonymousSubtype returns the Subtype of s named name, if it is an
// anonymous Structure (as introduced by the `bits:`/`struct:` inline
// field syntax), or nil otherwise.
func findAnonymousSubtype(s *ir.Structure, name string) *ir.Structure {
	for _, td := range s.Subtype {
		if td.Base().NameDefinition.Name.Text != name {
			continue
		}
		if inner, ok := td.(*ir.Structure); ok && inner.NameDefinition.IsAnonymous {
			return inner
		}
	}
	return nil
}

// aliasField builds the synthetic virtual field aliasing
// anon.<sub.Name> (§4.E.2). Its existence condition requires both the
// anonymous field and the inner field itself to be present, so an
// inner field guarded by its own `if` clause is correctly hidden
// whenever that clause is false.
func aliasField(anonName string, sub *ir.Field) *ir.Field {
	l := sub.Location
	l.IsSynthetic = true

	outerPresent := fn(l, ir.Presence, fieldRef(l, anonName))
	innerPresent := fn(l, ir.Presence, fieldRef(l, anonName, sub.NameDefinition.Name.Text))
	existence := fn(l, ir.And, outerPresent, innerPresent)
	markSynthetic(existence)

	readTransform := fieldRef(l, anonName, sub.NameDefinition.Name.Text)
	markSynthetic(readTransform)

	return &ir.Field{
		Location:           l,
		NameDefinition:     sub.NameDefinition,
		ExistenceCondition: existence,
		ReadTransform:      readTransform,
	}
}
