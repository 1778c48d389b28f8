package resolver

// matchesLeading reports whether m is an eligible leading-segment
// candidate. typeOnly selects type/constant reference resolution
// (§4.F.1: nested types, plus the module a reference's first segment
// may name via its import local_name); otherwise it selects field-path
// resolution (§4.F.2: fields, enum values, runtime parameters — and
// again modules, since a field path's constant-reference cousin may
// equally start with an import's local_name).
func matchesLeading(m *member, typeOnly bool) bool {
	if m.kind == memberModule {
		return true
	}
	if typeOnly {
		return m.kind == memberType
	}
	return m.kind == memberField || m.kind == memberEnumValue || m.kind == memberRuntimeParam
}

// climb resolves name as a leading path segment: search start's own
// members, then — only once, at the outermost (module-root) scope —
// every name reachable through that module's imports (prelude
// included, via the implicit self-import), continuing outward through
// enclosing type scopes until some depth yields at least one
// candidate. The closest depth with a hit wins outright; ambiguity is
// only possible among the candidates found at that single depth (§4.F:
// "closest shadows outermost").
func climb(start *scope, name string, typeOnly bool) []*member {
	for sc := start; sc != nil; sc = sc.parent {
		var cands []*member
		if m, ok := sc.members[name]; ok && matchesLeading(m, typeOnly) {
			cands = append(cands, m)
		}
		if sc.module != nil {
			for _, m := range sc.importedMembers[name] {
				if matchesLeading(m, typeOnly) {
					cands = append(cands, m)
				}
			}
		}
		if len(cands) > 0 {
			return cands
		}
	}
	return nil
}

// descend resolves a non-leading path segment within the scope owned
// by prev (no climbing, §4.F: "subsequent path segments are resolved
// only within the found scope"). Returns nil if prev does not own a
// scope a member could live in (e.g. prev is a field of integer type).
func (u *universe) descend(prev *member, name string, typeOnly bool) *member {
	var sc *scope
	switch prev.kind {
	case memberModule:
		sc = prev.module
	case memberType:
		sc = u.typeScope[prev.canonical.String()]
	case memberField:
		if prev.field.Type == nil || !prev.field.Type.Reference.IsResolved {
			return nil
		}
		sc = u.typeScope[prev.field.Type.Reference.CanonicalName.String()]
	default:
		return nil
	}
	if sc == nil {
		return nil
	}
	m, ok := sc.members[name]
	if !ok {
		return nil
	}
	if typeOnly && m.kind != memberType && m.kind != memberModule {
		return nil
	}
	return m
}
