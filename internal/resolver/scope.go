// Package resolver implements component F (§4.F): building the scope
// tree that mirrors the IR (prelude + user modules + imports + nested
// types) and resolving every textual reference against it, in two
// sub-passes — type/constant references, then field-path references.
package resolver

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
)

// memberKind tags what a scope member actually names.
type memberKind int

const (
	memberType memberKind = iota
	memberField
	memberEnumValue
	memberRuntimeParam
	memberModule // a module reachable via an import's local_name
)

// member is one named entity visible in a scope: a nested TypeDef, a
// Field, an EnumValue, a RuntimeParameter, or (for module-root scopes)
// another module reached through an import's local_name.
type member struct {
	kind      memberKind
	canonical ir.CanonicalName
	loc       diag.Location
	typeDef   ir.TypeDef
	field     *ir.Field
	enumValue *ir.EnumValue
	module    *scope // set iff kind == memberModule
}

// scope is one node of the scope tree: either a module's top-level
// scope, or the scope introduced by one TypeDef's body. members holds
// every name declared directly in this scope — nested types, fields,
// enum values, runtime parameters all share one namespace, so a
// collision between e.g. a nested type and a field is caught by the
// same duplicate-name check as two fields (§4.F, "two definitions with
// the same text in the same scope").
type scope struct {
	parent  *scope
	file    string  // owning module's source file name
	module  *ir.Module // set iff this is a module-root scope
	typeDef ir.TypeDef // set iff this is a type-body scope

	members map[string]*member
	// importedMembers mirrors every name visible through this module's
	// ForeignImport list (including the implicit prelude self-import),
	// collected at build time so leading-segment climb doesn't need to
	// re-walk imports on every lookup. Populated only on module-root
	// scopes.
	importedMembers map[string][]*member
}

func newScope(parent *scope, file string) *scope {
	return &scope{parent: parent, file: file, members: map[string]*member{}}
}

// universe is the whole resolver's working state: one scope per module,
// one scope per TypeDef (keyed by canonical name string), and the tree
// itself for convenience.
type universe struct {
	tree        *ir.IR
	moduleScope map[string]*scope // keyed by Module.SourceFileName
	typeScope   map[string]*scope // keyed by CanonicalName.String()
}

// build constructs the scope tree and runs duplicate-name detection,
// returning the universe plus any "duplicate name" bundles.
func build(tree *ir.IR) (*universe, []diag.Bundle) {
	u := &universe{
		tree:        tree,
		moduleScope: map[string]*scope{},
		typeScope:   map[string]*scope{},
	}
	for _, m := range tree.Module {
		ms := newScope(nil, m.SourceFileName)
		ms.module = m
		u.moduleScope[m.SourceFileName] = ms
	}
	var bundles []diag.Bundle
	for _, m := range tree.Module {
		ms := u.moduleScope[m.SourceFileName]
		for _, td := range m.TypeDefinition {
			bundles = append(bundles, u.addTypeDef(ms, m.SourceFileName, nil, td)...)
		}
	}
	for _, m := range tree.Module {
		bundles = append(bundles, u.linkImports(m)...)
	}
	return u, bundles
}

// addTypeDef registers td (and recursively its Subtype children, Fields,
// EnumValues and RuntimeParameters) into parent, assigning canonical
// names along the way.
func (u *universe) addTypeDef(parent *scope, file string, pathPrefix []string, td ir.TypeDef) []diag.Bundle {
	var bundles []diag.Bundle
	base := td.Base()
	path := append(append([]string(nil), pathPrefix...), base.NameDefinition.Name.Text)
	canon := ir.CanonicalName{ModuleFile: file, Path: path}
	base.NameDefinition.CanonicalName = canon

	if b := u.declare(parent, base.NameDefinition.Name.Text, &member{
		kind: memberType, canonical: canon, loc: base.Location, typeDef: td,
	}, file); b != nil {
		bundles = append(bundles, b)
	}

	own := newScope(parent, file)
	own.typeDef = td
	u.typeScope[canon.String()] = own

	for i := range base.RuntimeParameter {
		rp := &base.RuntimeParameter[i]
		rpCanon := ir.CanonicalName{ModuleFile: file, Path: append(append([]string(nil), path...), rp.NameDefinition.Name.Text)}
		rp.NameDefinition.CanonicalName = rpCanon
		if b := u.declare(own, rp.NameDefinition.Name.Text, &member{
			kind: memberRuntimeParam, canonical: rpCanon, loc: rp.NameDefinition.Name.Loc,
		}, file); b != nil {
			bundles = append(bundles, b)
		}
	}

	switch v := td.(type) {
	case *ir.Structure:
		for _, f := range v.Field {
			fCanon := ir.CanonicalName{ModuleFile: file, Path: append(append([]string(nil), path...), f.NameDefinition.Name.Text)}
			f.NameDefinition.CanonicalName = fCanon
			if b := u.declare(own, f.NameDefinition.Name.Text, &member{
				kind: memberField, canonical: fCanon, loc: f.NameDefinition.Name.Loc, field: f,
			}, file); b != nil {
				bundles = append(bundles, b)
			}
		}
	case *ir.Enumeration:
		for i := range v.EnumValue {
			ev := &v.EnumValue[i]
			evCanon := ir.CanonicalName{ModuleFile: file, Path: append(append([]string(nil), path...), ev.NameDefinition.Name.Text)}
			ev.NameDefinition.CanonicalName = evCanon
			if b := u.declare(own, ev.NameDefinition.Name.Text, &member{
				kind: memberEnumValue, canonical: evCanon, loc: ev.NameDefinition.Name.Loc, enumValue: ev,
			}, file); b != nil {
				bundles = append(bundles, b)
			}
		}
	}

	for _, sub := range base.Subtype {
		bundles = append(bundles, u.addTypeDef(own, file, path, sub)...)
	}
	return bundles
}

// declare adds name to sc.members, returning a duplicate-name bundle
// (primary error + "original definition" note) if name is already taken.
func (u *universe) declare(sc *scope, name string, m *member, file string) diag.Bundle {
	if existing, ok := sc.members[name]; ok {
		return diag.NewBundle(
			diag.Errorf(diag.DuplicateName, "resolver", file, m.loc, "duplicate name '"+name+"'"),
			diag.Notef(diag.DuplicateName, "resolver", file, existing.loc, "original definition of '"+name+"'"),
		)
	}
	sc.members[name] = m
	return nil
}

// linkImports populates m's module scope's importedMembers overlay and
// validates the self-import rule (§4.F: "self-imports are illegal
// except the implicit prelude self-import").
func (u *universe) linkImports(m *ir.Module) []diag.Bundle {
	var bundles []diag.Bundle
	ms := u.moduleScope[m.SourceFileName]
	ms.importedMembers = map[string][]*member{}
	for i, imp := range m.ForeignImport {
		isPrelude := i == 0 && imp.LocalName == "" && imp.FileName == ""
		if !isPrelude && imp.FileName == m.SourceFileName {
			bundles = append(bundles, diag.NewBundle(diag.Errorf(
				diag.SelfImport, "resolver", m.SourceFileName, imp.Location,
				"a module may not import itself")))
			continue
		}
		target := u.moduleScope[imp.FileName]
		if target == nil {
			continue // unknown import file: surfaced by the external loader, not here
		}
		if imp.LocalName != "" {
			ms.members[imp.LocalName] = &member{kind: memberModule, module: target, loc: imp.Location}
		}
		for name, mem := range target.members {
			ms.importedMembers[name] = append(ms.importedMembers[name], mem)
		}
	}
	return bundles
}
