// Package irutil implements the small IR helper functions every later
// pass shares (§4.D): attribute lookup, constant evaluation, scope climb
// support via canonicalized reference keys, and canonical-name lookup.
package irutil

import "github.com/go-emboss/embossc/internal/ir"

// GetAttribute returns the attribute named name (optionally back-end
// qualified by matching Attribute.BackEnd too when backEnd != ""), or
// nil if none is present.
func GetAttribute(attrs []ir.Attribute, backEnd, name string) *ir.Attribute {
	for i := range attrs {
		if attrs[i].Name.Text == name && attrs[i].BackEnd == backEnd {
			return &attrs[i]
		}
	}
	return nil
}

// ConstantValue evaluates a fully type-annotated, compile-time-constant
// Expression to its value. Returns (value, true) for integers (*ir.Int),
// booleans (bool), or enum values (*ir.Int, the underlying integer); or
// (nil, false) when the expression is not a known constant.
func ConstantValue(e ir.Expr) (any, bool) {
	t := e.Type()
	if t == nil {
		return nil, false
	}
	switch t.Kind {
	case ir.TypeInteger:
		if t.Bounds == nil {
			return nil, false
		}
		b := t.Bounds
		if !b.Minimum.Infinite && !b.Maximum.Infinite && b.Minimum.Value != nil && b.Maximum.Value != nil && b.Minimum.Value.Cmp(b.Maximum.Value) == 0 {
			return b.Minimum.Value, true
		}
		return nil, false
	case ir.TypeBoolean:
		if t.BoolValue == nil {
			return nil, false
		}
		return *t.BoolValue, true
	case ir.TypeEnumeration:
		if t.Enum == nil || t.Enum.Value == nil {
			return nil, false
		}
		return t.Enum.Value, true
	default:
		return nil, false
	}
}

// ReferenceKey is the canonicalized, hashable form of a Reference,
// suitable for use as a map/set key (hashable_form_of_reference, §4.D):
// the module file plus a tuple of the resolved canonical path segments.
type ReferenceKey struct {
	ModuleFile string
	Path       string // segments joined by "\x00" to stay collision-free
}

// HashableFormOfReference produces the canonical key for r. r must
// already be resolved (IsResolved); callers resolve before building
// dependency-graph edges (component G runs after component F).
func HashableFormOfReference(r ir.Reference) ReferenceKey {
	return CanonicalKey(r.CanonicalName)
}

// CanonicalKey builds the same hashable key directly from a
// CanonicalName, for callers (like the dependency graph) that work with
// names rather than unresolved Reference values.
func CanonicalKey(c ir.CanonicalName) ReferenceKey {
	path := ""
	for i, p := range c.Path {
		if i > 0 {
			path += "\x00"
		}
		path += p
	}
	return ReferenceKey{ModuleFile: c.ModuleFile, Path: path}
}

// FieldIsVirtual reports whether f is a virtual (computed) field.
func FieldIsVirtual(f *ir.Field) bool { return f.IsVirtual() }

// FindObject resolves a canonical name to the node it names: the
// containing TypeDef, Field, or EnumValue. All three are returned as
// `any`; callers type-switch on what they expect. Returns nil if the
// path does not resolve (a compiler-bug condition once name resolution
// has succeeded).
func FindObject(name ir.CanonicalName, tree *ir.IR) any {
	mod := tree.ModuleByFile(name.ModuleFile)
	if mod == nil || len(name.Path) == 0 {
		return nil
	}

	// Walk nested TypeDefinitions by name down to the second-to-last
	// path segment, then look for the leaf among that scope's Fields,
	// nested TypeDefinitions, or EnumValues.
	var defs []ir.TypeDef = mod.TypeDefinition

	find := func(n string) (ir.TypeDef, bool) {
		for _, d := range defs {
			if d.Base().NameDefinition.Name.Text == n {
				return d, true
			}
		}
		return nil, false
	}

	var current ir.TypeDef
	for i, seg := range name.Path {
		isLast := i == len(name.Path)-1
		if current != nil {
			if s, ok := current.(*ir.Structure); ok {
				for _, f := range s.Field {
					if f.NameDefinition.Name.Text == seg {
						if isLast {
							return f
						}
					}
				}
			}
			if e, ok := current.(*ir.Enumeration); ok {
				for i := range e.EnumValue {
					if e.EnumValue[i].NameDefinition.Name.Text == seg {
						if isLast {
							return &e.EnumValue[i]
						}
					}
				}
			}
		}
		if d, ok := find(seg); ok {
			current = d
			defs = d.Base().Subtype
			if isLast {
				return d
			}
			continue
		}
		return nil
	}
	return current
}
