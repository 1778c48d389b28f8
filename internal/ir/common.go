// Package ir implements the core data model (§3): a typed tree of
// modules, types, fields and expressions with source locations, built by
// the upstream parser and mutated in place by each semantic-analysis
// pass. Cross-tree references are always by canonical name, never by
// pointer (see SPEC_FULL.md §3 "Design notes" and the package doc for
// internal/traverse).
package ir

import (
	"strings"

	"github.com/go-emboss/embossc/internal/diag"
)

// Word is a single identifier token: text plus the source location it was
// written at.
type Word struct {
	Text string
	Loc  diag.Location
}

// CanonicalName is the unique identity of any named entity: the source
// file it was declared in, plus the path of enclosing type names down to
// the leaf name (GLOSSARY "Canonical name"). The empty ModuleFile denotes
// the prelude.
type CanonicalName struct {
	ModuleFile string
	Path       []string
}

func (c CanonicalName) String() string {
	if c.ModuleFile == "" {
		return strings.Join(c.Path, ".")
	}
	return c.ModuleFile + ":" + strings.Join(c.Path, ".")
}

// IsZero reports whether this name was never resolved.
func (c CanonicalName) IsZero() bool {
	return c.ModuleFile == "" && len(c.Path) == 0
}

// Equal compares two canonical names structurally.
func (c CanonicalName) Equal(o CanonicalName) bool {
	if c.ModuleFile != o.ModuleFile || len(c.Path) != len(o.Path) {
		return false
	}
	for i := range c.Path {
		if c.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

// Reference is a textual, possibly-dotted path as written by the user
// (a type name, a constant path, a builtin name, or one segment of a
// FieldReference path). CanonicalName is populated by the symbol
// resolver (§4.F); until then IsResolved is false. References are never
// pointers into the tree — only string paths resolved on demand via
// find_object (§4.D) — so the IR stays free of reference cycles even
// though the dependency graph it describes may not be.
type Reference struct {
	Components    []Word
	CanonicalName CanonicalName
	IsResolved    bool
}

// Text joins the reference's dotted components as written in source.
func (r Reference) Text() string {
	parts := make([]string, len(r.Components))
	for i, w := range r.Components {
		parts[i] = w.Text
	}
	return strings.Join(parts, ".")
}

// Loc returns the location spanning the reference's first component,
// which is what diagnostics about the reference as a whole anchor on.
func (r Reference) Loc() diag.Location {
	if len(r.Components) == 0 {
		return diag.Location{}
	}
	return r.Components[0].Loc
}

// NameDefinition is the name-introducing occurrence attached to every
// TypeDefinition and Field (§3). Anonymous entities get a compiler
// generated Name (e.g. "emboss_reserved_anonymous_3") and IsAnonymous
// set, so their placeholder text can be elided from user-visible output
// (§4.B).
type NameDefinition struct {
	Name          Word
	Abbreviation  *Word
	IsAnonymous   bool
	CanonicalName CanonicalName
}

// AddressableUnit distinguishes bit-addressed `bits` blocks from
// byte-addressed `struct`s (GLOSSARY).
type AddressableUnit int

const (
	Byte AddressableUnit = iota
	Bit
)

func (a AddressableUnit) String() string {
	if a == Bit {
		return "bits"
	}
	return "byte"
}
