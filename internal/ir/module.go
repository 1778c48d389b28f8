package ir

import "github.com/go-emboss/embossc/internal/diag"

// ForeignImport is one `import "file" as local_name` declaration. The
// first element of every Module's ForeignImport list is always the
// implicit self-import of the prelude (LocalName == "") (§3).
type ForeignImport struct {
	Location  diag.Location
	FileName  string
	LocalName string
}

// Module is one source file's worth of IR: its type definitions, its
// imports, and its module-level attributes (§3). SourceFileName is empty
// for the prelude.
type Module struct {
	SourceFileName string
	SourceText     string
	TypeDefinition []TypeDef
	ForeignImport  []ForeignImport
	Attributes     []Attribute
}

// IR is the root of the whole tree: an ordered sequence of Modules.
// Index 0 is always the user's entry-point module; the prelude module is
// present at a fixed position (conventionally last) and is implicitly
// imported by every module (§3 invariant on IR root).
type IR struct {
	Module []*Module
}

// PreludeIndex returns the index of the module whose SourceFileName is
// empty (the prelude), or -1 if none is present.
func (t *IR) PreludeIndex() int {
	for i, m := range t.Module {
		if m.SourceFileName == "" {
			return i
		}
	}
	return -1
}

// ModuleByFile looks up a Module by its source file name.
func (t *IR) ModuleByFile(file string) *Module {
	for _, m := range t.Module {
		if m.SourceFileName == file {
			return m
		}
	}
	return nil
}

// WalkTypeDefinitions calls fn for every TypeDefinition reachable from m,
// including nested (Subtype) definitions, depth-first pre-order. This is
// the shape most passes actually want; the general-purpose engine that
// also visits Fields/Expressions/Attributes lives in internal/traverse.
func WalkTypeDefinitions(m *Module, fn func(TypeDef)) {
	var walk func(TypeDef)
	walk = func(t TypeDef) {
		fn(t)
		for _, s := range t.Base().Subtype {
			walk(s)
		}
	}
	for _, t := range m.TypeDefinition {
		walk(t)
	}
}
