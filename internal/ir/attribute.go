package ir

import "github.com/go-emboss/embossc/internal/diag"

// AttributeValue is the parsed value of an Attribute: exactly one of
// String, Int, or Bool is set, or IsDefault is true for the literal
// `$default` marker (§4.J "defaultable").
type AttributeValue struct {
	Location  diag.Location
	String    *string
	Int       *Int
	Bool      *bool
	IsDefault bool
}

// Attribute is a `[name: value]` or `(backend) name: value` annotation
// attached to a module, type, field, or enum value (§3, §4.J).
// BackEnd is empty for unqualified attributes.
type Attribute struct {
	Location diag.Location
	BackEnd  string
	Name     Word
	Value    AttributeValue
	// IsSyntheticName is true for attributes synthesized by desugaring
	// (e.g. the [text_output: "Skip"] appended to anonymous physical
	// fields, §4.E) so write-back of source text can skip them.
	IsSyntheticName bool
}
