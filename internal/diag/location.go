// Package diag implements the compiler's structured diagnostic system:
// messages, bundles, severities, synthetic-location suppression and
// colorized terminal rendering.
package diag

import "fmt"

// Position is a 1-based line/column pair.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a half-open [Start, End) source range. IsSynthetic marks
// nodes inserted by the desugaring pass rather than written by the user;
// diagnostics anchored on a synthetic location are suppressed whenever a
// non-synthetic error also occurred in the same run (see split_errors).
type Location struct {
	File       string
	Start      Position
	End        Position
	IsSynthetic bool
}

// String renders "file:line:col" the way every Message header does, or
// "file:[compiler bug]:" for synthetic locations (§6).
func (l Location) String() string {
	if l.IsSynthetic {
		return fmt.Sprintf("%s:[compiler bug]:", l.File)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Start.Line, l.Start.Column)
}
