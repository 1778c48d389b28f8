package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ColorMode controls whether Render emits ANSI escapes (§6 --color-output).
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// SourceLookup resolves a file name to its full text so the renderer can
// print the offending line and a caret underline. The pipeline driver
// supplies this from the Modules it already has in memory; passes never
// need file contents themselves.
type SourceLookup func(file string) (string, bool)

var severityColor = map[Severity]*color.Color{
	SeverityError:   color.New(color.FgRed, color.Bold),
	SeverityWarning: color.New(color.FgYellow, color.Bold),
	SeverityNote:    color.New(color.FgCyan),
}

var (
	boldColor = color.New(color.Bold)
	dimColor  = color.New(color.Faint)
)

// Render writes a human-readable rendering of a bundle to sb, honoring
// mode. For non-synthetic messages it appends the source line and a caret
// underline spanning [start_col, end_col); for synthetic messages it
// prints the literal "[compiler bug]" (§6).
func Render(sb *strings.Builder, bundle Bundle, mode ColorMode, lookup SourceLookup) {
	enabled := mode == ColorAlways || (mode == ColorAuto && color.NoColor == false)
	for _, m := range bundle {
		sev := severityColor[m.Severity]
		first, _, _ := strings.Cut(m.Text, "\n")
		header := fmt.Sprintf("%s: %s: %s", m.Location.String(), m.Severity.String(), first)
		if enabled {
			sb.WriteString(sev.Sprint(header))
		} else {
			sb.WriteString(header)
		}
		sb.WriteByte('\n')

		for i, line := range strings.Split(m.Text, "\n") {
			if i == 0 {
				continue // already in the header
			}
			fmt.Fprintf(sb, "%s: note: %s\n", m.Location.String(), line)
		}

		if m.Location.IsSynthetic || lookup == nil {
			continue
		}
		text, ok := lookup(m.File)
		if !ok {
			continue
		}
		lines := strings.Split(text, "\n")
		lineIdx := m.Location.Start.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}
		srcLine := lines[lineIdx]
		sb.WriteString(srcLine)
		sb.WriteByte('\n')

		startCol := m.Location.Start.Column
		endCol := m.Location.End.Column
		if endCol <= startCol {
			endCol = startCol + 1
		}
		pad := strings.Repeat(" ", max(0, startCol-1))
		caret := strings.Repeat("^", max(1, endCol-startCol))
		if enabled {
			sb.WriteString(dimColor.Sprint(pad))
			sb.WriteString(boldColor.Sprint(caret))
		} else {
			sb.WriteString(pad)
			sb.WriteString(caret)
		}
		sb.WriteByte('\n')
	}
}

// RenderAll renders every bundle in order, separated by a blank line.
func RenderAll(bundles []Bundle, mode ColorMode, lookup SourceLookup) string {
	var sb strings.Builder
	for i, b := range bundles {
		if i > 0 {
			sb.WriteByte('\n')
		}
		Render(&sb, b, mode, lookup)
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
