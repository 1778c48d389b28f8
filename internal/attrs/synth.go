package attrs

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
)

// synthesizeFixedSize implements §4.J.3's fixed_size_in_bits handling: if
// every physical field has a constant start and size, the structure's
// size is fixed and equals the largest (start+size) among them,
// expressed in bits. A user-supplied fixed_size_in_bits is checked
// against that computed value rather than trusted blindly.
func (c *checker) synthesizeFixedSize(file string, s *ir.Structure) {
	var maxEndUnits *ir.Int
	for _, f := range s.Field {
		if f.IsVirtual() || f.PhysicalLocation == nil {
			continue
		}
		start, ok1 := constantInt(f.PhysicalLocation.Start)
		size, ok2 := constantInt(f.PhysicalLocation.Size)
		if !ok1 || !ok2 {
			maxEndUnits = nil
			break
		}
		end := start.Add(size)
		if maxEndUnits == nil || end.Cmp(maxEndUnits) > 0 {
			maxEndUnits = end
		}
	}

	existing := irutil.GetAttribute(s.Attributes, "", "fixed_size_in_bits")
	if maxEndUnits == nil {
		if existing != nil {
			c.errf(file, existing.Location, diag.BadFixedSize, "structure is not fixed-size; fixed_size_in_bits may not be specified")
		}
		return
	}
	bits := maxEndUnits
	if s.AddressableUnit == ir.Byte {
		bits = bits.Mul(ir.NewInt(8))
	}
	if existing != nil {
		if existing.Value.Int == nil || existing.Value.Int.Cmp(bits) != 0 {
			c.errf(file, existing.Location, diag.BadFixedSize,
				"fixed_size_in_bits says %s but the structure's computed size is %s", valueText(existing), bits.String())
		}
		return
	}
	s.Attributes = append(s.Attributes, ir.Attribute{
		Location:        s.Location,
		Name:            ir.Word{Text: "fixed_size_in_bits"},
		Value:           ir.AttributeValue{Int: bits},
		IsSyntheticName: true,
	})
}

func valueText(a *ir.Attribute) string {
	if a.Value.Int != nil {
		return a.Value.Int.String()
	}
	return "?"
}

func constantInt(e ir.Expr) (*ir.Int, bool) {
	v, ok := irutil.ConstantValue(e)
	if !ok {
		return nil, false
	}
	iv, ok := v.(*ir.Int)
	return iv, ok
}

// synthesizeEnumAttrs implements §4.J.3's enum computed attributes:
// is_signed (true iff any value is negative) and maximum_bits (defaults
// to 64, must be in [1, 64]).
func (c *checker) synthesizeEnumAttrs(file string, e *ir.Enumeration) {
	for i := range e.EnumValue {
		if v, ok := constantInt(e.EnumValue[i].Value); ok && v.Sign() < 0 {
			e.IsSigned = true
		}
	}

	e.MaximumBits = 64
	attr := irutil.GetAttribute(e.Attributes, "", "maximum_bits")
	if attr == nil {
		return
	}
	if attr.Value.Int == nil {
		return
	}
	n := int(attr.Value.Int.Int64())
	if n < 1 || n > 64 {
		c.errf(file, attr.Location, diag.BadFixedSize, "maximum_bits must be between 1 and 64, got %d", n)
		return
	}
	e.MaximumBits = n
}

var (
	shoutyCaser = cases.Upper(language.Und)
	titleCaser  = cases.Title(language.Und, cases.NoLower)
)

// isShoutyCase reports whether s is already all-uppercase text (the
// shape SHOUTY_CASE names): a cases.Upper round trip is a no-op iff so.
func isShoutyCase(s string) bool { return shoutyCaser.String(s) == s }

// isKCamelCase reports whether s looks like kCamelCase: a leading
// lowercase 'k' followed by Title-cased words, detected the same way —
// a cases.Title round trip over the part after 'k' is a no-op iff every
// word already starts with a capital.
func isKCamelCase(s string) bool {
	if len(s) < 2 || s[0] != 'k' {
		return false
	}
	rest := s[1:]
	return titleCaser.String(rest) == rest
}

// checkEnumCase validates a (cpp) enum_case attribute's comma-separated
// list against the closed set {SHOUTY_CASE, kCamelCase} (§4.J.3):
// whitespace-only/empty entries and duplicates are errors pointing at the
// offending column.
func (c *checker) checkEnumCase(file string, e *ir.Enumeration) {
	attr := irutil.GetAttribute(e.Attributes, "cpp", "enum_case")
	if attr == nil || attr.Value.String == nil {
		return
	}
	text := *attr.Value.String
	col := attr.Value.Location.Start.Column
	seen := map[string]bool{}
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == ',' {
			entry := text[start:i]
			entryCol := col + 1 + start
			trimmed := strings.TrimSpace(entry)
			switch {
			case trimmed == "":
				c.errf(file, atColumn(attr.Value.Location, entryCol), diag.BadEnumCase, "empty enum_case entry")
			case trimmed != "SHOUTY_CASE" && trimmed != "kCamelCase":
				reason := "want SHOUTY_CASE or kCamelCase"
				if isShoutyCase(trimmed) || isKCamelCase(trimmed) {
					reason = "only the names SHOUTY_CASE and kCamelCase are recognized, not arbitrary case-shaped text"
				}
				c.errf(file, atColumn(attr.Value.Location, entryCol), diag.BadEnumCase, "'%s' is not a valid enum_case (%s)", trimmed, reason)
			case seen[trimmed]:
				c.errf(file, atColumn(attr.Value.Location, entryCol), diag.BadEnumCase, "duplicate enum_case '%s'", trimmed)
			default:
				seen[trimmed] = true
			}
			start = i + 1
		}
	}
}

// atColumn returns loc with its start column overridden to col, so a
// diagnostic about one comma-separated entry of an attribute value can
// point at that entry specifically rather than the whole string literal.
func atColumn(loc diag.Location, col int) diag.Location {
	out := loc
	out.Start.Column = col
	return out
}
