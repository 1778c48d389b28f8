package attrs

import (
	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
)

// checkFieldByteOrder enforces §4.J.2: a byte-order-dependent field must
// have a byte_order in effect (own, or cascaded from struct/module); a
// field whose physical type is not byte-order-dependent must not carry
// one itself; "Null" is only legal for single-byte fields.
func (c *checker) checkFieldByteOrder(file string, s *ir.Structure, f *ir.Field, cascaded *string) {
	own := irutil.GetAttribute(f.Attributes, "", "byte_order")
	dependent := isByteOrderDependent(s, f)

	if !dependent {
		if own != nil {
			if own.Value.String != nil && *own.Value.String == "Null" {
				if n, ok := fieldBitWidth(s, f); ok && n <= 8 {
					return
				}
			}
			c.errf(file, own.Location, diag.IllegalByteOrder,
				"'%s' does not need a byte_order (not a multi-byte numeric field)", f.NameDefinition.Name.Text)
		}
		return
	}

	var order *string
	if own != nil {
		order = own.Value.String
	} else {
		order = cascaded
	}
	if order == nil {
		c.errf(file, f.Location, diag.MissingByteOrder,
			"'%s' is byte-order-dependent but no byte_order is in effect", f.NameDefinition.Name.Text)
		return
	}
	if *order == "Null" {
		n, ok := fieldBitWidth(s, f)
		if !ok || n > 8 {
			loc := f.Location
			if own != nil {
				loc = own.Location
			}
			c.errf(file, loc, diag.IllegalByteOrder, "byte_order \"Null\" is only legal for single-byte fields")
		}
	}
}
