package attrs

import (
	"fmt"
	"strings"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/irutil"
	"github.com/go-emboss/embossc/internal/prelude"
)

// checker carries the registry and the bundles collected so far; the
// byte_order cascaded down the module → struct → field walk (§4.J.2) is
// passed along as an argument instead.
type checker struct {
	reg     Registry
	bundles []diag.Bundle
}

// Check runs all three concerns of component J over tree (§4.J) and
// returns every diagnostic bundle produced.
func Check(tree *ir.IR) []diag.Bundle {
	c := &checker{reg: NewDefault()}
	for _, m := range tree.Module {
		file := m.SourceFileName
		c.checkAttributeList(file, m.Attributes, ContextModule)
		moduleByteOrder, _ := stringAttr(m.Attributes, "", "byte_order")
		expected := c.expectedBackEnds(file, m.Attributes)
		c.checkBackEndQualification(file, m.Attributes, expected)
		for _, td := range m.TypeDefinition {
			c.walkTypeDef(file, td, moduleByteOrder, expected)
		}
	}
	return c.bundles
}

func (c *checker) walkTypeDef(file string, td ir.TypeDef, inheritedByteOrder *string, expected []string) {
	ctx := contextOf(td)
	base := td.Base()
	c.checkAttributeList(file, base.Attributes, ctx)
	c.checkBackEndQualification(file, base.Attributes, expected)

	byteOrder := inheritedByteOrder
	if v, ok := stringAttr(base.Attributes, "", "byte_order"); ok {
		byteOrder = v
	}

	switch v := td.(type) {
	case *ir.Structure:
		c.checkStructure(file, v, byteOrder, expected)
	case *ir.Enumeration:
		c.checkEnumeration(file, v, expected)
	}
	for _, sub := range base.Subtype {
		c.walkTypeDef(file, sub, byteOrder, expected)
	}
}

func (c *checker) checkStructure(file string, s *ir.Structure, byteOrder *string, expected []string) {
	for _, f := range s.Field {
		ctx := ContextVirtualField
		if !f.IsVirtual() {
			ctx = ContextPhysicalField
		}
		c.checkAttributeList(file, f.Attributes, ctx)
		c.checkBackEndQualification(file, f.Attributes, expected)
		if f.IsVirtual() {
			continue
		}
		c.checkFieldByteOrder(file, s, f, byteOrder)
	}
	c.synthesizeFixedSize(file, s)
}

func (c *checker) checkEnumeration(file string, e *ir.Enumeration, expected []string) {
	for i := range e.EnumValue {
		c.checkAttributeList(file, e.EnumValue[i].Attributes, ContextEnumValue)
	}
	c.synthesizeEnumAttrs(file, e)
	c.checkEnumCase(file, e)
}

// checkAttributeList validates every attribute against the registry
// (unknown-attribute and duplicate checks, §4.J.1).
func (c *checker) checkAttributeList(file string, attrs []ir.Attribute, ctx Context) {
	seen := map[string]*ir.Attribute{}
	for i := range attrs {
		a := &attrs[i]
		spec, ok := c.reg.Lookup(a.BackEnd, a.Name.Text, ctx)
		if !ok {
			c.errf(file, a.Location, diag.UnknownAttribute, "Unknown attribute '%s' on %s", qualifiedName(a), ctx)
			continue
		}
		if prior, dup := seen[a.BackEnd+"\x00"+a.Name.Text]; dup {
			c.bundles = append(c.bundles, diag.NewBundle(
				diag.Errorf(diag.DuplicateAttribute, "attrs", file, a.Location,
					fmt.Sprintf("Duplicate attribute '%s'", qualifiedName(a))),
				diag.Notef(diag.DuplicateAttribute, "attrs", file, prior.Location, "Original attribute here"),
			))
			continue
		}
		seen[a.BackEnd+"\x00"+a.Name.Text] = a
		if a.Value.IsDefault && !spec.Defaultable {
			c.errf(file, a.Location, diag.IllegalByteOrder, "Attribute '%s' may not be defaulted in this context", qualifiedName(a))
		}
		c.checkValueType(file, a, spec)
	}
}

func (c *checker) checkValueType(file string, a *ir.Attribute, spec Spec) {
	if a.Value.IsDefault {
		return
	}
	switch spec.Type {
	case ValueString:
		if a.Value.String == nil {
			return
		}
		if len(spec.AllowedValues) > 0 && !contains(spec.AllowedValues, *a.Value.String) {
			c.errf(file, a.Value.Location, diag.IllegalByteOrder, "'%s' is not a valid value for '%s'", *a.Value.String, qualifiedName(a))
		}
	case ValueInteger:
		_ = a.Value.Int
	case ValueBoolean:
		_ = a.Value.Bool
	}
}

func (c *checker) checkBackEndQualification(file string, attrs []ir.Attribute, expected []string) {
	if expected == nil {
		return
	}
	for i := range attrs {
		a := &attrs[i]
		if a.BackEnd == "" {
			continue
		}
		if !contains(expected, a.BackEnd) {
			c.errf(file, a.Location, diag.UnqualifiedBackEnd,
				"Back end '%s' is not in this module's expected_back_ends", a.BackEnd)
		}
	}
}

func qualifiedName(a *ir.Attribute) string {
	if a.BackEnd == "" {
		return a.Name.Text
	}
	return fmt.Sprintf("(%s) %s", a.BackEnd, a.Name.Text)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func stringAttr(attrs []ir.Attribute, backEnd, name string) (*string, bool) {
	a := irutil.GetAttribute(attrs, backEnd, name)
	if a == nil || a.Value.String == nil {
		return nil, false
	}
	return a.Value.String, true
}

// expectedBackEnds parses and validates the module's expected_back_ends
// attribute (§4.J.3): a well-formed comma-separated list of back-end
// specifiers, or nil if the attribute is absent. Empty (leading/trailing/
// double-comma) entries are errors.
func (c *checker) expectedBackEnds(file string, attrs []ir.Attribute) []string {
	a := irutil.GetAttribute(attrs, "", "expected_back_ends")
	if a == nil || a.Value.String == nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(*a.Value.String, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			c.errf(file, a.Value.Location, diag.BadExpectedBackEnds, "expected_back_ends contains an empty entry")
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func (c *checker) errf(file string, loc diag.Location, code, format string, args ...any) {
	c.bundles = append(c.bundles, diag.NewBundle(diag.Errorf(code, "attrs", file, loc, fmt.Sprintf(format, args...))))
}

// isByteOrderDependent reports whether f's physical type depends on byte
// order: a multi-byte (or multi-byte-element array of) UInt/Int/Bcd. Flag,
// Float, composite structures, and single-byte fields are not.
func isByteOrderDependent(s *ir.Structure, f *ir.Field) bool {
	if f.Type == nil || !f.Type.Reference.IsResolved {
		return false
	}
	ref := f.Type.Reference
	if ref.CanonicalName.ModuleFile != "" || len(ref.CanonicalName.Path) != 1 {
		return false // user structure/enum: composite, not byte-order-dependent itself
	}
	switch ref.CanonicalName.Path[0] {
	case prelude.UInt, prelude.Int, prelude.Bcd:
	default:
		return false
	}
	n, ok := fieldBitWidth(s, f)
	return ok && n > 8
}

func fieldBitWidth(s *ir.Structure, f *ir.Field) (int, bool) {
	if f.PhysicalLocation == nil || f.PhysicalLocation.Size == nil {
		return 0, false
	}
	v, ok := irutil.ConstantValue(f.PhysicalLocation.Size)
	if !ok {
		return 0, false
	}
	iv, ok := v.(*ir.Int)
	if !ok {
		return 0, false
	}
	n := int(iv.Int64())
	if s.AddressableUnit == ir.Byte {
		n *= 8
	}
	return n, true
}
