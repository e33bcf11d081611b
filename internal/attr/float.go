package attr

import (
	"fmt"
	"strconv"

	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/types"
)

// FloatAttr returns the attribute for value under the given float element
// type, rounding to nearest even when the value is not exactly
// representable. Use it for simple constants that are known-valid in both
// the host double and the target format; when exactness matters, use
// FloatAttrChecked.
func (c *Context) FloatAttr(t types.TypeID, value float64) FloatAttr {
	format := c.floatFormatOf(t)
	bits, _ := format.FromFloat64(value)
	return c.FloatAttrBits(t, bits)
}

// FloatAttrChecked validates that value is exactly representable in the
// element type's format. On failure it reports a span-tagged diagnostic
// through r and returns ok=false with the zero attribute.
func (c *Context) FloatAttrChecked(t types.TypeID, value float64, loc source.Span, r diag.Reporter) (FloatAttr, bool) {
	format := c.floatFormatOf(t)
	bits, exact := format.FromFloat64(value)
	if !exact {
		diag.ReportError(r, diag.AttrFloatNotRepresentable, loc,
			fmt.Sprintf("%g is not exactly representable in %s", value, format))
		return FloatAttr{}, false
	}
	return c.FloatAttrBits(t, bits), true
}

// FloatAttrBits interns a float attribute from a ready bit pattern in the
// element type's format.
func (c *Context) FloatAttrBits(t types.TypeID, bits uint64) FloatAttr {
	format := c.floatFormatOf(t)
	if w := format.BitWidth(); w < 64 && bits>>w != 0 {
		panic("attr: float pattern out of width")
	}
	key := "float:" + strconv.FormatUint(uint64(t), 10) + ":" + strconv.FormatUint(bits, 16)
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindFloat, typ: t, floatVal: bits}
	})
	return FloatAttr{Attr{st}}
}

func (c *Context) floatFormatOf(t types.TypeID) types.FloatFormat {
	tt, ok := c.typesIn.Lookup(t)
	if !ok || tt.Kind != types.KindFloat {
		panic("attr: float attribute wants a float element type")
	}
	return tt.Format
}

// Value returns the held value as a float64, which may widen but never
// changes the value: every supported format is a float64 subset.
func (a FloatAttr) Value() float64 {
	return a.Format().ToFloat64(a.st.floatVal)
}

// Bits returns the raw bit pattern under the attribute's format.
func (a FloatAttr) Bits() uint64 {
	return a.st.floatVal
}

// Format returns the element type's float format.
func (a FloatAttr) Format() types.FloatFormat {
	tt := a.st.ctx.typesIn.MustLookup(a.st.typ)
	return tt.Format
}
