package attr

import (
	"fmt"
	"math/big"
	"strconv"

	"lattice/internal/types"
)

// IntAttr returns the attribute for value under the given integer element
// type. The value must fit the type's bit width (signed or unsigned
// reading); a value that does not fit is a programming error.
func (c *Context) IntAttr(t types.TypeID, value int64) IntAttr {
	return c.IntAttrBig(t, big.NewInt(value))
}

// IntAttrBig is IntAttr for arbitrary-precision values.
func (c *Context) IntAttrBig(t types.TypeID, value *big.Int) IntAttr {
	width := c.intWidthOf(t)
	if !fitsWidth(value, width) {
		panic(fmt.Errorf("attr: %s does not fit i%d", value, width))
	}
	return c.intFromPattern(t, truncPattern(value, width))
}

// intFromPattern interns an integer attribute from a ready bit pattern.
func (c *Context) intFromPattern(t types.TypeID, pattern *big.Int) IntAttr {
	width := c.intWidthOf(t)
	if pattern.Sign() < 0 || pattern.BitLen() > int(width) {
		panic("attr: integer pattern out of width")
	}
	key := "int:" + strconv.FormatUint(uint64(t), 10) + ":" + pattern.Text(16)
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindInt, typ: t, intVal: new(big.Int).Set(pattern)}
	})
	return IntAttr{Attr{st}}
}

func (c *Context) intWidthOf(t types.TypeID) uint32 {
	tt, ok := c.typesIn.Lookup(t)
	if !ok || tt.Kind != types.KindInt {
		panic("attr: integer attribute wants an integer element type")
	}
	return tt.Width
}

// Pattern returns a copy of the raw width-bit pattern.
func (a IntAttr) Pattern() *big.Int {
	return new(big.Int).Set(a.st.intVal)
}

// Value returns the signed two's complement reading of the pattern.
func (a IntAttr) Value() *big.Int {
	return patternToSigned(a.st.intVal, a.Width())
}

// Int64 returns the signed value. Widths above 64 bits are a programming
// error here; use Value instead.
func (a IntAttr) Int64() int64 {
	if a.Width() > 64 {
		panic("attr: Int64 on a wide integer attribute")
	}
	return patternToSigned(a.st.intVal, a.Width()).Int64()
}

// Uint64 returns the unsigned reading of the pattern. Widths above 64 bits
// are a programming error here.
func (a IntAttr) Uint64() uint64 {
	if a.Width() > 64 {
		panic("attr: Uint64 on a wide integer attribute")
	}
	return a.st.intVal.Uint64()
}

// Width returns the element type's bit width.
func (a IntAttr) Width() uint32 {
	return a.st.ctx.typesIn.ElemBitWidth(a.st.typ)
}
