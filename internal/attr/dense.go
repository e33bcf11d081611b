package attr

import (
	"fmt"
	"math/big"
	"strconv"

	"lattice/internal/types"
)

// DenseElementsAttr packs an explicit sequence of element values into a
// single bit-packed buffer. values must supply exactly one element per
// position of the shaped type, each typed with the element type; a count or
// width mismatch is a programming error.
func (c *Context) DenseElementsAttr(t types.TypeID, values []Attr) DenseAttr {
	elem, shape := c.checkShapedElemsType(t)
	count := types.NumElements(shape)
	if int64(len(values)) != count {
		panic(fmt.Errorf("attr: %d values for %d elements", len(values), count))
	}
	width := c.typesIn.ElemBitWidth(elem)
	buf := make([]byte, bufferBytes(count, width))
	for i, v := range values {
		WriteBits(buf, uint64(i)*uint64(width), c.elementPattern(elem, v), width)
	}
	return c.denseFromBuffer(t, elem, buf)
}

// DenseIntElementsAttr is the integer convenience form: one int64 per
// element, each of which must fit the element bit width.
func (c *Context) DenseIntElementsAttr(t types.TypeID, values []int64) DenseIntAttr {
	elem, shape := c.checkShapedElemsType(t)
	tt := c.typesIn.MustLookup(elem)
	if tt.Kind != types.KindInt {
		panic("attr: DenseIntElementsAttr wants an integer element type")
	}
	count := types.NumElements(shape)
	if int64(len(values)) != count {
		panic(fmt.Errorf("attr: %d values for %d elements", len(values), count))
	}
	width := tt.Width
	buf := make([]byte, bufferBytes(count, width))
	for i, v := range values {
		bv := big.NewInt(v)
		if !fitsWidth(bv, width) {
			panic(fmt.Errorf("attr: %d does not fit i%d", v, width))
		}
		WriteBits(buf, uint64(i)*uint64(width), truncPattern(bv, width), width)
	}
	d := c.denseFromBuffer(t, elem, buf)
	return DenseIntAttr{d}
}

// DenseElementsRaw wraps pre-packed element data. The input must already be
// truncated to the element bit width and hold exactly
// ceil(count*width/8) bytes; it is copied into an aligned buffer.
func (c *Context) DenseElementsRaw(t types.TypeID, data []byte) DenseAttr {
	elem, shape := c.checkShapedElemsType(t)
	width := c.typesIn.ElemBitWidth(elem)
	count := types.NumElements(shape)
	if len(data) != packedBytes(count, width) {
		panic(fmt.Errorf("attr: raw buffer is %d bytes, want %d", len(data), packedBytes(count, width)))
	}
	buf := make([]byte, bufferBytes(count, width))
	copy(buf, data)
	return c.denseFromBuffer(t, elem, buf)
}

// denseFromBuffer interns a dense attribute over an owned, aligned buffer.
// The encoding (integer vs float) follows the element type.
func (c *Context) denseFromBuffer(t types.TypeID, elem types.TypeID, buf []byte) DenseAttr {
	tt := c.typesIn.MustLookup(elem)
	var ekind ElementsKind
	var key string
	switch tt.Kind {
	case types.KindInt:
		ekind = ElementsDenseInt
		key = "dint:"
	case types.KindFloat:
		ekind = ElementsDenseFloat
		key = "dfp:"
	default:
		panic("attr: dense element type is neither integer nor float")
	}
	key += strconv.FormatUint(uint64(t), 10) + ":" + string(buf)
	st := c.getOrCreate(key, func() *storage {
		s := &storage{kind: KindElements, typ: t}
		s.elems = elemsPayload{kind: ekind, data: buf}
		if ekind == ElementsDenseFloat {
			s.elems.format = tt.Format
		}
		return s
	})
	return DenseAttr{ElementsAttr{Attr{st}}}
}

// Size returns the number of elements held by this attribute.
func (d DenseAttr) Size() int64 {
	return d.NumElements()
}

// RawData returns the packed buffer. Read-only view, aligned to the
// context's minimum alignment.
func (d DenseAttr) RawData() []byte {
	return d.st.elems.data
}

func (d DenseAttr) elemWidth() uint32 {
	return d.st.ctx.typesIn.ElemBitWidth(d.elemType())
}

// GetValue returns the element at index, or the null attribute when the
// index does not name a valid element.
func (d DenseAttr) GetValue(index []uint64) Attr {
	off, ok := linearIndex(d.shape(), index)
	if !ok {
		return Attr{}
	}
	width := d.elemWidth()
	pattern := ReadBits(d.st.elems.data, uint64(off)*uint64(width), width)
	return d.st.ctx.elementFromPattern(d.elemType(), pattern)
}

// Values expands every element into its attribute form, in row-major order.
func (d DenseAttr) Values() []Attr {
	count := d.Size()
	out := make([]Attr, 0, count)
	elem := d.elemType()
	for it := d.Iter(); it.Index() < count; it = it.Next() {
		out = append(out, d.st.ctx.elementFromPattern(elem, it.Value()))
	}
	return out
}

// Iter returns a raw iterator positioned at the first element.
func (d DenseAttr) Iter() RawIterator {
	return RawIterator{data: d.st.elems.data, width: d.elemWidth()}
}

// End returns the one-past-the-end iterator position.
func (d DenseAttr) End() RawIterator {
	return RawIterator{data: d.st.elems.data, width: d.elemWidth(), index: d.Size()}
}

// BigValues returns every raw pattern, in row-major order.
func (d DenseIntAttr) BigValues() []*big.Int {
	out := make([]*big.Int, 0, d.Size())
	for it := d.Iter(); it.Index() < d.Size(); it = it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// Int64Values returns the signed reading of every element. Element widths
// above 64 bits are a programming error here.
func (d DenseIntAttr) Int64Values() []int64 {
	width := d.elemWidth()
	if width > 64 {
		panic("attr: Int64Values on a wide integer element type")
	}
	out := make([]int64, 0, d.Size())
	for it := d.Iter(); it.Index() < d.Size(); it = it.Next() {
		out = append(out, patternToSigned(it.Value(), width).Int64())
	}
	return out
}

// Format returns the float format every element is encoded in.
func (d DenseFloatAttr) Format() types.FloatFormat {
	return d.st.elems.format
}

// FloatIter returns the adapting iterator positioned at the first element.
func (d DenseFloatAttr) FloatIter() FloatIterator {
	return NewFloatIterator(d.Iter(), d.st.elems.format)
}

// FloatValues returns every element widened to float64, in row-major order.
func (d DenseFloatAttr) FloatValues() []float64 {
	out := make([]float64, 0, d.Size())
	for it := d.FloatIter(); it.Index() < d.Size(); it = it.Next() {
		out = append(out, it.Value())
	}
	return out
}
