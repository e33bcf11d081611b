package attr

import (
	"math/big"

	"lattice/internal/types"
)

// ElementsKind returns the inner encoding tag.
func (e ElementsAttr) ElementsKind() ElementsKind {
	return e.st.elems.kind
}

// ShapedType returns the vector/tensor type shared by every encoding.
func (e ElementsAttr) ShapedType() types.TypeID {
	return e.st.typ
}

// shape and elemType read the shaped type descriptor.
func (e ElementsAttr) shape() []int64 {
	_, shape, _ := e.st.ctx.typesIn.Shaped(e.st.typ)
	return shape
}

func (e ElementsAttr) elemType() types.TypeID {
	elem, _, _ := e.st.ctx.typesIn.Shaped(e.st.typ)
	return elem
}

// NumElements returns the element count implied by the shape.
func (e ElementsAttr) NumElements() int64 {
	return types.NumElements(e.shape())
}

// GetValue returns the element at the given multi-dimensional index. An
// index that does not name a valid element yields the null attribute.
func (e ElementsAttr) GetValue(index []uint64) Attr {
	switch e.st.elems.kind {
	case ElementsSplat:
		return SplatAttr{e}.GetValue(index)
	case ElementsDenseInt, ElementsDenseFloat:
		return DenseAttr{e}.GetValue(index)
	case ElementsOpaque:
		return OpaqueAttr{e}.GetValue(index)
	case ElementsSparse:
		return SparseAttr{e}.GetValue(index)
	}
	panic("attr: unknown elements encoding")
}

// linearIndex validates index against shape and flattens it row-major.
// ok=false when the index does not name a valid element.
func linearIndex(shape []int64, index []uint64) (int64, bool) {
	if len(index) != len(shape) {
		return 0, false
	}
	var off int64
	for i, d := range shape {
		if d <= 0 || index[i] >= uint64(d) {
			return 0, false
		}
		off = off*d + int64(index[i])
	}
	return off, true
}

// checkShapedElemsType panics unless t is a static vector/tensor type.
// Returns its element type and shape.
func (c *Context) checkShapedElemsType(t types.TypeID) (types.TypeID, []int64) {
	elem, shape, ok := c.typesIn.Shaped(t)
	if !ok {
		panic("attr: elements attribute wants a vector or tensor type")
	}
	checkStaticShape(shape)
	return elem, shape
}

// elementFromPattern materializes one element attribute from a raw pattern
// under the element type: BoolAttr for i1, IntAttr for wider integers,
// FloatAttr for floats.
func (c *Context) elementFromPattern(elem types.TypeID, pattern *big.Int) Attr {
	tt := c.typesIn.MustLookup(elem)
	switch tt.Kind {
	case types.KindInt:
		if tt.Width == 1 {
			return c.BoolAttr(pattern.Bit(0) == 1).Attr
		}
		return c.intFromPattern(elem, pattern).Attr
	case types.KindFloat:
		return c.FloatAttrBits(elem, pattern.Uint64()).Attr
	default:
		panic("attr: element type is neither integer nor float")
	}
}

// elementPattern extracts the bit pattern of a scalar attribute destined for
// a buffer of the given element type. The attribute's type must equal elem
// and its width must equal the element width; anything else is a programming
// error at construction time.
func (c *Context) elementPattern(elem types.TypeID, v Attr) *big.Int {
	if v.IsNull() {
		panic("attr: null element value")
	}
	if v.Type() != elem {
		panic("attr: element value type does not match the shaped element type")
	}
	switch v.Kind() {
	case KindBool:
		if v.st.boolVal {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case KindInt:
		return v.st.intVal
	case KindFloat:
		return new(big.Int).SetUint64(v.st.floatVal)
	default:
		panic("attr: element value must be bool, integer or float")
	}
}

// zeroElement returns the implicit zero/default of an element type: integer
// zero, +0.0, or false for i1.
func (c *Context) zeroElement(elem types.TypeID) Attr {
	return c.elementFromPattern(elem, new(big.Int))
}
