package attr

import (
	"strconv"

	"lattice/internal/types"
)

// SplatElementsAttr returns the attribute that logically broadcasts one
// scalar over every position of the shaped type. The scalar must be typed
// with the shaped type's element type.
func (c *Context) SplatElementsAttr(t types.TypeID, elt Attr) SplatAttr {
	elem, _ := c.checkShapedElemsType(t)
	if elt.IsNull() {
		panic("attr: splat of a null attribute")
	}
	if elt.Type() != elem {
		panic("attr: splat value type does not match the element type")
	}
	key := "splat:" + strconv.FormatUint(uint64(t), 10) + ":" + strconv.FormatUint(uint64(elt.st.id), 10)
	st := c.getOrCreate(key, func() *storage {
		s := &storage{kind: KindElements, typ: t}
		s.elems = elemsPayload{kind: ElementsSplat, splat: elt}
		return s
	})
	return SplatAttr{ElementsAttr{Attr{st}}}
}

// Value returns the broadcast scalar.
func (s SplatAttr) Value() Attr {
	return s.st.elems.splat
}

// GetValue validates the index against the shape and returns the same
// scalar for every valid position.
func (s SplatAttr) GetValue(index []uint64) Attr {
	if _, ok := linearIndex(s.shape(), index); !ok {
		return Attr{}
	}
	return s.st.elems.splat
}
