package attr

import (
	"fmt"

	"lattice/internal/types"
)

// OpaqueElementsAttr returns the attribute wrapping an uninterpreted byte
// payload owned by a dialect. The bytes are copied.
func (c *Context) OpaqueElementsAttr(d *Dialect, t types.TypeID, blob []byte) OpaqueAttr {
	c.checkShapedElemsType(t)
	if d == nil {
		panic("attr: opaque constant without a dialect")
	}
	key := fmt.Sprintf("opq:%p:%d:%s", d, t, blob)
	st := c.getOrCreate(key, func() *storage {
		s := &storage{kind: KindElements, typ: t}
		s.elems = elemsPayload{kind: ElementsOpaque, data: append([]byte(nil), blob...), dialect: d}
		return s
	})
	return OpaqueAttr{ElementsAttr{Attr{st}}}
}

// Bytes returns the uninterpreted payload. Read-only view.
func (o OpaqueAttr) Bytes() []byte {
	return o.st.elems.data
}

// Dialect returns the dialect owning the payload.
func (o OpaqueAttr) Dialect() *Dialect {
	return o.st.elems.dialect
}

// GetValue is not structurally meaningful for opaque payloads: it returns
// the null attribute for every index. Decode first.
func (o OpaqueAttr) GetValue(index []uint64) Attr {
	return Attr{}
}

// Decode asks the owning dialect to materialize a concrete elements
// attribute. A dialect without a decode hook is a miss, not an error.
func (o OpaqueAttr) Decode() (ElementsAttr, bool) {
	d := o.st.elems.dialect
	if d == nil || d.Decode == nil {
		return ElementsAttr{}, false
	}
	return d.Decode(o)
}
