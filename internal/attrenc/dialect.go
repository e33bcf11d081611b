package attrenc

import "lattice/internal/attr"

// NewLitDialect builds the builtin "lit" dialect. Its decode hook treats the
// opaque payload as a msgpack literal and materializes it, refusing payloads
// whose decoded shape disagrees with the constant's declared type.
func NewLitDialect() *attr.Dialect {
	return &attr.Dialect{
		Name: "lit",
		Decode: func(o attr.OpaqueAttr) (attr.ElementsAttr, bool) {
			e, err := Decode(o.Context(), o.Bytes())
			if err != nil {
				return attr.ElementsAttr{}, false
			}
			if e.ShapedType() != o.ShapedType() {
				return attr.ElementsAttr{}, false
			}
			return e, true
		},
	}
}
