package attr

import (
	"fmt"
	"strconv"

	"lattice/internal/types"
)

// SparseElementsAttr returns the coordinate-list encoding of a sparse
// constant: indices is a dense integer attribute of shape [N, rank] holding
// one coordinate row per stored element, values a dense attribute of shape
// [N] with the matching values. rank must equal the sparse type's own rank
// and the values element type must equal the sparse element type.
func (c *Context) SparseElementsAttr(t types.TypeID, indices DenseIntAttr, values DenseAttr) SparseAttr {
	elem, shape := c.checkShapedElemsType(t)

	idxShape := indices.shape()
	valShape := values.shape()
	if len(idxShape) != 2 {
		panic("attr: sparse indices must have shape [N, rank]")
	}
	if len(valShape) != 1 {
		panic("attr: sparse values must have shape [N]")
	}
	if idxShape[0] != valShape[0] {
		panic(fmt.Errorf("attr: %d index rows for %d values", idxShape[0], valShape[0]))
	}
	if idxShape[1] != int64(len(shape)) {
		panic(fmt.Errorf("attr: coordinate rank %d does not match shape rank %d", idxShape[1], len(shape)))
	}
	if values.elemType() != elem {
		panic("attr: sparse values element type does not match the sparse element type")
	}

	key := "sparse:" + strconv.FormatUint(uint64(t), 10) + ":" +
		strconv.FormatUint(uint64(indices.st.id), 10) + ":" +
		strconv.FormatUint(uint64(values.st.id), 10)
	st := c.getOrCreate(key, func() *storage {
		s := &storage{kind: KindElements, typ: t}
		s.elems = elemsPayload{kind: ElementsSparse, indices: indices.Attr, values: values.Attr}
		return s
	})
	return SparseAttr{ElementsAttr{Attr{st}}}
}

// Indices returns the [N, rank] coordinate attribute.
func (s SparseAttr) Indices() DenseIntAttr {
	d, _ := s.st.elems.indices.AsDenseInt()
	return d
}

// Values returns the [N] values attribute.
func (s SparseAttr) Values() DenseAttr {
	d, _ := s.st.elems.values.AsDense()
	return d
}

// GetValue scans the coordinate rows for index. A hit returns the stored
// value; a miss returns the implicit zero of the element type. Should the
// coordinate list carry duplicates, the first matching row wins. An index
// outside the shape is the null attribute.
func (s SparseAttr) GetValue(index []uint64) Attr {
	shape := s.shape()
	if _, ok := linearIndex(shape, index); !ok {
		return Attr{}
	}

	indices := s.Indices()
	values := s.Values()
	rank := len(shape)
	rows := indices.shape()[0]
	rowIt := indices.Iter()

	for row := int64(0); row < rows; row++ {
		match := true
		for dim := 0; dim < rank; dim++ {
			coord := rowIt.Value()
			rowIt = rowIt.Next()
			if !coord.IsUint64() || coord.Uint64() != index[dim] {
				match = false
			}
		}
		if match {
			return values.GetValue([]uint64{uint64(row)})
		}
	}
	return s.st.ctx.zeroElement(s.elemType())
}
