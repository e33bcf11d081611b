// Package attrenc serializes elements attributes as msgpack literal
// payloads. The payload is the wire form behind the builtin "lit" dialect's
// opaque constants and the dump tool's input files.
package attrenc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"lattice/internal/attr"
	"lattice/internal/types"
)

// Current schema version - increment when the Literal format changes.
const literalSchemaVersion uint16 = 2

// Literal is the serialized form of one tensor literal. Exactly one of Ints
// and Floats carries the scalar payload, matching the element type.
type Literal struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	Kind  string // "dense" | "splat" | "sparse"
	Base  string // shaped base: "tensor" (or "" for short) | "vector"
	Elem  string // element type label: "i32", "f16", "bf16", ...
	Shape []int64

	Ints   []int64
	Floats []float64

	// Sparse only: row-major [rows*rank] coordinates.
	Coords []int64
	Rows   int64
}

var errWideElements = errors.New("attrenc: element width above 64 bits is not serializable")

// Encode renders an elements attribute into its wire payload. Splat, dense
// and sparse encodings survive a round trip; opaque payloads belong to their
// dialect and are rejected here.
func Encode(e attr.ElementsAttr) ([]byte, error) {
	lit, err := toLiteral(e)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(lit)
}

func toLiteral(e attr.ElementsAttr) (*Literal, error) {
	c := e.Context()
	elem, shape, ok := c.Types().Shaped(e.ShapedType())
	if !ok {
		return nil, errors.New("attrenc: attribute is not shaped")
	}
	lit := &Literal{
		Schema: literalSchemaVersion,
		Elem:   types.Label(c.Types(), elem),
		Shape:  append([]int64(nil), shape...),
	}
	if c.Types().MustLookup(e.ShapedType()).Kind == types.KindVector {
		lit.Base = "vector"
	}

	switch e.ElementsKind() {
	case attr.ElementsSplat:
		lit.Kind = "splat"
		s, _ := e.AsSplat()
		return lit, putScalar(lit, s.Value())
	case attr.ElementsDenseInt:
		lit.Kind = "dense"
		d, _ := e.AsDenseInt()
		if tt := c.Types().MustLookup(elem); tt.Width > 64 {
			return nil, errWideElements
		}
		lit.Ints = d.Int64Values()
		return lit, nil
	case attr.ElementsDenseFloat:
		lit.Kind = "dense"
		d, _ := e.AsDenseFloat()
		lit.Floats = d.FloatValues()
		return lit, nil
	case attr.ElementsSparse:
		lit.Kind = "sparse"
		s, _ := e.AsSparse()
		lit.Coords = s.Indices().Int64Values()
		lit.Rows = s.Indices().Size() / int64(len(shape))
		vals := s.Values()
		if vi, ok := vals.Attr.AsDenseInt(); ok {
			if tt := c.Types().MustLookup(elem); tt.Width > 64 {
				return nil, errWideElements
			}
			lit.Ints = vi.Int64Values()
		} else if vf, ok := vals.Attr.AsDenseFloat(); ok {
			lit.Floats = vf.FloatValues()
		}
		return lit, nil
	default:
		return nil, errors.New("attrenc: opaque payloads are not re-encodable")
	}
}

func putScalar(lit *Literal, v attr.Attr) error {
	switch v.Kind() {
	case attr.KindBool:
		b, _ := v.AsBool()
		var n int64
		if b.Value() {
			n = 1
		}
		lit.Ints = []int64{n}
	case attr.KindInt:
		i, _ := v.AsInt()
		if i.Width() > 64 {
			return errWideElements
		}
		lit.Ints = []int64{i.Value().Int64()}
	case attr.KindFloat:
		f, _ := v.AsFloat()
		lit.Floats = []float64{f.Value()}
	default:
		return fmt.Errorf("attrenc: %v is not a scalar element", v.Kind())
	}
	return nil
}

// Decode parses a literal payload and materializes the attribute in the
// given context. Payload data is external input, so every malformed shape is
// an error, never a panic.
func Decode(c *attr.Context, data []byte) (attr.ElementsAttr, error) {
	var lit Literal
	if err := msgpack.Unmarshal(data, &lit); err != nil {
		return attr.ElementsAttr{}, fmt.Errorf("attrenc: bad payload: %w", err)
	}
	return fromLiteral(c, &lit)
}

func fromLiteral(c *attr.Context, lit *Literal) (attr.ElementsAttr, error) {
	if lit.Schema != literalSchemaVersion {
		return attr.ElementsAttr{}, fmt.Errorf("attrenc: schema %d, want %d", lit.Schema, literalSchemaVersion)
	}
	elem, isFloat, err := parseElem(c, lit.Elem)
	if err != nil {
		return attr.ElementsAttr{}, err
	}
	for _, d := range lit.Shape {
		if d < 0 {
			return attr.ElementsAttr{}, fmt.Errorf("attrenc: negative dimension %d", d)
		}
	}
	count, ok := types.CheckedNumElements(lit.Shape)
	if !ok {
		return attr.ElementsAttr{}, fmt.Errorf("attrenc: element count of shape %v overflows", lit.Shape)
	}
	var shaped types.TypeID
	switch lit.Base {
	case "", "tensor":
		shaped = c.TensorType(elem, lit.Shape)
	case "vector":
		shaped = c.VectorType(elem, lit.Shape)
	default:
		return attr.ElementsAttr{}, fmt.Errorf("attrenc: unknown shaped base %q", lit.Base)
	}

	switch lit.Kind {
	case "splat":
		v, err := oneScalar(c, lit, elem, isFloat)
		if err != nil {
			return attr.ElementsAttr{}, err
		}
		return c.SplatElementsAttr(shaped, v).ElementsAttr, nil
	case "dense":
		d, err := denseFrom(c, lit, shaped, elem, isFloat, count)
		if err != nil {
			return attr.ElementsAttr{}, err
		}
		return d.ElementsAttr, nil
	case "sparse":
		return sparseFrom(c, lit, shaped, elem, isFloat)
	default:
		return attr.ElementsAttr{}, fmt.Errorf("attrenc: unknown literal kind %q", lit.Kind)
	}
}

func denseFrom(c *attr.Context, lit *Literal, shaped, elem types.TypeID, isFloat bool, count int64) (attr.DenseAttr, error) {
	if isFloat {
		if int64(len(lit.Floats)) != count {
			return attr.DenseAttr{}, fmt.Errorf("attrenc: %d floats for %d elements", len(lit.Floats), count)
		}
		values := make([]attr.Attr, len(lit.Floats))
		for i, f := range lit.Floats {
			values[i] = c.FloatAttr(elem, f).Attr
		}
		return c.DenseElementsAttr(shaped, values), nil
	}
	if int64(len(lit.Ints)) != count {
		return attr.DenseAttr{}, fmt.Errorf("attrenc: %d ints for %d elements", len(lit.Ints), count)
	}
	width := c.Types().MustLookup(elem).Width
	for _, v := range lit.Ints {
		if !intFits(v, width) {
			return attr.DenseAttr{}, fmt.Errorf("attrenc: %d does not fit i%d", v, width)
		}
	}
	return c.DenseIntElementsAttr(shaped, lit.Ints).DenseAttr, nil
}

func sparseFrom(c *attr.Context, lit *Literal, shaped, elem types.TypeID, isFloat bool) (attr.ElementsAttr, error) {
	rank := int64(len(lit.Shape))
	if rank == 0 {
		return attr.ElementsAttr{}, errors.New("attrenc: sparse literal needs a rank")
	}
	if lit.Rows < 0 || int64(len(lit.Coords)) != lit.Rows*rank {
		return attr.ElementsAttr{}, fmt.Errorf("attrenc: %d coordinates for %d rows of rank %d", len(lit.Coords), lit.Rows, rank)
	}
	for i, x := range lit.Coords {
		if x < 0 || x >= lit.Shape[i%int(rank)] {
			return attr.ElementsAttr{}, fmt.Errorf("attrenc: coordinate %d out of bounds", x)
		}
	}
	idxType := c.TensorType(c.Types().Builtins().I64, []int64{lit.Rows, rank})
	indices := c.DenseIntElementsAttr(idxType, lit.Coords)

	valType := c.TensorType(elem, []int64{lit.Rows})
	values, err := denseFrom(c, lit, valType, elem, isFloat, lit.Rows)
	if err != nil {
		return attr.ElementsAttr{}, err
	}
	return c.SparseElementsAttr(shaped, indices, values).ElementsAttr, nil
}

func oneScalar(c *attr.Context, lit *Literal, elem types.TypeID, isFloat bool) (attr.Attr, error) {
	if isFloat {
		if len(lit.Floats) != 1 {
			return attr.Attr{}, fmt.Errorf("attrenc: splat wants one float, got %d", len(lit.Floats))
		}
		return c.FloatAttr(elem, lit.Floats[0]).Attr, nil
	}
	if len(lit.Ints) != 1 {
		return attr.Attr{}, fmt.Errorf("attrenc: splat wants one int, got %d", len(lit.Ints))
	}
	v := lit.Ints[0]
	width := c.Types().MustLookup(elem).Width
	if !intFits(v, width) {
		return attr.Attr{}, fmt.Errorf("attrenc: %d does not fit i%d", v, width)
	}
	if width == 1 {
		return c.BoolAttr(v != 0).Attr, nil
	}
	return c.IntAttr(elem, v).Attr, nil
}

// intFits mirrors the interning layer's width check: the value must be
// readable as either the signed or the unsigned interpretation.
func intFits(v int64, width uint32) bool {
	if width >= 64 {
		return true
	}
	lo := int64(-1) << (width - 1)
	hi := (int64(1) << width) - 1
	return v >= lo && v <= hi
}

// parseElem resolves an element type label ("i32", "f16", "bf16") to an
// interned type.
func parseElem(c *attr.Context, label string) (types.TypeID, bool, error) {
	switch label {
	case "f16":
		return c.FloatType(types.F16), true, nil
	case "bf16":
		return c.FloatType(types.BF16), true, nil
	case "f32":
		return c.FloatType(types.F32), true, nil
	case "f64":
		return c.FloatType(types.F64), true, nil
	}
	if rest, ok := strings.CutPrefix(label, "i"); ok {
		width, err := strconv.ParseUint(rest, 10, 32)
		if err == nil && width >= 1 && width <= uint64(types.MaxIntWidth) {
			return c.IntType(uint32(width)), false, nil
		}
	}
	return types.NoTypeID, false, fmt.Errorf("attrenc: unknown element type %q", label)
}
