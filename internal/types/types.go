package types

import (
	"fmt"
	"math"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindFunction
	KindVector
	KindTensor
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindFunction:
		return "function"
	case KindVector:
		return "vector"
	case KindTensor:
		return "tensor"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// MaxIntWidth caps integer element widths. Wide enough for any packed
// constant the IR expresses today.
const MaxIntWidth uint32 = 4096

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Width   uint32      // for integers: bit width, 1..MaxIntWidth
	Format  FloatFormat // for floats
	Elem    TypeID      // for vectors/tensors
	Shape   []int64     // for vectors/tensors; treat as read-only
	Payload uint32      // for functions: index into the FnInfo table
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a fixed-width integer (i1, i8, i32, ...).
func MakeInt(width uint32) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeFloat describes a floating-point type in one of the known formats.
func MakeFloat(format FloatFormat) Type {
	return Type{Kind: KindFloat, Format: format}
}

// MakeVector describes a vector of elem with the given shape.
func MakeVector(elem TypeID, shape []int64) Type {
	return Type{Kind: KindVector, Elem: elem, Shape: shape}
}

// MakeTensor describes a tensor of elem with the given shape.
func MakeTensor(elem TypeID, shape []int64) Type {
	return Type{Kind: KindTensor, Elem: elem, Shape: shape}
}

// IsShaped reports whether the kind carries a shape and element type.
func (k Kind) IsShaped() bool {
	return k == KindVector || k == KindTensor
}

// NumElements returns the element count implied by a shape. The count must
// fit int64; a shape whose product overflows is a programming error.
func NumElements(shape []int64) int64 {
	n, ok := CheckedNumElements(shape)
	if !ok {
		panic(fmt.Errorf("types: element count of shape %v overflows int64", shape))
	}
	return n
}

// CheckedNumElements is the overflow-reporting form for shapes that come
// from external input.
func CheckedNumElements(shape []int64) (int64, bool) {
	n := int64(1)
	for _, d := range shape {
		if d == 0 {
			n = 0
			continue
		}
		if d < 0 || n > math.MaxInt64/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}
