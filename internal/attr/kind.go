package attr

import "fmt"

// Kind enumerates the top-level attribute kinds. The five tensor-constant
// encodings share the single KindElements tag; ElementsKind tells them apart.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFloat
	KindString
	KindType
	KindArray
	KindAffineMap
	KindIntegerSet
	KindFunction
	KindElements
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindType:
		return "type"
	case KindArray:
		return "array"
	case KindAffineMap:
		return "affine_map"
	case KindIntegerSet:
		return "integer_set"
	case KindFunction:
		return "function"
	case KindElements:
		return "elements"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ElementsKind enumerates the tensor-constant encodings nested under
// KindElements.
type ElementsKind uint8

const (
	ElementsSplat ElementsKind = iota
	ElementsDenseInt
	ElementsDenseFloat
	ElementsOpaque
	ElementsSparse
)

func (k ElementsKind) String() string {
	switch k {
	case ElementsSplat:
		return "splat"
	case ElementsDenseInt:
		return "dense_int"
	case ElementsDenseFloat:
		return "dense_float"
	case ElementsOpaque:
		return "opaque"
	case ElementsSparse:
		return "sparse"
	default:
		return fmt.Sprintf("ElementsKind(%d)", k)
	}
}

// IsDense reports membership in the two-member dense sub-family.
func (k ElementsKind) IsDense() bool {
	return k == ElementsDenseInt || k == ElementsDenseFloat
}
