package attr

import (
	"math/big"

	"lattice/internal/ir"
	"lattice/internal/types"
)

// Attr is a non-owning handle to canonical attribute storage. The zero Attr
// is the null attribute: lookups that miss return it, and most operations on
// it are programming errors. Attr is comparable and hashable by identity, so
// it can key maps directly.
type Attr struct {
	st *storage
}

// storage is the canonical, context-owned payload of one attribute. One
// instance exists per structurally distinct (kind, payload) within a Context.
// All fields are written once at interning time; the only later write is the
// function slot indirection handled by the Context.
type storage struct {
	kind Kind
	id   uint32 // arena-assigned, stable for the Context lifetime
	typ  types.TypeID
	ctx  *Context

	boolVal  bool
	intVal   *big.Int // two's complement bit pattern, 0 <= intVal < 2^width
	floatVal uint64   // bit pattern under typ's float format
	strVal   string
	arrVal   []Attr
	mapVal   *ir.AffineMap
	setVal   *ir.IntegerSet
	fnSlot   uint32 // index into the Context's function slot table
	elems    elemsPayload
}

// elemsPayload carries the per-encoding payload of a KindElements attribute.
type elemsPayload struct {
	kind    ElementsKind
	splat   Attr              // ElementsSplat
	data    []byte            // dense raw buffer / opaque blob; read-only
	format  types.FloatFormat // ElementsDenseFloat
	dialect *Dialect          // ElementsOpaque
	indices Attr              // ElementsSparse
	values  Attr              // ElementsSparse
}

// IsNull reports whether a is the null attribute.
func (a Attr) IsNull() bool {
	return a.st == nil
}

// Kind returns the attribute's kind tag, KindInvalid for the null attribute.
func (a Attr) Kind() Kind {
	if a.st == nil {
		return KindInvalid
	}
	return a.st.kind
}

// Is reports whether the attribute has the given kind. Calling Is on the
// null attribute is a programming error.
func (a Attr) Is(k Kind) bool {
	if a.st == nil {
		panic("attr: Is on a null attribute")
	}
	return a.st.kind == k
}

// Type returns the attribute's type: the element type for bool/int/float,
// the shaped type for elements, the function type for function references,
// the held type for type attributes, NoTypeID for the rest.
func (a Attr) Type() types.TypeID {
	if a.st == nil {
		return types.NoTypeID
	}
	return a.st.typ
}

// Context returns the owning context, nil for the null attribute.
func (a Attr) Context() *Context {
	if a.st == nil {
		return nil
	}
	return a.st.ctx
}

// Typed wrappers. Each embeds Attr so it converts back for free; the As
// accessors are null-tolerant comma-ok downcasts and the Must accessors
// panic on mismatch.

type UnitAttr struct{ Attr }
type BoolAttr struct{ Attr }
type IntAttr struct{ Attr }
type FloatAttr struct{ Attr }
type StringAttr struct{ Attr }
type TypeAttr struct{ Attr }
type ArrayAttr struct{ Attr }
type AffineMapAttr struct{ Attr }
type IntegerSetAttr struct{ Attr }
type FuncAttr struct{ Attr }

// ElementsAttr is the common view over the five tensor-constant encodings.
type ElementsAttr struct{ Attr }

// DenseAttr covers the two dense encodings (integer and float).
type DenseAttr struct{ ElementsAttr }
type DenseIntAttr struct{ DenseAttr }
type DenseFloatAttr struct{ DenseAttr }
type SplatAttr struct{ ElementsAttr }
type OpaqueAttr struct{ ElementsAttr }
type SparseAttr struct{ ElementsAttr }

func (a Attr) AsUnit() (UnitAttr, bool) {
	if a.st == nil || a.st.kind != KindUnit {
		return UnitAttr{}, false
	}
	return UnitAttr{a}, true
}

func (a Attr) AsBool() (BoolAttr, bool) {
	if a.st == nil || a.st.kind != KindBool {
		return BoolAttr{}, false
	}
	return BoolAttr{a}, true
}

func (a Attr) AsInt() (IntAttr, bool) {
	if a.st == nil || a.st.kind != KindInt {
		return IntAttr{}, false
	}
	return IntAttr{a}, true
}

func (a Attr) AsFloat() (FloatAttr, bool) {
	if a.st == nil || a.st.kind != KindFloat {
		return FloatAttr{}, false
	}
	return FloatAttr{a}, true
}

func (a Attr) AsString() (StringAttr, bool) {
	if a.st == nil || a.st.kind != KindString {
		return StringAttr{}, false
	}
	return StringAttr{a}, true
}

func (a Attr) AsType() (TypeAttr, bool) {
	if a.st == nil || a.st.kind != KindType {
		return TypeAttr{}, false
	}
	return TypeAttr{a}, true
}

func (a Attr) AsArray() (ArrayAttr, bool) {
	if a.st == nil || a.st.kind != KindArray {
		return ArrayAttr{}, false
	}
	return ArrayAttr{a}, true
}

func (a Attr) AsAffineMap() (AffineMapAttr, bool) {
	if a.st == nil || a.st.kind != KindAffineMap {
		return AffineMapAttr{}, false
	}
	return AffineMapAttr{a}, true
}

func (a Attr) AsIntegerSet() (IntegerSetAttr, bool) {
	if a.st == nil || a.st.kind != KindIntegerSet {
		return IntegerSetAttr{}, false
	}
	return IntegerSetAttr{a}, true
}

func (a Attr) AsFunc() (FuncAttr, bool) {
	if a.st == nil || a.st.kind != KindFunction {
		return FuncAttr{}, false
	}
	return FuncAttr{a}, true
}

func (a Attr) AsElements() (ElementsAttr, bool) {
	if a.st == nil || a.st.kind != KindElements {
		return ElementsAttr{}, false
	}
	return ElementsAttr{a}, true
}

// AsDense matches either dense encoding.
func (a Attr) AsDense() (DenseAttr, bool) {
	e, ok := a.AsElements()
	if !ok || !e.st.elems.kind.IsDense() {
		return DenseAttr{}, false
	}
	return DenseAttr{e}, true
}

func (a Attr) AsDenseInt() (DenseIntAttr, bool) {
	d, ok := a.AsDense()
	if !ok || d.st.elems.kind != ElementsDenseInt {
		return DenseIntAttr{}, false
	}
	return DenseIntAttr{d}, true
}

func (a Attr) AsDenseFloat() (DenseFloatAttr, bool) {
	d, ok := a.AsDense()
	if !ok || d.st.elems.kind != ElementsDenseFloat {
		return DenseFloatAttr{}, false
	}
	return DenseFloatAttr{d}, true
}

func (a Attr) AsSplat() (SplatAttr, bool) {
	e, ok := a.AsElements()
	if !ok || e.st.elems.kind != ElementsSplat {
		return SplatAttr{}, false
	}
	return SplatAttr{e}, true
}

func (a Attr) AsOpaque() (OpaqueAttr, bool) {
	e, ok := a.AsElements()
	if !ok || e.st.elems.kind != ElementsOpaque {
		return OpaqueAttr{}, false
	}
	return OpaqueAttr{e}, true
}

func (a Attr) AsSparse() (SparseAttr, bool) {
	e, ok := a.AsElements()
	if !ok || e.st.elems.kind != ElementsSparse {
		return SparseAttr{}, false
	}
	return SparseAttr{e}, true
}

func (a Attr) MustBool() BoolAttr {
	v, ok := a.AsBool()
	if !ok {
		panic("attr: not a bool attribute")
	}
	return v
}

func (a Attr) MustInt() IntAttr {
	v, ok := a.AsInt()
	if !ok {
		panic("attr: not an integer attribute")
	}
	return v
}

func (a Attr) MustFloat() FloatAttr {
	v, ok := a.AsFloat()
	if !ok {
		panic("attr: not a float attribute")
	}
	return v
}

func (a Attr) MustElements() ElementsAttr {
	v, ok := a.AsElements()
	if !ok {
		panic("attr: not an elements attribute")
	}
	return v
}

func (a Attr) MustDense() DenseAttr {
	v, ok := a.AsDense()
	if !ok {
		panic("attr: not a dense elements attribute")
	}
	return v
}

func (a Attr) MustFunc() FuncAttr {
	v, ok := a.AsFunc()
	if !ok {
		panic("attr: not a function attribute")
	}
	return v
}
