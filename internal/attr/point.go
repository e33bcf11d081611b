package attr

import (
	"fmt"
	"strconv"

	"lattice/internal/ir"
	"lattice/internal/types"
)

// UnitAttr returns the unit attribute. It holds no value; its presence is
// the payload.
func (c *Context) UnitAttr() UnitAttr {
	st := c.getOrCreate("unit", func() *storage {
		return &storage{kind: KindUnit}
	})
	return UnitAttr{Attr{st}}
}

// BoolAttr returns the attribute for value, typed i1.
func (c *Context) BoolAttr(value bool) BoolAttr {
	key := "bool:0"
	if value {
		key = "bool:1"
	}
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindBool, typ: c.typesIn.Builtins().I1, boolVal: value}
	})
	return BoolAttr{Attr{st}}
}

// Value returns the held boolean.
func (a BoolAttr) Value() bool {
	return a.st.boolVal
}

// StringAttr returns the attribute holding the given bytes.
func (c *Context) StringAttr(value string) StringAttr {
	key := "str:" + strconv.Itoa(len(value)) + ":" + value
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindString, strVal: value}
	})
	return StringAttr{Attr{st}}
}

// Value returns the held byte sequence.
func (a StringAttr) Value() string {
	return a.st.strVal
}

// TypeAttr returns the attribute holding a type.
func (c *Context) TypeAttr(t types.TypeID) TypeAttr {
	if t == types.NoTypeID {
		panic("attr: TypeAttr of the invalid type")
	}
	key := "type:" + strconv.FormatUint(uint64(t), 10)
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindType, typ: t}
	})
	return TypeAttr{Attr{st}}
}

// Value returns the held type.
func (a TypeAttr) Value() types.TypeID {
	return a.st.typ
}

// AffineMapAttr returns the attribute referencing an affine map. Maps are
// uniqued by reference identity: the map object itself is owned elsewhere.
func (c *Context) AffineMapAttr(m *ir.AffineMap) AffineMapAttr {
	if m == nil {
		panic("attr: AffineMapAttr of nil map")
	}
	key := fmt.Sprintf("map:%p", m)
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindAffineMap, mapVal: m}
	})
	return AffineMapAttr{Attr{st}}
}

// Value returns the referenced affine map.
func (a AffineMapAttr) Value() *ir.AffineMap {
	return a.st.mapVal
}

// IntegerSetAttr returns the attribute referencing an integer set.
func (c *Context) IntegerSetAttr(s *ir.IntegerSet) IntegerSetAttr {
	if s == nil {
		panic("attr: IntegerSetAttr of nil set")
	}
	key := fmt.Sprintf("set:%p", s)
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindIntegerSet, setVal: s}
	})
	return IntegerSetAttr{Attr{st}}
}

// Value returns the referenced integer set.
func (a IntegerSetAttr) Value() *ir.IntegerSet {
	return a.st.setVal
}

// ArrayAttr returns the attribute holding an ordered list of attributes.
// Arrays are not type homogenous; any kind may nest, including functions.
func (c *Context) ArrayAttr(values []Attr) ArrayAttr {
	key := "arr:"
	for _, v := range values {
		if v.IsNull() {
			panic("attr: null attribute inside an array")
		}
		key += strconv.FormatUint(uint64(v.st.id), 10) + ","
	}
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindArray, arrVal: append([]Attr(nil), values...)}
	})
	return ArrayAttr{Attr{st}}
}

// Values returns the held attributes. Read-only view.
func (a ArrayAttr) Values() []Attr {
	return a.st.arrVal
}

// Size returns the number of held attributes.
func (a ArrayAttr) Size() int {
	return len(a.st.arrVal)
}

// At returns the i-th held attribute.
func (a ArrayAttr) At(i int) Attr {
	return a.st.arrVal[i]
}

// FunctionAttr returns the attribute referencing a function object. The
// payload is an indirect slot so DropFunctionReference can later clear it
// without touching the interned storage.
func (c *Context) FunctionAttr(f *ir.Func) FuncAttr {
	if f == nil {
		panic("attr: FunctionAttr of nil function")
	}
	key := fmt.Sprintf("fn:%p", f)
	st := c.getOrCreate(key, func() *storage {
		return &storage{kind: KindFunction, typ: f.Type, fnSlot: c.newFuncSlot(f)}
	})
	return FuncAttr{Attr{st}}
}

// Value returns the referenced function, or nil if the function was deleted
// and the reference dropped. Callers must expect the nil case when IR is
// transformed across function deletions.
func (a FuncAttr) Value() *ir.Func {
	return a.st.ctx.readFuncSlot(a.st.fnSlot)
}
