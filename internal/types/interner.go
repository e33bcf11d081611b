package types

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common element types.
type Builtins struct {
	Invalid TypeID
	I1      TypeID
	I8      TypeID
	I16     TypeID
	I32     TypeID
	I64     TypeID
	F16     TypeID
	BF16    TypeID
	F32     TypeID
	F64     TypeID
}

// FnInfo carries the parameter and result types of a function type.
type FnInfo struct {
	Params  []TypeID
	Results []TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Shaped descriptors carry a slice, so the index is keyed by an encoded
// string form rather than a comparable struct.
//
// Lookups only ever see descriptors that are fully interned: ids are handed
// out under the write lock, reads take the read lock, so interning new types
// is safe against concurrent lookups.
type Interner struct {
	mu       sync.RWMutex
	types    []Type
	index    map[string]TypeID
	builtins Builtins
	fns      []FnInfo
}

// NewInterner constructs an interner seeded with built-in element types.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[string]TypeID, 64),
	}
	in.fns = append(in.fns, FnInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.I1 = in.Intern(MakeInt(1))
	in.builtins.I8 = in.Intern(MakeInt(8))
	in.builtins.I16 = in.Intern(MakeInt(16))
	in.builtins.I32 = in.Intern(MakeInt(32))
	in.builtins.I64 = in.Intern(MakeInt(64))
	in.builtins.F16 = in.Intern(MakeFloat(F16))
	in.builtins.BF16 = in.Intern(MakeFloat(BF16))
	in.builtins.F32 = in.Intern(MakeFloat(F32))
	in.builtins.F64 = in.Intern(MakeFloat(F64))
	return in
}

// Builtins returns TypeIDs for the built-in element types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if t.Kind == KindInt && (t.Width == 0 || t.Width > MaxIntWidth) {
		panic(fmt.Errorf("types: integer width %d out of range", t.Width))
	}
	key := typeKey(t)
	if key != "" {
		in.mu.RLock()
		id, ok := in.index[key]
		in.mu.RUnlock()
		if ok {
			return id
		}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if key != "" {
		if id, ok := in.index[key]; ok {
			return id
		}
	}
	return in.internRaw(t)
}

// MakeFunction interns a function type over the given signature.
func (in *Interner) MakeFunction(params, results []TypeID) TypeID {
	key := fnKey(params, results)
	in.mu.RLock()
	id, ok := in.index[key]
	in.mu.RUnlock()
	if ok {
		return id
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[key]; ok {
		return id
	}
	lenFns, err := safecast.Conv[uint32](len(in.fns))
	if err != nil {
		panic(fmt.Errorf("types: fn table overflow: %w", err))
	}
	in.fns = append(in.fns, FnInfo{
		Params:  append([]TypeID(nil), params...),
		Results: append([]TypeID(nil), results...),
	})
	id = in.internRaw(Type{Kind: KindFunction, Payload: lenFns})
	in.index[key] = id
	return id
}

// FnInfoOf returns the signature table entry for a function TypeID.
func (in *Interner) FnInfoOf(id TypeID) (FnInfo, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	t, ok := in.lookup(id)
	if !ok || t.Kind != KindFunction || int(t.Payload) >= len(in.fns) {
		return FnInfo{}, false
	}
	return in.fns[t.Payload], true
}

// internRaw adds the descriptor to the storage without consulting the map.
// Caller holds the write lock (NewInterner runs before any sharing).
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	if key := typeKey(t); key != "" {
		in.index[key] = id
	}
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.lookup(id)
}

func (in *Interner) lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Shaped returns the element type and shape of a vector or tensor type.
func (in *Interner) Shaped(id TypeID) (elem TypeID, shape []int64, ok bool) {
	t, found := in.Lookup(id)
	if !found || !t.Kind.IsShaped() {
		return NoTypeID, nil, false
	}
	return t.Elem, t.Shape, true
}

// ElemBitWidth returns the storage width in bits of an integer or float
// element type, 0 for anything else.
func (in *Interner) ElemBitWidth(id TypeID) uint32 {
	t, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch t.Kind {
	case KindInt:
		return t.Width
	case KindFloat:
		return t.Format.BitWidth()
	default:
		return 0
	}
}

// typeKey encodes a descriptor into a stable index key. Function types are
// keyed separately by signature (see fnKey); they encode to "".
func typeKey(t Type) string {
	switch t.Kind {
	case KindInt:
		return "i" + strconv.FormatUint(uint64(t.Width), 10)
	case KindFloat:
		return "f" + strconv.Itoa(int(t.Format))
	case KindVector, KindTensor:
		var sb strings.Builder
		if t.Kind == KindVector {
			sb.WriteByte('v')
		} else {
			sb.WriteByte('t')
		}
		for _, d := range t.Shape {
			sb.WriteString(strconv.FormatInt(d, 10))
			sb.WriteByte('x')
		}
		sb.WriteString(strconv.FormatUint(uint64(t.Elem), 10))
		return sb.String()
	default:
		return ""
	}
}

func fnKey(params, results []TypeID) string {
	var sb strings.Builder
	sb.WriteString("fn")
	for _, p := range params {
		sb.WriteString(strconv.FormatUint(uint64(p), 10))
		sb.WriteByte(',')
	}
	sb.WriteByte(':')
	for _, r := range results {
		sb.WriteString(strconv.FormatUint(uint64(r), 10))
		sb.WriteByte(',')
	}
	return sb.String()
}
