// Package ir holds the graph-side objects the attribute layer references:
// function objects, affine maps and integer sets. The operation/region graph
// itself lives elsewhere; attributes only hold references into it.
package ir

import (
	"lattice/internal/source"
	"lattice/internal/types"
)

// Func is a function object. Function attributes reference these by pointer;
// identity is pointer identity. When a Func is deleted its owner must call
// attr.DropFunctionReference so interned attributes stop pointing at it.
type Func struct {
	Name string
	Type types.TypeID // a KindFunction type
	Span source.Span
}

// Module owns a set of functions by name.
type Module struct {
	Funcs map[string]*Func
}

func NewModule() *Module {
	return &Module{Funcs: make(map[string]*Func)}
}

// AddFunc registers a function, replacing any previous one with that name.
func (m *Module) AddFunc(f *Func) {
	m.Funcs[f.Name] = f
}

// AffineMap is an opaque reference to a context-owned affine map. The
// attribute layer only stores and compares these; their semantics live with
// the polyhedral machinery.
type AffineMap struct {
	NumDims    uint32
	NumSymbols uint32
	Repr       string
}

// IntegerSet is an opaque reference to a context-owned integer set.
type IntegerSet struct {
	NumDims    uint32
	NumSymbols uint32
	Repr       string
}
