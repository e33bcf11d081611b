package attr

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
	"golang.org/x/sync/singleflight"

	"lattice/internal/ir"
	"lattice/internal/source"
	"lattice/internal/types"
)

// minAlign is the minimum alignment, in bytes, of dense element buffers.
// Packed buffers are sized in multiples of this.
const minAlign = 8

// Context owns every attribute storage interned through it. Storages are
// keyed by an encoded content form of (kind, payload); equal payloads always
// resolve to the same storage for the Context's lifetime, and storage is
// never relocated. Handles are valid only while their Context is alive.
//
// Interned reads take no lock. Creation of the same payload from multiple
// goroutines is collapsed through a singleflight group, so distinct payloads
// never wait behind each other's construction.
type Context struct {
	mu       sync.RWMutex
	interned map[string]*storage
	lists    map[string]*listStorage
	arena    []*storage
	flight   singleflight.Group

	// funcSlots holds the current referent of every function attribute.
	// DropFunctionReference nils entries here; the attribute storages
	// themselves stay untouched.
	funcSlots []*ir.Func

	dialects map[string]*Dialect

	typesIn *types.Interner

	identsMu sync.Mutex
	idents   *source.Interner
}

func NewContext() *Context {
	return &Context{
		interned: make(map[string]*storage, 128),
		lists:    make(map[string]*listStorage, 16),
		dialects: make(map[string]*Dialect, 4),
		typesIn:  types.NewInterner(),
		idents:   source.NewInterner(),
	}
}

// Types exposes the context's type interner. It synchronizes internally, so
// interning new types is safe against concurrent attribute reads.
func (c *Context) Types() *types.Interner {
	return c.typesIn
}

// Identifier interns an attribute name and returns its stable ID.
func (c *Context) Identifier(name string) source.StringID {
	c.identsMu.Lock()
	defer c.identsMu.Unlock()
	return c.idents.Intern(name)
}

// IdentifierName resolves an identifier back to its string.
func (c *Context) IdentifierName(id source.StringID) string {
	c.identsMu.Lock()
	defer c.identsMu.Unlock()
	s, _ := c.idents.Lookup(id)
	return s
}

// IntType interns an integer element type of the given bit width.
func (c *Context) IntType(width uint32) types.TypeID {
	return c.typesIn.Intern(types.MakeInt(width))
}

// FloatType interns a float element type for the given format.
func (c *Context) FloatType(format types.FloatFormat) types.TypeID {
	return c.typesIn.Intern(types.MakeFloat(format))
}

// TensorType interns a tensor type. Every dimension must be non-negative.
func (c *Context) TensorType(elem types.TypeID, shape []int64) types.TypeID {
	checkStaticShape(shape)
	return c.typesIn.Intern(types.MakeTensor(elem, append([]int64(nil), shape...)))
}

// VectorType interns a vector type. Every dimension must be non-negative.
func (c *Context) VectorType(elem types.TypeID, shape []int64) types.TypeID {
	checkStaticShape(shape)
	return c.typesIn.Intern(types.MakeVector(elem, append([]int64(nil), shape...)))
}

// FuncType interns a function type over the given signature.
func (c *Context) FuncType(params, results []types.TypeID) types.TypeID {
	return c.typesIn.MakeFunction(params, results)
}

func checkStaticShape(shape []int64) {
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Errorf("attr: dimension %d in a constant shape", d))
		}
	}
}

// RegisterDialect makes a dialect known to the context so opaque constants
// can name it and the decode path can find its hook.
func (c *Context) RegisterDialect(d *Dialect) {
	if d == nil || d.Name == "" {
		panic("attr: registering an unnamed dialect")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialects[d.Name] = d
}

// DialectByName returns a registered dialect, nil when unknown.
func (c *Context) DialectByName(name string) *Dialect {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dialects[name]
}

// NumInterned returns the number of attribute storages interned so far.
func (c *Context) NumInterned() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.arena)
}

// getOrCreate resolves the content key to canonical storage, building it at
// most once. build runs outside the context lock.
func (c *Context) getOrCreate(key string, build func() *storage) *storage {
	c.mu.RLock()
	st, ok := c.interned[key]
	c.mu.RUnlock()
	if ok {
		return st
	}

	v, _, _ := c.flight.Do(key, func() (any, error) {
		c.mu.RLock()
		st, ok := c.interned[key]
		c.mu.RUnlock()
		if ok {
			return st, nil
		}
		st = build()
		st.ctx = c

		c.mu.Lock()
		defer c.mu.Unlock()
		nextID, err := safecast.Conv[uint32](len(c.arena) + 1)
		if err != nil {
			panic(fmt.Errorf("attr: arena overflow: %w", err))
		}
		st.id = nextID
		c.arena = append(c.arena, st)
		c.interned[key] = st
		return st, nil
	})
	return v.(*storage)
}

// newFuncSlot appends a slot holding f and returns its index. Called from
// the function attribute factory inside a getOrCreate build.
func (c *Context) newFuncSlot(f *ir.Func) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, err := safecast.Conv[uint32](len(c.funcSlots))
	if err != nil {
		panic(fmt.Errorf("attr: function slot overflow: %w", err))
	}
	c.funcSlots = append(c.funcSlots, f)
	return idx
}

// readFuncSlot returns the current referent of a slot, nil once dropped.
func (c *Context) readFuncSlot(idx uint32) *ir.Func {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.funcSlots[idx]
}

// DropFunctionReference clears every interned function attribute that
// references f. This is the single permitted mutation of interned state: it
// runs when the function object is deleted, because leaving a dangling
// reference inside the context would be worse. The attributes themselves
// remain interned and afterwards report a nil function.
func (c *Context) DropFunctionReference(f *ir.Func) {
	if f == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, fn := range c.funcSlots {
		if fn == f {
			c.funcSlots[i] = nil
		}
	}
}
