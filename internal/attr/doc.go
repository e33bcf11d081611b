// Package attr implements the constant/metadata value layer of the IR:
// immutable, uniqued, kind-tagged attribute values owned by a Context.
//
// # Model
//
// An Attr is a thin copyable handle around canonical storage. Two handles are
// equal iff they reference the same storage, so equality and map-key hashing
// are identity operations. Storage is created exactly once per structurally
// equal payload through the Context's intern table and lives until the
// Context is dropped; attributes are never reference counted.
//
// Kinds split in two levels: the outer Kind tag covers the point kinds (unit,
// bool, integer, float, string, type, array, affine map, integer set,
// function) plus a single KindElements tag, and an inner ElementsKind tag
// distinguishes the five tensor-constant encodings (splat, dense integer,
// dense float, opaque, sparse). Family membership is therefore a tag match,
// never an ordinal range comparison.
//
// # Mutability
//
// Interned payloads are immutable with one documented exception: when a
// function object is deleted, Context.DropFunctionReference rewrites every
// function-valued slot that referenced it to empty. A dangling reference
// inside an already-interned attribute would be worse than the breach of
// immutability, so the slot indirection exists exactly for this event.
//
// # Errors
//
// Misuse (downcasting a null handle, mismatched bit widths at construction,
// out-of-range shapes) panics. Recoverable failures — a float constant that
// is not exactly representable in the element format — go through the
// checked factories and a diag.Reporter. Lookup misses (absent name, sparse
// coordinate not stored, element index out of range) return zero values.
package attr
