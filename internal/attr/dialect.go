package attr

// DecodeFunc materializes a concrete elements attribute from an opaque
// constant. ok=false means the dialect could not interpret the payload; the
// first result is unspecified in that case and callers must check.
type DecodeFunc func(o OpaqueAttr) (ElementsAttr, bool)

// Dialect identifies the owner of opaque constant payloads. The attribute
// layer stores the reference and invokes the decode hook; it never
// interprets the payload itself. Dialects are compared by identity.
type Dialect struct {
	Name   string
	Decode DecodeFunc
}
