package attrenc

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"lattice/internal/attr"
)

func TestDenseIntRoundTrip(t *testing.T) {
	c := attr.NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I32, []int64{2, 3})
	d := c.DenseIntElementsAttr(tt, []int64{1, -2, 3, -4, 5, -6})

	data, err := Encode(d.ElementsAttr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(c, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Attr != d.Attr {
		t.Fatalf("round trip must land on the interned original")
	}
}

func TestDenseFloatRoundTrip(t *testing.T) {
	c := attr.NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.F16, []int64{3})
	d := c.DenseElementsAttr(tt, []attr.Attr{
		c.FloatAttr(b.F16, 0.5).Attr,
		c.FloatAttr(b.F16, -1).Attr,
		c.FloatAttr(b.F16, 2.25).Attr,
	})

	data, err := Encode(d.ElementsAttr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(c, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Attr != d.Attr {
		t.Fatalf("round trip must land on the interned original")
	}
}

func TestSplatRoundTrip(t *testing.T) {
	c := attr.NewContext()
	b := c.Types().Builtins()

	cases := []attr.SplatAttr{
		c.SplatElementsAttr(c.TensorType(b.I32, []int64{4}), c.IntAttr(b.I32, 11).Attr),
		c.SplatElementsAttr(c.TensorType(b.I1, []int64{2, 2}), c.BoolAttr(true).Attr),
		c.SplatElementsAttr(c.TensorType(b.BF16, []int64{8}), c.FloatAttr(b.BF16, 1.5).Attr),
	}
	for _, s := range cases {
		data, err := Encode(s.ElementsAttr)
		if err != nil {
			t.Fatalf("Encode(%v): %v", s, err)
		}
		got, err := Decode(c, data)
		if err != nil {
			t.Fatalf("Decode(%v): %v", s, err)
		}
		if got.Attr != s.Attr {
			t.Fatalf("round trip of %v landed on %v", s, got)
		}
	}
}

func TestSparseRoundTrip(t *testing.T) {
	c := attr.NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I32, []int64{3, 4})
	indices := c.DenseIntElementsAttr(c.TensorType(b.I64, []int64{2, 2}), []int64{0, 0, 1, 2})
	values := c.DenseIntElementsAttr(c.TensorType(b.I32, []int64{2}), []int64{1, 5})
	sp := c.SparseElementsAttr(tt, indices, values.DenseAttr)

	data, err := Encode(sp.ElementsAttr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(c, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Attr != sp.Attr {
		t.Fatalf("round trip must land on the interned original")
	}
}

func TestVectorRoundTrip(t *testing.T) {
	c := attr.NewContext()
	b := c.Types().Builtins()
	vt := c.VectorType(b.I16, []int64{4})
	d := c.DenseIntElementsAttr(vt, []int64{1, 2, 3, 4})

	data, err := Encode(d.ElementsAttr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(c, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Attr != d.Attr {
		t.Fatalf("a vector literal must round-trip to the same vector type")
	}

	lit := NewLitDialect()
	c.RegisterDialect(lit)
	dec, ok := c.OpaqueElementsAttr(lit, vt, data).Decode()
	if !ok || dec.Attr != d.Attr {
		t.Fatalf("lit hook must accept its own vector payload")
	}
}

func TestDecodeElemWidthBounds(t *testing.T) {
	c := attr.NewContext()

	wide := Literal{Schema: literalSchemaVersion, Kind: "splat", Elem: "i4096", Shape: []int64{2}, Ints: []int64{7}}
	data, err := msgpack.Marshal(&wide)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	e, err := Decode(c, data)
	if err != nil {
		t.Fatalf("i4096 is a valid element width: %v", err)
	}
	if e.NumElements() != 2 {
		t.Fatalf("NumElements = %d", e.NumElements())
	}

	tooWide := wide
	tooWide.Elem = "i4097"
	data, err = msgpack.Marshal(&tooWide)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Decode(c, data); err == nil {
		t.Fatalf("i4097 exceeds the maximum element width")
	}
}

func TestDecodeRejectsOverflowingShapes(t *testing.T) {
	c := attr.NewContext()

	// The dimension product overflows int64 to zero; decoding must fail
	// instead of producing an attribute with no backing elements.
	cases := []Literal{
		{Schema: literalSchemaVersion, Kind: "dense", Elem: "i32", Shape: []int64{1 << 32, 1 << 32}},
		{Schema: literalSchemaVersion, Kind: "splat", Elem: "i32", Shape: []int64{1 << 32, 1 << 32}, Ints: []int64{1}},
	}
	for i, lit := range cases {
		data, err := msgpack.Marshal(&lit)
		if err != nil {
			t.Fatalf("marshal case %d: %v", i, err)
		}
		if _, err := Decode(c, data); err == nil {
			t.Fatalf("case %d: an overflowing shape must fail to decode", i)
		}
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	c := attr.NewContext()

	bad := []Literal{
		{Schema: 99, Kind: "dense", Elem: "i32", Shape: []int64{1}, Ints: []int64{0}},
		{Schema: literalSchemaVersion, Kind: "dense", Elem: "i0", Shape: []int64{1}, Ints: []int64{0}},
		{Schema: literalSchemaVersion, Kind: "dense", Elem: "q32", Shape: []int64{1}, Ints: []int64{0}},
		{Schema: literalSchemaVersion, Kind: "dense", Elem: "i32", Shape: []int64{2}, Ints: []int64{0}},
		{Schema: literalSchemaVersion, Kind: "dense", Elem: "i8", Shape: []int64{1}, Ints: []int64{400}},
		{Schema: literalSchemaVersion, Kind: "dense", Elem: "i32", Shape: []int64{-1}, Ints: nil},
		{Schema: literalSchemaVersion, Kind: "blob", Elem: "i32", Shape: []int64{1}, Ints: []int64{0}},
		{Schema: literalSchemaVersion, Kind: "splat", Elem: "f32", Shape: []int64{2}, Floats: []float64{1, 2}},
		{Schema: literalSchemaVersion, Kind: "sparse", Elem: "i32", Shape: []int64{3}, Rows: 2, Coords: []int64{0}, Ints: []int64{1, 2}},
		{Schema: literalSchemaVersion, Kind: "sparse", Elem: "i32", Shape: []int64{3}, Rows: 1, Coords: []int64{7}, Ints: []int64{1}},
	}
	for i, lit := range bad {
		data, err := msgpack.Marshal(&lit)
		if err != nil {
			t.Fatalf("marshal case %d: %v", i, err)
		}
		if _, err := Decode(c, data); err == nil {
			t.Fatalf("case %d must fail to decode", i)
		}
	}
	if _, err := Decode(c, []byte{0xc1}); err == nil {
		t.Fatalf("garbage bytes must fail to decode")
	}
}

func TestEncodeRejectsOpaqueAndWide(t *testing.T) {
	c := attr.NewContext()
	b := c.Types().Builtins()

	o := c.OpaqueElementsAttr(&attr.Dialect{Name: "quant"}, c.TensorType(b.I8, []int64{1}), []byte{1})
	if _, err := Encode(o.ElementsAttr); err == nil {
		t.Fatalf("opaque payloads are not re-encodable")
	}

	wide := c.TensorType(c.IntType(128), []int64{1})
	d := c.DenseElementsAttr(wide, []attr.Attr{c.IntAttr(c.IntType(128), 1).Attr})
	if _, err := Encode(d.ElementsAttr); err == nil {
		t.Fatalf("128-bit elements do not fit the wire form")
	}
}

func TestLitDialectDecodeHook(t *testing.T) {
	c := attr.NewContext()
	b := c.Types().Builtins()
	lit := NewLitDialect()
	c.RegisterDialect(lit)

	tt := c.TensorType(b.I32, []int64{2})
	want := c.DenseIntElementsAttr(tt, []int64{4, 2})
	data, err := Encode(want.ElementsAttr)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	o := c.OpaqueElementsAttr(lit, tt, data)
	got, ok := o.Decode()
	if !ok {
		t.Fatalf("hook must decode its own payload")
	}
	if got.Attr != want.Attr {
		t.Fatalf("decoded %v, want %v", got, want)
	}

	// A payload whose shape disagrees with the constant's type is refused.
	other := c.TensorType(b.I32, []int64{2, 1})
	if _, ok := c.OpaqueElementsAttr(lit, other, data).Decode(); ok {
		t.Fatalf("shape mismatch must refuse to decode")
	}
	if _, ok := c.OpaqueElementsAttr(lit, tt, []byte("junk")).Decode(); ok {
		t.Fatalf("garbage must refuse to decode")
	}
}
