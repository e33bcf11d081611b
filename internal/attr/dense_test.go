package attr

import (
	"testing"

	"lattice/internal/types"
)

func TestDenseSizeMatchesShape(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I32, []int64{3, 4})
	d := c.DenseIntElementsAttr(tt, make([]int64, 12))
	if d.Size() != 12 {
		t.Fatalf("size = %d, want 12", d.Size())
	}
}

func TestDenseGetValueRowMajor(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I32, []int64{2, 3})
	d := c.DenseIntElementsAttr(tt, []int64{10, 11, 12, 20, 21, 22})

	v := d.GetValue([]uint64{1, 2})
	iv, ok := v.AsInt()
	if !ok || iv.Int64() != 22 {
		t.Fatalf("GetValue([1,2]) = %v", v)
	}
	if got := d.GetValue([]uint64{2, 0}); !got.IsNull() {
		t.Fatalf("out-of-range index must return the null attribute")
	}
	if got := d.GetValue([]uint64{0}); !got.IsNull() {
		t.Fatalf("rank mismatch must return the null attribute")
	}
}

func TestDenseTightPackingI1(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I1, []int64{10})

	vals := make([]Attr, 10)
	want := make([]bool, 10)
	for i := range vals {
		want[i] = i%3 == 0
		vals[i] = c.BoolAttr(want[i]).Attr
	}
	d := c.DenseElementsAttr(tt, vals)

	// 10 one-bit elements pack into two bytes (padded to alignment).
	if got := len(d.RawData()); got != minAlign {
		t.Fatalf("raw buffer is %d bytes", got)
	}
	for i := 0; i < 10; i++ {
		got, ok := d.GetValue([]uint64{uint64(i)}).AsBool()
		if !ok || got.Value() != want[i] {
			t.Fatalf("element %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestDenseNarrowWidths(t *testing.T) {
	c := NewContext()
	i4 := c.IntType(4)
	tt := c.TensorType(i4, []int64{5})
	d := c.DenseIntElementsAttr(tt, []int64{7, -8, 3, -1, 0})
	got := d.Int64Values()
	want := []int64{7, -8, 3, -1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("i4 element %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDenseElementsRejectsWidthMismatch(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I32, []int64{2})
	defer func() {
		if recover() == nil {
			t.Fatalf("an i64-typed element in an i32 tensor must panic")
		}
	}()
	c.DenseElementsAttr(tt, []Attr{c.IntAttr(b.I64, 1).Attr, c.IntAttr(b.I64, 2).Attr})
}

func TestDenseElementsRejectsCountMismatch(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I32, []int64{4})
	defer func() {
		if recover() == nil {
			t.Fatalf("element count mismatch must panic")
		}
	}()
	c.DenseIntElementsAttr(tt, []int64{1, 2})
}

func TestDenseRawRoundTrip(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I8, []int64{3})
	d := c.DenseElementsRaw(tt, []byte{1, 2, 3})
	got := d.MustDense()
	vals := DenseIntAttr{got}.Int64Values()
	if vals[0] != 1 || vals[2] != 3 {
		t.Fatalf("raw round trip = %v", vals)
	}
}

func TestDenseFloatValues(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.F32, []int64{2, 2})
	vals := []Attr{
		c.FloatAttr(b.F32, 1.5).Attr,
		c.FloatAttr(b.F32, -2.0).Attr,
		c.FloatAttr(b.F32, 0.25).Attr,
		c.FloatAttr(b.F32, 8.0).Attr,
	}
	d := c.DenseElementsAttr(tt, vals)
	df, ok := d.Attr.AsDenseFloat()
	if !ok {
		t.Fatalf("float tensor must produce the dense float encoding")
	}
	if df.Format() != types.F32 {
		t.Fatalf("format = %v", df.Format())
	}
	got := df.FloatValues()
	want := []float64{1.5, -2.0, 0.25, 8.0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %g, want %g", i, got[i], want[i])
		}
	}
	v, ok := d.GetValue([]uint64{0, 1}).AsFloat()
	if !ok || v.Value() != -2.0 {
		t.Fatalf("GetValue([0,1]) = %v", v)
	}
}

func TestDenseFloatF16Storage(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.F16, []int64{3})
	vals := []Attr{
		c.FloatAttr(b.F16, 1.0).Attr,
		c.FloatAttr(b.F16, -0.5).Attr,
		c.FloatAttr(b.F16, 65504).Attr,
	}
	d := c.DenseElementsAttr(tt, vals)
	df, _ := d.Attr.AsDenseFloat()
	got := df.FloatValues()
	want := []float64{1.0, -0.5, 65504}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("f16 element %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestDenseIteratorWalk(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	tt := c.TensorType(b.I16, []int64{4})
	d := c.DenseIntElementsAttr(tt, []int64{5, 6, 7, 8})

	it := d.Iter()
	end := d.End()
	var got []int64
	for !it.Equal(end) {
		got = append(got, it.Value().Int64())
		it = it.Next()
	}
	if len(got) != 4 || got[0] != 5 || got[3] != 8 {
		t.Fatalf("iterator walk = %v", got)
	}
	// Bidirectional: step back from the end.
	if last := end.Prev().Value().Int64(); last != 8 {
		t.Fatalf("Prev from end = %d", last)
	}
	// Same storage means same buffer: iterators from a re-uniqued handle
	// compare equal position-for-position.
	d2 := c.DenseIntElementsAttr(tt, []int64{5, 6, 7, 8})
	if !d2.Iter().Equal(d.Iter()) {
		t.Fatalf("iterators over the same canonical buffer must be equal")
	}
}
