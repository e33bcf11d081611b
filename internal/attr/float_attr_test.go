package attr

import (
	"math"
	"testing"

	"lattice/internal/diag"
	"lattice/internal/source"
)

func TestFloatAttrCheckedAcceptsExactValues(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	bag := diag.NewBag(4)

	fa, ok := c.FloatAttrChecked(b.F16, 0.5, source.Span{}, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("0.5 is exact in f16")
	}
	if fa.Value() != 0.5 {
		t.Fatalf("value = %g", fa.Value())
	}
	if bag.Len() != 0 {
		t.Fatalf("no diagnostics expected, got %d", bag.Len())
	}
}

func TestFloatAttrCheckedReportsInexactValues(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	bag := diag.NewBag(4)
	loc := source.Span{File: 3, Start: 14, End: 18}

	fa, ok := c.FloatAttrChecked(b.F16, 1.1, loc, diag.BagReporter{Bag: bag})
	if ok || !fa.IsNull() {
		t.Fatalf("1.1 is not exact in f16; got ok=%v attr=%v", ok, fa)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.AttrFloatNotRepresentable {
		t.Fatalf("code = %v", d.Code)
	}
	if d.Primary != loc {
		t.Fatalf("diagnostic lost its location: %v", d.Primary)
	}
}

func TestFloatAttrUncheckedRounds(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	// The unchecked factory rounds; 1.1 lands on the nearest f16.
	fa := c.FloatAttr(b.F16, 1.1)
	if fa.IsNull() {
		t.Fatalf("unchecked factory must not fail")
	}
	if fa.Value() == 1.1 {
		t.Fatalf("1.1 cannot be exact in f16")
	}
	if diff := fa.Value() - 1.1; diff > 0.001 || diff < -0.001 {
		t.Fatalf("rounded value %g too far from 1.1", fa.Value())
	}
}

func TestFloatAttrBitsRejectsWidePatterns(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	defer func() {
		if recover() == nil {
			t.Fatalf("a pattern beyond the format width must panic")
		}
	}()
	c.FloatAttrBits(b.F16, 1<<20)
}

func TestFloatAttrUniquesByBitPattern(t *testing.T) {
	c := NewContext()
	b := c.Types().Builtins()
	if c.FloatAttrBits(b.F32, 0x3f800000) != c.FloatAttr(b.F32, 1.0) {
		t.Fatalf("equal bit patterns must unique")
	}
	negZero := math.Copysign(0, -1)
	if c.FloatAttr(b.F32, 0.0) == c.FloatAttr(b.F32, negZero) {
		t.Fatalf("+0.0 and -0.0 have distinct patterns and must differ")
	}
	if got := c.FloatAttr(b.F32, negZero).Bits(); got != 0x80000000 {
		t.Fatalf("-0.0 bits = %#x", got)
	}
}
