package attr

import (
	"math/big"
	"testing"
)

func TestWriteReadBitsRoundTripAllWidths(t *testing.T) {
	for width := uint32(1); width <= 64; width++ {
		// Smallest, largest and a mixed pattern for this width.
		patterns := []*big.Int{
			big.NewInt(0),
			big.NewInt(1),
			truncPattern(big.NewInt(-1), width), // all ones
		}
		if width > 2 {
			patterns = append(patterns, truncPattern(big.NewInt(0x5a5a5a5a5a5a5a5), width))
		}
		for _, p := range patterns {
			buf := make([]byte, bufferBytes(3, width))
			pos := uint64(width) // middle slot of three
			WriteBits(buf, pos, p, width)
			got := ReadBits(buf, pos, width)
			if got.Cmp(p) != 0 {
				t.Fatalf("width %d: wrote %s, read %s", width, p.Text(2), got.Text(2))
			}
		}
	}
}

func TestPackedSequenceRecoversEachValue(t *testing.T) {
	// Pack N values at widths that do and do not divide 8 evenly.
	for _, width := range []uint32{1, 3, 4, 7, 8, 12, 16, 33, 64} {
		const n = 25
		buf := make([]byte, bufferBytes(n, width))
		vals := make([]*big.Int, n)
		for i := 0; i < n; i++ {
			v := big.NewInt(int64(i*2654435761) & 0x7fffffff)
			vals[i] = truncPattern(v, width)
			WriteBits(buf, uint64(i)*uint64(width), vals[i], width)
		}
		for i := 0; i < n; i++ {
			got := ReadBits(buf, uint64(i)*uint64(width), width)
			if got.Cmp(vals[i]) != 0 {
				t.Fatalf("width %d index %d: want %s, got %s", width, i, vals[i], got)
			}
		}
	}
}

func TestWriteBitsSpansByteBoundaries(t *testing.T) {
	buf := make([]byte, bufferBytes(2, 12))
	WriteBits(buf, 4, big.NewInt(0xabc), 12) // straddles bytes 0..1
	if got := ReadBits(buf, 4, 12); got.Int64() != 0xabc {
		t.Fatalf("cross-byte read = %#x", got.Int64())
	}
	// Neighboring bits stay clear.
	if got := ReadBits(buf, 0, 4); got.Sign() != 0 {
		t.Fatalf("low neighbor bits dirtied: %s", got.Text(2))
	}
}

func TestBufferBytesSizing(t *testing.T) {
	// ceil(elementCount*bitWidth/8), rounded up to the minimum alignment.
	cases := []struct {
		count int64
		width uint32
		want  int
	}{
		{1, 1, minAlign},
		{8, 1, minAlign},
		{65, 1, 16},
		{12, 4, minAlign},
		{3, 64, 24},
	}
	for _, c := range cases {
		if got := bufferBytes(c.count, c.width); got != c.want {
			t.Fatalf("bufferBytes(%d, %d) = %d, want %d", c.count, c.width, got, c.want)
		}
	}
}

func TestTruncAndSignedPatterns(t *testing.T) {
	p := truncPattern(big.NewInt(-1), 8)
	if p.Int64() != 0xff {
		t.Fatalf("trunc(-1, 8) = %s", p)
	}
	if got := patternToSigned(p, 8); got.Int64() != -1 {
		t.Fatalf("signed(0xff, 8) = %s", got)
	}
	if got := patternToSigned(big.NewInt(0x7f), 8); got.Int64() != 127 {
		t.Fatalf("signed(0x7f, 8) = %s", got)
	}
}

func TestFitsWidth(t *testing.T) {
	if !fitsWidth(big.NewInt(255), 8) {
		t.Fatalf("255 should fit i8 unsigned")
	}
	if !fitsWidth(big.NewInt(-128), 8) {
		t.Fatalf("-128 should fit i8 signed")
	}
	if fitsWidth(big.NewInt(256), 8) {
		t.Fatalf("256 must not fit i8")
	}
	if fitsWidth(big.NewInt(-129), 8) {
		t.Fatalf("-129 must not fit i8")
	}
}

func TestRawIteratorEquality(t *testing.T) {
	bufA := make([]byte, 16)
	bufB := make([]byte, 16)
	a0 := RawIterator{data: bufA, width: 8}
	a0again := RawIterator{data: bufA, width: 8}
	b0 := RawIterator{data: bufB, width: 8}
	if !a0.Equal(a0again) {
		t.Fatalf("same buffer, same index must be equal")
	}
	if a0.Equal(b0) {
		t.Fatalf("distinct buffers must not compare equal")
	}
	if a0.Equal(a0.Next()) {
		t.Fatalf("distinct indices must not compare equal")
	}
	if !a0.Next().Prev().Equal(a0) {
		t.Fatalf("Next then Prev should return to the start")
	}
}
