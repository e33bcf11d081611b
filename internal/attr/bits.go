package attr

import (
	"fmt"
	"math/big"

	"fortio.org/safecast"

	"lattice/internal/types"
)

// The dense codec packs fixed-width bit fields back to back, LSB first:
// element bit i of the element at position p lives at stream bit
// p*width + i, and stream bit k occupies bit k%8 of buffer byte k/8.
// Fields span byte boundaries freely, so 1- and 4-bit elements pack tight.

// WriteBits stores the low width bits of pattern into buf starting at bitPos.
// The buffer must be pre-sized (see bufferBytes); construction is
// single-writer, so no locking happens here. pattern must be the
// non-negative two's complement bit form (see truncPattern).
func WriteBits(buf []byte, bitPos uint64, pattern *big.Int, width uint32) {
	end := bitPos + uint64(width)
	if end > uint64(len(buf))*8 {
		panic(fmt.Errorf("attr: WriteBits past buffer end (bit %d of %d)", end, len(buf)*8))
	}
	if pattern.Sign() < 0 {
		panic("attr: WriteBits wants a non-negative bit pattern")
	}
	for i := uint64(0); i < uint64(width); i++ {
		k := bitPos + i
		if pattern.Bit(int(i)) == 1 {
			buf[k/8] |= 1 << (k % 8)
		} else {
			buf[k/8] &^= 1 << (k % 8)
		}
	}
}

// ReadBits reconstructs the width-bit pattern starting at bitPos.
func ReadBits(buf []byte, bitPos uint64, width uint32) *big.Int {
	end := bitPos + uint64(width)
	if end > uint64(len(buf))*8 {
		panic(fmt.Errorf("attr: ReadBits past buffer end (bit %d of %d)", end, len(buf)*8))
	}
	out := new(big.Int)
	for i := uint64(0); i < uint64(width); i++ {
		k := bitPos + i
		if buf[k/8]>>(k%8)&1 == 1 {
			out.SetBit(out, int(i), 1)
		}
	}
	return out
}

// bufferBytes returns the byte size of a packed buffer for count elements of
// the given bit width: ceil(count*width/8) rounded up to minAlign.
func bufferBytes(count int64, width uint32) int {
	if count < 0 {
		panic("attr: negative element count")
	}
	bits := uint64(count) * uint64(width)
	n := (bits + 7) / 8
	n = (n + minAlign - 1) &^ (minAlign - 1)
	out, err := safecast.Conv[int](n)
	if err != nil {
		panic(fmt.Errorf("attr: buffer size overflow: %w", err))
	}
	return out
}

// packedBytes is bufferBytes without the alignment padding.
func packedBytes(count int64, width uint32) int {
	bits := uint64(count) * uint64(width)
	out, err := safecast.Conv[int]((bits + 7) / 8)
	if err != nil {
		panic(fmt.Errorf("attr: buffer size overflow: %w", err))
	}
	return out
}

// truncPattern reduces v to its width-bit two's complement pattern as a
// non-negative integer. Negative inputs wrap; the low width bits survive.
func truncPattern(v *big.Int, width uint32) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(width))
	mask.Sub(mask, big.NewInt(1))
	return new(big.Int).And(v, mask)
}

// patternToSigned interprets a width-bit pattern as a signed value.
func patternToSigned(p *big.Int, width uint32) *big.Int {
	if width == 0 || p.Bit(int(width-1)) == 0 {
		return new(big.Int).Set(p)
	}
	out := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return out.Neg(out).Add(out, p)
}

// fitsWidth reports whether v is expressible in width bits under a signed or
// an unsigned reading.
func fitsWidth(v *big.Int, width uint32) bool {
	if v.Sign() >= 0 {
		return v.BitLen() <= int(width)
	}
	// Signed lower bound is -(2^(width-1)).
	low := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	low.Neg(low)
	return v.Cmp(low) >= 0
}

// sameBuffer reports whether two slices share a backing array start.
func sameBuffer(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return &a[0] == &b[0]
}

// RawIterator walks the packed patterns of a dense buffer. It is a value
// type: Next and Prev return moved copies. Two iterators are equal iff they
// view the same buffer and sit at the same index.
type RawIterator struct {
	data  []byte
	width uint32
	index int64
}

// Value reads the pattern at the current position.
func (it RawIterator) Value() *big.Int {
	return ReadBits(it.data, uint64(it.index)*uint64(it.width), it.width)
}

func (it RawIterator) Next() RawIterator {
	it.index++
	return it
}

func (it RawIterator) Prev() RawIterator {
	it.index--
	return it
}

func (it RawIterator) Index() int64 {
	return it.index
}

func (it RawIterator) Equal(other RawIterator) bool {
	return sameBuffer(it.data, other.data) && it.index == other.index
}

// FloatIterator adapts a RawIterator by reinterpreting each pattern under an
// explicit float format. The format is fixed at construction — it is a
// property of the whole attribute, not of individual elements.
type FloatIterator struct {
	raw    RawIterator
	format types.FloatFormat
}

func NewFloatIterator(raw RawIterator, format types.FloatFormat) FloatIterator {
	return FloatIterator{raw: raw, format: format}
}

// Value reinterprets the current pattern as a float64.
func (it FloatIterator) Value() float64 {
	return it.format.ToFloat64(it.raw.Value().Uint64())
}

// Bits returns the current pattern without conversion.
func (it FloatIterator) Bits() uint64 {
	return it.raw.Value().Uint64()
}

func (it FloatIterator) Next() FloatIterator {
	it.raw = it.raw.Next()
	return it
}

func (it FloatIterator) Prev() FloatIterator {
	it.raw = it.raw.Prev()
	return it
}

func (it FloatIterator) Index() int64 {
	return it.raw.Index()
}

func (it FloatIterator) Equal(other FloatIterator) bool {
	return it.raw.Equal(other.raw) && it.format == other.format
}
