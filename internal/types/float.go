package types

import (
	"fmt"
	"math"
)

// FloatFormat selects one of the floating-point encodings an element type may
// use. The format is a property of the type, never of an individual value.
type FloatFormat uint8

const (
	F16 FloatFormat = iota
	BF16
	F32
	F64
)

func (f FloatFormat) String() string {
	switch f {
	case F16:
		return "f16"
	case BF16:
		return "bf16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("FloatFormat(%d)", f)
	}
}

// BitWidth returns the storage width of the format in bits.
func (f FloatFormat) BitWidth() uint32 {
	switch f {
	case F16, BF16:
		return 16
	case F32:
		return 32
	case F64:
		return 64
	}
	panic("types: unknown float format")
}

// expBits and manBits describe the IEEE-style field layout of the format.
func (f FloatFormat) expBits() uint {
	switch f {
	case F16:
		return 5
	case BF16, F32:
		return 8
	case F64:
		return 11
	}
	panic("types: unknown float format")
}

func (f FloatFormat) manBits() uint {
	switch f {
	case F16:
		return 10
	case BF16:
		return 7
	case F32:
		return 23
	case F64:
		return 52
	}
	panic("types: unknown float format")
}

// FromFloat64 converts x into the format's bit pattern, rounding to nearest
// even. The second result reports whether the conversion was exact.
func (f FloatFormat) FromFloat64(x float64) (uint64, bool) {
	if f == F64 {
		return math.Float64bits(x), true
	}
	return shrinkFloat(x, f.expBits(), f.manBits())
}

// ToFloat64 expands one of the format's bit patterns back into a float64.
// Every supported format is a subset of float64, so this never loses value.
func (f FloatFormat) ToFloat64(bits uint64) float64 {
	if f == F64 {
		return math.Float64frombits(bits)
	}
	return widenFloat(bits, f.expBits(), f.manBits())
}

const (
	f64ExpBits = 11
	f64ManBits = 52
	f64Bias    = 1023
)

// shrinkFloat packs a float64 into an eb/mb-field layout with RTNE rounding.
// Returns the packed bits and whether no precision or range was lost.
func shrinkFloat(x float64, eb, mb uint) (uint64, bool) {
	bits := math.Float64bits(x)
	sign := (bits >> 63) << (eb + mb)
	exp := int64((bits>>f64ManBits)&0x7ff) - f64Bias
	man := bits & (1<<f64ManBits - 1)

	bias := int64(1)<<(eb-1) - 1
	expMask := uint64(1)<<eb - 1
	drop := f64ManBits - mb

	// Inf / NaN map to the all-ones exponent.
	if exp == f64Bias+1 {
		if man == 0 {
			return sign | expMask<<mb, true
		}
		qman := man >> drop
		exact := qman<<drop == man
		if qman == 0 {
			qman = 1 << (mb - 1) // keep NaN a NaN, quiet it
			exact = false
		}
		return sign | expMask<<mb | qman, exact
	}

	biased := exp + bias
	if biased >= int64(expMask) {
		// Magnitude beyond the largest finite value: overflow to infinity.
		return sign | expMask<<mb, false
	}

	if biased >= 1 {
		// Normal range for the target.
		out := uint64(biased)<<mb | man>>drop
		exact := man>>drop<<drop == man
		out, carried := roundNearestEven(out, man, drop)
		if carried && out>>mb >= expMask {
			return sign | expMask<<mb, false // rounded up into infinity
		}
		return sign | out, exact
	}

	// Subnormal in the target: shift the full significand (with implicit bit)
	// until the exponent reaches the minimum.
	full := man | 1<<f64ManBits
	shift := drop + uint(1-biased)
	if x == 0 {
		return sign, true
	}
	if shift > 63 {
		return sign, false // underflow to signed zero
	}
	out := full >> shift
	exact := out<<shift == full
	out, _ = roundNearestEven(out, full, shift)
	return sign | out, exact
}

// roundNearestEven rounds out up when the dropped low `shift` bits of src are
// above the halfway point, or exactly halfway with an odd result. The second
// result reports whether an increment happened.
func roundNearestEven(out, src uint64, shift uint) (uint64, bool) {
	if shift == 0 || shift > 63 {
		return out, false
	}
	rem := src & (1<<shift - 1)
	half := uint64(1) << (shift - 1)
	if rem > half || (rem == half && out&1 == 1) {
		return out + 1, true
	}
	return out, false
}

// widenFloat expands an eb/mb-field pattern into a float64. Exact.
func widenFloat(bits uint64, eb, mb uint) float64 {
	expMask := uint64(1)<<eb - 1
	bias := int(1)<<(eb-1) - 1

	sign := bits >> (eb + mb) & 1
	exp := bits >> mb & expMask
	man := bits & (1<<mb - 1)

	var out float64
	switch {
	case exp == expMask && man != 0:
		return math.Float64frombits(sign<<63 | 0x7ff<<f64ManBits | man<<(f64ManBits-mb))
	case exp == expMask:
		out = math.Inf(1)
	case exp == 0:
		out = math.Ldexp(float64(man), 1-bias-int(mb))
	default:
		out = math.Ldexp(float64(man|1<<mb), int(exp)-bias-int(mb))
	}
	if sign == 1 {
		out = -out
	}
	return out
}
