package types

import (
	"math"
	"math/bits"
)

// Magic number identifying a serialized scene buffer: ASCII "SCEN" packed
// into a 32-bit word.
const Magic uint32 = 0x5343454E

// ToFixed converts a float into Q15.16 fixed-point, rounding half-to-even in
// 64-bit arithmetic before narrowing to 32 bits. Overflow wraps via
// two's-complement reinterpretation, matching to_fixedpt in the reference
// implementation this format was ported from.
func ToFixed(x float32) uint32 {
	scaled := math.RoundToEven(float64(x) * 65536.0)
	return uint32(int64(scaled))
}

// FromFixed decodes a Q15.16 fixed-point word back into a float.
func FromFixed(w uint32) float32 {
	return float32(int32(w)) / 65536.0
}

// ByteSwap32 reverses the four bytes of a 32-bit word.
func ByteSwap32(w uint32) uint32 {
	return bits.ReverseBytes32(w)
}

// Ulog2 returns floor(log2(n)), defined for n >= 1.
func Ulog2(n uint32) uint32 {
	return uint32(bits.Len32(n)) - 1
}

// IsPowOfTwo reports whether n has exactly one set bit.
func IsPowOfTwo(n uint32) bool {
	return n != 0 && bits.OnesCount32(n) == 1
}
