package bjpeg

import "math/bits"

// category returns SSSS, the minimum number of bits needed to represent the
// magnitude of v: 0 if v is 0, otherwise floor(log2(|v|)) + 1.
//
// bitCount in writer.go only covers byte-range magnitudes because its DC
// deltas happen to stay small at typical quality settings; this encoder's
// DC deltas are not bounded that way (categories run up to 11 for 8-bit
// sample precision), so the category is derived with bits.Len32 instead of
// a LUT.
func category(v int32) uint8 {
	if v < 0 {
		v = -v
	}
	return uint8(bits.Len32(uint32(v)))
}

// amplitudeBits returns the category(v) low bits of the sign-magnitude
// representation of v: v itself if v > 0, or the one's complement of |v|
// (i.e. v + 2^category(v) - 1) if v < 0. Returns 0 for v == 0 (category 0,
// zero bits, the returned value is never examined).
func amplitudeBits(v int32) uint32 {
	if v < 0 {
		cat := category(v)
		return uint32(v + (1 << cat) - 1)
	}
	return uint32(v)
}
