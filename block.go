package bjpeg

import "math"

// mcuSamples holds the 8x8xBGR pixels of one MCU, row-major: pixel (row,
// col) is at index row*8+col, matching the Raster contract's BGR channel
// order.
type mcuSamples [blockSize][3]uint8

// planarBlock holds one channel's 8x8 samples, row-major (index row*8+col).
type planarBlock [blockSize]float64

// coeffBlock holds 64 quantized coefficients in natural (row-major, not
// zig-zag) order: coeffBlock[row*8+col] is F(u=col, v=row) after
// quantization and rounding.
type coeffBlock [blockSize]int32

// colorConvert splits one MCU's BGR pixels into Y, Cb, Cr planar blocks
// using the JFIF 1.02 full-range BT.601 coefficients. This computes the
// conversion directly rather than through the standard library's
// color.RGBToYCbCr, whose internal rounding doesn't match these exact
// coefficients. Unlike the original C++ source (which converts to YCrCb
// and then swaps Cr/Cb after splitting channels), this produces Y, Cb, Cr
// directly — there is no swap step.
func colorConvert(mcu *mcuSamples) (y, cb, cr planarBlock) {
	for i, px := range mcu {
		b, g, r := float64(px[0]), float64(px[1]), float64(px[2])
		y[i] = 0.299*r + 0.587*g + 0.114*b
		cb[i] = -0.168736*r - 0.331264*g + 0.5*b + 128
		cr[i] = 0.5*r - 0.418688*g - 0.081312*b + 128
	}
	return
}

// cosTable[x][k] = cos((2x+1)*k*pi/16), precomputed for forwardDCT.
var cosTable [8][8]float64

// cNorm[k] is C(k) from the FDCT definition: 1/sqrt(2) for k=0, else 1.
var cNorm [8]float64

func init() {
	for x := 0; x < 8; x++ {
		for k := 0; k < 8; k++ {
			cosTable[x][k] = math.Cos(float64(2*x+1) * float64(k) * math.Pi / 16)
		}
	}
	cNorm[0] = 1 / math.Sqrt2
	for k := 1; k < 8; k++ {
		cNorm[k] = 1
	}
}

// forwardDCT computes the orthonormal 2D forward DCT-II of an 8x8 block of
// level-shifted samples:
//
//	F(u,v) = 1/4 C(u) C(v) Σx Σy f(x,y) cos((2x+1)uπ/16) cos((2y+1)vπ/16)
//
// f(x,y) is samples[y*8+x] (y = spatial row, x = spatial col); the result is
// stored natural row-major as out[v*8+u] (v = vertical/row frequency, u =
// horizontal/col frequency), matching the zigzag table's (row, col) = (v, u)
// convention.
//
// This is the direct O(N^4) definition rather than a separable/fast
// algorithm: no library available here exists for an isolated 8x8 block
// transform with these exact rounding semantics, and a direct sum is cheap
// enough at this block size (see DESIGN.md).
func forwardDCT(samples *planarBlock) (out [blockSize]float64) {
	for v := 0; v < 8; v++ {
		for u := 0; u < 8; u++ {
			var sum float64
			for y := 0; y < 8; y++ {
				rowBase := y * 8
				cy := cosTable[y][v]
				for x := 0; x < 8; x++ {
					sum += samples[rowBase+x] * cosTable[x][u] * cy
				}
			}
			out[v*8+u] = 0.25 * cNorm[u] * cNorm[v] * sum
		}
	}
	return
}

// roundHalfAwayFromZero rounds f to the nearest integer, ties away from
// zero.
func roundHalfAwayFromZero(f float64) int32 {
	if f >= 0 {
		return int32(math.Floor(f + 0.5))
	}
	return int32(math.Ceil(f - 0.5))
}

// transformBlock runs the full block transformer on one channel's samples:
// level shift, forward DCT, quantize against q (a zig-zag-ordered
// quantization table, see tables.go), round to nearest.
func transformBlock(samples *planarBlock, q *[blockSize]uint16) coeffBlock {
	var shifted planarBlock
	for i, s := range samples {
		shifted[i] = s - 128
	}
	dct := forwardDCT(&shifted)

	var out coeffBlock
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			idx := row*8 + col
			divisor := float64(q[unzig[row][col]])
			out[idx] = roundHalfAwayFromZero(dct[idx] / divisor)
		}
	}
	return out
}

// zigzagScan reads a natural-order coefficient block in zig-zag order.
func (c *coeffBlock) zigzagScan() (out [blockSize]int32) {
	for i, rc := range zigzag {
		out[i] = c[rc[0]*8+rc[1]]
	}
	return
}
