package bjpeg

// Raster is the pixel source this encoder consumes: a rectangular grid of
// BGR pixels, addressed by column then row. Decoding a PNG, JPEG, or any
// other image format into a Raster is the caller's responsibility — this
// package only ever reads pixels through this interface.
type Raster interface {
	// Dimensions returns the raster's width and height in pixels. Both must
	// be positive.
	Dimensions() (width, height int)

	// At returns the BGR value of the pixel at (x, y), 0 <= x < width,
	// 0 <= y < height.
	At(x, y int) (b, g, r uint8)
}

// paddedDimensions rounds width and height up to the next multiple of 8, the
// MCU edge length this encoder always uses (no chroma subsampling).
func paddedDimensions(width, height int) (paddedWidth, paddedHeight int) {
	return padTo8(width), padTo8(height)
}

func padTo8(n int) int {
	return (n + 7) &^ 7
}

// paddedRaster wraps a Raster and extends it to a multiple-of-8 size by
// replicating edge pixels — grounded on the original C++ source's use of
// cv::copyMakeBorder(..., cv::BORDER_REPLICATE) in RLC::MCUtoRLC.
type paddedRaster struct {
	src                    Raster
	width, height          int
	paddedWidth, paddedHeight int
}

func newPaddedRaster(src Raster) *paddedRaster {
	w, h := src.Dimensions()
	pw, ph := paddedDimensions(w, h)
	return &paddedRaster{src: src, width: w, height: h, paddedWidth: pw, paddedHeight: ph}
}

func (p *paddedRaster) at(x, y int) (b, g, r uint8) {
	if x >= p.width {
		x = p.width - 1
	}
	if y >= p.height {
		y = p.height - 1
	}
	return p.src.At(x, y)
}

// readMCU reads the 8x8 BGR block whose top-left pixel is (mcuX*8, mcuY*8),
// replicating edge pixels past the source raster's true bounds.
func (p *paddedRaster) readMCU(mcuX, mcuY int) mcuSamples {
	var out mcuSamples
	originX, originY := mcuX*8, mcuY*8
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			b, g, r := p.at(originX+col, originY+row)
			out[row*8+col] = [3]uint8{b, g, r}
		}
	}
	return out
}

// mcusAcross and mcusDown report the MCU grid dimensions.
func (p *paddedRaster) mcusAcross() int { return p.paddedWidth / 8 }
func (p *paddedRaster) mcusDown() int   { return p.paddedHeight / 8 }
