package bjpeg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// markerIndex returns the byte offset of the first 0xFF <marker> pair after
// from, or -1 if not found. It skips stuffed 0xFF 0x00 pairs inside the
// entropy-coded scan.
func markerIndex(data []byte, marker byte, from int) int {
	for i := from; i+1 < len(data); i++ {
		if data[i] == 0xff && data[i+1] == marker {
			return i
		}
	}
	return -1
}

func encodeToBuffer(t *testing.T, r Raster, opts *Options) []byte {
	t.Helper()
	s := &memSink{}
	enc := NewEncoder()
	require.NoError(t, enc.Encode(s, r, opts))
	return s.buf
}

func TestEncodeFramingOrder(t *testing.T) {
	data := encodeToBuffer(t, solidRaster{width: 8, height: 8, b: 128, g: 128, r: 128}, nil)

	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
	assert.Equal(t, []byte{0xff, 0xd9}, data[len(data)-2:])

	app0 := markerIndex(data, 0xe0, 0)
	dqt := markerIndex(data, 0xdb, 0)
	sof0 := markerIndex(data, 0xc0, 0)
	dht := markerIndex(data, 0xc4, 0)
	sos := markerIndex(data, 0xda, 0)

	require.NotEqual(t, -1, app0)
	require.NotEqual(t, -1, dqt)
	require.NotEqual(t, -1, sof0)
	require.NotEqual(t, -1, dht)
	require.NotEqual(t, -1, sos)
	assert.Less(t, app0, dqt)
	assert.Less(t, dqt, sof0)
	assert.Less(t, sof0, dht)
	assert.Less(t, dht, sos)
}

func TestEncodeSolidWhite16x16(t *testing.T) {
	data := encodeToBuffer(t, solidRaster{width: 16, height: 16, b: 255, g: 255, r: 255}, nil)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
	assert.Equal(t, []byte{0xff, 0xd9}, data[len(data)-2:])
}

func TestEncodeChecker7x7(t *testing.T) {
	data := encodeToBuffer(t, checkerRaster{width: 7, height: 7}, nil)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
	assert.Equal(t, []byte{0xff, 0xd9}, data[len(data)-2:])
}

// gradientRaster ramps the red channel left to right.
type gradientRaster struct{ width, height int }

func (g gradientRaster) Dimensions() (int, int) { return g.width, g.height }
func (g gradientRaster) At(x, y int) (uint8, uint8, uint8) {
	return 0, 0, uint8(x * 255 / (g.width - 1))
}

func TestEncodeGradient8x8(t *testing.T) {
	data := encodeToBuffer(t, gradientRaster{width: 8, height: 8}, nil)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
	assert.Equal(t, []byte{0xff, 0xd9}, data[len(data)-2:])
}

func TestEncodeSingleRow256x1(t *testing.T) {
	data := encodeToBuffer(t, gradientRaster{width: 256, height: 1}, nil)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
	assert.Equal(t, []byte{0xff, 0xd9}, data[len(data)-2:])
}

// noisyRaster is a checkerboard of gray and pure red pixels. Its 8x8 block
// quantizes to coefficients separated by runs of more than 15 zeroes in all
// three channels, exercising the ZRL path in the RLC coder end to end.
type noisyRaster struct{ width, height int }

func (n noisyRaster) Dimensions() (int, int) { return n.width, n.height }
func (n noisyRaster) At(x, y int) (uint8, uint8, uint8) {
	if (x+y)%2 == 1 {
		return 0, 0, 255
	}
	return 128, 128, 128
}

func TestEncodeBlockExercisingZRL(t *testing.T) {
	data := encodeToBuffer(t, noisyRaster{width: 8, height: 8}, nil)
	assert.Equal(t, []byte{0xff, 0xd8}, data[:2])
	assert.Equal(t, []byte{0xff, 0xd9}, data[len(data)-2:])
}

func TestEncodeCommentSegmentOptIn(t *testing.T) {
	r := solidRaster{width: 8, height: 8, b: 1, g: 1, r: 1}

	withComment := encodeToBuffer(t, r, &Options{Comment: "hand tuned"})
	withoutComment := encodeToBuffer(t, r, nil)

	assert.NotEqual(t, -1, markerIndex(withComment, 0xfe, 0))
	assert.Equal(t, -1, markerIndex(withoutComment, 0xfe, 0))
	assert.True(t, bytes.Contains(withComment, []byte("hand tuned")))
}

func TestEncodeRejectsEmptyRaster(t *testing.T) {
	s := &memSink{}
	enc := NewEncoder()
	err := enc.Encode(s, solidRaster{width: 0, height: 8}, nil)
	require.Error(t, err)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, InvalidInput, encErr.Kind)
}

func TestEncodeDeterministic(t *testing.T) {
	r := gradientRaster{width: 16, height: 16}
	first := encodeToBuffer(t, r, nil)
	second := encodeToBuffer(t, r, nil)
	assert.Equal(t, first, second)
}
