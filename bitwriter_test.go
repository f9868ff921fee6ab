package bjpeg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitWriterPacksMSBFirst(t *testing.T) {
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	require.NoError(t, bw.writeBits(0b101, 3))
	require.NoError(t, bw.writeBits(0b10101, 5))
	require.NoError(t, bw.flush())
	assert.Equal(t, []byte{0b10110101}, buf.Bytes())
}

func TestBitWriterStuffsFF(t *testing.T) {
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	require.NoError(t, bw.writeBits(0xff, 8))
	require.NoError(t, bw.flush())
	assert.Equal(t, []byte{0xff, 0x00}, buf.Bytes())
}

func TestBitWriterFlushPadsWithOnes(t *testing.T) {
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	require.NoError(t, bw.writeBits(0b1, 1))
	require.NoError(t, bw.flush())
	// One 1 bit padded with seven 1 bits is 0xFF, which gets a stuffed 0x00.
	assert.Equal(t, []byte{0b11111111, 0x00}, buf.Bytes())
}

func TestBitWriterNoOpFlushWhenByteAligned(t *testing.T) {
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	require.NoError(t, bw.writeBits(0xab, 8))
	require.NoError(t, bw.flush())
	assert.Equal(t, []byte{0xab}, buf.Bytes())
}

func TestWriteHuffUsesCodeLength(t *testing.T) {
	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	require.NoError(t, bw.writeHuff(huffCode{code: 0b110, length: 3}))
	require.NoError(t, bw.flush())
	assert.Equal(t, []byte{0b11011111}, buf.Bytes())
}
