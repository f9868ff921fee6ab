package bjpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHuffTablePrefixFree checks that no code in a built table is a prefix
// of another — the property that makes bit-serial decoding unambiguous,
// even though this package never decodes.
func TestHuffTablePrefixFree(t *testing.T) {
	for _, spec := range defaultHuffmanSpecs {
		table := buildHuffTable(spec)
		codes := make([]huffCode, 0, len(table))
		for _, c := range table {
			codes = append(codes, c)
		}
		for i := range codes {
			for j := range codes {
				if i == j {
					continue
				}
				assert.False(t, isPrefix(codes[i], codes[j]), "code %d is a prefix of code %d", i, j)
			}
		}
	}
}

// isPrefix reports whether a's bits, MSB-first, are a prefix of b's.
func isPrefix(a, b huffCode) bool {
	if a.length >= b.length {
		return false
	}
	shift := b.length - a.length
	return a.code == b.code>>shift
}

func TestBuildHuffTableCanonicalOrder(t *testing.T) {
	spec := huffmanSpec{
		count: [16]byte{0, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		value: []byte{0x00, 0x01, 0x02},
	}
	table := buildHuffTable(spec)
	require.Len(t, table, 3)
	assert.Equal(t, huffCode{code: 0b00, length: 2}, table[0x00])
	assert.Equal(t, huffCode{code: 0b01, length: 2}, table[0x01])
	assert.Equal(t, huffCode{code: 0b100, length: 3}, table[0x02])
}

func TestHuffTableLookupMissingSymbol(t *testing.T) {
	table := buildHuffTable(defaultHuffmanSpecs[huffIndexLuminanceDC])
	_, err := table.lookup(0xff)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingHuffmanSymbol)
}
