package bjpeg

import "github.com/pkg/errors"

// huffCode is a canonical Huffman code: the low `length` bits of code are
// significant, written most-significant-bit first.
type huffCode struct {
	code   uint32
	length uint8
}

// huffTable maps a symbol byte to its canonical Huffman code, built from a
// huffmanSpec by in-order traversal of the implied code tree: codes are
// assigned shortest-length first, in HUFFVAL listing order within each
// length, incrementing after each symbol and left-shifting when the length
// increases (ITU-T T.81 Annex C, Figure C.2).
//
// Grounded on huffmanLUT.init (writer.go), generalized from a dense
// []uint32 indexed by symbol value to a map, since AC symbol values here
// are sparse RRRRSSSS bytes rather than a small dense range.
type huffTable map[byte]huffCode

func buildHuffTable(s huffmanSpec) huffTable {
	t := make(huffTable, len(s.value))
	code, k := uint32(0), 0
	for length := 0; length < 16; length++ {
		for j := byte(0); j < s.count[length]; j++ {
			t[s.value[k]] = huffCode{code: code, length: uint8(length + 1)}
			code++
			k++
		}
		code <<= 1
	}
	return t
}

// lookup returns the code for symbol, or an error wrapping
// ErrMissingHuffmanSymbol if the table has no code for it. This can only
// happen if a caller feeds a symbol the default Annex K tables don't cover,
// which is an encoder bug rather than bad input data, hence the
// InternalInvariant error kind rather than InvalidInput.
func (t huffTable) lookup(symbol byte) (huffCode, error) {
	c, ok := t[symbol]
	if !ok {
		return huffCode{}, errors.Wrapf(ErrMissingHuffmanSymbol, "symbol 0x%02x", symbol)
	}
	return c, nil
}
