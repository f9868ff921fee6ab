package bjpeg

import "io"

// bitWriter accumulates a bit stream MSB-first and flushes whole bytes to
// an underlying writer, stuffing a 0x00 after every literal 0xFF byte so
// the entropy-coded segment never contains a byte sequence a decoder would
// mistake for a marker.
//
// Grounded on encoder.emit/emitHuff/emitHuffRLE (writer.go), which use the
// same accumulate-then-flush-bytes technique; generalized here into its own
// type so the pipeline driver (encoder.go) can use it independently of any
// particular Huffman table.
type bitWriter struct {
	w       io.Writer
	acc     uint64
	nBits   uint
	scratch [1]byte
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w}
}

// writeBits appends the low nBits bits of value (nBits <= 32) to the
// stream, most significant bit first.
func (bw *bitWriter) writeBits(value uint32, nBits uint8) error {
	if nBits == 0 {
		return nil
	}
	bw.acc = (bw.acc << nBits) | uint64(value&((1<<nBits)-1))
	bw.nBits += uint(nBits)
	for bw.nBits >= 8 {
		bw.nBits -= 8
		if err := bw.writeByte(byte(bw.acc >> bw.nBits)); err != nil {
			return err
		}
	}
	return nil
}

// writeHuff appends a canonical Huffman code.
func (bw *bitWriter) writeHuff(c huffCode) error {
	return bw.writeBits(c.code, c.length)
}

// writeByte emits one byte to the underlying writer, stuffing a 0x00 byte
// immediately after any 0xFF (ITU-T T.81 §F.1.2.3).
func (bw *bitWriter) writeByte(b byte) error {
	bw.scratch[0] = b
	if _, err := bw.w.Write(bw.scratch[:]); err != nil {
		return errIO(err)
	}
	if b == 0xff {
		bw.scratch[0] = 0x00
		if _, err := bw.w.Write(bw.scratch[:]); err != nil {
			return errIO(err)
		}
	}
	return nil
}

// flush pads any partial byte with 1 bits and writes it out, leaving the
// writer byte-aligned (end-of-scan padding).
func (bw *bitWriter) flush() error {
	if bw.nBits == 0 {
		return nil
	}
	pad := 8 - bw.nBits
	return bw.writeBits((1<<pad)-1, uint8(pad))
}
