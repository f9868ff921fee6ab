package bjpeg

import (
	"encoding/binary"
	"io"
)

// Sink is the seekable output this encoder writes to. Several segments
// (APP0, COM, DQT, SOF0, DHT, SOS) carry a 16-bit length field that covers
// bytes not yet known when the marker is written, so the sink must support
// seeking back to patch it in.
//
// Grounded on original_source/src/Encoder.cpp's writePayloadLength: record
// the position just after the marker, write a zero placeholder, write the
// payload, then seek back and overwrite the placeholder with the true
// length. writer.go never does this — every one of its segments has a
// length computable before any bytes are written — but these segments are
// populated by callbacks that are simplest to let write directly to the
// sink, so back-patching is the better fit here.
type Sink interface {
	io.Writer
	io.Seeker
}

const (
	markerSOI  = 0xd8
	markerEOI  = 0xd9
	markerAPP0 = 0xe0
	markerCOM  = 0xfe
	markerDQT  = 0xdb
	markerSOF0 = 0xc0
	markerDHT  = 0xc4
	markerSOS  = 0xda
)

func writeMarker(w io.Writer, marker byte) error {
	if _, err := w.Write([]byte{0xff, marker}); err != nil {
		return errIO(err)
	}
	return nil
}

func writeUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return errIO(err)
	}
	return nil
}

// emitSegment writes a marker followed by a length-prefixed payload,
// back-patching the length once payload has finished writing. The length
// field counts itself (2 bytes) plus the payload, per ITU-T T.81 §B.1.1.4 —
// it does not count the 0xFF marker byte pair.
func emitSegment(w Sink, marker byte, payload func(io.Writer) error) error {
	if err := writeMarker(w, marker); err != nil {
		return err
	}
	lengthPos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return errIO(err)
	}
	if err := writeUint16(w, 0); err != nil {
		return err
	}
	if err := payload(w); err != nil {
		return err
	}
	endPos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return errIO(err)
	}
	if _, err := w.Seek(lengthPos, io.SeekStart); err != nil {
		return errIO(err)
	}
	if err := writeUint16(w, uint16(endPos-lengthPos)); err != nil {
		return err
	}
	if _, err := w.Seek(endPos, io.SeekStart); err != nil {
		return errIO(err)
	}
	return nil
}

// writeSOI writes the start-of-image marker, the only marker this encoder
// emits with no length field (along with EOI).
func writeSOI(w Sink) error { return writeMarker(w, markerSOI) }

// writeEOI writes the end-of-image marker.
func writeEOI(w Sink) error { return writeMarker(w, markerEOI) }

// writeAPP0 writes the mandatory JFIF application segment: identifier,
// version 1.01, a 72x72 DPI density and no embedded thumbnail — matching
// the fixed values original_source/src/Encoder.cpp's writeAPP0Segment
// hard-codes.
func writeAPP0(w Sink) error {
	return emitSegment(w, markerAPP0, func(w io.Writer) error {
		if _, err := w.Write([]byte("JFIF\x00")); err != nil {
			return errIO(err)
		}
		if _, err := w.Write([]byte{1, 1}); err != nil { // version 1.01
			return errIO(err)
		}
		if _, err := w.Write([]byte{1}); err != nil { // units: dots per inch
			return errIO(err)
		}
		if err := writeUint16(w, 72); err != nil { // Xdensity
			return err
		}
		if err := writeUint16(w, 72); err != nil { // Ydensity
			return err
		}
		if _, err := w.Write([]byte{0, 0}); err != nil { // no thumbnail
			return errIO(err)
		}
		return nil
	})
}

// writeCOM writes a text comment segment. Empty comments are skipped by the
// caller (encoder.go), not here — this function always emits a segment when
// called.
func writeCOM(w Sink, comment string) error {
	return emitSegment(w, markerCOM, func(w io.Writer) error {
		if _, err := io.WriteString(w, comment); err != nil {
			return errIO(err)
		}
		return nil
	})
}

// writeDQT writes both quantization tables in a single segment, in zig-zag
// order, with 8-bit precision (PQ = 0).
func writeDQT(w Sink, tables *[nQuantIndex][blockSize]uint16) error {
	return emitSegment(w, markerDQT, func(w io.Writer) error {
		for id, table := range tables {
			if _, err := w.Write([]byte{byte(id)}); err != nil {
				return errIO(err)
			}
			for _, v := range table {
				if _, err := w.Write([]byte{byte(v)}); err != nil {
					return errIO(err)
				}
			}
		}
		return nil
	})
}

// sofComponent identifies one of the three color components this encoder
// always emits in SOF0 and SOS, each sampled 1:1:1 (no chroma subsampling).
type sofComponent struct {
	id         byte
	quantTable quantIndex
}

var sofComponents = [3]sofComponent{
	{id: 1, quantTable: quantIndexLuminance},   // Y
	{id: 2, quantTable: quantIndexChrominance}, // Cb
	{id: 3, quantTable: quantIndexChrominance}, // Cr
}

// writeSOF0 writes the baseline frame header: 8-bit precision, the true
// (unpadded) image dimensions, and the three 1:1:1-sampled components.
func writeSOF0(w Sink, width, height int) error {
	return emitSegment(w, markerSOF0, func(w io.Writer) error {
		if _, err := w.Write([]byte{8}); err != nil { // sample precision
			return errIO(err)
		}
		if err := writeUint16(w, uint16(height)); err != nil {
			return err
		}
		if err := writeUint16(w, uint16(width)); err != nil {
			return err
		}
		if _, err := w.Write([]byte{byte(len(sofComponents))}); err != nil {
			return errIO(err)
		}
		for _, c := range sofComponents {
			if _, err := w.Write([]byte{c.id, 0x11, byte(c.quantTable)}); err != nil {
				return errIO(err)
			}
		}
		return nil
	})
}

// huffTableSlot is one (class, destination) pair DHT serializes: class 0 is
// DC, class 1 is AC.
type huffTableSlot struct {
	class, id byte
	spec      huffmanSpec
}

func huffTableSlots(specs *[nHuffIndex]huffmanSpec) [nHuffIndex]huffTableSlot {
	return [nHuffIndex]huffTableSlot{
		{class: 0, id: 0, spec: specs[huffIndexLuminanceDC]},
		{class: 1, id: 0, spec: specs[huffIndexLuminanceAC]},
		{class: 0, id: 1, spec: specs[huffIndexChrominanceDC]},
		{class: 1, id: 1, spec: specs[huffIndexChrominanceAC]},
	}
}

// writeDHT writes all four default Huffman tables in a single segment.
func writeDHT(w Sink, specs *[nHuffIndex]huffmanSpec) error {
	return emitSegment(w, markerDHT, func(w io.Writer) error {
		for _, slot := range huffTableSlots(specs) {
			if _, err := w.Write([]byte{slot.class<<4 | slot.id}); err != nil {
				return errIO(err)
			}
			if _, err := w.Write(slot.spec.count[:]); err != nil {
				return errIO(err)
			}
			if _, err := w.Write(slot.spec.value); err != nil {
				return errIO(err)
			}
		}
		return nil
	})
}

// writeSOS writes the scan header. Component i uses DC/AC table id 0 for
// luminance and id 1 for chrominance, matching the destinations writeDHT
// assigns. The spectral selection and successive approximation fields are
// fixed at their baseline (non-progressive) values: Ss=0, Se=63, Ah=Al=0.
func writeSOS(w Sink) error {
	return emitSegment(w, markerSOS, func(w io.Writer) error {
		if _, err := w.Write([]byte{byte(len(sofComponents))}); err != nil {
			return errIO(err)
		}
		for _, c := range sofComponents {
			tableID := byte(0)
			if c.quantTable == quantIndexChrominance {
				tableID = 1
			}
			if _, err := w.Write([]byte{c.id, tableID<<4 | tableID}); err != nil {
				return errIO(err)
			}
		}
		if _, err := w.Write([]byte{0, 63, 0}); err != nil {
			return errIO(err)
		}
		return nil
	})
}
