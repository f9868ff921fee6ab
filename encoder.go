package bjpeg

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrorKind classifies why an Encode call failed.
type ErrorKind int

const (
	// InvalidInput means the caller passed a raster or option this encoder
	// cannot process (e.g. non-positive dimensions).
	InvalidInput ErrorKind = iota
	// IoError means a write or seek against the Sink failed; Err wraps the
	// underlying cause.
	IoError
	// InternalInvariant means this encoder's own bookkeeping produced data
	// its tables cannot represent — a bug, not a caller mistake.
	InternalInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case IoError:
		return "io error"
	case InternalInvariant:
		return "internal invariant violated"
	default:
		return "unknown error"
	}
}

// EncodeError is the concrete error type every exported function in this
// package returns. Kind lets callers distinguish a bad raster from a
// failing sink without string-matching Error().
type EncodeError struct {
	Kind ErrorKind
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("bjpeg: %s: %v", e.Kind, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func errInvalid(msg string) error {
	return &EncodeError{Kind: InvalidInput, Err: errors.New(msg)}
}

func errIO(cause error) error {
	return &EncodeError{Kind: IoError, Err: cause}
}

func errInternal(cause error) error {
	return &EncodeError{Kind: InternalInvariant, Err: cause}
}

// ErrMissingHuffmanSymbol is wrapped by huffTable.lookup when a symbol has
// no assigned code. Reaching this means a coefficient category or RLC run
// fell outside what the Annex K.3 tables cover, which the value coder and
// RLC coder are supposed to make impossible.
var ErrMissingHuffmanSymbol = errors.New("no huffman code for symbol")

// Options controls the optional parts of an encode; the zero value is a
// valid Options with no comment.
type Options struct {
	// Comment, if non-empty, is written as a COM segment. The original C++
	// encoder always wrote a fixed comment string; this port makes it
	// caller-supplied and optional instead (SPEC_FULL.md's supplemented
	// features).
	Comment string

	// Logger receives debug-level progress events: one after SOI and APP0,
	// one after COM when it is written, one after DQT, SOF0, DHT and SOS
	// together, and one after the scan data. The zero value discards all
	// events.
	Logger zerolog.Logger
}

// Encoder holds the quantization and Huffman tables used across encodes.
// Both are fixed at the Annex K defaults: this package builds one Encoder's
// tables once and reuses it for many images, mirroring the original C++
// Encoder's constructor-builds-tables-once, encode-many-times lifecycle
// (original_source/src/Encoder.cpp).
type Encoder struct {
	quant     [nQuantIndex][blockSize]uint16
	huffSpecs [nHuffIndex]huffmanSpec
	huff      [nHuffIndex]huffTable
}

// NewEncoder builds an Encoder with the Annex K.1 quantization tables and
// Annex K.3 Huffman tables. No quality scaling and no image-specific
// (optimal) Huffman tables are ever produced.
func NewEncoder() *Encoder {
	e := &Encoder{
		quant:     defaultQuant,
		huffSpecs: defaultHuffmanSpecs,
	}
	for i, spec := range defaultHuffmanSpecs {
		e.huff[i] = buildHuffTable(spec)
	}
	return e
}

func dcTableFor(component int) huffIndex {
	if component == 0 {
		return huffIndexLuminanceDC
	}
	return huffIndexChrominanceDC
}

func acTableFor(component int) huffIndex {
	if component == 0 {
		return huffIndexLuminanceAC
	}
	return huffIndexChrominanceAC
}

// Encode writes a complete JFIF byte stream for raster to w: SOI, APP0, an
// optional COM, DQT, SOF0, DHT, SOS, the entropy-coded scan, and EOI. w must
// be empty at the current seek position; Encode writes forward only except
// when back-patching segment lengths (segment.go), and leaves w positioned
// just after EOI on success.
func (e *Encoder) Encode(w Sink, raster Raster, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger

	width, height := raster.Dimensions()
	if width <= 0 || height <= 0 {
		return errInvalid("raster dimensions must be positive")
	}

	if err := writeSOI(w); err != nil {
		return err
	}
	if err := writeAPP0(w); err != nil {
		return err
	}
	log.Debug().Msg("wrote SOI, APP0")

	if opts.Comment != "" {
		if err := writeCOM(w, opts.Comment); err != nil {
			return err
		}
		log.Debug().Str("comment", opts.Comment).Msg("wrote COM")
	}

	if err := writeDQT(w, &e.quant); err != nil {
		return err
	}
	if err := writeSOF0(w, width, height); err != nil {
		return err
	}
	if err := writeDHT(w, &e.huffSpecs); err != nil {
		return err
	}
	if err := writeSOS(w); err != nil {
		return err
	}
	log.Debug().Int("width", width).Int("height", height).Msg("wrote DQT, SOF0, DHT, SOS")

	pr := newPaddedRaster(raster)
	bw := newBitWriter(w)

	// DC predictors reset to zero at the start of every scan; one per
	// component, in sofComponents order (Y, Cb, Cr).
	var predictors [3]int32

	across, down := pr.mcusAcross(), pr.mcusDown()
	for my := 0; my < down; my++ {
		for mx := 0; mx < across; mx++ {
			mcu := pr.readMCU(mx, my)
			y, cb, cr := colorConvert(&mcu)
			planes := [3]*planarBlock{&y, &cb, &cr}

			for ci, plane := range planes {
				q := &e.quant[sofComponents[ci].quantTable]
				coeffs := transformBlock(plane, q)
				zz := coeffs.zigzagScan()

				rlc, newPredictor := encodeRLC(&zz, predictors[ci])
				predictors[ci] = newPredictor

				if err := e.emitBlock(bw, rlc, e.huff[dcTableFor(ci)], e.huff[acTableFor(ci)]); err != nil {
					return err
				}
			}
		}
	}

	if err := bw.flush(); err != nil {
		return err
	}
	log.Debug().Int("mcus", across*down).Msg("wrote scan data")

	return writeEOI(w)
}

// emitBlock writes one block's DC term followed by its AC run sequence,
// using dcTable and acTable for the component it belongs to.
func (e *Encoder) emitBlock(bw *bitWriter, rlc rlcBlock, dcTable, acTable huffTable) error {
	dcCat := category(rlc.dcDiff)
	dcCode, err := dcTable.lookup(dcCat)
	if err != nil {
		return errInternal(err)
	}
	if err := bw.writeHuff(dcCode); err != nil {
		return err
	}
	if dcCat > 0 {
		if err := bw.writeBits(amplitudeBits(rlc.dcDiff), dcCat); err != nil {
			return err
		}
	}

	for _, term := range rlc.ac {
		switch {
		case term.isEOB():
			code, err := acTable.lookup(0x00)
			if err != nil {
				return errInternal(err)
			}
			if err := bw.writeHuff(code); err != nil {
				return err
			}
		case term.isZRL():
			code, err := acTable.lookup(0xf0)
			if err != nil {
				return errInternal(err)
			}
			if err := bw.writeHuff(code); err != nil {
				return err
			}
		default:
			cat := category(term.value)
			symbol := term.run<<4 | cat
			code, err := acTable.lookup(symbol)
			if err != nil {
				return errInternal(err)
			}
			if err := bw.writeHuff(code); err != nil {
				return err
			}
			if err := bw.writeBits(amplitudeBits(term.value), cat); err != nil {
				return err
			}
		}
	}
	return nil
}
