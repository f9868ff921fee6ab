package bjpeg

// acRun is one term of an AC run-length sequence: run zero coefficients
// followed by a nonzero coefficient value, or one of the two sentinels —
// {15, 0} is ZRL (16 zeroes with more data to follow) and {0, 0} is EOB (all
// remaining coefficients in the block are zero).
type acRun struct {
	run   byte
	value int32
}

// isZRL reports whether a is the ZRL sentinel.
func (a acRun) isZRL() bool { return a.run == 15 && a.value == 0 }

// isEOB reports whether a is the EOB sentinel.
func (a acRun) isEOB() bool { return a.run == 0 && a.value == 0 }

// rlcBlock is one 8x8 block's run-length-coded form: a DC difference against
// the channel's running predictor, and the AC coefficients as a sequence of
// (run, value) terms, zig-zag ordered and run-length compressed.
type rlcBlock struct {
	dcDiff int32
	ac     []acRun
}

// encodeRLC run-length-codes one channel's zig-zag-ordered coefficients
// against predictor (the channel's previous block's true DC value, not its
// difference). It returns the RLC block and the new predictor value, which
// is simply zz[0] — unlike the original C++ source, which accumulates the
// already-differenced value into its own predictor. The predictor here
// always holds the last true DC coefficient, which is what makes
// differential decoding of the stream possible.
//
// Grounded on RLC::zzorderDataToRLC (original_source/src/RLC.cpp): DC pair
// first, then an AC scan that collapses runs of 16 zeroes into ZRL and
// terminates with EOB when the block's tail is all zero.
func encodeRLC(zz *[blockSize]int32, predictor int32) (rlcBlock, int32) {
	blk := rlcBlock{dcDiff: zz[0] - predictor}

	run := 0
	for i := 1; i < blockSize; i++ {
		if zz[i] == 0 {
			run++
			continue
		}
		for run > 15 {
			blk.ac = append(blk.ac, acRun{run: 15, value: 0})
			run -= 16
		}
		blk.ac = append(blk.ac, acRun{run: byte(run), value: zz[i]})
		run = 0
	}
	if run > 0 {
		blk.ac = append(blk.ac, acRun{run: 0, value: 0})
	}

	return blk, zz[0]
}
