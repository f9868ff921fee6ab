// Package bjpeg implements a baseline (ITU-T T.81 sequential DCT, 8-bit)
// JPEG/JFIF encoder.
//
// It consumes a decoded RGB raster and produces a standalone JFIF byte
// stream: SOI, APP0, an optional COM, DQT, SOF0, DHT, SOS, entropy-coded
// scan data, EOI.
// Chroma subsampling, progressive and extended-sequential modes, restart
// markers and custom Huffman tables are out of scope; only the Annex K.1/K.3
// example quantization and Huffman tables are emitted, and every component
// is sampled 1:1:1.
package bjpeg
