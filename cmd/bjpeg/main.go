// Command bjpeg re-encodes a decoded image as a baseline JFIF file.
//
// Usage:
//
//	bjpeg [-comment text] <input> [<output>]
//
// input is any format the standard library's image package recognizes by
// content among the decoders registered here (PNG, GIF, JPEG); output
// defaults to the input's stem
// with a "_compressed.jpg" suffix when omitted, matching the path
// defaulting original_source/src/Encoder.cpp's open() applies when no
// explicit output path is given.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bensonhuangtw/bjpeg"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bjpeg:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("bjpeg", flag.ContinueOnError)
	comment := fs.String("comment", "", "text to embed in a COM segment")
	verbose := fs.Bool("v", false, "log each segment written")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: bjpeg [-comment text] [-v] <input> [<output>]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing input path")
	}
	inputPath := fs.Arg(0)
	outputPath := defaultOutputPath(inputPath)
	if fs.NArg() >= 2 {
		outputPath = fs.Arg(1)
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	img, err := decodeImage(inputPath)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := bjpeg.NewEncoder()
	opts := &bjpeg.Options{Comment: *comment, Logger: logger}
	if err := enc.Encode(out, imageRaster{img}, opts); err != nil {
		return err
	}
	return out.Close()
}

// defaultOutputPath replaces input's extension with "_compressed.jpg".
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	return stem + "_compressed.jpg"
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// imageRaster adapts a decoded image.Image to bjpeg.Raster, converting each
// pixel to BGR order on read.
type imageRaster struct {
	img image.Image
}

func (r imageRaster) Dimensions() (width, height int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r imageRaster) At(x, y int) (b, g, r8 uint8) {
	bounds := r.img.Bounds()
	c := r.img.At(bounds.Min.X+x, bounds.Min.Y+y)
	red, green, blue, _ := c.RGBA()
	return uint8(blue >> 8), uint8(green >> 8), uint8(red >> 8)
}
