// Package png provides a native Go decoder for PNG still images.
//
// The decoder turns an already-read byte buffer into an in-memory RGBA pixel
// grid and provides:
//   - Chunk-level container parsing with CRC and ordering validation
//   - A hand-written zlib/DEFLATE inflater (pkg/compress/flate)
//   - Scanline defiltering and pixel assembly for all five color types
//   - Indexed-color palettes and tRNS transparency
//
// Interlaced (Adam7) images and encoding are out of scope.
//
// Basic usage:
//
//	grid, err := png.ReadFile("/path/to/file.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//	px := grid.At(0, 0)
//
// Decoding is a single synchronous pass on the calling goroutine; a decode
// either returns a complete PixelGrid or a tagged error naming the stage
// that failed. Decoders share no mutable state, so concurrent decodes of
// different buffers are safe.
package png

import (
	"fmt"
	"os"
)

// ReadFile reads and decodes a PNG file from disk.
func ReadFile(path string) (*PixelGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Decode(data)
}

// ReadBuffer decodes a PNG image from a byte slice.
func ReadBuffer(data []byte) (*PixelGrid, error) {
	return Decode(data)
}

// Extension returns the standard PNG file extension.
func Extension() string {
	return ".png"
}
