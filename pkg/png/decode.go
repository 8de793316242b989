package png

import (
	"fmt"
	"log/slog"

	"github.com/jpfielding/pngs.go/pkg/compress/flate"
)

// Decode runs the full pipeline over an in-memory PNG buffer: chunk parsing,
// header and palette extraction, zlib inflation of the concatenated IDAT
// payloads, scanline defiltering, and pixel assembly. Data flows strictly
// forward; every intermediate buffer is scoped to this one call.
func Decode(data []byte) (*PixelGrid, error) {
	chunks, err := parseChunks(data)
	if err != nil {
		return nil, err
	}

	header, err := parseIHDR(chunks[0].payload)
	if err != nil {
		return nil, err
	}

	slog.Debug("decoding image",
		slog.Int("width", int(header.Width)),
		slog.Int("height", int(header.Height)),
		slog.Int("bitDepth", int(header.BitDepth)),
		slog.String("colorType", header.ColorType.String()),
		slog.Int("stride", header.Stride()))

	var (
		pal  Palette
		trns *transparency
		idat []byte
	)
	for _, c := range chunks[1:] {
		switch c.typ {
		case ctPLTE:
			maxEntries := 256
			if header.ColorType == Indexed {
				maxEntries = 1 << header.BitDepth
			}
			if pal, err = parsePalette(c.payload, maxEntries); err != nil {
				return nil, err
			}
		case ctTRNS:
			if trns, err = parseTransparency(c.payload, header, pal); err != nil {
				return nil, err
			}
		case ctIDAT:
			idat = append(idat, c.payload...)
		}
	}

	if header.ColorType == Indexed && pal == nil {
		return nil, ErrMissingPalette
	}
	if len(idat) == 0 {
		return nil, fmt.Errorf("%w: no image data chunks", ErrMalformedChunkOrder)
	}

	// The decompressor produces exactly one filter byte plus stride bytes
	// per row, or fails; the bound also caps hostile expansion.
	expected := int(header.Height) * (1 + header.Stride())
	raw, err := flate.Decompress(idat, expected)
	if err != nil {
		return nil, fmt.Errorf("inflating image data: %w", err)
	}

	rows, err := defilter(raw, header)
	if err != nil {
		return nil, err
	}
	return assemble(rows, header, pal, trns)
}

// DecodeHeader parses the container and returns the image metadata without
// decompressing any pixel data.
func DecodeHeader(data []byte) (*ImageHeader, error) {
	chunks, err := parseChunks(data)
	if err != nil {
		return nil, err
	}
	return parseIHDR(chunks[0].payload)
}
