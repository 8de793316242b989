package png

import "fmt"

// Color is one RGB palette entry.
type Color struct {
	R, G, B uint8
}

// Palette is the ordered color table for indexed images; a pixel sample is
// an index into it. Parsed once from the PLTE chunk and read-only after.
type Palette []Color

// parsePalette decodes a PLTE payload, a flat sequence of 3-byte RGB triples.
func parsePalette(payload []byte, maxEntries int) (Palette, error) {
	if len(payload) == 0 || len(payload)%3 != 0 {
		return nil, fmt.Errorf("%w: PLTE payload of %d bytes is not a whole number of RGB triples", ErrInvalidHeader, len(payload))
	}
	n := len(payload) / 3
	if n > maxEntries {
		return nil, fmt.Errorf("%w: %d palette entries, at most %d allowed", ErrInvalidHeader, n, maxEntries)
	}
	pal := make(Palette, n)
	for i := range pal {
		pal[i] = Color{payload[i*3], payload[i*3+1], payload[i*3+2]}
	}
	return pal, nil
}

// transparency holds the optional tRNS chunk: per-entry alpha for indexed
// color, or a transparent color key for grayscale and truecolor.
type transparency struct {
	paletteAlpha []uint8
	hasKey       bool
	gray         uint16
	r, g, b      uint16
}

// parseTransparency decodes a tRNS payload against the already-parsed header
// and palette.
func parseTransparency(payload []byte, h *ImageHeader, pal Palette) (*transparency, error) {
	t := &transparency{}
	switch h.ColorType {
	case Indexed:
		if pal == nil {
			return nil, fmt.Errorf("%w: tRNS before PLTE", ErrMalformedChunkOrder)
		}
		if len(payload) > len(pal) {
			return nil, fmt.Errorf("%w: %d tRNS entries for %d palette entries", ErrInvalidHeader, len(payload), len(pal))
		}
		t.paletteAlpha = make([]uint8, len(pal))
		for i := range t.paletteAlpha {
			t.paletteAlpha[i] = 0xff
		}
		copy(t.paletteAlpha, payload)
	case Grayscale:
		if len(payload) != 2 {
			return nil, fmt.Errorf("%w: grayscale tRNS payload of %d bytes, want 2", ErrInvalidHeader, len(payload))
		}
		t.hasKey = true
		t.gray = uint16(payload[0])<<8 | uint16(payload[1])
	case Truecolor:
		if len(payload) != 6 {
			return nil, fmt.Errorf("%w: truecolor tRNS payload of %d bytes, want 6", ErrInvalidHeader, len(payload))
		}
		t.hasKey = true
		t.r = uint16(payload[0])<<8 | uint16(payload[1])
		t.g = uint16(payload[2])<<8 | uint16(payload[3])
		t.b = uint16(payload[4])<<8 | uint16(payload[5])
	default:
		// Color types with a real alpha channel must not carry tRNS.
		return nil, fmt.Errorf("%w: tRNS with %s", ErrInvalidHeader, h.ColorType)
	}
	return t, nil
}
