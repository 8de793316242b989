package png

import (
	"fmt"
	"image"
)

// Pixel is one output sample, 8 bits per channel. The grid always carries an
// alpha channel: inputs without one decode fully opaque (A=0xff), inputs
// with one keep it.
type Pixel struct {
	R, G, B, A uint8
}

// PixelGrid is the decoded image: a row-major pixel buffer owned by the
// caller once decode returns.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []Pixel
}

// At returns the pixel at column x of row y.
func (g *PixelGrid) At(x, y int) Pixel {
	return g.Pix[y*g.Width+x]
}

// Image converts the grid to a stdlib NRGBA image.
func (g *PixelGrid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, p := range g.Pix {
		img.Pix[i*4+0] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = p.A
	}
	return img
}

// assemble interprets defiltered row bytes as pixels: samples unpacked per
// bit depth (most significant bits first for sub-byte depths), mapped to
// channels per color type, palette indices resolved, and 16-bit samples
// reduced to their high-order byte.
func assemble(rows []byte, h *ImageHeader, pal Palette, trns *transparency) (*PixelGrid, error) {
	if h.ColorType == Indexed && pal == nil {
		return nil, ErrMissingPalette
	}

	width, height := int(h.Width), int(h.Height)
	stride := h.Stride()
	grid := &PixelGrid{Width: width, Height: height, Pix: make([]Pixel, width*height)}

	for y := 0; y < height; y++ {
		samples := sampleReader{row: rows[y*stride : (y+1)*stride], depth: h.BitDepth}
		for x := 0; x < width; x++ {
			var px Pixel
			switch h.ColorType {
			case Grayscale:
				v := samples.next()
				g8 := scaleSample(v, h.BitDepth)
				px = Pixel{g8, g8, g8, 0xff}
				if trns != nil && trns.hasKey && v == trns.gray {
					px.A = 0
				}
			case GrayscaleAlpha:
				v, a := samples.next(), samples.next()
				g8 := scaleSample(v, h.BitDepth)
				px = Pixel{g8, g8, g8, scaleSample(a, h.BitDepth)}
			case Truecolor:
				r, g, b := samples.next(), samples.next(), samples.next()
				px = Pixel{scaleSample(r, h.BitDepth), scaleSample(g, h.BitDepth), scaleSample(b, h.BitDepth), 0xff}
				if trns != nil && trns.hasKey && r == trns.r && g == trns.g && b == trns.b {
					px.A = 0
				}
			case TruecolorAlpha:
				r, g, b, a := samples.next(), samples.next(), samples.next(), samples.next()
				px = Pixel{scaleSample(r, h.BitDepth), scaleSample(g, h.BitDepth), scaleSample(b, h.BitDepth), scaleSample(a, h.BitDepth)}
			case Indexed:
				idx := int(samples.next())
				if idx >= len(pal) {
					return nil, fmt.Errorf("%w: index %d with %d palette entries at (%d,%d)", ErrPaletteIndexOutOfRange, idx, len(pal), x, y)
				}
				c := pal[idx]
				px = Pixel{c.R, c.G, c.B, 0xff}
				if trns != nil && idx < len(trns.paletteAlpha) {
					px.A = trns.paletteAlpha[idx]
				}
			}
			grid.Pix[y*width+x] = px
		}
	}
	return grid, nil
}

// sampleReader unpacks fixed-width samples from one row of raw bytes,
// most significant bits first within each byte for sub-byte depths.
type sampleReader struct {
	row   []byte
	depth uint8
	pos   int
	bit   uint
}

func (s *sampleReader) next() uint16 {
	switch s.depth {
	case 16:
		v := uint16(s.row[s.pos])<<8 | uint16(s.row[s.pos+1])
		s.pos += 2
		return v
	case 8:
		v := uint16(s.row[s.pos])
		s.pos++
		return v
	default:
		shift := 8 - s.bit - uint(s.depth)
		v := (s.row[s.pos] >> shift) & (1<<s.depth - 1)
		s.bit += uint(s.depth)
		if s.bit == 8 {
			s.bit = 0
			s.pos++
		}
		return uint16(v)
	}
}

// scaleSample widens a sample to the 8-bit output range: sub-byte depths
// scale linearly onto 0..255, 8-bit passes through, and 16-bit keeps the
// high-order byte (truncation, not rounding).
func scaleSample(v uint16, depth uint8) uint8 {
	switch depth {
	case 16:
		return uint8(v >> 8)
	case 8:
		return uint8(v)
	default:
		return uint8(int(v) * 255 / (1<<depth - 1))
	}
}
