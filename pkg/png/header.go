package png

import "fmt"

// ColorType is the pixel encoding declared by the image header. Values match
// the on-wire color type byte.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	Truecolor      ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	TruecolorAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "grayscale"
	case Truecolor:
		return "truecolor"
	case Indexed:
		return "indexed"
	case GrayscaleAlpha:
		return "grayscale+alpha"
	case TruecolorAlpha:
		return "truecolor+alpha"
	}
	return fmt.Sprintf("colortype(%d)", uint8(c))
}

// Channels returns the number of samples per pixel, or 0 for an undefined
// color type.
func (c ColorType) Channels() int {
	switch c {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case Truecolor:
		return 3
	case TruecolorAlpha:
		return 4
	}
	return 0
}

// ImageHeader holds the IHDR fields. It is built once from the first chunk
// and read-only for the rest of the decode; every later stage derives its
// row geometry from it.
type ImageHeader struct {
	Width      uint32
	Height     uint32
	BitDepth   uint8
	ColorType  ColorType
	Interlaced bool
}

// parseIHDR decodes and validates the 13-byte header payload.
func parseIHDR(payload []byte) (*ImageHeader, error) {
	if len(payload) != 13 {
		return nil, fmt.Errorf("%w: IHDR payload is %d bytes, want 13", ErrInvalidHeader, len(payload))
	}
	r := &byteReader{data: payload}
	width, _ := r.readU32()
	height, _ := r.readU32()
	bitDepth, _ := r.readU8()
	colorType, _ := r.readU8()
	compression, _ := r.readU8()
	filter, _ := r.readU8()
	interlace, _ := r.readU8()

	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: zero dimension %dx%d", ErrInvalidHeader, width, height)
	}
	if compression != 0 {
		return nil, fmt.Errorf("%w: compression method %d", ErrInvalidHeader, compression)
	}
	if filter != 0 {
		return nil, fmt.Errorf("%w: filter method %d", ErrInvalidHeader, filter)
	}
	switch interlace {
	case 0:
	case 1:
		return nil, fmt.Errorf("%w: Adam7", ErrUnsupportedInterlacing)
	default:
		return nil, fmt.Errorf("%w: interlace method %d", ErrInvalidHeader, interlace)
	}

	h := &ImageHeader{
		Width:     width,
		Height:    height,
		BitDepth:  bitDepth,
		ColorType: ColorType(colorType),
	}
	if !h.legalDepth() {
		return nil, fmt.Errorf("%w: %s with bit depth %d", ErrUnsupportedColorDepth, h.ColorType, h.BitDepth)
	}
	return h, nil
}

// legalDepth reports whether the (color type, bit depth) pair is in the
// format's legal set.
func (h *ImageHeader) legalDepth() bool {
	switch h.ColorType {
	case Grayscale:
		return h.BitDepth == 1 || h.BitDepth == 2 || h.BitDepth == 4 || h.BitDepth == 8 || h.BitDepth == 16
	case Indexed:
		return h.BitDepth == 1 || h.BitDepth == 2 || h.BitDepth == 4 || h.BitDepth == 8
	case Truecolor, GrayscaleAlpha, TruecolorAlpha:
		return h.BitDepth == 8 || h.BitDepth == 16
	}
	return false
}

// Stride returns the number of filtered sample bytes per scanline, excluding
// the leading filter-type byte.
func (h *ImageHeader) Stride() int {
	bits := int(h.Width) * int(h.BitDepth) * h.ColorType.Channels()
	return (bits + 7) / 8
}

// FilterStep returns the byte distance between corresponding bytes of
// horizontally adjacent pixels, the unit the scanline filters step by.
// Sub-byte depths filter at a one-byte step.
func (h *ImageHeader) FilterStep() int {
	step := int(h.BitDepth) * h.ColorType.Channels() / 8
	if step < 1 {
		step = 1
	}
	return step
}
