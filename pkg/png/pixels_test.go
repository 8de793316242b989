package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleReader_SubByteDepths(t *testing.T) {
	// 1-bit: 0b10110100 reads most significant bit first.
	r := sampleReader{row: []byte{0xb4}, depth: 1}
	got := make([]uint16, 8)
	for i := range got {
		got[i] = r.next()
	}
	assert.Equal(t, []uint16{1, 0, 1, 1, 0, 1, 0, 0}, got)

	// 2-bit: 0b11_01_00_10.
	r = sampleReader{row: []byte{0xd2}, depth: 2}
	assert.Equal(t, uint16(3), r.next())
	assert.Equal(t, uint16(1), r.next())
	assert.Equal(t, uint16(0), r.next())
	assert.Equal(t, uint16(2), r.next())

	// 4-bit: high nibble first, crossing a byte boundary.
	r = sampleReader{row: []byte{0xaf, 0x30}, depth: 4}
	assert.Equal(t, uint16(0xa), r.next())
	assert.Equal(t, uint16(0xf), r.next())
	assert.Equal(t, uint16(0x3), r.next())
	assert.Equal(t, uint16(0x0), r.next())
}

func TestSampleReader_WideDepths(t *testing.T) {
	r := sampleReader{row: []byte{7, 200}, depth: 8}
	assert.Equal(t, uint16(7), r.next())
	assert.Equal(t, uint16(200), r.next())

	// 16-bit samples are big-endian.
	r = sampleReader{row: []byte{0x12, 0x34, 0xff, 0x00}, depth: 16}
	assert.Equal(t, uint16(0x1234), r.next())
	assert.Equal(t, uint16(0xff00), r.next())
}

func TestScaleSample(t *testing.T) {
	// Sub-byte depths stretch onto the full 0..255 range.
	assert.Equal(t, uint8(0), scaleSample(0, 1))
	assert.Equal(t, uint8(255), scaleSample(1, 1))
	assert.Equal(t, uint8(85), scaleSample(1, 2))
	assert.Equal(t, uint8(170), scaleSample(2, 2))
	assert.Equal(t, uint8(0x44), scaleSample(4, 4))
	assert.Equal(t, uint8(0xff), scaleSample(15, 4))

	assert.Equal(t, uint8(42), scaleSample(42, 8))

	// 16-bit keeps the high byte, no rounding.
	assert.Equal(t, uint8(0x12), scaleSample(0x1234, 16))
	assert.Equal(t, uint8(0x12), scaleSample(0x12ff, 16))
}

func TestAssemble_Grayscale16Truncates(t *testing.T) {
	h := &ImageHeader{Width: 2, Height: 1, BitDepth: 16, ColorType: Grayscale}
	grid, err := assemble([]byte{0x12, 0x34, 0xab, 0xcd}, h, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Pixel{0x12, 0x12, 0x12, 0xff}, grid.At(0, 0))
	assert.Equal(t, Pixel{0xab, 0xab, 0xab, 0xff}, grid.At(1, 0))
}

func TestAssemble_SubByteGrayscaleScales(t *testing.T) {
	h := &ImageHeader{Width: 4, Height: 1, BitDepth: 2, ColorType: Grayscale}
	grid, err := assemble([]byte{0x1b}, h, nil, nil) // 0b00_01_10_11
	require.NoError(t, err)
	assert.Equal(t, Pixel{0, 0, 0, 0xff}, grid.At(0, 0))
	assert.Equal(t, Pixel{85, 85, 85, 0xff}, grid.At(1, 0))
	assert.Equal(t, Pixel{170, 170, 170, 0xff}, grid.At(2, 0))
	assert.Equal(t, Pixel{255, 255, 255, 0xff}, grid.At(3, 0))
}

func TestAssemble_TruecolorAlpha(t *testing.T) {
	h := &ImageHeader{Width: 2, Height: 1, BitDepth: 8, ColorType: TruecolorAlpha}
	grid, err := assemble([]byte{10, 20, 30, 128, 40, 50, 60, 0}, h, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Pixel{10, 20, 30, 128}, grid.At(0, 0))
	assert.Equal(t, Pixel{40, 50, 60, 0}, grid.At(1, 0))
}

func TestAssemble_IndexedNeedsPalette(t *testing.T) {
	h := &ImageHeader{Width: 1, Height: 1, BitDepth: 8, ColorType: Indexed}
	_, err := assemble([]byte{0}, h, nil, nil)
	require.ErrorIs(t, err, ErrMissingPalette)
}

func TestAssemble_PaletteIndexOutOfRange(t *testing.T) {
	h := &ImageHeader{Width: 2, Height: 1, BitDepth: 8, ColorType: Indexed}
	pal := Palette{{255, 0, 0}, {0, 255, 0}}

	// Index equal to the palette length is already out of range.
	_, err := assemble([]byte{0, 2}, h, pal, nil)
	require.ErrorIs(t, err, ErrPaletteIndexOutOfRange)
	assert.Contains(t, err.Error(), "(1,0)")
}

func TestAssemble_IndexedWithAlpha(t *testing.T) {
	h := &ImageHeader{Width: 3, Height: 1, BitDepth: 8, ColorType: Indexed}
	pal := Palette{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	trns := &transparency{paletteAlpha: []uint8{0, 128, 0xff}}

	grid, err := assemble([]byte{0, 1, 2}, h, pal, trns)
	require.NoError(t, err)
	assert.Equal(t, Pixel{255, 0, 0, 0}, grid.At(0, 0))
	assert.Equal(t, Pixel{0, 255, 0, 128}, grid.At(1, 0))
	assert.Equal(t, Pixel{0, 0, 255, 0xff}, grid.At(2, 0))
}

func TestAssemble_GrayscaleColorKey(t *testing.T) {
	h := &ImageHeader{Width: 2, Height: 1, BitDepth: 8, ColorType: Grayscale}
	trns := &transparency{hasKey: true, gray: 10}

	grid, err := assemble([]byte{10, 20}, h, nil, trns)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), grid.At(0, 0).A, "key match is transparent")
	assert.Equal(t, uint8(0xff), grid.At(1, 0).A)
}

func TestPixelGrid_Image(t *testing.T) {
	grid := &PixelGrid{Width: 2, Height: 1, Pix: []Pixel{{1, 2, 3, 4}, {5, 6, 7, 8}}}
	img := grid.Image()
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, img.Pix)
}
