package png

import "fmt"

// Scanline filter types, one byte prefixed to every row.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
)

// defilter reverses the per-row prediction filters, turning the decompressed
// stream of height*(1+stride) bytes into height rows of stride raw sample
// bytes. Reconstruction is row-sequential: each row reads the previous row's
// already-reconstructed bytes, so only the current and previous row are live
// at any point.
//
// raw must be exactly height*(1+stride) bytes; the decompressor's expected
// length bound guarantees this.
func defilter(raw []byte, h *ImageHeader) ([]byte, error) {
	stride := h.Stride()
	height := int(h.Height)
	step := h.FilterStep()

	out := make([]byte, height*stride)
	prev := make([]byte, stride) // all-zero row above the image
	for y := 0; y < height; y++ {
		in := raw[y*(stride+1) : (y+1)*(stride+1)]
		ft, cur := in[0], out[y*stride:(y+1)*stride]
		copy(cur, in[1:])

		switch ft {
		case ftNone:
		case ftSub:
			for i := step; i < len(cur); i++ {
				cur[i] += cur[i-step]
			}
		case ftUp:
			for i, p := range prev {
				cur[i] += p
			}
		case ftAverage:
			for i := 0; i < step && i < len(cur); i++ {
				cur[i] += prev[i] / 2
			}
			for i := step; i < len(cur); i++ {
				cur[i] += uint8((int(cur[i-step]) + int(prev[i])) / 2)
			}
		case ftPaeth:
			for i := 0; i < step && i < len(cur); i++ {
				cur[i] += paeth(0, prev[i], 0)
			}
			for i := step; i < len(cur); i++ {
				cur[i] += paeth(cur[i-step], prev[i], prev[i-step])
			}
		default:
			return nil, fmt.Errorf("%w: %d in row %d", ErrUnknownFilterType, ft, y)
		}
		prev = cur
	}
	return out, nil
}

// paeth picks whichever of a (left), b (above), c (above-left) is closest to
// the estimate a+b-c, ties preferring a, then b, then c.
func paeth(a, b, c uint8) uint8 {
	// |p-a| = |b-c|, |p-b| = |a-c|, |p-c| = |a+b-2c| with p = a+b-c.
	pa := abs(int(b) - int(c))
	pb := abs(int(a) - int(c))
	pc := abs(int(a) + int(b) - 2*int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
