package png

import "errors"

// Decode failures, grouped by pipeline stage. Every stage fails fast: a
// decode either returns a complete PixelGrid or one of these wrapped with
// stage and offset context. Compression-stage failures surface the sentinels
// from pkg/compress/flate instead.
var (
	// Structural errors from the chunk parser.
	ErrBadSignature          = errors.New("png: bad signature")
	ErrTruncatedChunk        = errors.New("png: truncated chunk")
	ErrChunkChecksumMismatch = errors.New("png: chunk checksum mismatch")
	ErrMalformedChunkOrder   = errors.New("png: malformed chunk order")

	// Semantic errors from the header and palette model.
	ErrInvalidHeader          = errors.New("png: invalid header")
	ErrUnsupportedColorDepth  = errors.New("png: unsupported color type and bit depth combination")
	ErrUnsupportedInterlacing = errors.New("png: interlaced images not supported")
	ErrMissingPalette         = errors.New("png: indexed color without palette")

	// Pixel-stage errors.
	ErrUnknownFilterType      = errors.New("png: unknown scanline filter type")
	ErrPaletteIndexOutOfRange = errors.New("png: palette index out of range")
)
