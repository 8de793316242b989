// Package flate implements a DEFLATE (RFC 1951) and zlib (RFC 1950) stream
// decompressor for fully materialized inputs whose uncompressed size is known
// in advance.
//
// Unlike the stdlib's streaming reader, decompression here is a single
// synchronous byte-slice transform: the caller hands in the complete
// compressed payload and the exact number of bytes it must expand to, and
// gets back either exactly that many bytes or a tagged error. The expected
// length doubles as a hard output bound, so a hostile stream cannot expand
// past it.
package flate

import "errors"

// Tagged decompression failures. Callers match with errors.Is; returned
// errors wrap these with byte-offset context.
var (
	// ErrInvalidBlock reports an undefined block type, a malformed block
	// header, a back-reference reaching before the start of output, or a
	// bad zlib envelope.
	ErrInvalidBlock = errors.New("flate: invalid compressed block")

	// ErrInvalidCode reports a prefix code that decodes to no valid symbol.
	ErrInvalidCode = errors.New("flate: invalid prefix code")

	// ErrOutputOverrun reports decoded output exceeding the expected length.
	ErrOutputOverrun = errors.New("flate: output exceeds expected length")

	// ErrTruncated reports input exhausted before the expected output
	// length was produced.
	ErrTruncated = errors.New("flate: truncated stream")

	// ErrChecksum reports an adler-32 mismatch on a zlib stream.
	ErrChecksum = errors.New("flate: checksum mismatch")
)
