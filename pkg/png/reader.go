package png

import (
	"encoding/binary"
	"fmt"
)

// byteReader is a bounds-checked cursor over an immutable byte buffer. All
// reads are big-endian; the buffer is borrowed from the caller and never
// mutated. Short reads report the offset where the data ran out.
type byteReader struct {
	data []byte
	off  int
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.off
}

// readN returns the next n bytes as a subslice of the underlying buffer.
func (r *byteReader) readN(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedChunk, n, r.off, r.remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *byteReader) readU32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *byteReader) readU8() (uint8, error) {
	b, err := r.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}
