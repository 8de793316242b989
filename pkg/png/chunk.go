package png

import (
	"fmt"
	"hash/crc32"
)

// signature is the fixed 8-byte magic that opens every PNG buffer.
const signature = "\x89PNG\r\n\x1a\n"

// Chunk type tags interpreted during decode. Anything else is ancillary and
// skipped without validation.
const (
	ctIHDR = "IHDR"
	ctPLTE = "PLTE"
	ctTRNS = "tRNS"
	ctIDAT = "IDAT"
	ctIEND = "IEND"
)

// chunk is one parsed container chunk: type tag plus payload, CRC already
// verified. The payload slice borrows from the caller's buffer.
type chunk struct {
	typ     string
	payload []byte
	offset  int // offset of the chunk's length field in the buffer
}

// parseChunks splits the container into its chunk sequence. Each chunk is
// {u32 length BE, 4-byte tag, payload, u32 CRC-32 over tag+payload}. Ordering
// rules enforced here: IHDR first and only first, PLTE at most once and
// before the first IDAT, IDAT chunks consecutive, IEND last with an empty
// payload and nothing after it.
func parseChunks(data []byte) ([]chunk, error) {
	r := &byteReader{data: data}
	sig, err := r.readN(len(signature))
	if err != nil {
		return nil, fmt.Errorf("%w: buffer shorter than signature", ErrBadSignature)
	}
	if string(sig) != signature {
		return nil, ErrBadSignature
	}

	var chunks []chunk
	sawPLTE, sawIDAT := false, false
	for {
		if r.remaining() == 0 {
			return nil, fmt.Errorf("%w: missing terminator chunk", ErrMalformedChunkOrder)
		}
		off := r.off
		length, err := r.readU32()
		if err != nil {
			return nil, err
		}
		tag, err := r.readN(4)
		if err != nil {
			return nil, err
		}
		payload, err := r.readN(int(length))
		if err != nil {
			return nil, err
		}
		want, err := r.readU32()
		if err != nil {
			return nil, err
		}
		if got := crc32.ChecksumIEEE(data[off+4 : off+8+int(length)]); got != want {
			return nil, fmt.Errorf("%w: %q chunk at offset %d", ErrChunkChecksumMismatch, tag, off)
		}

		c := chunk{typ: string(tag), payload: payload, offset: off}
		switch {
		case len(chunks) == 0 && c.typ != ctIHDR:
			return nil, fmt.Errorf("%w: first chunk is %q, want IHDR", ErrMalformedChunkOrder, c.typ)
		case len(chunks) > 0 && c.typ == ctIHDR:
			return nil, fmt.Errorf("%w: duplicate IHDR", ErrMalformedChunkOrder)
		case c.typ == ctPLTE && sawPLTE:
			return nil, fmt.Errorf("%w: duplicate PLTE", ErrMalformedChunkOrder)
		case c.typ == ctPLTE && sawIDAT:
			return nil, fmt.Errorf("%w: PLTE after first IDAT", ErrMalformedChunkOrder)
		case c.typ == ctIDAT && sawIDAT && chunks[len(chunks)-1].typ != ctIDAT:
			return nil, fmt.Errorf("%w: IDAT chunks not consecutive", ErrMalformedChunkOrder)
		}
		sawPLTE = sawPLTE || c.typ == ctPLTE
		sawIDAT = sawIDAT || c.typ == ctIDAT
		chunks = append(chunks, c)

		if c.typ == ctIEND {
			if length != 0 {
				return nil, fmt.Errorf("%w: terminator chunk with %d-byte payload", ErrMalformedChunkOrder, length)
			}
			if r.remaining() != 0 {
				return nil, fmt.Errorf("%w: %d trailing bytes after terminator", ErrMalformedChunkOrder, r.remaining())
			}
			return chunks, nil
		}
	}
}
