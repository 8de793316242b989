package flate

import (
	"encoding/binary"
	"fmt"
	"hash/adler32"
)

// Length and distance alphabets per RFC 1951 section 3.2.5. Literal/length
// symbols 257-285 index lengthBase/lengthExtra; distance symbols 0-29 index
// distBase/distExtra. Both are read-only process-wide tables.
var (
	lengthBase = [29]int{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtra = [29]uint{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
	distBase = [30]int{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtra = [30]uint{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}

	// Transmission order of the code-length code lengths in a dynamic block.
	codeOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}
)

// Inflate decompresses a raw DEFLATE stream, producing exactly expected
// bytes. The output buffer only ever grows, so back-references are plain
// index arithmetic into the bytes produced so far.
func Inflate(data []byte, expected int) ([]byte, error) {
	f := &inflater{in: data, out: make([]byte, 0, expected), max: expected}
	if err := f.run(); err != nil {
		return nil, err
	}
	return f.out, nil
}

// Decompress decompresses a zlib-wrapped DEFLATE stream (RFC 1950),
// validating the two-byte header and the trailing adler-32 checksum.
func Decompress(data []byte, expected int) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: zlib header", ErrTruncated)
	}
	cmf, flg := data[0], data[1]
	if cmf&0x0f != 8 {
		return nil, fmt.Errorf("%w: zlib compression method %d", ErrInvalidBlock, cmf&0x0f)
	}
	if (uint(cmf)<<8|uint(flg))%31 != 0 {
		return nil, fmt.Errorf("%w: zlib header check failed", ErrInvalidBlock)
	}
	if flg&0x20 != 0 {
		return nil, fmt.Errorf("%w: preset dictionary not supported", ErrInvalidBlock)
	}

	f := &inflater{in: data[2:], out: make([]byte, 0, expected), max: expected}
	if err := f.run(); err != nil {
		return nil, err
	}

	f.alignByte()
	var trailer [4]byte
	for i := range trailer {
		c, err := f.readByte()
		if err != nil {
			return nil, fmt.Errorf("%w: zlib trailer", ErrTruncated)
		}
		trailer[i] = c
	}
	if got := adler32.Checksum(f.out); binary.BigEndian.Uint32(trailer[:]) != got {
		return nil, fmt.Errorf("%w: adler-32 %08x", ErrChecksum, got)
	}
	return f.out, nil
}

// inflater holds the decode state for one stream: a bit-level cursor over the
// input and an append-only output capped at the expected length.
type inflater struct {
	in  []byte
	pos int    // next unread input byte
	b   uint32 // bit buffer, next bit in the low end
	nb  uint   // valid bits in b
	out []byte
	max int
}

func (f *inflater) run() error {
	for {
		final, err := f.readBits(1)
		if err != nil {
			return err
		}
		typ, err := f.readBits(2)
		if err != nil {
			return err
		}
		switch typ {
		case 0:
			err = f.storedBlock()
		case 1:
			hl, hd := fixedTables()
			err = f.codedBlock(hl, hd)
		case 2:
			err = f.dynamicBlock()
		default:
			err = fmt.Errorf("%w: block type 3 at offset %d", ErrInvalidBlock, f.pos)
		}
		if err != nil {
			return err
		}
		if final == 1 {
			break
		}
	}
	if len(f.out) != f.max {
		return fmt.Errorf("%w: produced %d of %d bytes", ErrTruncated, len(f.out), f.max)
	}
	return nil
}

// storedBlock copies a raw passthrough block: byte-aligned LEN, ~LEN, then
// LEN literal bytes.
func (f *inflater) storedBlock() error {
	f.alignByte()
	var hdr [4]byte
	for i := range hdr {
		c, err := f.readByte()
		if err != nil {
			return err
		}
		hdr[i] = c
	}
	n := int(hdr[0]) | int(hdr[1])<<8
	inv := int(hdr[2]) | int(hdr[3])<<8
	if uint16(inv) != ^uint16(n) {
		return fmt.Errorf("%w: stored block length check at offset %d", ErrInvalidBlock, f.pos)
	}
	if len(f.out)+n > f.max {
		return fmt.Errorf("%w: stored block of %d bytes", ErrOutputOverrun, n)
	}
	for i := 0; i < n; i++ {
		c, err := f.readByte()
		if err != nil {
			return err
		}
		f.out = append(f.out, c)
	}
	return nil
}

// dynamicBlock reads the embedded code-length tables and decodes the block
// body with them.
func (f *inflater) dynamicBlock() error {
	v, err := f.readBits(5)
	if err != nil {
		return err
	}
	hlit := int(v) + 257
	if v, err = f.readBits(5); err != nil {
		return err
	}
	hdist := int(v) + 1
	if v, err = f.readBits(4); err != nil {
		return err
	}
	hclen := int(v) + 4

	if hlit > 286 || hdist > 30 {
		return fmt.Errorf("%w: %d literal/length and %d distance codes", ErrInvalidBlock, hlit, hdist)
	}

	clens := make([]int, len(codeOrder))
	for i := 0; i < hclen; i++ {
		if v, err = f.readBits(3); err != nil {
			return err
		}
		clens[codeOrder[i]] = int(v)
	}
	hcl, err := newHuffman(clens)
	if err != nil {
		return fmt.Errorf("%w: code-length table at offset %d", err, f.pos)
	}

	// Literal/length and distance code lengths share one run-length encoded
	// sequence; symbols 16-18 repeat the previous length or zeros.
	lengths := make([]int, hlit+hdist)
	for i := 0; i < len(lengths); {
		sym, err := f.decodeSym(hcl)
		if err != nil {
			return err
		}
		if sym < 16 {
			lengths[i] = sym
			i++
			continue
		}
		var rep, b int
		var nb uint
		switch sym {
		case 16:
			if i == 0 {
				return fmt.Errorf("%w: repeat with no previous code length", ErrInvalidBlock)
			}
			rep, nb, b = 3, 2, lengths[i-1]
		case 17:
			rep, nb, b = 3, 3, 0
		default: // 18
			rep, nb, b = 11, 7, 0
		}
		if v, err = f.readBits(nb); err != nil {
			return err
		}
		rep += int(v)
		if i+rep > len(lengths) {
			return fmt.Errorf("%w: code length repeat past table end", ErrInvalidBlock)
		}
		for j := 0; j < rep; j++ {
			lengths[i] = b
			i++
		}
	}

	if lengths[256] == 0 {
		return fmt.Errorf("%w: missing end-of-block code", ErrInvalidBlock)
	}
	hl, err := newHuffman(lengths[:hlit])
	if err != nil {
		return fmt.Errorf("%w: literal/length table at offset %d", err, f.pos)
	}
	hd, err := newHuffman(lengths[hlit:])
	if err != nil {
		return fmt.Errorf("%w: distance table at offset %d", err, f.pos)
	}
	return f.codedBlock(hl, hd)
}

// codedBlock decodes literals and back-references until the end-of-block
// symbol.
func (f *inflater) codedBlock(hl, hd *huffman) error {
	for {
		sym, err := f.decodeSym(hl)
		if err != nil {
			return err
		}
		switch {
		case sym < 256:
			if len(f.out) >= f.max {
				return fmt.Errorf("%w: literal at offset %d", ErrOutputOverrun, f.pos)
			}
			f.out = append(f.out, byte(sym))
		case sym == 256:
			return nil
		case sym < 286:
			length := lengthBase[sym-257]
			if nb := lengthExtra[sym-257]; nb > 0 {
				extra, err := f.readBits(nb)
				if err != nil {
					return err
				}
				length += int(extra)
			}
			dsym, err := f.decodeSym(hd)
			if err != nil {
				return err
			}
			if dsym >= len(distBase) {
				return fmt.Errorf("%w: distance symbol %d", ErrInvalidBlock, dsym)
			}
			dist := distBase[dsym]
			if nb := distExtra[dsym]; nb > 0 {
				extra, err := f.readBits(nb)
				if err != nil {
					return err
				}
				dist += int(extra)
			}
			if dist > len(f.out) {
				return fmt.Errorf("%w: distance %d with only %d bytes produced", ErrInvalidBlock, dist, len(f.out))
			}
			if len(f.out)+length > f.max {
				return fmt.Errorf("%w: back-reference of %d bytes", ErrOutputOverrun, length)
			}
			// The source run may overlap the destination: copying byte by
			// byte lets a reference repeat bytes it is itself producing.
			for i := 0; i < length; i++ {
				f.out = append(f.out, f.out[len(f.out)-dist])
			}
		default:
			return fmt.Errorf("%w: literal/length symbol %d", ErrInvalidBlock, sym)
		}
	}
}

// decodeSym reads one canonically coded symbol, consuming the code MSB first.
func (f *inflater) decodeSym(h *huffman) (int, error) {
	code, first, index := 0, 0, 0
	for length := 1; length <= maxCodeLen; length++ {
		bit, err := f.readBits(1)
		if err != nil {
			return 0, err
		}
		code |= int(bit)
		count := h.counts[length]
		if code-count < first {
			return h.symbols[index+(code-first)], nil
		}
		index += count
		first += count
		first <<= 1
		code <<= 1
	}
	return 0, fmt.Errorf("%w: at offset %d", ErrInvalidCode, f.pos)
}

// readBits returns the next n bits, least significant bit first.
func (f *inflater) readBits(n uint) (uint32, error) {
	for f.nb < n {
		if f.pos >= len(f.in) {
			return 0, fmt.Errorf("%w: at offset %d", ErrTruncated, f.pos)
		}
		f.b |= uint32(f.in[f.pos]) << f.nb
		f.pos++
		f.nb += 8
	}
	v := f.b & (1<<n - 1)
	f.b >>= n
	f.nb -= n
	return v, nil
}

// readByte returns the next byte-aligned input byte, draining the bit buffer
// first. Only valid when nb is a multiple of 8.
func (f *inflater) readByte() (byte, error) {
	if f.nb >= 8 {
		c := byte(f.b)
		f.b >>= 8
		f.nb -= 8
		return c, nil
	}
	if f.pos >= len(f.in) {
		return 0, fmt.Errorf("%w: at offset %d", ErrTruncated, f.pos)
	}
	c := f.in[f.pos]
	f.pos++
	return c, nil
}

// alignByte discards bits up to the next byte boundary.
func (f *inflater) alignByte() {
	drop := f.nb % 8
	f.b >>= drop
	f.nb -= drop
}
