package flate

import "sync"

// maxCodeLen is the longest prefix code DEFLATE permits.
const maxCodeLen = 15

// huffman is a canonical prefix decoder. Rather than a lookup table it keeps
// the per-length code counts and the symbols sorted by code value; decoding
// walks the lengths bit by bit, which is compact and fast enough for the
// short codes this format uses.
type huffman struct {
	counts  [maxCodeLen + 1]int
	symbols []int
}

// newHuffman builds a decoder from the code length of each symbol (length 0
// means the symbol is unused). Over-subscribed length sets are rejected;
// incomplete sets are allowed and surface as ErrInvalidCode at decode time.
func newHuffman(lengths []int) (*huffman, error) {
	h := &huffman{symbols: make([]int, len(lengths))}
	for _, n := range lengths {
		h.counts[n]++
	}
	if h.counts[0] == len(lengths) {
		return h, nil // no codes at all; any decode attempt will fail
	}

	left := 1
	for length := 1; length <= maxCodeLen; length++ {
		left <<= 1
		left -= h.counts[length]
		if left < 0 {
			return nil, ErrInvalidBlock
		}
	}

	// Offsets of the first symbol of each length in the sorted table.
	var offs [maxCodeLen + 1]int
	for length := 1; length < maxCodeLen; length++ {
		offs[length+1] = offs[length] + h.counts[length]
	}
	for symbol, n := range lengths {
		if n != 0 {
			h.symbols[offs[n]] = symbol
			offs[n]++
		}
	}
	return h, nil
}

// Fixed (statically defined) literal/length and distance codes, built once.
var (
	fixedOnce   sync.Once
	fixedLitLen *huffman
	fixedDist   *huffman
)

func fixedTables() (*huffman, *huffman) {
	fixedOnce.Do(func() {
		lengths := make([]int, 288)
		for i := 0; i < 144; i++ {
			lengths[i] = 8
		}
		for i := 144; i < 256; i++ {
			lengths[i] = 9
		}
		for i := 256; i < 280; i++ {
			lengths[i] = 7
		}
		for i := 280; i < 288; i++ {
			lengths[i] = 8
		}
		fixedLitLen, _ = newHuffman(lengths)

		distLengths := make([]int, 30)
		for i := range distLengths {
			distLengths[i] = 5
		}
		fixedDist, _ = newHuffman(distLengths)
	})
	return fixedLitLen, fixedDist
}
