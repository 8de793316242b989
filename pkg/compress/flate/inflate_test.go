package flate

import (
	"bytes"
	"fmt"
	"testing"

	kflate "github.com/klauspost/compress/flate"
	kzlib "github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storedStream frames payload as a single final stored block.
func storedStream(payload []byte) []byte {
	n := len(payload)
	stream := []byte{0x01, byte(n), byte(n >> 8), byte(^n), byte(^n >> 8)}
	return append(stream, payload...)
}

func TestInflate_StoredBlock(t *testing.T) {
	payload := []byte("raw bytes pass through unchanged")
	out, err := Inflate(storedStream(payload), len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

// TestInflate_FixedBlockKnownBytes decodes the canonical minimal
// fixed-Huffman stream for the single byte "a".
func TestInflate_FixedBlockKnownBytes(t *testing.T) {
	out, err := Inflate([]byte{0x4b, 0x04, 0x00}, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), out)
}

// TestInflate_BackReferenceTooFar feeds a fixed-Huffman block whose first
// back-reference points two bytes back with only one byte produced.
func TestInflate_BackReferenceTooFar(t *testing.T) {
	_, err := Inflate([]byte{0x4b, 0x04, 0x42}, 4)
	require.ErrorIs(t, err, ErrInvalidBlock)
}

func TestInflate_InvalidBlockType(t *testing.T) {
	_, err := Inflate([]byte{0x07}, 1)
	require.ErrorIs(t, err, ErrInvalidBlock)
}

func TestInflate_OutputOverrun(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	_, err := Inflate(storedStream(payload), 3)
	require.ErrorIs(t, err, ErrOutputOverrun)
}

func TestInflate_Truncated(t *testing.T) {
	// Stored block header cut short.
	_, err := Inflate([]byte{0x01, 0x05, 0x00}, 5)
	require.ErrorIs(t, err, ErrTruncated)

	// Coded block cut mid-symbol.
	_, err = Inflate([]byte{0x4b}, 1)
	require.ErrorIs(t, err, ErrTruncated)

	// Final block ends before the expected output length is reached.
	_, err = Inflate(storedStream([]byte{9}), 2)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestInflate_StoredBlockLengthCheck(t *testing.T) {
	// LEN and ~LEN disagree.
	_, err := Inflate([]byte{0x01, 0x05, 0x00, 0x00, 0x00, 1, 2, 3, 4, 5}, 5)
	require.ErrorIs(t, err, ErrInvalidBlock)
}

func TestHuffman_OverSubscribed(t *testing.T) {
	_, err := newHuffman([]int{1, 1, 1})
	require.ErrorIs(t, err, ErrInvalidBlock)
}

func TestHuffman_IncompleteCodeFailsDecode(t *testing.T) {
	h, err := newHuffman([]int{2})
	require.NoError(t, err)
	f := &inflater{in: []byte{0xff, 0xff}}
	_, err = f.decodeSym(h)
	require.ErrorIs(t, err, ErrInvalidCode)
}

// testPattern mixes repeated runs (back-reference fodder) with a varying
// tail so every block type gets exercised by the encoder.
func testPattern(n int) []byte {
	data := make([]byte, 0, n)
	for len(data) < n {
		data = append(data, []byte("the quick brown fox jumps over the lazy dog ")...)
		data = append(data, byte(len(data)), byte(len(data)>>3))
	}
	return data[:n]
}

func TestInflate_RoundTripFlate(t *testing.T) {
	data := testPattern(64 * 1024)
	for _, level := range []int{kflate.NoCompression, kflate.BestSpeed, kflate.BestCompression} {
		t.Run(fmt.Sprintf("level%d", level), func(t *testing.T) {
			var buf bytes.Buffer
			zw, err := kflate.NewWriter(&buf, level)
			require.NoError(t, err)
			_, err = zw.Write(data)
			require.NoError(t, err)
			require.NoError(t, zw.Close())

			out, err := Inflate(buf.Bytes(), len(data))
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestDecompress_RoundTripZlib(t *testing.T) {
	data := testPattern(48 * 1024)
	var buf bytes.Buffer
	zw := kzlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	out, err := Decompress(buf.Bytes(), len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestDecompress_ChecksumMismatch(t *testing.T) {
	data := testPattern(256)
	var buf bytes.Buffer
	zw := kzlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	stream := buf.Bytes()
	stream[len(stream)-1] ^= 0xff
	_, err = Decompress(stream, len(data))
	require.ErrorIs(t, err, ErrChecksum)
}

func TestDecompress_BadHeader(t *testing.T) {
	// Header check byte off by one.
	_, err := Decompress([]byte{0x78, 0x9d, 0x00}, 1)
	require.ErrorIs(t, err, ErrInvalidBlock)

	// Compression method not DEFLATE.
	_, err = Decompress([]byte{0x77, 0x00, 0x00}, 1)
	require.ErrorIs(t, err, ErrInvalidBlock)

	// Preset dictionary flagged.
	_, err = Decompress([]byte{0x78, 0x20, 0x00}, 1)
	require.ErrorIs(t, err, ErrInvalidBlock)

	// Too short to hold a header at all.
	_, err = Decompress([]byte{0x78}, 1)
	require.ErrorIs(t, err, ErrTruncated)
}
