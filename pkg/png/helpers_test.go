package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// makeChunk frames a payload as one chunk with a valid CRC.
func makeChunk(typ string, payload []byte) []byte {
	buf := make([]byte, 0, len(payload)+12)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(payload)))
	buf = append(buf, typ...)
	buf = append(buf, payload...)
	return binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf[4:]))
}

// makePNG concatenates the signature and pre-framed chunks.
func makePNG(chunks ...[]byte) []byte {
	buf := []byte(signature)
	for _, c := range chunks {
		buf = append(buf, c...)
	}
	return buf
}

func makeIHDR(width, height uint32, bitDepth, colorType, interlace uint8) []byte {
	p := make([]byte, 0, 13)
	p = binary.BigEndian.AppendUint32(p, width)
	p = binary.BigEndian.AppendUint32(p, height)
	p = append(p, bitDepth, colorType, 0, 0, interlace)
	return makeChunk(ctIHDR, p)
}

func makeIEND() []byte {
	return makeChunk(ctIEND, nil)
}

// deflate zlib-wraps raw scanline bytes for use as an IDAT payload.
func deflate(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
