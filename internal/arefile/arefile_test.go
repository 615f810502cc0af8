package arefile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = append([]byte("AREAV9.1"), bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x04}, 512)...)

func TestCompressDecompress(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Compress(&buf, payload, BestCompression))
	assert.Less(t, buf.Len(), len(payload))

	raw, err := Decompress(&buf)
	require.NoError(t, err)
	assert.Equal(t, payload, raw)
}

func TestDecompress_NotZlib(t *testing.T) {
	_, err := Decompress(bytes.NewReader([]byte("plain text")))
	assert.Error(t, err)
}

func TestCompress_BadLevel(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Compress(&buf, payload, 42))
}

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader(payload)
	require.NoError(t, err)
	assert.Equal(t, Header{Signature: "AREA", Version: "V9.1"}, h)

	_, err = ParseHeader([]byte("ARE"))
	assert.ErrorIs(t, err, ErrShortHeader)
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Compress(&buf, payload, BestCompression))

	report, err := RoundTrip(buf.Bytes(), BestCompression)
	require.NoError(t, err)
	assert.True(t, report.Identical)
	assert.Equal(t, len(payload), report.RawSize)
	assert.Equal(t, buf.Len(), report.CompressedSize)
	assert.Equal(t, "AREA", report.Header.Signature)
}
