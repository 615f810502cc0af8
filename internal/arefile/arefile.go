// Package arefile transforms zlib-compressed area container payloads.
package arefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// BestCompression is the level the game ships its containers at.
const BestCompression = zlib.BestCompression

// ErrShortHeader is returned by ParseHeader for payloads under 8 bytes.
var ErrShortHeader = errors.New("area payload shorter than header")

// Header is the leading signature and version of a decompressed payload.
type Header struct {
	Signature string `json:"signature"`
	Version   string `json:"version"`
}

// ParseHeader reads the 4-byte signature and 4-byte version of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < 8 {
		return Header{}, ErrShortHeader
	}
	return Header{Signature: string(data[0:4]), Version: string(data[4:8])}, nil
}

// Decompress inflates a zlib stream.
func Decompress(r io.Reader) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return data, nil
}

// Compress deflates data to w at level.
func Compress(w io.Writer, data []byte, level int) error {
	zw, err := zlib.NewWriterLevel(w, level)
	if err != nil {
		return fmt.Errorf("create zlib writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return fmt.Errorf("deflate: %w", err)
	}
	return zw.Close()
}

// RoundTripReport compares a compressed payload with its recompression.
type RoundTripReport struct {
	Header         Header `json:"header"`
	CompressedSize int    `json:"compressed_size"`
	RawSize        int    `json:"raw_size"`
	RecompSize     int    `json:"recompressed_size"`
	Identical      bool   `json:"identical"`
}

// RoundTrip inflates compressed, deflates it again at level, and reports
// whether the bytes match the original.
func RoundTrip(compressed []byte, level int) (RoundTripReport, error) {
	raw, err := Decompress(bytes.NewReader(compressed))
	if err != nil {
		return RoundTripReport{}, err
	}
	var buf bytes.Buffer
	if err := Compress(&buf, raw, level); err != nil {
		return RoundTripReport{}, err
	}

	report := RoundTripReport{
		CompressedSize: len(compressed),
		RawSize:        len(raw),
		RecompSize:     buf.Len(),
		Identical:      bytes.Equal(compressed, buf.Bytes()),
	}
	if h, err := ParseHeader(raw); err == nil {
		report.Header = h
	}
	return report, nil
}
