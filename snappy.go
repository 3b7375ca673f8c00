// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"io"

	"github.com/klauspost/compress/snappy"
)

// CodingSnappy is the content coding token for framed snappy streams.
const CodingSnappy = "x-snappy-framed"

// magicBytesSnappy is the magic bytes for framed snappy streams.
var magicBytesSnappy = [][]byte{
	append([]byte{0xff, 0x06, 0x00, 0x00}, []byte("sNaPpY")...),
}

// isSnappy checks if the header matches the snappy magic bytes.
func isSnappy(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesSnappy)
}

// WithSnappy registers the framed snappy content coding.
func WithSnappy() ConfigOption {
	return WithCoding(CodingSnappy, decompressSnappyStream)
}

// decompressSnappyStream returns an io.Reader that decompresses src with snappy algorithm
func decompressSnappyStream(src io.Reader) (io.Reader, error) {
	return snappy.NewReader(src), nil
}
