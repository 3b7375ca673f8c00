// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// CodingZstd is the content coding token for zstandard compressed streams.
const CodingZstd = "zstd"

// magicBytesZstd is the magic bytes for zstandard streams.
// reference: https://www.rfc-editor.org/rfc/rfc8878.html
var magicBytesZstd = [][]byte{
	{0x28, 0xb5, 0x2f, 0xfd},
}

// isZstd checks if the header matches the zstandard magic bytes.
func isZstd(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesZstd)
}

// WithZstd registers the zstandard content coding.
func WithZstd() ConfigOption {
	return WithCoding(CodingZstd, decompressZstdStream)
}

// decompressZstdStream returns an io.Reader that decompresses src with zstandard algorithm
func decompressZstdStream(src io.Reader) (io.Reader, error) {
	return zstd.NewReader(src)
}
