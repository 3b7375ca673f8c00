// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"compress/flate"
	"compress/zlib"
	"io"
)

// magicBytesZlib is the magic bytes for zlib wrapped deflate streams.
// reference https://www.ietf.org/rfc/rfc1950.txt
var magicBytesZlib = [][]byte{
	{0x78, 0x01},
	{0x78, 0x5e},
	{0x78, 0x9c},
	{0x78, 0xda},
	{0x78, 0x20},
	{0x78, 0x7d},
	{0x78, 0xbb},
	{0x78, 0xf9},
}

// isZlib checks if the header matches the zlib magic bytes.
func isZlib(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesZlib)
}

// decompressDeflateStream returns an io.Reader that decompresses src with the
// deflate algorithm. The "deflate" content coding is a zlib wrapped stream,
// but some clients send raw deflate, so the wrapper is detected from the
// first two bytes and both forms are accepted.
func decompressDeflateStream(src io.Reader) (io.Reader, error) {
	hr, err := newHeaderReader(src, 2)
	if err != nil {
		return nil, err
	}
	if isZlib(hr.PeekHeader()) {
		return zlib.NewReader(hr)
	}
	return flate.NewReader(hr), nil
}
