// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"bytes"
	"io"
)

// DecompressorFunc returns a reader that decompresses src with a content
// coding algorithm.
type DecompressorFunc func(src io.Reader) (io.Reader, error)

// Content coding tokens supported out of the box. Additional codings such as
// brotli or zstandard can be registered with [WithCoding].
const (
	CodingIdentity = "identity"
	CodingGZip     = "gzip"
	CodingDeflate  = "deflate"
)

// defaultDecompressors maps the default content coding tokens to their
// decompressors. Identity is handled before the lookup.
var defaultDecompressors = map[string]DecompressorFunc{
	CodingGZip:    decompressGZipStream,
	CodingDeflate: decompressDeflateStream,
}

// resolveCoding routes the raw stream through the decompressor declared by
// the configured content coding. It returns a deferred open function, so a
// decompressor that consumes its header eagerly does not block the caller,
// and reports whether the declared length still describes the stream (true
// for identity only, a compressed length says nothing about the
// decompressed size).
func resolveCoding(src io.Reader, cfg *Config) (open func() (io.Reader, error), keepLength bool, err error) {
	token := cfg.Encoding()
	if token == "" {
		token = CodingIdentity
	}

	// identity passes the raw stream through unchanged
	if token == CodingIdentity {
		return func() (io.Reader, error) { return src, nil }, true, nil
	}

	// reject compressed input if decompression is disabled
	if !cfg.Inflate() {
		return nil, false, &UnsupportedEncodingError{Encoding: token}
	}

	fn, ok := cfg.decompressor(token)
	if !ok {
		return nil, false, &UnsupportedEncodingError{Encoding: token}
	}

	// cap the compressed input before decompression
	in := src
	if cfg.MaxInputSize() != -1 {
		in = newLimitErrorReader(src, cfg.MaxInputSize())
	}

	return func() (io.Reader, error) { return fn(in) }, false, nil
}

// DetectCoding guesses the content coding of a stream from its first bytes.
// It returns identity if no known magic bytes match. Brotli has no magic
// bytes and can not be detected.
func DetectCoding(header []byte) string {
	switch {
	case isGZip(header):
		return CodingGZip
	case isZlib(header):
		return CodingDeflate
	case isZstd(header):
		return CodingZstd
	case isSnappy(header):
		return CodingSnappy
	case isLZ4(header):
		return CodingLZ4
	}
	return CodingIdentity
}

// matchesMagicBytes checks if data matches any of the given magic byte
// sequences at offset.
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	// check all possible magic bytes until match is found
	for _, mb := range magicBytes {
		// check if header is long enough
		if offset+len(mb) > len(data) {
			continue
		}

		// check for byte match
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}

	// no match found
	return false
}
