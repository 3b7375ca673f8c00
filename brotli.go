package readbody

import (
	"io"

	"github.com/andybalholm/brotli"
)

// CodingBrotli is the content coding token for brotli compressed streams.
const CodingBrotli = "br"

// isBrotli returns always false, because brotli streams have no magic bytes
func isBrotli(header []byte) bool {
	return false
}

// WithBrotli registers the brotli content coding.
func WithBrotli() ConfigOption {
	return WithCoding(CodingBrotli, decompressBrotliStream)
}

// decompressBrotliStream returns an io.Reader that decompresses src with brotli algorithm
func decompressBrotliStream(src io.Reader) (io.Reader, error) {
	return brotli.NewReader(src), nil
}
