package readbody

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// CodingLZ4 is the content coding token for LZ4 frame compressed streams.
const CodingLZ4 = "lz4"

// magicBytesLZ4 is the magic bytes for LZ4 frames.
// reference https://android.googlesource.com/platform/external/lz4/+/HEAD/doc/lz4_Frame_format.md
var magicBytesLZ4 = [][]byte{
	{0x04, 0x22, 0x4D, 0x18},
}

// isLZ4 checks if the header matches the LZ4 magic bytes.
func isLZ4(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesLZ4)
}

// WithLZ4 registers the LZ4 frame content coding.
func WithLZ4() ConfigOption {
	return WithCoding(CodingLZ4, decompressLZ4Stream)
}

// decompressLZ4Stream returns an io.Reader that decompresses src with LZ4 algorithm
func decompressLZ4Stream(src io.Reader) (io.Reader, error) {
	return lz4.NewReader(src), nil
}
