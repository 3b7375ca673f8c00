// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// charsetDecoder converts the raw payload bytes of one read into text,
// chunk by chunk. Incomplete multi-byte sequences at a chunk boundary are
// carried over to the next chunk and resolved by the final flush.
type charsetDecoder struct {
	tr      transform.Transformer
	pending []byte
	scratch [4096]byte
}

// newCharsetDecoder validates name against the supported encoding registry
// and returns a decoder for it. An unknown name fails with
// [UnsupportedCharsetError] before any byte is read.
func newCharsetDecoder(name string) (*charsetDecoder, error) {
	enc, err := htmlindex.Get(strings.ToLower(name))
	if err != nil {
		return nil, &UnsupportedCharsetError{Charset: name}
	}
	return &charsetDecoder{tr: enc.NewDecoder()}, nil
}

// Feed decodes the next chunk and returns the text produced so far.
func (d *charsetDecoder) Feed(p []byte) (string, error) {
	return d.decode(p, false)
}

// Flush terminates the decode at end of stream and returns any trailing
// output, e.g. a replacement for a truncated multi-byte sequence.
func (d *charsetDecoder) Flush() (string, error) {
	return d.decode(nil, true)
}

func (d *charsetDecoder) decode(p []byte, atEOF bool) (string, error) {
	d.pending = append(d.pending, p...)

	var sb strings.Builder
	for {
		nDst, nSrc, err := d.tr.Transform(d.scratch[:], d.pending, atEOF)
		sb.Write(d.scratch[:nDst])
		d.pending = d.pending[nSrc:]

		switch {
		case err == nil:
			return sb.String(), nil
		case err == transform.ErrShortSrc && !atEOF:
			// incomplete sequence, wait for the next chunk
			return sb.String(), nil
		case err == transform.ErrShortDst:
			continue
		default:
			return sb.String(), err
		}
	}
}
