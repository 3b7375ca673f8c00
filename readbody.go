// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"context"
	"io"
	"time"

	"github.com/hashicorp/go-readbody/telemetry"
)

// Result is the payload of a successful read.
type Result struct {
	// Bytes is the raw payload. Set if no charset was requested.
	Bytes []byte

	// Text is the decoded payload. Set if a charset was requested.
	Text string

	// Decoded reports whether the payload was decoded to text.
	Decoded bool

	// Received is the number of bytes consumed from the stream, counted
	// after decompression.
	Received int64
}

// Payload returns the payload as bytes, regardless of whether a charset was
// requested.
func (r *Result) Payload() []byte {
	if r.Decoded {
		return []byte(r.Text)
	}
	return r.Bytes
}

// Read consumes src according to opts and returns the accumulated payload.
//
// The stream is decompressed per the declared content coding, the received
// byte count is checked against the configured limit while bytes arrive, and
// on uncompressed input against the declared length at end of stream. If a
// charset is configured the payload is decoded to text. Exactly one of the
// result or a classified error is returned; see [Kind] for the error
// taxonomy.
func Read(ctx context.Context, src io.Reader, opts ...ConfigOption) (*Result, error) {
	return ReadWithConfig(ctx, src, NewConfig(opts...))
}

// ReadWithConfig is [Read] with a prepared configuration.
func ReadWithConfig(ctx context.Context, src io.Reader, cfg *Config) (*Result, error) {

	// prepare telemetry capturing
	start := time.Now()
	td := &telemetry.Data{Coding: cfg.Encoding(), Charset: cfg.Charset()}
	if td.Coding == "" {
		td.Coding = CodingIdentity
	}
	defer cfg.TelemetryHook()(ctx, td)
	defer func() { td.ReadDuration = time.Since(start) }()

	// validate the charset before any byte is read
	var dec *charsetDecoder
	if name := cfg.Charset(); name != "" {
		var err error
		if dec, err = newCharsetDecoder(name); err != nil {
			return nil, capture(td, err)
		}
	}

	// route the stream through the declared content coding
	open, keepLength, err := resolveCoding(src, cfg)
	if err != nil {
		return nil, capture(td, err)
	}

	// the declared length only describes uncompressed input
	expected := int64(-1)
	if keepLength {
		expected = cfg.ExpectedLength()
	}

	cfg.Logger().Debug("read body", "coding", td.Coding, "limit", cfg.Limit(), "expected", expected)

	acc := newAccumulator(cfg, newLazyReaderSource(ctx, open), expected, dec)
	o := <-acc.run()

	td.BytesReceived = acc.received
	if o.err != nil {
		cfg.Logger().Debug("read failed", "kind", Kind(o.err), "received", acc.received)
		return nil, capture(td, o.err)
	}
	if o.result.Decoded {
		td.DecodedLength = int64(len(o.result.Text))
	} else {
		td.DecodedLength = int64(len(o.result.Bytes))
	}
	cfg.Logger().Debug("read finished", "received", o.result.Received)
	return o.result, nil
}

// ReadSource consumes an event-driven [Source] whose chunks are the already
// decompressed body bytes. Content coding options do not apply; limit,
// declared length and charset behave as in [Read].
func ReadSource(ctx context.Context, src Source, opts ...ConfigOption) (*Result, error) {
	cfg := NewConfig(opts...)

	td := &telemetry.Data{Coding: CodingIdentity, Charset: cfg.Charset()}
	start := time.Now()
	defer cfg.TelemetryHook()(ctx, td)
	defer func() { td.ReadDuration = time.Since(start) }()

	var dec *charsetDecoder
	if name := cfg.Charset(); name != "" {
		var err error
		if dec, err = newCharsetDecoder(name); err != nil {
			return nil, capture(td, err)
		}
	}

	acc := newAccumulator(cfg, src, cfg.ExpectedLength(), dec)
	o := <-acc.run()

	td.BytesReceived = acc.received
	if o.err != nil {
		return nil, capture(td, o.err)
	}
	td.DecodedLength = int64(len(o.result.Payload()))
	return o.result, nil
}

// capture records the terminal error in the telemetry data and passes it
// through unchanged.
func capture(td *telemetry.Data, err error) error {
	td.ErrorKind = Kind(err)
	td.LastError = err
	return err
}
