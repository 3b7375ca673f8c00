// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"io"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-readbody/telemetry"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// VerifyFunc verifies the payload before it is handed to the deserializer.
// A non-nil return rejects the payload.
type VerifyFunc func(payload []byte) error

// Config provides a configuration struct and options to adjust the configuration.
//
// The configuration struct holds all configuration options for a body read.
// The configuration options can be adjusted using the option pattern style.
//
// The default configuration is designed to be secure by default and bound
// the bytes accepted from an untrusted stream.
type Config struct {
	// charset is the requested text encoding of the payload.
	// Empty means the payload is delivered as raw bytes.
	charset string

	// codings holds additional content codings registered with [WithCoding]
	codings map[string]DecompressorFunc

	// encoding is the declared content coding of the input stream.
	// Empty is treated as identity.
	encoding string

	// expectedLength is the declared length of the body before decompression.
	// Set value to -1 if unknown.
	expectedLength int64

	// inflate decides if compressed input is accepted at all
	inflate bool

	// limit is the maximum number of bytes accepted after decompression.
	// Set value to -1 to disable the check.
	limit int64

	// logger stream for the read
	logger logger

	// maxInputSize is the maximum size of the compressed input.
	// Set value to -1 to disable the check.
	maxInputSize int64

	// telemetryHook is a function to consume telemetry data after a finished read
	// Important: do not adjust this value after the read started
	telemetryHook telemetry.TelemetryHook

	// verifier is an optional payload verification callback
	verifier VerifyFunc
}

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style
func NewConfig(opts ...ConfigOption) *Config {
	const (
		charset        = ""
		encoding       = ""
		expectedLength = -1
		inflate        = true
		limit          = 1 << (10 * 2) // 1 Mb
		maxInputSize   = -1
	)

	// disable logging by default
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	// setup default values
	config := &Config{
		charset:        charset,
		encoding:       encoding,
		expectedLength: expectedLength,
		inflate:        inflate,
		limit:          limit,
		logger:         logger,
		maxInputSize:   maxInputSize,
		telemetryHook:  telemetry.NoopTelemetryHook,
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// Charset returns the requested charset, empty if the payload should be
// delivered as raw bytes.
func (c *Config) Charset() string {
	return c.charset
}

// CheckLimit checks if received exceeds the configured limit. If the limit is
// exceeded, an [EntityTooLargeError] is returned.
func (c *Config) CheckLimit(received int64) error {

	// check if disabled
	if c.Limit() == -1 {
		return nil
	}

	// check value
	if received > c.Limit() {
		return &EntityTooLargeError{Limit: c.Limit(), Received: received, Expected: c.ExpectedLength()}
	}
	return nil
}

// Encoding returns the declared content coding, normalized to lower case.
// Empty is treated as identity.
func (c *Config) Encoding() string {
	return strings.ToLower(strings.TrimSpace(c.encoding))
}

// ExpectedLength returns the declared length of the body, or -1 if unknown.
func (c *Config) ExpectedLength() int64 {
	return c.expectedLength
}

// Inflate returns true if compressed input is accepted.
func (c *Config) Inflate() bool {
	return c.inflate
}

// Limit returns the maximum number of bytes accepted after decompression.
func (c *Config) Limit() int64 {
	return c.limit
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// MaxInputSize returns the maximum size of the compressed input.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() telemetry.TelemetryHook {
	return c.telemetryHook
}

// Verify returns the payload verification callback, nil if unset.
func (c *Config) Verify() VerifyFunc {
	return c.verifier
}

// decompressor looks up the decompressor for a content coding token,
// preferring codings registered with [WithCoding] over the defaults.
func (c *Config) decompressor(token string) (DecompressorFunc, bool) {
	if fn, ok := c.codings[token]; ok {
		return fn, true
	}
	fn, ok := defaultDecompressors[token]
	return fn, ok
}

// WithCharset decodes the payload to text using the named charset. The name
// is validated against the supported encoding registry before any byte is
// read.
func WithCharset(name string) ConfigOption {
	return func(c *Config) {
		c.charset = strings.ToLower(strings.TrimSpace(name))
	}
}

// WithCoding registers an additional content coding. The registered
// decompressor takes precedence over the default codings for the same token.
func WithCoding(token string, fn DecompressorFunc) ConfigOption {
	return func(c *Config) {
		if c.codings == nil {
			c.codings = map[string]DecompressorFunc{}
		}
		c.codings[strings.ToLower(token)] = fn
	}
}

// WithEncoding declares the content coding of the input stream.
func WithEncoding(token string) ConfigOption {
	return func(c *Config) {
		c.encoding = token
	}
}

// WithExpectedLength declares the length of the body before decompression.
// The declared length is checked against the received byte count on
// uncompressed input. Set to -1 if unknown.
func WithExpectedLength(length int64) ConfigOption {
	return func(c *Config) {
		c.expectedLength = length
	}
}

// WithInflate decides if compressed input is accepted. If set to false, any
// content coding other than identity is rejected.
func WithInflate(inflate bool) ConfigOption {
	return func(c *Config) {
		c.inflate = inflate
	}
}

// WithLimit adjusts the maximum number of bytes accepted after
// decompression. Set value to -1 to disable the check.
func WithLimit(limit int64) ConfigOption {
	return func(c *Config) {
		c.limit = limit
	}
}

// WithLimitString adjusts the limit from a human-readable size such as
// "100kb" or "1mb". Unparseable values leave the limit unchanged.
func WithLimitString(limit string) ConfigOption {
	return func(c *Config) {
		if n, ok := ParseSize(limit); ok {
			c.limit = n
		}
	}
}

// WithLogger adjusts the logger that is used.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxInputSize adjusts the maximum size of the compressed input. Set
// value to -1 to disable the check.
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithTelemetryHook adjusts the telemetry hook that consumes the
// [telemetry.Data] after a finished read.
func WithTelemetryHook(hook telemetry.TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}

// WithVerify sets a payload verification callback that runs before the
// deserializer. A rejection surfaces as [VerifyError].
func WithVerify(fn VerifyFunc) ConfigOption {
	return func(c *Config) {
		c.verifier = fn
	}
}
