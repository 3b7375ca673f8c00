// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"errors"
	"fmt"
)

// Error kinds as reported by [Kind]. Every failure that leaves this package
// is classified into exactly one of these.
const (
	KindEncodingUnsupported = "encoding.unsupported"
	KindCharsetUnsupported  = "charset.unsupported"
	KindEntityTooLarge      = "entity.too.large"
	KindSizeMismatch        = "request.size.invalid"
	KindAborted             = "request.aborted"
	KindVerifyFailed        = "entity.verify.failed"
	KindParseFailed         = "entity.parse.failed"
	KindStream              = "stream.error"
)

// UnsupportedEncodingError is returned if the declared content coding is not
// registered, or if decompression is disabled but the coding requires it.
type UnsupportedEncodingError struct {
	// Encoding is the unrecognized content coding token.
	Encoding string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported content encoding %q", e.Encoding)
}

// Kind returns the machine-readable error kind.
func (e *UnsupportedEncodingError) Kind() string { return KindEncodingUnsupported }

// UnsupportedCharsetError is returned if the requested charset is not in the
// supported encoding registry. It is reported before any byte is read.
type UnsupportedCharsetError struct {
	// Charset is the unsupported charset name.
	Charset string
}

func (e *UnsupportedCharsetError) Error() string {
	return fmt.Sprintf("unsupported charset %q", e.Charset)
}

// Kind returns the machine-readable error kind.
func (e *UnsupportedCharsetError) Kind() string { return KindCharsetUnsupported }

// EntityTooLargeError is returned if the body exceeds the configured limit,
// either detected up front from the declared length or mid-read from the
// running byte counter.
type EntityTooLargeError struct {
	// Limit is the configured maximum number of bytes.
	Limit int64

	// Received is the number of bytes consumed when the limit was exceeded.
	// Zero if the read was rejected before any byte arrived.
	Received int64

	// Expected is the declared content length, or -1 if unknown.
	Expected int64
}

func (e *EntityTooLargeError) Error() string {
	if e.Received == 0 && e.Expected != -1 {
		return fmt.Sprintf("request entity too large: declared length %d exceeds limit %d", e.Expected, e.Limit)
	}
	return fmt.Sprintf("request entity too large: received %d bytes, limit %d", e.Received, e.Limit)
}

// Kind returns the machine-readable error kind.
func (e *EntityTooLargeError) Kind() string { return KindEntityTooLarge }

// SizeMismatchError is returned if an uncompressed stream ends with a byte
// count different from its declared content length.
type SizeMismatchError struct {
	// Expected is the declared content length.
	Expected int64

	// Received is the number of bytes actually consumed.
	Received int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("request size did not match content length: expected %d bytes, received %d", e.Expected, e.Received)
}

// Kind returns the machine-readable error kind.
func (e *SizeMismatchError) Kind() string { return KindSizeMismatch }

// AbortedError is returned if the source stream signaled abort before the
// body was fully received.
type AbortedError struct {
	// Expected is the declared content length, or -1 if unknown.
	Expected int64

	// Received is the number of bytes consumed before the abort.
	Received int64
}

func (e *AbortedError) Error() string {
	if e.Expected != -1 {
		return fmt.Sprintf("request aborted: received %d of %d bytes", e.Received, e.Expected)
	}
	return fmt.Sprintf("request aborted: received %d bytes", e.Received)
}

// Kind returns the machine-readable error kind.
func (e *AbortedError) Kind() string { return KindAborted }

// VerifyError wraps a rejection from the verification callback. The payload
// that was rejected is preserved for the caller.
type VerifyError struct {
	Payload []byte
	Err     error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("entity verification failed: %s", e.Err)
}

func (e *VerifyError) Unwrap() error { return e.Err }

// Kind returns the machine-readable error kind.
func (e *VerifyError) Kind() string { return KindVerifyFailed }

// ParseError wraps a failure of the deserializer callback. The payload that
// failed to deserialize is preserved for the caller.
type ParseError struct {
	Payload []byte
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entity parse failed: %s", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind returns the machine-readable error kind.
func (e *ParseError) Kind() string { return KindParseFailed }

// StreamError wraps any other stream-level failure. The underlying error is
// preserved and can be inspected with [errors.Unwrap].
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error: %s", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// Kind returns the machine-readable error kind.
func (e *StreamError) Kind() string { return KindStream }

// kinder is implemented by all classified errors of this package.
type kinder interface {
	Kind() string
}

// Kind returns the machine-readable kind of a classified error, or the empty
// string if err was not produced by this package.
func Kind(err error) string {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
