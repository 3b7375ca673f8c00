// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"context"
	"io"
)

// UnmarshalFunc deserializes the decoded payload into the caller's value,
// e.g. a closure over [encoding/json.Unmarshal]. Its failures are opaque to
// this package and wrapped as [ParseError].
type UnmarshalFunc func(payload []byte) error

// Parse reads the body from src and hands the decoded payload to fn.
//
// The payload is decoded to text with the configured charset, defaulting to
// utf-8. If a verification callback is configured it runs before fn; its
// rejection surfaces as [VerifyError], a failure of fn as [ParseError], both
// carrying the offending payload. Exactly one outcome is produced per call.
func Parse(ctx context.Context, src io.Reader, fn UnmarshalFunc, opts ...ConfigOption) error {
	cfg := NewConfig(append([]ConfigOption{WithCharset("utf-8")}, opts...)...)

	res, err := ReadWithConfig(ctx, src, cfg)
	if err != nil {
		return err
	}
	payload := res.Payload()

	if verify := cfg.Verify(); verify != nil {
		if err := verify(payload); err != nil {
			return &VerifyError{Payload: payload, Err: err}
		}
	}

	if err := fn(payload); err != nil {
		return &ParseError{Payload: payload, Err: err}
	}
	return nil
}
