package readbody

import (
	"context"
	"mime"
	"net/http"
)

// ReadRequest reads the body of r with the content coding and declared
// length taken from its headers. Options given by the caller take precedence
// over the derived ones.
func ReadRequest(ctx context.Context, r *http.Request, opts ...ConfigOption) (*Result, error) {
	return Read(ctx, r.Body, append(requestOptions(r), opts...)...)
}

// ParseRequest parses the body of r with [Parse]. The content coding and
// declared length are taken from the request headers, the charset from the
// charset parameter of the Content-Type header if present.
func ParseRequest(ctx context.Context, r *http.Request, fn UnmarshalFunc, opts ...ConfigOption) error {
	derived := requestOptions(r)
	if _, params, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		if cs := params["charset"]; cs != "" {
			derived = append(derived, WithCharset(cs))
		}
	}
	return Parse(ctx, r.Body, fn, append(derived, opts...)...)
}

func requestOptions(r *http.Request) []ConfigOption {
	var opts []ConfigOption
	if enc := r.Header.Get("Content-Encoding"); enc != "" {
		opts = append(opts, WithEncoding(enc))
	}
	// net/http reports an unknown length as -1, which is already the default
	if r.ContentLength >= 0 {
		opts = append(opts, WithExpectedLength(r.ContentLength))
	}
	return opts
}
