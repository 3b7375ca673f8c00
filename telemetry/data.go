// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package telemetry

import (
	"context"
	"encoding/json"
	"time"
)

// Data is a struct type that holds all telemetry data of a body read
type Data struct {
	// BytesReceived is the number of bytes consumed from the stream,
	// counted after decompression
	BytesReceived int64

	// Charset is the requested charset, empty if the payload was
	// delivered as raw bytes
	Charset string

	// Coding is the content coding of the input stream
	Coding string

	// DecodedLength is the length of the decoded text payload
	DecodedLength int64

	// ErrorKind is the classified kind of the terminal error
	ErrorKind string

	// LastError is the terminal error of the read
	LastError error

	// ReadDuration is the time it took to consume the stream
	ReadDuration time.Duration
}

// String returns a string representation of [Data].
func (d Data) String() string {
	b, _ := json.Marshal(d)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (d Data) MarshalJSON() ([]byte, error) {
	var lastError string
	if d.LastError != nil {
		lastError = d.LastError.Error()
	}

	type Alias Data
	return json.Marshal(&struct {
		LastError string `json:"LastError"`
		*Alias
	}{
		LastError: lastError,
		Alias:     (*Alias)(&d),
	})
}

// TelemetryHook is a function type that performs operations on [Data] after
// a body read has finished which can be used to submit the [Data] to a
// telemetry service, for example.
type TelemetryHook func(context.Context, *Data)
