// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package readbody reads a request body from a byte stream into a payload,
// with limits applied while the bytes arrive.
//
// The stream is decompressed according to its declared content coding,
// checked against a maximum size and a declared content length during
// consumption, and optionally decoded to text using a named charset. Every
// read resolves to exactly one outcome: the accumulated payload, or a single
// classified error that carries the limit, expected and received values
// needed to report it.
//
// Configuration is done using the [Config], which can be used to set the
// size limit, the declared length, the content coding, the charset, the
// logger, and the telemetry hook. Telemetry data is captured during the read
// and handed to the configured hook as [telemetry.Data].
package readbody
