// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"context"
	"io"
	"sync/atomic"
)

// Events receives the stream events of one body read. Chunks are delivered
// once each, in order; exactly one of OnEnd, OnError or OnAbort terminates
// the stream, and no event follows it.
type Events interface {
	// OnData delivers the next chunk. The chunk is only valid for the
	// duration of the call.
	OnData(p []byte)

	// OnEnd signals a clean end of stream, no more data follows.
	OnEnd()

	// OnError signals a stream-level failure.
	OnError(err error)

	// OnAbort signals that the stream was aborted before completion.
	OnAbort()
}

// Source is a byte stream that delivers its content as a sequence of events.
// A source is exclusively owned by one read operation.
type Source interface {
	// Subscribe starts event delivery to ev.
	Subscribe(ev Events)

	// Halt stops the source from being consumed any further. Events already
	// in flight may still be delivered.
	Halt()
}

// readerSource adapts an io.Reader to the [Source] event contract with a
// pump goroutine. Context cancellation surfaces as the abort event.
type readerSource struct {
	ctx    context.Context
	open   func() (io.Reader, error)
	halted atomic.Bool
}

// NewReaderSource returns a [Source] that delivers the content of r.
// Cancellation of ctx is reported to the subscriber as abort.
func NewReaderSource(ctx context.Context, r io.Reader) Source {
	return &readerSource{ctx: ctx, open: func() (io.Reader, error) { return r, nil }}
}

// newLazyReaderSource defers construction of the reader into the pump
// goroutine, so a decompressor that reads its header eagerly does not block
// the subscribing caller.
func newLazyReaderSource(ctx context.Context, open func() (io.Reader, error)) *readerSource {
	return &readerSource{ctx: ctx, open: open}
}

func (s *readerSource) Subscribe(ev Events) {
	go s.pump(ev)
}

func (s *readerSource) Halt() {
	s.halted.Store(true)
}

func (s *readerSource) pump(ev Events) {
	r, err := s.open()
	if err != nil {
		ev.OnError(err)
		return
	}

	buf := make([]byte, 32*1024)
	for {
		// halt is observed between chunks, no chunk is delivered after it
		if s.halted.Load() {
			return
		}
		if s.ctx.Err() != nil {
			ev.OnAbort()
			return
		}

		n, err := r.Read(buf)
		if n > 0 {
			ev.OnData(buf[:n])
		}
		switch {
		case err == io.EOF:
			ev.OnEnd()
			return
		case err != nil:
			if s.ctx.Err() != nil {
				ev.OnAbort()
				return
			}
			ev.OnError(err)
			return
		}
	}
}
