// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"bytes"
	"strings"
)

// outcome is the single terminal result of one read operation.
type outcome struct {
	result *Result
	err    error
}

// accumulator consumes the events of one source stream, enforces the byte
// limit and the declared length while bytes arrive, and resolves to exactly
// one outcome on its done channel.
//
// State moves Idle -> Reading -> terminal. The terminal transition happens
// at most once; any stream event after it is ignored, and on a size
// violation the source is halted so the producer stops being read from.
// All fields are owned by the event goroutine of the source; the outcome
// channel is the only hand-off to the caller.
type accumulator struct {
	cfg      *Config
	src      Source
	expected int64 // declared length, -1 when unknown or compressed
	received int64
	dec      *charsetDecoder // nil delivers raw bytes
	raw      bytes.Buffer
	text     strings.Builder
	terminal bool
	done     chan outcome
}

func newAccumulator(cfg *Config, src Source, expected int64, dec *charsetDecoder) *accumulator {
	return &accumulator{
		cfg:      cfg,
		src:      src,
		expected: expected,
		dec:      dec,
		done:     make(chan outcome, 1),
	}
}

// run starts the read and returns the channel the outcome is delivered on.
// The outcome is always delivered through the channel, including failures
// detected before any byte is read, so callers see a single completion path.
func (a *accumulator) run() <-chan outcome {

	// fast path: a declared length beyond the limit is rejected without
	// consuming any stream data
	if limit := a.cfg.Limit(); limit != -1 && a.expected != -1 && a.expected > limit {
		a.fail(&EntityTooLargeError{Limit: limit, Expected: a.expected})
		return a.done
	}

	a.src.Subscribe(a)
	return a.done
}

// OnData implements [Events].
func (a *accumulator) OnData(p []byte) {
	if a.terminal {
		return
	}

	a.received += int64(len(p))
	if err := a.cfg.CheckLimit(a.received); err != nil {
		// stop consuming the producer, do not drain the rest
		a.src.Halt()
		a.fail(err)
		return
	}

	if a.dec != nil {
		s, err := a.dec.Feed(p)
		if err != nil {
			a.src.Halt()
			a.fail(&StreamError{Err: err})
			return
		}
		a.text.WriteString(s)
		return
	}
	a.raw.Write(p)
}

// OnEnd implements [Events].
func (a *accumulator) OnEnd() {
	if a.terminal {
		return
	}

	// the declared length must match on uncompressed input
	if a.expected != -1 && a.received != a.expected {
		a.fail(&SizeMismatchError{Expected: a.expected, Received: a.received})
		return
	}

	if a.dec != nil {
		s, err := a.dec.Flush()
		if err != nil {
			a.fail(&StreamError{Err: err})
			return
		}
		a.text.WriteString(s)
		a.succeed(&Result{Text: a.text.String(), Decoded: true, Received: a.received})
		return
	}
	a.succeed(&Result{Bytes: a.raw.Bytes(), Received: a.received})
}

// OnError implements [Events].
func (a *accumulator) OnError(err error) {
	if a.terminal {
		return
	}

	// surface unclassified stream failures as a generic one
	if Kind(err) == "" {
		err = &StreamError{Err: err}
	}
	a.fail(err)
}

// OnAbort implements [Events].
func (a *accumulator) OnAbort() {
	if a.terminal {
		return
	}
	a.fail(&AbortedError{Expected: a.expected, Received: a.received})
}

func (a *accumulator) succeed(r *Result) {
	a.deliver(outcome{result: r})
}

func (a *accumulator) fail(err error) {
	a.deliver(outcome{err: err})
}

func (a *accumulator) deliver(o outcome) {
	// the terminal flag is set before the outcome is handed over, so a late
	// stream event can never cause a second delivery
	a.terminal = true
	a.done <- o
}
