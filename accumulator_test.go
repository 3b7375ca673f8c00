package readbody

import (
	"errors"
	"testing"
)

// scriptedSource delivers a fixed sequence of events synchronously on
// Subscribe and records whether it was halted. Events scheduled after a halt
// are still delivered, mimicking a producer with events already in flight.
type scriptedSource struct {
	chunks     [][]byte
	end        bool
	err        error
	abort      bool
	halted     bool
	subscribed bool
}

func (s *scriptedSource) Subscribe(ev Events) {
	s.subscribed = true
	for _, chunk := range s.chunks {
		ev.OnData(chunk)
	}
	switch {
	case s.abort:
		ev.OnAbort()
	case s.err != nil:
		ev.OnError(s.err)
	case s.end:
		ev.OnEnd()
	}
}

func (s *scriptedSource) Halt() {
	s.halted = true
}

func TestAccumulatorSuccess(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("hel"), []byte("lo")}, end: true}
	acc := newAccumulator(NewConfig(WithLimit(100)), src, 5, nil)

	o := <-acc.run()
	if o.err != nil {
		t.Fatalf("accumulator error = %v", o.err)
	}
	if got := string(o.result.Bytes); got != "hello" {
		t.Errorf("payload = %q, want %q", got, "hello")
	}
	if o.result.Received != 5 {
		t.Errorf("received = %d, want 5", o.result.Received)
	}
}

func TestAccumulatorFastPathSkipsSubscribe(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("data")}, end: true}
	acc := newAccumulator(NewConfig(WithLimit(10)), src, 20, nil)

	o := <-acc.run()
	var tl *EntityTooLargeError
	if !errors.As(o.err, &tl) {
		t.Fatalf("accumulator error = %T, want *EntityTooLargeError", o.err)
	}
	if tl.Expected != 20 || tl.Limit != 10 {
		t.Errorf("EntityTooLargeError = {expected: %d, limit: %d}, want {expected: 20, limit: 10}", tl.Expected, tl.Limit)
	}
	if src.subscribed {
		t.Error("source was subscribed, fast path must not consume the stream")
	}
}

// The second chunk pushes the counter past the limit; the source must be
// halted and the trailing chunk and end event must not alter the outcome.
func TestAccumulatorLimitHaltsSource(t *testing.T) {
	src := &scriptedSource{
		chunks: [][]byte{make([]byte, 8), make([]byte, 7), make([]byte, 4)},
		end:    true,
	}
	acc := newAccumulator(NewConfig(WithLimit(10)), src, -1, nil)

	o := <-acc.run()
	var tl *EntityTooLargeError
	if !errors.As(o.err, &tl) {
		t.Fatalf("accumulator error = %T, want *EntityTooLargeError", o.err)
	}
	if tl.Limit != 10 || tl.Received != 15 {
		t.Errorf("EntityTooLargeError = {limit: %d, received: %d}, want {limit: 10, received: 15}", tl.Limit, tl.Received)
	}
	if !src.halted {
		t.Error("source was not halted on limit violation")
	}
	if acc.received != 15 {
		t.Errorf("counter advanced past terminal transition: received = %d, want 15", acc.received)
	}
}

// Terminal delivery happens exactly once even if the source keeps emitting.
func TestAccumulatorTerminalIdempotence(t *testing.T) {
	src := &scriptedSource{
		chunks: [][]byte{make([]byte, 20), make([]byte, 20)},
		end:    true,
	}
	acc := newAccumulator(NewConfig(WithLimit(10)), src, -1, nil)

	done := acc.run()
	o := <-done
	if Kind(o.err) != KindEntityTooLarge {
		t.Fatalf("error kind = %q, want %q", Kind(o.err), KindEntityTooLarge)
	}

	// the trailing chunk and the end event were delivered post-terminal; a
	// second outcome would have been dropped into the buffered channel
	select {
	case extra := <-done:
		t.Fatalf("received a second outcome: %+v", extra)
	default:
	}
}

func TestAccumulatorSizeMismatch(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("1234567")}, end: true}
	acc := newAccumulator(NewConfig(), src, 10, nil)

	o := <-acc.run()
	var sm *SizeMismatchError
	if !errors.As(o.err, &sm) {
		t.Fatalf("accumulator error = %T, want *SizeMismatchError", o.err)
	}
	if sm.Expected != 10 || sm.Received != 7 {
		t.Errorf("SizeMismatchError = {expected: %d, received: %d}, want {expected: 10, received: 7}", sm.Expected, sm.Received)
	}
}

func TestAccumulatorAbort(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("abc")}, abort: true}
	acc := newAccumulator(NewConfig(), src, 10, nil)

	o := <-acc.run()
	var ab *AbortedError
	if !errors.As(o.err, &ab) {
		t.Fatalf("accumulator error = %T, want *AbortedError", o.err)
	}
	if ab.Received != 3 {
		t.Errorf("Received = %d, want 3", ab.Received)
	}
}

func TestAccumulatorStreamError(t *testing.T) {
	cause := errors.New("connection reset")
	src := &scriptedSource{chunks: [][]byte{[]byte("abc")}, err: cause}
	acc := newAccumulator(NewConfig(), src, -1, nil)

	o := <-acc.run()
	var se *StreamError
	if !errors.As(o.err, &se) {
		t.Fatalf("accumulator error = %T, want *StreamError", o.err)
	}
	if !errors.Is(o.err, cause) {
		t.Error("underlying error was not preserved")
	}
}

// An error that is already classified passes through unwrapped.
func TestAccumulatorClassifiedErrorPassthrough(t *testing.T) {
	cause := &EntityTooLargeError{Limit: 16, Received: 20, Expected: -1}
	src := &scriptedSource{err: cause}
	acc := newAccumulator(NewConfig(), src, -1, nil)

	o := <-acc.run()
	var tl *EntityTooLargeError
	if !errors.As(o.err, &tl) {
		t.Fatalf("accumulator error = %T, want *EntityTooLargeError", o.err)
	}
	if tl != cause {
		t.Error("classified error was re-wrapped")
	}
}

func TestAccumulatorDecodesText(t *testing.T) {
	dec, err := newCharsetDecoder("utf-8")
	if err != nil {
		t.Fatalf("newCharsetDecoder() error = %v", err)
	}

	src := &scriptedSource{chunks: [][]byte{[]byte("hel"), []byte("lo")}, end: true}
	acc := newAccumulator(NewConfig(), src, 5, dec)

	o := <-acc.run()
	if o.err != nil {
		t.Fatalf("accumulator error = %v", o.err)
	}
	if !o.result.Decoded {
		t.Error("Decoded = false, want true")
	}
	if o.result.Text != "hello" {
		t.Errorf("Text = %q, want %q", o.result.Text, "hello")
	}
}
