package readbody_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	readbody "github.com/hashicorp/go-readbody"
)

func TestParseJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	err := readbody.Parse(context.Background(), strings.NewReader(`{"name":"readbody"}`),
		func(payload []byte) error { return json.Unmarshal(payload, &v) })
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v.Name != "readbody" {
		t.Errorf("Name = %q, want %q", v.Name, "readbody")
	}
}

func TestParseMalformedPayload(t *testing.T) {
	var v map[string]any
	payload := `{"name":`

	err := readbody.Parse(context.Background(), strings.NewReader(payload),
		func(p []byte) error { return json.Unmarshal(p, &v) })
	if err == nil {
		t.Fatal("Parse() expected error")
	}

	var pe *readbody.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
	if string(pe.Payload) != payload {
		t.Errorf("Payload = %q, want %q", pe.Payload, payload)
	}
	if readbody.Kind(err) != readbody.KindParseFailed {
		t.Errorf("error kind = %q, want %q", readbody.Kind(err), readbody.KindParseFailed)
	}
}

func TestParseVerifyRejection(t *testing.T) {
	rejected := errors.New("payload rejected by policy")

	err := readbody.Parse(context.Background(), strings.NewReader(`{}`),
		func(p []byte) error { t.Fatal("deserializer must not run after rejection"); return nil },
		readbody.WithVerify(func(p []byte) error { return rejected }))
	if err == nil {
		t.Fatal("Parse() expected error")
	}

	var ve *readbody.VerifyError
	if !errors.As(err, &ve) {
		t.Fatalf("Parse() error = %T, want *VerifyError", err)
	}
	if string(ve.Payload) != `{}` {
		t.Errorf("Payload = %q, want %q", ve.Payload, `{}`)
	}
	if !errors.Is(err, rejected) {
		t.Error("underlying rejection was not preserved")
	}
}

func TestParseVerifyAccepted(t *testing.T) {
	var verified []byte
	var v map[string]any

	err := readbody.Parse(context.Background(), strings.NewReader(`{"a":1}`),
		func(p []byte) error { return json.Unmarshal(p, &v) },
		readbody.WithVerify(func(p []byte) error {
			verified = append([]byte(nil), p...)
			return nil
		}))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if string(verified) != `{"a":1}` {
		t.Errorf("verified payload = %q, want %q", verified, `{"a":1}`)
	}
}

// Parse defaults the charset to utf-8, so an unsupported override fails
// before the deserializer runs.
func TestParseCharset(t *testing.T) {
	err := readbody.Parse(context.Background(), strings.NewReader("x"),
		func(p []byte) error { return nil },
		readbody.WithCharset("utf-7"))
	if readbody.Kind(err) != readbody.KindCharsetUnsupported {
		t.Errorf("error kind = %q, want %q", readbody.Kind(err), readbody.KindCharsetUnsupported)
	}
}

// Read failures pass through Parse unwrapped.
func TestParsePropagatesReadErrors(t *testing.T) {
	err := readbody.Parse(context.Background(), strings.NewReader(strings.Repeat("x", 100)),
		func(p []byte) error { return nil },
		readbody.WithLimit(10))

	var tl *readbody.EntityTooLargeError
	if !errors.As(err, &tl) {
		t.Fatalf("Parse() error = %T, want *EntityTooLargeError", err)
	}
}
