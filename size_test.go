package readbody_test

import (
	"math"
	"testing"

	readbody "github.com/hashicorp/go-readbody"
)

func TestParseSizeString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOk bool
	}{
		{
			name:   "bytes",
			input:  "100b",
			want:   100,
			wantOk: true,
		},
		{
			name:   "kilobytes",
			input:  "2kb",
			want:   2048,
			wantOk: true,
		},
		{
			name:   "megabytes",
			input:  "1mb",
			want:   1 << 20,
			wantOk: true,
		},
		{
			name:   "gigabytes",
			input:  "1gb",
			want:   1 << 30,
			wantOk: true,
		},
		{
			name:   "terabytes",
			input:  "1tb",
			want:   1 << 40,
			wantOk: true,
		},
		{
			name:   "upper case unit",
			input:  "1MB",
			want:   1 << 20,
			wantOk: true,
		},
		{
			name:   "space before unit",
			input:  "1 mb",
			want:   1 << 20,
			wantOk: true,
		},
		{
			name:   "fractional magnitude is floored",
			input:  "1.5kb",
			want:   1536,
			wantOk: true,
		},
		{
			name:   "explicit positive sign",
			input:  "+2kb",
			want:   2048,
			wantOk: true,
		},
		{
			name:   "negative size",
			input:  "-1kb",
			want:   -1024,
			wantOk: true,
		},
		{
			name:   "bare integer falls back to bytes",
			input:  "100",
			want:   100,
			wantOk: true,
		},
		{
			name:   "leading integer with trailing garbage",
			input:  "10abc",
			want:   10,
			wantOk: true,
		},
		{
			name:   "negative bare integer",
			input:  "-1",
			want:   -1,
			wantOk: true,
		},
		{
			name:   "no digits",
			input:  "abc",
			wantOk: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOk: false,
		},
		{
			name:   "sign only",
			input:  "-",
			wantOk: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := readbody.ParseSize(test.input)
			if ok != test.wantOk {
				t.Fatalf("ParseSize(%q) ok = %v, want %v", test.input, ok, test.wantOk)
			}
			if ok && got != test.want {
				t.Errorf("ParseSize(%q) = %d, want %d", test.input, got, test.want)
			}
		})
	}
}

func TestParseSizeNumeric(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   int64
		wantOk bool
	}{
		{
			name:   "int",
			input:  int(1024),
			want:   1024,
			wantOk: true,
		},
		{
			name:   "int64",
			input:  int64(1 << 30),
			want:   1 << 30,
			wantOk: true,
		},
		{
			name:   "uint",
			input:  uint(42),
			want:   42,
			wantOk: true,
		},
		{
			name:   "float is floored",
			input:  float64(1023.9),
			want:   1023,
			wantOk: true,
		},
		{
			name:   "NaN",
			input:  math.NaN(),
			wantOk: false,
		},
		{
			name:   "infinity",
			input:  math.Inf(1),
			wantOk: false,
		},
		{
			name:   "unsupported type",
			input:  []byte("1mb"),
			wantOk: false,
		},
		{
			name:   "nil",
			input:  nil,
			wantOk: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := readbody.ParseSize(test.input)
			if ok != test.wantOk {
				t.Fatalf("ParseSize(%v) ok = %v, want %v", test.input, ok, test.wantOk)
			}
			if ok && got != test.want {
				t.Errorf("ParseSize(%v) = %d, want %d", test.input, got, test.want)
			}
		})
	}
}
