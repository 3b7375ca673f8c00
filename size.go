// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package readbody

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// sizePattern matches a human-readable byte count: an optional sign, a
// decimal magnitude and a unit suffix.
var sizePattern = regexp.MustCompile(`(?i)^([-+])?(\d+(?:\.\d+)?) *(b|kb|mb|gb|tb)$`)

// sizeUnits maps a unit suffix to its power-of-1024 multiplier.
var sizeUnits = map[string]int64{
	"b":  1,
	"kb": 1 << 10,
	"mb": 1 << 20,
	"gb": 1 << 30,
	"tb": 1 << 40,
}

// ParseSize converts a human-readable size ("100kb", "1mb") or a numeric
// value into a byte count. Numeric values are returned unchanged; floats are
// floored. Strings without a recognized unit suffix fall back to a bare
// leading integer treated as bytes ("10abc" is 10). The second return value
// is false if v cannot be interpreted as a byte count.
func ParseSize(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return parseSizeFloat(float64(n))
	case float64:
		return parseSizeFloat(n)
	case string:
		return parseSizeString(n)
	}
	return 0, false
}

func parseSizeFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Floor(f)), true
}

func parseSizeString(s string) (int64, bool) {
	if m := sizePattern.FindStringSubmatch(s); m != nil {
		mag, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		if m[1] == "-" {
			mag = -mag
		}
		mult := sizeUnits[strings.ToLower(m[3])]
		return int64(math.Floor(mag * float64(mult))), true
	}

	// no unit suffix, parse a bare leading integer as bytes
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:j], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
