// Package coerce holds the text encodings the secure-store codec uses for
// scalar payloads. The secure store deals only in byte blobs, so booleans,
// integers, floats, and timestamps all round-trip through these helpers.
package coerce

import (
	"fmt"
	"strconv"
	"time"
)

// FormatBool encodes a boolean as a single 0/1 byte.
func FormatBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

// ParseBool decodes a single 0/1 byte. Anything else reports !ok.
func ParseBool(p []byte) (bool, bool) {
	if len(p) != 1 {
		return false, false
	}
	switch p[0] {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}

// FormatInt encodes an integer as ASCII decimal.
func FormatInt(i int64) []byte {
	return strconv.AppendInt(nil, i, 10)
}

// ParseInt decodes ASCII decimal. A non-numeric payload reports !ok.
func ParseInt(p []byte) (int64, bool) {
	i, err := strconv.ParseInt(string(p), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// FormatFloat encodes a float in the shortest round-trippable decimal form.
func FormatFloat(f float64) []byte {
	return strconv.AppendFloat(nil, f, 'g', -1, 64)
}

// ParseFloat decodes a decimal float. A non-numeric payload reports !ok.
func ParseFloat(p []byte) (float64, bool) {
	f, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatTime encodes a timestamp as ISO-8601 (RFC 3339) text with
// nanosecond precision.
func FormatTime(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}

// ParseTime decodes ISO-8601 text. Malformed text returns a descriptive
// error so the caller can log it before degrading to absence.
func ParseTime(p []byte) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, string(p))
	if err != nil {
		return time.Time{}, fmt.Errorf("coerce: malformed timestamp %q: %w", p, err)
	}
	return t, nil
}
