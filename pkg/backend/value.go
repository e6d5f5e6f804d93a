package backend

import "time"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindTime
	KindStringSlice
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	case KindStringSlice:
		return "string-slice"
	default:
		return "invalid"
	}
}

// Value is a closed tagged union over the scalar shapes the local and cloud
// stores support natively. Accessors report !ok on a kind mismatch instead of
// panicking, so a corrupt or retyped entry degrades to absence upstream.
type Value struct {
	kind Kind

	str   string
	b     bool
	i     int64
	f     float64
	bytes []byte
	t     time.Time
	strs  []string
}

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bytes wraps a binary blob. The input is copied so later caller mutation
// cannot tear a stored entry.
func Bytes(p []byte) Value {
	return Value{kind: KindBytes, bytes: cloneBytes(p)}
}

// Time wraps a timestamp.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// StringSlice wraps an ordered sequence of strings. The input is copied.
func StringSlice(ss []string) Value {
	return Value{kind: KindStringSlice, strs: cloneStrings(ss)}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the value holds no variant at all.
func (v Value) IsZero() bool { return v.kind == KindInvalid }

// AsString returns the string variant.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean variant.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer variant.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the floating-point variant.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsBytes returns a copy of the blob variant.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return cloneBytes(v.bytes), true
}

// AsTime returns the timestamp variant.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// AsStringSlice returns a copy of the string sequence variant.
func (v Value) AsStringSlice() ([]string, bool) {
	if v.kind != KindStringSlice {
		return nil, false
	}
	return cloneStrings(v.strs), true
}

func cloneBytes(p []byte) []byte {
	if p == nil {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
