package settings

import (
	"net/url"
	"time"

	"github.com/goliatone/go-settings/internal/coerce"
	"github.com/goliatone/go-settings/pkg/backend"
)

func stringCodec() codec[string] {
	return codec[string]{
		encode: func(v string) (backend.Value, error) {
			return backend.String(v), nil
		},
		decode: func(val backend.Value) (string, bool) {
			return val.AsString()
		},
		encodeSecure: func(v string) ([]byte, error) {
			return []byte(v), nil
		},
		decodeSecure: func(p []byte) (string, bool, error) {
			return string(p), true, nil
		},
	}
}

func boolCodec() codec[bool] {
	return codec[bool]{
		encode: func(v bool) (backend.Value, error) {
			return backend.Bool(v), nil
		},
		decode: func(val backend.Value) (bool, bool) {
			return val.AsBool()
		},
		encodeSecure: func(v bool) ([]byte, error) {
			return coerce.FormatBool(v), nil
		},
		decodeSecure: func(p []byte) (bool, bool, error) {
			v, ok := coerce.ParseBool(p)
			return v, ok, nil
		},
	}
}

func intCodec() codec[int] {
	return codec[int]{
		encode: func(v int) (backend.Value, error) {
			return backend.Int(int64(v)), nil
		},
		decode: func(val backend.Value) (int, bool) {
			i, ok := val.AsInt()
			return int(i), ok
		},
		encodeSecure: func(v int) ([]byte, error) {
			return coerce.FormatInt(int64(v)), nil
		},
		decodeSecure: func(p []byte) (int, bool, error) {
			i, ok := coerce.ParseInt(p)
			return int(i), ok, nil
		},
	}
}

func int64Codec() codec[int64] {
	return codec[int64]{
		encode: func(v int64) (backend.Value, error) {
			return backend.Int(v), nil
		},
		decode: func(val backend.Value) (int64, bool) {
			return val.AsInt()
		},
		encodeSecure: func(v int64) ([]byte, error) {
			return coerce.FormatInt(v), nil
		},
		decodeSecure: func(p []byte) (int64, bool, error) {
			i, ok := coerce.ParseInt(p)
			return i, ok, nil
		},
	}
}

func floatCodec() codec[float64] {
	return codec[float64]{
		encode: func(v float64) (backend.Value, error) {
			return backend.Float(v), nil
		},
		decode: func(val backend.Value) (float64, bool) {
			return val.AsFloat()
		},
		encodeSecure: func(v float64) ([]byte, error) {
			return coerce.FormatFloat(v), nil
		},
		decodeSecure: func(p []byte) (float64, bool, error) {
			f, ok := coerce.ParseFloat(p)
			return f, ok, nil
		},
	}
}

func bytesCodec() codec[[]byte] {
	return codec[[]byte]{
		encode: func(v []byte) (backend.Value, error) {
			return backend.Bytes(v), nil
		},
		decode: func(val backend.Value) ([]byte, bool) {
			return val.AsBytes()
		},
		encodeSecure: func(v []byte) ([]byte, error) {
			return append([]byte(nil), v...), nil
		},
		decodeSecure: func(p []byte) ([]byte, bool, error) {
			return append([]byte(nil), p...), true, nil
		},
	}
}

func timeCodec() codec[time.Time] {
	return codec[time.Time]{
		encode: func(v time.Time) (backend.Value, error) {
			return backend.Time(v), nil
		},
		decode: func(val backend.Value) (time.Time, bool) {
			return val.AsTime()
		},
		encodeSecure: func(v time.Time) ([]byte, error) {
			return coerce.FormatTime(v), nil
		},
		decodeSecure: func(p []byte) (time.Time, bool, error) {
			t, err := coerce.ParseTime(p)
			if err != nil {
				return time.Time{}, false, err
			}
			return t, true, nil
		},
	}
}

func stringSliceCodec() codec[[]string] {
	return codec[[]string]{
		encode: func(v []string) (backend.Value, error) {
			return backend.StringSlice(v), nil
		},
		decode: func(val backend.Value) ([]string, bool) {
			return val.AsStringSlice()
		},
		// The secure store has no array equivalent.
		noSecure: true,
	}
}

func urlCodec() codec[url.URL] {
	return codec[url.URL]{
		encode: func(v url.URL) (backend.Value, error) {
			return backend.String(v.String()), nil
		},
		decode: func(val backend.Value) (url.URL, bool) {
			s, ok := val.AsString()
			if !ok {
				return url.URL{}, false
			}
			return parseURL(s)
		},
		encodeSecure: func(v url.URL) ([]byte, error) {
			return []byte(v.String()), nil
		},
		decodeSecure: func(p []byte) (url.URL, bool, error) {
			u, ok := parseURL(string(p))
			return u, ok, nil
		},
	}
}

// parseURL maps a malformed stored locator to absence; a parse failure never
// escapes the codec boundary.
func parseURL(s string) (url.URL, bool) {
	u, err := url.Parse(s)
	if err != nil || u == nil {
		return url.URL{}, false
	}
	return *u, true
}
