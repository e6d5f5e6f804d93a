package settings

import (
	"github.com/goliatone/go-settings/internal/coerce"
	"github.com/goliatone/go-settings/pkg/backend"
)

// Enum payloads store the raw value only, never a wrapped structure. The
// case set supplied at key construction is what turns a stored raw value
// back into a typed case; anything outside it reads as absent.

func stringEnumCodec[T ~string](cases []T) codec[T] {
	allowed := caseSet(cases)
	return codec[T]{
		encode: func(v T) (backend.Value, error) {
			return backend.String(string(v)), nil
		},
		decode: func(val backend.Value) (T, bool) {
			s, ok := val.AsString()
			if !ok {
				var zero T
				return zero, false
			}
			return checkCase(T(s), allowed)
		},
		encodeSecure: func(v T) ([]byte, error) {
			return []byte(string(v)), nil
		},
		decodeSecure: func(p []byte) (T, bool, error) {
			v, ok := checkCase(T(p), allowed)
			return v, ok, nil
		},
	}
}

func intEnumCodec[T ~int](cases []T) codec[T] {
	allowed := caseSet(cases)
	return codec[T]{
		encode: func(v T) (backend.Value, error) {
			return backend.Int(int64(v)), nil
		},
		decode: func(val backend.Value) (T, bool) {
			i, ok := val.AsInt()
			if !ok {
				var zero T
				return zero, false
			}
			return checkCase(T(i), allowed)
		},
		encodeSecure: func(v T) ([]byte, error) {
			return coerce.FormatInt(int64(v)), nil
		},
		decodeSecure: func(p []byte) (T, bool, error) {
			i, ok := coerce.ParseInt(p)
			if !ok {
				var zero T
				return zero, false, nil
			}
			v, ok := checkCase(T(i), allowed)
			return v, ok, nil
		},
	}
}

func caseSet[T comparable](cases []T) map[T]struct{} {
	set := make(map[T]struct{}, len(cases))
	for _, c := range cases {
		set[c] = struct{}{}
	}
	return set
}

func checkCase[T comparable](v T, allowed map[T]struct{}) (T, bool) {
	if _, ok := allowed[v]; !ok {
		var zero T
		return zero, false
	}
	return v, true
}
