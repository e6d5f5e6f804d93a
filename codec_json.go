package settings

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-settings/pkg/backend"
)

// jsonCodec handles arbitrary structured payloads: JSON-encoded to bytes and
// stored as a blob in every backend. Bytes that fail to decode (wrong shape,
// truncated, non-JSON) read back as absent without touching the stored
// entry; an unencodable value fails the write before any store call, so a
// failed write never destroys existing state.
func jsonCodec[T any]() codec[T] {
	return codec[T]{
		encode: func(v T) (backend.Value, error) {
			p, err := marshalJSON(v)
			if err != nil {
				return backend.Value{}, err
			}
			return backend.Bytes(p), nil
		},
		decode: func(val backend.Value) (T, bool) {
			var zero T
			p, ok := val.AsBytes()
			if !ok {
				return zero, false
			}
			return unmarshalJSON[T](p)
		},
		encodeSecure: func(v T) ([]byte, error) {
			return marshalJSON(v)
		},
		decodeSecure: func(p []byte) (T, bool, error) {
			v, ok := unmarshalJSON[T](p)
			return v, ok, nil
		},
	}
}

func marshalJSON[T any](v T) ([]byte, error) {
	p, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("settings: encode %T: %w", v, err)
	}
	return p, nil
}

func unmarshalJSON[T any](p []byte) (T, bool) {
	var out T
	if err := json.Unmarshal(p, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
