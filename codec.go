package settings

import (
	"net/url"
	"time"

	"github.com/goliatone/go-settings/pkg/backend"
)

// codec is the per-shape mapping between a payload type and each backend's
// native representation. The local and cloud stores share the tagged Value
// encoding; the secure store gets its own byte encoding because it stores
// nothing but blobs.
//
// decode reports !ok for both absence and corruption: a wrong-kind entry, an
// unknown enum raw value, or an undecodable blob all read back as absent.
// decodeSecure additionally returns an error for payloads worth a diagnostic
// (malformed timestamp text); the router logs it and still surfaces absence.
type codec[T any] struct {
	encode       func(T) (backend.Value, error)
	decode       func(backend.Value) (T, bool)
	encodeSecure func(T) ([]byte, error)
	decodeSecure func([]byte) (T, bool, error)

	// noSecure marks shapes with no secure-store equivalent: reads are
	// always absent and writes are dropped.
	noSecure bool
}

// nativeCodec resolves the codec for one of the natively supported payload
// types. The closed set is dispatched once, at key construction.
func nativeCodec[T any]() (codec[T], bool) {
	var zero T
	var c any
	switch any(zero).(type) {
	case string:
		c = stringCodec()
	case bool:
		c = boolCodec()
	case int:
		c = intCodec()
	case int64:
		c = int64Codec()
	case float64:
		c = floatCodec()
	case []byte:
		c = bytesCodec()
	case time.Time:
		c = timeCodec()
	case []string:
		c = stringSliceCodec()
	case url.URL:
		c = urlCodec()
	default:
		return codec[T]{}, false
	}
	resolved, ok := c.(codec[T])
	return resolved, ok
}
