package settings

import "fmt"

// Location selects which backend a key's entries live in.
type Location int

const (
	// LocationLocal stores entries in the app-scoped local preference store.
	LocationLocal Location = iota
	// LocationCloud stores entries in the device-synced key-value store.
	LocationCloud
	// LocationSecure stores entries in the encrypted credential store.
	LocationSecure
)

// String returns the location name.
func (l Location) String() string {
	switch l {
	case LocationLocal:
		return "local"
	case LocationCloud:
		return "cloud"
	case LocationSecure:
		return "secure"
	default:
		return "unknown"
	}
}

// Key is the schema declaration for one named setting: its payload type, its
// default, and the backend it lives in. Keys are cheap immutable values meant
// to be declared once, package-level, and passed to Read/Write/Remove.
//
// A (name, location) pair must be unique within an application; collisions
// are not detected.
type Key[T any] struct {
	name     string
	location Location
	def      T
	codec    codec[T]
}

// KeyOption configures a key at construction.
type KeyOption func(*keyConfig)

type keyConfig struct {
	location Location
}

// WithLocation places the key's entries in the given backend. The default is
// the local preference store.
func WithLocation(location Location) KeyOption {
	return func(cfg *keyConfig) {
		cfg.location = location
	}
}

// NewKey declares a setting holding one of the natively supported payload
// shapes: string, bool, int, int64, float64, []byte, time.Time, []string, or
// url.URL. Any other payload type is a programming error and panics, since a
// key is a compile-time schema unit; use NewStringEnumKey, NewIntEnumKey, or
// NewJSONKey for the remaining shapes.
func NewKey[T any](name string, def T, opts ...KeyOption) Key[T] {
	c, ok := nativeCodec[T]()
	if !ok {
		panic(fmt.Sprintf("settings: unsupported payload type %T for key %q", def, name))
	}
	return newKey(name, def, c, opts)
}

// NewStringEnumKey declares a setting holding a string-backed enumeration.
// Only the raw value is ever stored; a stored raw value outside cases reads
// back as absent rather than an error.
func NewStringEnumKey[T ~string](name string, def T, cases []T, opts ...KeyOption) Key[T] {
	return newKey(name, def, stringEnumCodec(cases), opts)
}

// NewIntEnumKey declares a setting holding an integer-backed enumeration,
// with the same raw-value storage and unknown-case policy as
// NewStringEnumKey.
func NewIntEnumKey[T ~int](name string, def T, cases []T, opts ...KeyOption) Key[T] {
	return newKey(name, def, intEnumCodec(cases), opts)
}

// NewJSONKey declares a setting holding an arbitrary serializable payload,
// stored as a JSON blob in every backend. A blob that no longer decodes into
// T reads back as absent; the stored bytes are left in place.
func NewJSONKey[T any](name string, def T, opts ...KeyOption) Key[T] {
	return newKey(name, def, jsonCodec[T](), opts)
}

func newKey[T any](name string, def T, c codec[T], opts []KeyOption) Key[T] {
	if name == "" {
		panic("settings: key name must not be empty")
	}
	cfg := keyConfig{location: LocationLocal}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return Key[T]{
		name:     name,
		location: cfg.location,
		def:      def,
		codec:    c,
	}
}

// Name returns the storage key.
func (k Key[T]) Name() string { return k.name }

// Location returns the backend the key's entries live in.
func (k Key[T]) Location() Location { return k.location }

// Default returns the read-time fallback value. The router never consults
// it; only the binding layer substitutes it for absence.
func (k Key[T]) Default() T { return k.def }
