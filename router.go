package settings

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/goliatone/go-settings/pkg/backend"
)

// Router dispatches a key's reads and writes to its declared backend. It
// owns exactly one mutable piece of state, the local-preferences handle,
// guarded by a mutex so the handle can be swapped live; the cloud and secure
// handles are fixed at construction.
//
// A Router never returns errors. Backend failures are logged with the
// failing key and collapsed to absence on read, or to a no-op on write.
// Routers are safe for concurrent use from any goroutine.
type Router struct {
	mu     sync.Mutex
	local  backend.LocalStore
	cloud  backend.CloudStore
	secure backend.SecureStore
	logger *slog.Logger
}

// Option configures a Router at construction.
type Option func(*routerConfig)

type routerConfig struct {
	local  backend.LocalStore
	cloud  backend.CloudStore
	secure backend.SecureStore
	logger *slog.Logger
}

// WithLocalStore binds the local-preferences backend.
func WithLocalStore(store backend.LocalStore) Option {
	return func(cfg *routerConfig) {
		cfg.local = store
	}
}

// WithCloudStore binds the cloud-synced backend.
func WithCloudStore(store backend.CloudStore) Option {
	return func(cfg *routerConfig) {
		cfg.cloud = store
	}
}

// WithSecureStore binds the secure credential backend.
func WithSecureStore(store backend.SecureStore) Option {
	return func(cfg *routerConfig) {
		cfg.secure = store
	}
}

// WithLogger sets the diagnostic logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *routerConfig) {
		cfg.logger = logger
	}
}

// New constructs an isolated Router. Backends left unbound read as absent
// and swallow writes; tests typically bind the memory stores from
// pkg/backend.
func New(opts ...Option) *Router {
	cfg := routerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Router{
		local:  cfg.local,
		cloud:  cfg.cloud,
		secure: cfg.secure,
		logger: cfg.logger,
	}
}

// SetLocalStore atomically replaces the local-preferences handle. Operations
// already holding the lock complete against the handle they observed; every
// operation sees one consistent handle, old or new.
func (r *Router) SetLocalStore(store backend.LocalStore) {
	r.mu.Lock()
	r.local = store
	r.mu.Unlock()
}

// Read returns the stored value for key, or absent. Absence covers a key
// that was never written, a deleted key, a corrupt payload, and any backend
// failure; callers cannot and should not tell these apart here.
func Read[T any](r *Router, key Key[T]) (T, bool) {
	var zero T
	switch key.location {
	case LocationCloud:
		if r.cloud == nil {
			return zero, false
		}
		return readValue(r, key, r.cloud.Get)
	case LocationSecure:
		return readSecure(r, key)
	default:
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.local == nil {
			return zero, false
		}
		return readValue(r, key, r.local.Get)
	}
}

// Write stores value under key, fully overwriting any previous entry. A
// value that fails to encode leaves existing state untouched.
func Write[T any](r *Router, key Key[T], value T) {
	switch key.location {
	case LocationCloud:
		writeCloud(r, key, value)
	case LocationSecure:
		writeSecure(r, key, value)
	default:
		writeLocal(r, key, value)
	}
}

// Remove deletes the stored entry for key. Removing a key that holds no
// entry is a no-op.
func Remove[T any](r *Router, key Key[T]) {
	switch key.location {
	case LocationCloud:
		if r.cloud == nil {
			return
		}
		if err := r.cloud.Delete(key.name); err != nil {
			r.fail("delete", key.name, key.location, err)
			return
		}
		r.flushCloud(key.name)
	case LocationSecure:
		if r.secure == nil {
			return
		}
		if err := r.secure.Delete(key.name); err != nil && !errors.Is(err, backend.ErrNotFound) {
			r.fail("delete", key.name, key.location, err)
		}
	default:
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.local == nil {
			return
		}
		if err := r.local.Delete(key.name); err != nil {
			r.fail("delete", key.name, key.location, err)
		}
	}
}

func readValue[T any](r *Router, key Key[T], get func(string) (backend.Value, bool, error)) (T, bool) {
	var zero T
	val, ok, err := get(key.name)
	if err != nil {
		r.fail("read", key.name, key.location, err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	return key.codec.decode(val)
}

func readSecure[T any](r *Router, key Key[T]) (T, bool) {
	var zero T
	if r.secure == nil || key.codec.noSecure {
		return zero, false
	}
	data, err := r.secure.Get(key.name)
	if errors.Is(err, backend.ErrNotFound) {
		return zero, false
	}
	if err != nil {
		r.fail("read", key.name, key.location, err)
		return zero, false
	}
	value, ok, err := key.codec.decodeSecure(data)
	if err != nil {
		r.logger.Warn("settings: corrupt secure payload",
			"key", key.name, "error", err)
		return zero, false
	}
	return value, ok
}

func writeLocal[T any](r *Router, key Key[T], value T) {
	val, err := key.codec.encode(value)
	if err != nil {
		r.fail("encode", key.name, key.location, err)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.local == nil {
		return
	}
	if err := r.local.Set(key.name, val); err != nil {
		r.fail("write", key.name, key.location, err)
	}
}

func writeCloud[T any](r *Router, key Key[T], value T) {
	if r.cloud == nil {
		return
	}
	val, err := key.codec.encode(value)
	if err != nil {
		r.fail("encode", key.name, key.location, err)
		return
	}
	if err := r.cloud.Set(key.name, val); err != nil {
		r.fail("write", key.name, key.location, err)
		return
	}
	r.flushCloud(key.name)
}

func writeSecure[T any](r *Router, key Key[T], value T) {
	if r.secure == nil {
		return
	}
	if key.codec.noSecure {
		r.logger.Warn("settings: dropping write, payload shape not supported by the secure store",
			"key", key.name)
		return
	}
	data, err := key.codec.encodeSecure(value)
	if err != nil {
		r.fail("encode", key.name, key.location, err)
		return
	}
	if err := r.secure.Set(key.name, data); err != nil {
		r.fail("write", key.name, key.location, err)
	}
}

// flushCloud requests prompt propagation after every cloud mutation.
func (r *Router) flushCloud(key string) {
	if err := r.cloud.Synchronize(); err != nil {
		r.fail("synchronize", key, LocationCloud, err)
	}
}

func (r *Router) fail(op, key string, location Location, err error) {
	r.logger.Warn("settings: "+op+" failed",
		"key", key, "location", location.String(), "error", err)
}
