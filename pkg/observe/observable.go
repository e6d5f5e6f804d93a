package observe

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	settings "github.com/goliatone/go-settings"
)

// Observable wraps exactly one Router and makes its traffic observable. The
// invalidation token is the adapter-wide revision counter: reads record an
// access at the current revision, mutations bump it.
//
// Unlike the UI frameworks it feeds, an Observable is safe for concurrent
// use; Go has no designated UI affinity context to pin it to.
type Observable struct {
	router *settings.Router
	logger *slog.Logger

	mu       sync.Mutex
	revision uint64
	nextID   uint64
	hooks    map[uint64]Hook
}

// Option configures an Observable at construction.
type Option func(*Observable)

// WithLogger sets the logger used when a hook fails. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Observable) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New constructs an Observable around router. A nil router binds to the
// process-wide shared one.
func New(router *settings.Router, opts ...Option) *Observable {
	if router == nil {
		router = settings.Default()
	}
	o := &Observable{
		router: router,
		logger: slog.Default(),
		hooks:  map[uint64]Hook{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

var defaultObservable = sync.OnceValue(func() *Observable {
	return New(settings.Default())
})

// Default returns the process-wide shared Observable, wrapping the shared
// Router.
func Default() *Observable {
	return defaultObservable()
}

// Router returns the wrapped router.
func (o *Observable) Router() *settings.Router {
	return o.router
}

// Revision returns the current invalidation token. It increases by one for
// every mutation through this adapter, whichever key it touched.
func (o *Observable) Revision() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.revision
}

// Subscribe registers hook for every subsequent event and returns its
// cancel function.
func (o *Observable) Subscribe(hook Hook) (cancel func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.hooks[id] = hook
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		delete(o.hooks, id)
		o.mu.Unlock()
	}
}

// Read records an access against the revision token, then delegates to the
// router.
func Read[T any](o *Observable, key settings.Key[T]) (T, bool) {
	o.emit(OpRead, key.Name(), key.Location(), false)
	return settings.Read(o.router, key)
}

// Write delegates to the router, then bumps the revision and notifies every
// subscriber.
func Write[T any](o *Observable, key settings.Key[T], value T) {
	settings.Write(o.router, key, value)
	o.emit(OpWrite, key.Name(), key.Location(), true)
}

// Remove delegates to the router, then bumps the revision and notifies
// every subscriber.
func Remove[T any](o *Observable, key settings.Key[T]) {
	settings.Remove(o.router, key)
	o.emit(OpRemove, key.Name(), key.Location(), true)
}

func (o *Observable) emit(op Op, key string, location settings.Location, mutation bool) {
	o.mu.Lock()
	if mutation {
		o.revision++
	}
	revision := o.revision
	snapshot := make(Hooks, 0, len(o.hooks))
	for _, hook := range o.hooks {
		snapshot = append(snapshot, hook)
	}
	o.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}
	event := Event{
		ID:         uuid.NewString(),
		Op:         op,
		Key:        key,
		Location:   location,
		Revision:   revision,
		OccurredAt: time.Now(),
	}
	if err := snapshot.Notify(event); err != nil {
		o.logger.Warn("observe: hook failed",
			"op", string(op), "key", key, "error", err)
	}
}
