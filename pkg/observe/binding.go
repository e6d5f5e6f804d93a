package observe

import settings "github.com/goliatone/go-settings"

// Binding is property-style sugar over one key and one Observable: Get
// reads through the adapter and substitutes the key's default for absence,
// Set and Clear mutate through it so observers invalidate.
type Binding[T any] struct {
	obs *Observable
	key settings.Key[T]
}

// Bind constructs a binding over obs. A nil obs binds to the shared
// adapter.
func Bind[T any](obs *Observable, key settings.Key[T]) Binding[T] {
	if obs == nil {
		obs = Default()
	}
	return Binding[T]{obs: obs, key: key}
}

// BindDefault constructs a binding over the shared adapter.
func BindDefault[T any](key settings.Key[T]) Binding[T] {
	return Bind(Default(), key)
}

// Key returns the bound descriptor.
func (b Binding[T]) Key() settings.Key[T] {
	return b.key
}

// Get returns the stored value, or the key's default when absent.
func (b Binding[T]) Get() T {
	if value, ok := Read(b.obs, b.key); ok {
		return value
	}
	return b.key.Default()
}

// Set stores value through the adapter.
func (b Binding[T]) Set(value T) {
	Write(b.obs, b.key, value)
}

// Clear deletes the stored entry, returning subsequent Gets to the default.
func (b Binding[T]) Clear() {
	Remove(b.obs, b.key)
}

// Projection is the get/set pair UI data-binding plugs into.
type Projection[T any] struct {
	Get func() T
	Set func(T)
}

// Projection derives the two-way projection for this binding.
func (b Binding[T]) Projection() Projection[T] {
	return Projection[T]{
		Get: b.Get,
		Set: b.Set,
	}
}
