// Package observe turns settings reads and writes into subscribable state
// for reactive UI code. An Observable wraps one router behind a single
// coarse-grained revision token: any mutation through the adapter bumps the
// token and notifies every subscriber, including ones that only read
// unrelated keys. That over-notification is deliberate; it keeps the
// adapter simple and matches the one-token design it descends from.
//
// Binding adds property-style two-way access on top: read falls back to the
// key's default, writes go through the adapter so observers invalidate.
package observe
