// Package backend defines the storage contracts the settings router
// dispatches to: a local preference store, a cloud-synced key-value store,
// and a secure credential store. Scalar payloads travel through the tagged
// Value union; the secure store deals in raw bytes only.
//
// Memory-backed implementations of all three contracts live here as well,
// used for isolated routers and tests.
package backend
