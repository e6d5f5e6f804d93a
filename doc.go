// Package settings is a typed key-value settings façade over three
// persistence backends: a local preference store, a device-synced cloud
// key-value store, and a secure credential store.
//
// Callers declare each setting once as a Key descriptor (name, default,
// storage location) and read or write it through a Router. Reads return
// value-or-absent, never an error: missing entries, corrupt payloads, and
// backend failures all collapse to absence at the public boundary, so
// settings access never needs error handling at call sites.
//
//	theme := settings.NewKey("theme", "light")
//	settings.Write(settings.Default(), theme, "dark")
//	v, ok := settings.Read(settings.Default(), theme)
//
// The pkg/observe package layers change observation and two-way bindings on
// top of a Router for reactive UI code.
package settings
