package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-settings/pkg/backend"
	"github.com/goliatone/go-settings/pkg/backend/cloudkv"
	"github.com/goliatone/go-settings/pkg/backend/keyring"
	"github.com/goliatone/go-settings/pkg/backend/sqlite"
)

// defaultSuite names the local store suite the shared router binds to.
const defaultSuite = "default"

var defaultRouter = sync.OnceValue(newDefaultRouter)

// Default returns the process-wide shared Router, bound to the standard
// stores: a SQLite suite under the user config directory, a cloud store
// flushed next to it, and the OS keyring. It exists as a convenience; code
// that wants isolation constructs its own Router with New.
func Default() *Router {
	return defaultRouter()
}

func newDefaultRouter() *Router {
	logger := slog.Default()

	var local backend.LocalStore
	var cloud backend.CloudStore

	dir, err := defaultDataDir()
	if err != nil {
		logger.Warn("settings: no user config directory, using in-memory stores", "error", err)
		return New(
			WithLocalStore(backend.NewMemoryLocal()),
			WithCloudStore(backend.NewMemoryCloud()),
			WithSecureStore(keyring.New(appName())),
			WithLogger(logger),
		)
	}

	if store, err := sqlite.Open(dir, defaultSuite); err != nil {
		logger.Warn("settings: falling back to in-memory local store", "error", err)
		local = backend.NewMemoryLocal()
	} else {
		local = store
	}

	if store, err := cloudkv.Open(filepath.Join(dir, "cloud.json")); err != nil {
		logger.Warn("settings: falling back to in-memory cloud store", "error", err)
		cloud = backend.NewMemoryCloud()
	} else {
		cloud = store
	}

	return New(
		WithLocalStore(local),
		WithCloudStore(cloud),
		WithSecureStore(keyring.New(appName())),
		WithLogger(logger),
	)
}

func defaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName()), nil
}

// appName scopes the default stores and the keyring service to the running
// executable.
func appName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "go-settings"
	}
	return filepath.Base(os.Args[0])
}
