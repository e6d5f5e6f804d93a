package settings_test

import (
	"io"
	"log/slog"
	"testing"

	settings "github.com/goliatone/go-settings"
	"github.com/goliatone/go-settings/pkg/backend"
	"github.com/goliatone/go-settings/pkg/backend/sqlite"
	"github.com/goliatone/go-settings/pkg/observe"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestThemePersistsAcrossRouterInstances(t *testing.T) {
	dir := t.TempDir()
	theme := settings.NewKey("Theme", "light")

	first, err := sqlite.Open(dir, "app")
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()

	router := settings.New(settings.WithLocalStore(first), settings.WithLogger(discard()))
	settings.Write(router, theme, "dark")
	if v, ok := settings.Read(router, theme); !ok || v != "dark" {
		t.Fatalf("read after write: (%q, %v)", v, ok)
	}

	// A second router over the same named suite sees the same entry.
	second, err := sqlite.Open(dir, "app")
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	other := settings.New(settings.WithLocalStore(second), settings.WithLogger(discard()))
	if v, ok := settings.Read(other, theme); !ok || v != "dark" {
		t.Fatalf("cross-instance read: (%q, %v)", v, ok)
	}
}

func TestUnwrittenCountAbsentAtRouterDefaultedAtBinding(t *testing.T) {
	count := settings.NewKey("Count", 0)
	router := settings.New(
		settings.WithLocalStore(backend.NewMemoryLocal()),
		settings.WithLogger(discard()),
	)

	if _, ok := settings.Read(router, count); ok {
		t.Fatal("router must report absence, not the default")
	}

	binding := observe.Bind(observe.New(router), count)
	if got := binding.Get(); got != 0 {
		t.Fatalf("binding must substitute the default, got %d", got)
	}

	binding.Set(5)
	if got := binding.Get(); got != 5 {
		t.Fatalf("binding read-back: %d", got)
	}
	binding.Clear()
	if got := binding.Get(); got != 0 {
		t.Fatalf("cleared binding must return the default, got %d", got)
	}
}
