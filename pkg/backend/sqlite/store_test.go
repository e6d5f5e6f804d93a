package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-settings/pkg/backend"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), "test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRoundTripAllKinds(t *testing.T) {
	store := openTest(t)
	now := time.Now()

	tests := []struct {
		name  string
		value backend.Value
		check func(t *testing.T, got backend.Value)
	}{
		{"string", backend.String("hello"), func(t *testing.T, got backend.Value) {
			v, ok := got.AsString()
			require.True(t, ok)
			assert.Equal(t, "hello", v)
		}},
		{"bool-true", backend.Bool(true), func(t *testing.T, got backend.Value) {
			v, ok := got.AsBool()
			require.True(t, ok)
			assert.True(t, v)
		}},
		{"bool-false", backend.Bool(false), func(t *testing.T, got backend.Value) {
			v, ok := got.AsBool()
			require.True(t, ok)
			assert.False(t, v)
		}},
		{"int", backend.Int(-12345), func(t *testing.T, got backend.Value) {
			v, ok := got.AsInt()
			require.True(t, ok)
			assert.Equal(t, int64(-12345), v)
		}},
		{"float", backend.Float(2.75), func(t *testing.T, got backend.Value) {
			v, ok := got.AsFloat()
			require.True(t, ok)
			assert.Equal(t, 2.75, v)
		}},
		{"bytes", backend.Bytes([]byte{0, 1, 255}), func(t *testing.T, got backend.Value) {
			v, ok := got.AsBytes()
			require.True(t, ok)
			assert.Equal(t, []byte{0, 1, 255}, v)
		}},
		{"time", backend.Time(now), func(t *testing.T, got backend.Value) {
			v, ok := got.AsTime()
			require.True(t, ok)
			assert.True(t, v.Equal(now))
		}},
		{"strings", backend.StringSlice([]string{"a", "b"}), func(t *testing.T, got backend.Value) {
			v, ok := got.AsStringSlice()
			require.True(t, ok)
			assert.Equal(t, []string{"a", "b"}, v)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, store.Set(tc.name, tc.value))
			got, ok, err := store.Get(tc.name)
			require.NoError(t, err)
			require.True(t, ok)
			tc.check(t, got)
		})
	}
}

func TestMissingKeyIsAbsentNotError(t *testing.T) {
	store := openTest(t)
	_, ok, err := store.Get("never-written")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOverwriteReplacesKindAndValue(t *testing.T) {
	store := openTest(t)
	require.NoError(t, store.Set("k", backend.String("s")))
	require.NoError(t, store.Set("k", backend.Int(9)))

	got, ok, err := store.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	v, intOK := got.AsInt()
	require.True(t, intOK)
	assert.Equal(t, int64(9), v)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := openTest(t)
	require.NoError(t, store.Set("k", backend.String("v")))
	require.NoError(t, store.Delete("k"))
	require.NoError(t, store.Delete("k"))
	_, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSameSuiteSharesData(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir, "shared")
	require.NoError(t, err)
	require.NoError(t, first.Set("theme", backend.String("dark")))
	require.NoError(t, first.Close())

	second, err := Open(dir, "shared")
	require.NoError(t, err)
	defer second.Close()

	got, ok, err := second.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	v, _ := got.AsString()
	assert.Equal(t, "dark", v)
}

func TestDifferentSuitesAreIsolated(t *testing.T) {
	dir := t.TempDir()

	a, err := Open(dir, "a")
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(dir, "b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Set("k", backend.String("v")))
	_, ok, err := b.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidSuiteName(t *testing.T) {
	_, err := Open(t.TempDir(), "")
	assert.Error(t, err)
	_, err = Open(t.TempDir(), "nested/suite")
	assert.Error(t, err)
}

func TestUnknownKindRowReadsAsInvalidValue(t *testing.T) {
	store := openTest(t)
	_, err := store.db.Exec(
		`INSERT INTO settings (key, kind) VALUES (?, ?)`, "weird", 999)
	require.NoError(t, err)

	got, ok, err := store.Get("weird")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.IsZero())
}
