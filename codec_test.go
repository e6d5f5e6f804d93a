package settings

import (
	"bytes"
	"io"
	"log/slog"
	"net/url"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/goliatone/go-settings/pkg/backend"
)

func newTestRouter() (*Router, *backend.MemoryLocal, *backend.MemoryCloud, *backend.MemorySecure) {
	local := backend.NewMemoryLocal()
	cloud := backend.NewMemoryCloud()
	secure := backend.NewMemorySecure()
	router := New(
		WithLocalStore(local),
		WithCloudStore(cloud),
		WithSecureStore(secure),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return router, local, cloud, secure
}

var locations = []Location{LocationLocal, LocationCloud, LocationSecure}

func checkRoundTrip[T any](t *testing.T, value T, equal func(a, b T) bool) {
	t.Helper()
	for _, location := range locations {
		router, _, _, _ := newTestRouter()
		key := NewKey[T]("k", *new(T), WithLocation(location))

		if _, ok := Read(router, key); ok {
			t.Fatalf("%s: unwritten key should read absent", location)
		}

		Write(router, key, value)
		got, ok := Read(router, key)
		if !ok {
			t.Fatalf("%s: wrote %v, read absent", location, value)
		}
		if !equal(got, value) {
			t.Fatalf("%s: round-trip mismatch: wrote %v, read %v", location, value, got)
		}

		Remove(router, key)
		if _, ok := Read(router, key); ok {
			t.Fatalf("%s: removed key should read absent", location)
		}
		// Removing again must stay a no-op.
		Remove(router, key)
		if _, ok := Read(router, key); ok {
			t.Fatalf("%s: double remove should stay absent", location)
		}
	}
}

func TestRoundTripString(t *testing.T) {
	checkRoundTrip(t, "dark", func(a, b string) bool { return a == b })
}

func TestRoundTripBool(t *testing.T) {
	checkRoundTrip(t, true, func(a, b bool) bool { return a == b })
	checkRoundTrip(t, false, func(a, b bool) bool { return a == b })
}

func TestRoundTripInt(t *testing.T) {
	checkRoundTrip(t, 42, func(a, b int) bool { return a == b })
	checkRoundTrip(t, -7, func(a, b int) bool { return a == b })
}

func TestRoundTripInt64(t *testing.T) {
	checkRoundTrip(t, int64(1<<40), func(a, b int64) bool { return a == b })
}

func TestRoundTripFloat(t *testing.T) {
	checkRoundTrip(t, 3.25, func(a, b float64) bool { return a == b })
}

func TestRoundTripBytes(t *testing.T) {
	checkRoundTrip(t, []byte{0x00, 0xff, 0x10}, bytes.Equal)
}

func TestRoundTripTime(t *testing.T) {
	now := time.Now()
	checkRoundTrip(t, now, func(a, b time.Time) bool { return a.Equal(b) })
}

func TestRoundTripURL(t *testing.T) {
	u, err := url.Parse("https://example.com/path?q=1")
	if err != nil {
		t.Fatal(err)
	}
	checkRoundTrip(t, *u, func(a, b url.URL) bool { return a.String() == b.String() })
}

func TestRoundTripStringSlice(t *testing.T) {
	value := []string{"a", "b", "c"}
	for _, location := range []Location{LocationLocal, LocationCloud} {
		router, _, _, _ := newTestRouter()
		key := NewKey[[]string]("tags", nil, WithLocation(location))
		Write(router, key, value)
		got, ok := Read(router, key)
		if !ok || !slices.Equal(got, value) {
			t.Fatalf("%s: wrote %v, read %v (ok=%v)", location, value, got, ok)
		}
	}
}

func TestStringSliceSecureAlwaysAbsent(t *testing.T) {
	router, _, _, secure := newTestRouter()
	key := NewKey[[]string]("tags", nil, WithLocation(LocationSecure))

	// The write must be dropped, not stored in some ad-hoc encoding.
	Write(router, key, []string{"a", "b"})
	if _, err := secure.Get("tags"); err != backend.ErrNotFound {
		t.Fatalf("secure store should hold nothing for a string slice, got err=%v", err)
	}
	if _, ok := Read(router, key); ok {
		t.Fatal("string slice must always read absent from the secure store")
	}
}

func TestZeroValueIsNotAbsence(t *testing.T) {
	for _, location := range locations {
		router, _, _, _ := newTestRouter()

		boolKey := NewKey("flag", true, WithLocation(location))
		Write(router, boolKey, false)
		if v, ok := Read(router, boolKey); !ok || v != false {
			t.Fatalf("%s: explicit false read back as (%v, %v)", location, v, ok)
		}

		intKey := NewKey("count", 10, WithLocation(location))
		Write(router, intKey, 0)
		if v, ok := Read(router, intKey); !ok || v != 0 {
			t.Fatalf("%s: explicit zero read back as (%v, %v)", location, v, ok)
		}

		floatKey := NewKey("ratio", 1.5, WithLocation(location))
		Write(router, floatKey, 0.0)
		if v, ok := Read(router, floatKey); !ok || v != 0 {
			t.Fatalf("%s: explicit 0.0 read back as (%v, %v)", location, v, ok)
		}
	}
}

type theme string

const (
	themeLight theme = "light"
	themeDark  theme = "dark"
)

func TestStringEnumCorruptRawValueReadsAbsent(t *testing.T) {
	router, local, _, secure := newTestRouter()
	cases := []theme{themeLight, themeDark}

	key := NewStringEnumKey("theme", themeLight, cases)
	Write(router, key, themeDark)
	if v, ok := Read(router, key); !ok || v != themeDark {
		t.Fatalf("valid case read back as (%v, %v)", v, ok)
	}

	// Overwrite the stored raw value with something outside the case set.
	if err := local.Set("theme", backend.String("neon")); err != nil {
		t.Fatal(err)
	}
	if v, ok := Read(router, key); ok {
		t.Fatalf("unknown raw value should read absent, got %v", v)
	}

	secureKey := NewStringEnumKey("stheme", themeLight, cases, WithLocation(LocationSecure))
	Write(router, secureKey, themeDark)
	if err := secure.Set("stheme", []byte("neon")); err != nil {
		t.Fatal(err)
	}
	if v, ok := Read(router, secureKey); ok {
		t.Fatalf("unknown secure raw value should read absent, got %v", v)
	}
}

type priority int

func TestIntEnumCorruptRawValueReadsAbsent(t *testing.T) {
	router, local, _, _ := newTestRouter()
	key := NewIntEnumKey("priority", priority(1), []priority{1, 2, 3})

	Write(router, key, priority(3))
	if v, ok := Read(router, key); !ok || v != 3 {
		t.Fatalf("valid case read back as (%v, %v)", v, ok)
	}

	if err := local.Set("priority", backend.Int(99)); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, key); ok {
		t.Fatal("unknown raw value should read absent")
	}
}

type profile struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func TestJSONRoundTrip(t *testing.T) {
	value := profile{Name: "ada", Level: 3}
	for _, location := range locations {
		router, _, _, _ := newTestRouter()
		key := NewJSONKey("profile", profile{}, WithLocation(location))

		if _, ok := Read(router, key); ok {
			t.Fatalf("%s: unwritten key should read absent", location)
		}
		Write(router, key, value)
		got, ok := Read(router, key)
		if !ok || !reflect.DeepEqual(got, value) {
			t.Fatalf("%s: wrote %+v, read (%+v, %v)", location, value, got, ok)
		}
		Remove(router, key)
		if _, ok := Read(router, key); ok {
			t.Fatalf("%s: removed key should read absent", location)
		}
	}
}

func TestJSONCorruptBytesReadAbsentWithoutDeleting(t *testing.T) {
	router, local, _, _ := newTestRouter()
	key := NewJSONKey("profile", profile{})

	if err := local.Set("profile", backend.Bytes([]byte("{not json"))); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, key); ok {
		t.Fatal("corrupt blob should read absent")
	}

	// The failed read must not have deleted the stored bytes.
	val, present, err := local.Get("profile")
	if err != nil || !present {
		t.Fatalf("stored entry went missing: present=%v err=%v", present, err)
	}
	if p, _ := val.AsBytes(); string(p) != "{not json" {
		t.Fatalf("stored bytes changed: %q", p)
	}
}

type unencodable struct {
	C chan int
}

func TestFailedWriteIsNotDestructive(t *testing.T) {
	router, local, _, _ := newTestRouter()
	good := NewJSONKey("blob", profile{})
	Write(router, good, profile{Name: "keep", Level: 1})

	// Same key name, pathological payload type: the encode fails before any
	// store call, so the previously stored value survives.
	bad := NewJSONKey("blob", unencodable{})
	Write(router, bad, unencodable{C: make(chan int)})

	got, ok := Read(router, good)
	if !ok || got.Name != "keep" {
		t.Fatalf("failed write destroyed existing value: (%+v, %v)", got, ok)
	}
	if _, present, _ := local.Get("blob"); !present {
		t.Fatal("entry deleted by failed write")
	}
}

func TestMalformedStoredURLReadsAbsent(t *testing.T) {
	router, local, _, secure := newTestRouter()
	key := NewKey[url.URL]("endpoint", url.URL{})

	if err := local.Set("endpoint", backend.String("http://%zz invalid")); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, key); ok {
		t.Fatal("malformed locator should read absent")
	}

	secureKey := NewKey[url.URL]("sendpoint", url.URL{}, WithLocation(LocationSecure))
	if err := secure.Set("sendpoint", []byte("http://%zz invalid")); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, secureKey); ok {
		t.Fatal("malformed secure locator should read absent")
	}
}

func TestCorruptSecureScalarsReadAbsent(t *testing.T) {
	router, _, _, secure := newTestRouter()

	intKey := NewKey("count", 0, WithLocation(LocationSecure))
	if err := secure.Set("count", []byte("not-a-number")); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, intKey); ok {
		t.Fatal("non-numeric secure payload should read absent")
	}

	timeKey := NewKey("when", time.Time{}, WithLocation(LocationSecure))
	if err := secure.Set("when", []byte("yesterday-ish")); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, timeKey); ok {
		t.Fatal("malformed secure timestamp should read absent")
	}

	boolKey := NewKey("flag", false, WithLocation(LocationSecure))
	if err := secure.Set("flag", []byte{7}); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, boolKey); ok {
		t.Fatal("out-of-range secure boolean byte should read absent")
	}
}

func TestWrongKindEntryReadsAbsent(t *testing.T) {
	router, local, _, _ := newTestRouter()
	key := NewKey("count", 0)

	// A retyped entry is corruption, not a coercion opportunity.
	if err := local.Set("count", backend.String("42")); err != nil {
		t.Fatal(err)
	}
	if _, ok := Read(router, key); ok {
		t.Fatal("wrong-kind entry should read absent")
	}
}

func TestNewKeyPanicsOnUnsupportedPayload(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unsupported payload type")
		}
	}()
	NewKey("bad", struct{ X int }{})
}
