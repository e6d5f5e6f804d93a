// Package sqlite implements the local-preferences backend on a SQLite
// database, one file per named suite. Two stores opened on the same suite
// share the same data, which is what gives same-named suites cross-instance
// persistence.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-settings/pkg/backend"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS settings (
	key  TEXT PRIMARY KEY,
	kind INTEGER NOT NULL,
	str  TEXT,
	num  INTEGER,
	dbl  REAL,
	blob BLOB,
	ts   TEXT,
	strs TEXT
)`

// Store implements backend.LocalStore on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the suite's database under dir. Pass ":memory:" as
// dir for an in-memory database (used by tests).
func Open(dir, suite string) (*Store, error) {
	if suite == "" || strings.ContainsAny(suite, `/\`) {
		return nil, fmt.Errorf("sqlite: invalid suite name %q", suite)
	}

	var dsn string
	if dir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: creating suite directory: %w", err)
		}
		dsn = filepath.Join(dir, suite+".db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// Single connection avoids "database is locked" under concurrent use.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: setting journal mode: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value and whether the key is present. An entry
// whose row no longer reconstructs into a known kind is surfaced as a
// present-but-invalid value, which the codec layer reads as absence.
func (s *Store) Get(key string) (backend.Value, bool, error) {
	row := s.db.QueryRow(
		`SELECT kind, str, num, dbl, blob, ts, strs FROM settings WHERE key = ?`, key)

	var (
		kind int
		str  sql.NullString
		num  sql.NullInt64
		dbl sql.NullFloat64
		blob []byte
		ts   sql.NullString
		strs sql.NullString
	)
	err := row.Scan(&kind, &str, &num, &dbl, &blob, &ts, &strs)
	if err == sql.ErrNoRows {
		return backend.Value{}, false, nil
	}
	if err != nil {
		return backend.Value{}, false, fmt.Errorf("sqlite: reading %q: %w", key, err)
	}

	switch backend.Kind(kind) {
	case backend.KindString:
		return backend.String(str.String), true, nil
	case backend.KindBool:
		return backend.Bool(num.Int64 != 0), true, nil
	case backend.KindInt:
		return backend.Int(num.Int64), true, nil
	case backend.KindFloat:
		return backend.Float(dbl.Float64), true, nil
	case backend.KindBytes:
		return backend.Bytes(blob), true, nil
	case backend.KindTime:
		t, err := time.Parse(time.RFC3339Nano, ts.String)
		if err != nil {
			return backend.Value{}, true, nil
		}
		return backend.Time(t), true, nil
	case backend.KindStringSlice:
		var out []string
		if err := json.Unmarshal([]byte(strs.String), &out); err != nil {
			return backend.Value{}, true, nil
		}
		return backend.StringSlice(out), true, nil
	default:
		return backend.Value{}, true, nil
	}
}

// Set stores value under key, overwriting any previous entry.
func (s *Store) Set(key string, value backend.Value) error {
	var (
		str  sql.NullString
		num  sql.NullInt64
		dbl sql.NullFloat64
		blob []byte
		ts   sql.NullString
		strs sql.NullString
	)

	switch value.Kind() {
	case backend.KindString:
		v, _ := value.AsString()
		str = sql.NullString{String: v, Valid: true}
	case backend.KindBool:
		v, _ := value.AsBool()
		var i int64
		if v {
			i = 1
		}
		num = sql.NullInt64{Int64: i, Valid: true}
	case backend.KindInt:
		v, _ := value.AsInt()
		num = sql.NullInt64{Int64: v, Valid: true}
	case backend.KindFloat:
		v, _ := value.AsFloat()
		dbl = sql.NullFloat64{Float64: v, Valid: true}
	case backend.KindBytes:
		blob, _ = value.AsBytes()
	case backend.KindTime:
		v, _ := value.AsTime()
		ts = sql.NullString{String: v.Format(time.RFC3339Nano), Valid: true}
	case backend.KindStringSlice:
		v, _ := value.AsStringSlice()
		p, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("sqlite: encoding %q: %w", key, err)
		}
		strs = sql.NullString{String: string(p), Valid: true}
	default:
		return fmt.Errorf("sqlite: cannot store invalid value for %q", key)
	}

	_, err := s.db.Exec(
		`INSERT INTO settings (key, kind, str, num, dbl, blob, ts, strs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   kind = excluded.kind,
		   str = excluded.str,
		   num = excluded.num,
		   dbl = excluded.dbl,
		   blob = excluded.blob,
		   ts = excluded.ts,
		   strs = excluded.strs`,
		key, int(value.Kind()), str, num, dbl, blob, ts, strs)
	if err != nil {
		return fmt.Errorf("sqlite: writing %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: deleting %q: %w", key, err)
	}
	return nil
}
