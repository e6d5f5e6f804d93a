package backend

import "sync"

// MemoryLocal is an in-memory LocalStore for isolated routers and tests. It
// makes no persistence promises beyond process lifetime.
type MemoryLocal struct {
	mu      sync.RWMutex
	entries map[string]Value
}

// NewMemoryLocal constructs an empty in-memory local store.
func NewMemoryLocal() *MemoryLocal {
	return &MemoryLocal{entries: map[string]Value{}}
}

// Get returns the stored value and whether the key is present.
func (s *MemoryLocal) Get(key string) (Value, bool, error) {
	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()
	return value, ok, nil
}

// Set stores value under key, overwriting any previous entry.
func (s *MemoryLocal) Set(key string, value Value) error {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes the entry for key. Deleting a missing key is a no-op.
func (s *MemoryLocal) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// MemoryCloud is an in-memory CloudStore. Synchronize only counts calls; the
// cloudkv package provides the quota-enforcing, snapshot-backed version.
type MemoryCloud struct {
	mu      sync.RWMutex
	entries map[string]Value
	flushes int
}

// NewMemoryCloud constructs an empty in-memory cloud store.
func NewMemoryCloud() *MemoryCloud {
	return &MemoryCloud{entries: map[string]Value{}}
}

// Get returns the stored value and whether the key is present.
func (s *MemoryCloud) Get(key string) (Value, bool, error) {
	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()
	return value, ok, nil
}

// Set stores value under key, overwriting any previous entry.
func (s *MemoryCloud) Set(key string, value Value) error {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes the entry for key.
func (s *MemoryCloud) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Synchronize records the flush request.
func (s *MemoryCloud) Synchronize() error {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
	return nil
}

// Flushes reports how many times Synchronize has been called.
func (s *MemoryCloud) Flushes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushes
}

// MemorySecure is an in-memory SecureStore.
type MemorySecure struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// Err, when set, is returned from every operation. Tests use it to
	// exercise the router's handling of genuine backend failures.
	Err error
}

// NewMemorySecure constructs an empty in-memory secure store.
func NewMemorySecure() *MemorySecure {
	return &MemorySecure{entries: map[string][]byte{}}
}

// Get returns a copy of the stored blob, or ErrNotFound.
func (s *MemorySecure) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, &Error{Op: "get", Key: key, Err: s.Err}
	}
	data, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(data), nil
}

// Set stores a copy of data under key.
func (s *MemorySecure) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return &Error{Op: "set", Key: key, Err: s.Err}
	}
	s.entries[key] = cloneBytes(data)
	return nil
}

// Delete removes the entry for key. Deleting a missing key is a no-op.
func (s *MemorySecure) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return &Error{Op: "delete", Key: key, Err: s.Err}
	}
	delete(s.entries, key)
	return nil
}
