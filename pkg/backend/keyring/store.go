// Package keyring implements the secure credential backend on the operating
// system keyring (Keychain, Secret Service, Credential Manager) via
// zalando/go-keyring. The service name acts as the access-group scope: every
// store constructed with the same service sees the same items.
//
// The keyring holds strings, so blobs cross the boundary base64-encoded. An
// item written by something else that is not valid base64 is handed back
// raw; the codec layer decides whether it still decodes.
package keyring

import (
	"encoding/base64"
	"errors"

	zkeyring "github.com/zalando/go-keyring"

	"github.com/goliatone/go-settings/pkg/backend"
)

// Store implements backend.SecureStore.
type Store struct {
	service string
}

// New constructs a store scoped to service.
func New(service string) *Store {
	return &Store{service: service}
}

// Get returns the stored blob for key, or backend.ErrNotFound. Genuine
// keyring failures (locked keychain, missing entitlement, denied access)
// come back as a *backend.Error so callers above can log a precise
// diagnostic before degrading to absence.
func (s *Store) Get(key string) ([]byte, error) {
	value, err := zkeyring.Get(s.service, key)
	if errors.Is(err, zkeyring.ErrNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, &backend.Error{Op: "get", Key: key, Err: err}
	}
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return []byte(value), nil
	}
	return data, nil
}

// Set stores data under key, overwriting any previous item.
func (s *Store) Set(key string, data []byte) error {
	err := zkeyring.Set(s.service, key, base64.StdEncoding.EncodeToString(data))
	if err != nil {
		return &backend.Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes the item for key. A missing item is not an error.
func (s *Store) Delete(key string) error {
	err := zkeyring.Delete(s.service, key)
	if err == nil || errors.Is(err, zkeyring.ErrNotFound) {
		return nil
	}
	return &backend.Error{Op: "delete", Key: key, Err: err}
}
