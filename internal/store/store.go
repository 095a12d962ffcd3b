// ABOUTME: Store interface and well-known keys for the client's local state
// ABOUTME: Mirrors browser local storage: string values under fixed keys, full overwrite on write

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("not found")

// Well-known keys. They match the keys the web client used so exported
// state stays recognizable.
const (
	KeyToken       = "token"
	KeyChatHistory = "chat-web-history"
)

// Store is a string key/value store for local client state.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// GetOrEmpty returns the value for key, treating a missing key as "".
func GetOrEmpty(ctx context.Context, s Store, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
