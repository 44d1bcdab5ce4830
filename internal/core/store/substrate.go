package store

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound marks an absent key. Callers treat it as "no data yet",
	// never as a failure.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageUnavailable wraps any substrate failure that is not a plain
	// missing key: unreachable backend, quota, corrupted medium.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Substrate is the flat, string-keyed durable map both stores persist into.
// Values are UTF-8 JSON documents; the substrate itself knows nothing about
// their shape.
type Substrate interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear wipes every key. Last-resort recovery path only.
	Clear(ctx context.Context) error
}

// Storage partitions, preserved from the original client so existing
// persisted state remains loadable.
const (
	KeyUsers          = "habitForgeUsers"
	KeyCurrentSession = "currentUser"
	KeyHabits         = "habitForgeHabits"
	KeySettings       = "habitForgeSettings"
)
