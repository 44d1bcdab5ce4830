package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/RishabJha134/habitforge-engine/internal/core/store"
)

var _ store.Substrate = (*File)(nil)

// File persists the whole key space as a single JSON document on disk,
// rewritten on every mutation. Suited to single-process local deployments.
type File struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

func NewFile(path string) (*File, error) {
	f := &File{path: path}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: failed to create storage directory: %v", store.ErrStorageUnavailable, err)
	}

	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	f.data = make(map[string]string)

	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to read storage file: %v", store.ErrStorageUnavailable, err)
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		// Corrupted file: reset to empty, the stores expect availability
		// over durability.
		f.data = make(map[string]string)
	}
	return nil
}

func (f *File) save() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode storage file: %v", store.ErrStorageUnavailable, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("%w: failed to write storage file: %v", store.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: failed to replace storage file: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

func (f *File) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return "", store.ErrKeyNotFound
	}
	return value, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value
	return f.save()
}

func (f *File) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)
	return f.save()
}

func (f *File) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = make(map[string]string)
	return f.save()
}
