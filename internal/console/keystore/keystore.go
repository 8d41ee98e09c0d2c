// Package keystore persists the console session as a small JSON key-value
// file, the desktop analogue of the browser's localStorage.
package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes string values under string keys, backed by one JSON
// file. A missing file behaves like an empty store.
type Store struct {
	path string
}

// New creates a store backed by the file at path. Nothing is touched until
// the first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set writes the value for key, creating the file and its directory as
// needed. The file is written with owner-only permissions: it carries the
// bearer token.
func (s *Store) Set(key, value string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Delete removes the given keys. Deleting an absent key is not an error.
func (s *Store) Delete(keys ...string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(values, key)
	}
	return s.save(values)
}

func (s *Store) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read keystore: %w", err)
	}

	values := map[string]string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("parse keystore: %w", err)
		}
	}
	return values, nil
}

func (s *Store) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create keystore dir: %w", err)
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode keystore: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	return nil
}
