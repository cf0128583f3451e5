// Package localstore implements device-local key/value storage.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/CrestNiraj12/terminalwall/domain"
)

// FileStore keeps string values in a single JSON object on disk.
// The whole object must fit in quota bytes, like browser local storage.
type FileStore struct {
	path  string
	quota int64
	mu    sync.Mutex
}

// NewFileStore creates a FileStore at path. A quota <= 0 disables the limit.
func NewFileStore(path string, quota int64) *FileStore {
	return &FileStore{path: path, quota: quota}
}

// Get returns the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := entries[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

// Set stores value under key. The previous file is left intact on failure.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		// An unreadable store is replaced rather than blocking every write.
		entries = map[string]string{}
	}
	entries[key] = value

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding local storage: %w", err)
	}
	if s.quota > 0 && int64(len(data)) > s.quota {
		return fmt.Errorf("setting %q (%d bytes, quota %d): %w", key, len(data), s.quota, domain.ErrQuotaExceeded)
	}
	return s.write(data)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading local storage: %w", err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing local storage: %w", err)
	}
	return entries, nil
}

func (s *FileStore) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".local_storage-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing local storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing local storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing local storage: %w", err)
	}
	return nil
}
