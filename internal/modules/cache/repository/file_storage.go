package repository

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"

	sharederrors "feeddeck/internal/shared/errors"
)

// FileStorage implements KVStore using the file system, one file per key.
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based key/value store
func NewFileStorage(basePath string) (KVStore, error) {
	cachePath := filepath.Join(basePath, "cache")
	if err := os.MkdirAll(cachePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create cache directory").Wrap(err)
	}

	return &FileStorage{basePath: cachePath}, nil
}

func (s *FileStorage) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", sharederrors.ErrKeyNotFound
		}
		return "", oops.With("key", key, "context", "failed to read cache entry").Wrap(err)
	}

	return string(data), nil
}

func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), []byte(value), 0644); err != nil {
		return oops.With("key", key, "context", "failed to write cache entry").Wrap(err)
	}
	return nil
}

func (s *FileStorage) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return oops.With("key", key, "context", "failed to remove cache entry").Wrap(err)
	}
	return nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}
