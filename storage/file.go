package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileBackend stores each key as a JSON file in a directory
type FileBackend struct {
	dataDir string
	mu      sync.RWMutex
}

// NewFileBackend creates a file backend rooted at dataDir/kv
func NewFileBackend(dataDir string) (*FileBackend, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	kvDir := filepath.Join(filepath.Clean(dataDir), "kv")
	if err := os.MkdirAll(kvDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create kv directory: %w", err)
	}

	return &FileBackend{dataDir: kvDir}, nil
}

// Get reads the file for key
func (f *FileBackend) Get(key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes value to a temporary file and renames it over the old one so a
// crash never leaves a half-written collection
func (f *FileBackend) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dataDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key
func (f *FileBackend) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys of all stored files
func (f *FileBackend) Keys() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	files, err := os.ReadDir(f.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read kv directory: %w", err)
	}

	var keys []string
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(file.Name(), ".json"))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Close is a no-op; files are written synchronously
func (f *FileBackend) Close() error {
	return nil
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dataDir, url.PathEscape(key)+".json")
}
