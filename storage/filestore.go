// ABOUTME: Durable file-backed Store implementation
// ABOUTME: Persists keys as a JSON object, written atomically on each mutation

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists key/value pairs as a single JSON object on disk.
// A missing or unreadable file is treated as an empty store so a fresh
// install or a corrupted session file never blocks startup.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFileStore opens (or lazily creates) the store at path
func NewFileStore(path string) *FileStore {
	fs := &FileStore{
		path: path,
		data: map[string]string{},
	}
	fs.load()
	return fs
}

// DefaultPath returns the session file location following the XDG spec
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "idmctl", "session.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "idmctl", "session.json")
}

func (f *FileStore) load() {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		// Invalid JSON, start fresh
		return
	}
	f.data = data
}

func (f *FileStore) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	return val, ok
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

func (f *FileStore) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return
	}
	delete(f.data, key)
	// Removal of persisted state must not fail the caller
	_ = f.flush()
}

// flush writes the store to disk via a temp file rename.
// Caller must hold f.mu.
func (f *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
