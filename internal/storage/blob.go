package storage

import (
	"os"
	"sync"
)

// StorageKey is the fixed key under which the full registration list is
// persisted locally.
const StorageKey = "copacrm_registrations"

// Blob is a durable key-value slot holding one serialized value. It is an
// injected dependency so tests can swap the file-backed default for an
// in-memory implementation.
type Blob interface {
	// Read returns the stored bytes and whether the slot holds a value.
	Read() ([]byte, bool, error)
	// Write overwrites the slot with the given bytes.
	Write(data []byte) error
}

// FileBlob persists the slot as a single JSON file on disk.
type FileBlob struct {
	// Path is the file holding the serialized value.
	Path string
}

// NewFileBlob creates a file-backed blob rooted at dir, named after the
// local storage key.
func NewFileBlob(dir string) *FileBlob {
	return &FileBlob{Path: dir + string(os.PathSeparator) + StorageKey + ".json"}
}

// Read returns the file contents, or ok=false when the file does not exist.
func (b *FileBlob) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Write overwrites the file with data.
func (b *FileBlob) Write(data []byte) error {
	return os.WriteFile(b.Path, data, 0o600)
}

// MemoryBlob is an in-memory Blob for tests.
type MemoryBlob struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// Read returns the stored bytes and whether a value has been written.
func (b *MemoryBlob) Read() ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.set {
		return nil, false, nil
	}
	return b.data, true, nil
}

// Write overwrites the stored bytes.
func (b *MemoryBlob) Write(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.set = true
	return nil
}
