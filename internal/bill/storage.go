package bill

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage holds uploaded receipt images for the in-process store and
// mints the URLs handed back to the submission path.
type Storage interface {
	// Save stores a receipt file and returns its name within the storage.
	Save(filename string, data []byte) (string, error)

	// Get retrieves a stored receipt by name.
	Get(name string) ([]byte, error)

	// Delete removes a stored receipt.
	Delete(name string) error

	// URL returns the location a view can use to display the receipt.
	URL(name string) string
}

// LocalStorage keeps receipts in a directory on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating
// the directory when missing.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save writes a receipt file under the storage directory.
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(l.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing receipt file: %w", err)
	}
	return filename, nil
}

// Get reads a stored receipt.
func (l *LocalStorage) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, name))
	if err != nil {
		return nil, fmt.Errorf("reading receipt file: %w", err)
	}
	return data, nil
}

// Delete removes a stored receipt.
func (l *LocalStorage) Delete(name string) error {
	if err := os.Remove(filepath.Join(l.basePath, name)); err != nil {
		return fmt.Errorf("deleting receipt file: %w", err)
	}
	return nil
}

// URL returns a file URL for the stored receipt. The path is made
// absolute where possible so the URL stays valid regardless of the
// working directory.
func (l *LocalStorage) URL(name string) string {
	path := filepath.Join(l.basePath, name)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + path
}
