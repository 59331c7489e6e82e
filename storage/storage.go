package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FileStore abstracts the blob store holding uploaded client documents.
// The rest of the application only ever sees URLs; swapping the disk
// implementation for an object store is confined to this package.
type FileStore interface {
	// Save writes the blob and returns the URL it will be served under.
	Save(fileName string, r io.Reader) (string, error)
	// Remove deletes the blob behind a previously returned URL.
	Remove(fileURL string) error
}

// DiskStore stores blobs under a local directory served at /uploads.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory blobs are written to, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Save(fileName string, r io.Reader) (string, error) {
	// fileName is expected to be prefixed with a generated id by the
	// caller, so collisions between same-named uploads cannot occur.
	path := filepath.Join(s.dir, filepath.Base(fileName))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return "/uploads/" + filepath.Base(fileName), nil
}

func (s *DiskStore) Remove(fileURL string) error {
	name := strings.TrimPrefix(fileURL, "/uploads/")
	path := filepath.Join(s.dir, filepath.Base(name))

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			log.Printf("Blob already absent for %s", fileURL)
			return nil
		}
		return fmt.Errorf("failed to remove blob for %s: %w", fileURL, err)
	}
	return nil
}
