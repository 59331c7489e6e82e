package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("Failed to create disk store: %v", err)
	}

	url, err := store.Save("abc123_report.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("Expected no error saving blob, but got: %v", err)
	}
	if url != "/uploads/abc123_report.pdf" {
		t.Errorf("Expected /uploads/abc123_report.pdf, but got %s", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), "abc123_report.pdf"))
	if err != nil {
		t.Fatalf("Expected blob on disk, but got: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("Expected blob content to round-trip, but got %q", string(data))
	}

	if err := store.Remove(url); err != nil {
		t.Fatalf("Expected no error removing blob, but got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "abc123_report.pdf")); !os.IsNotExist(err) {
		t.Error("Expected blob to be gone after remove")
	}

	// Removing a missing blob is not an error.
	if err := store.Remove(url); err != nil {
		t.Errorf("Expected removing an absent blob to succeed, but got: %v", err)
	}
}

func TestDiskStore_SaveStripsPathComponents(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create disk store: %v", err)
	}

	// A traversal attempt in the file name must not escape the directory.
	url, err := store.Save("../../etc/abc123_passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Expected no error saving blob, but got: %v", err)
	}
	if url != "/uploads/abc123_passwd" {
		t.Errorf("Expected path components to be stripped, but got %s", url)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "abc123_passwd")); err != nil {
		t.Errorf("Expected blob inside the store directory, but got: %v", err)
	}
}
