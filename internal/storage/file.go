// Package storage provides durable slot implementations for the
// presentation state: a single string-keyed JSON blob, read once at start-up
// and rewritten on every debounced change.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores the blob as a file on disk. Writes go through a temp file
// and rename so a crash mid-write never leaves a truncated slot behind.
type FileSlot struct {
	path string
}

// NewFileSlot creates a file-backed slot at the given path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load reads the slot. A missing file is not an error; it returns (nil, nil)
// so the store falls back to empty defaults.
func (f *FileSlot) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", f.path, err)
	}
	return data, nil
}

// Save writes the slot atomically.
func (f *FileSlot) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating slot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("creating temp slot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp slot: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing slot: %w", err)
	}
	return nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (f *FileSlot) Delete() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting slot %s: %w", f.path, err)
	}
	return nil
}
