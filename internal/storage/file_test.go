package storage

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestFileSlot(t *testing.T) {
	t.Run("load absent slot", func(t *testing.T) {
		slot := NewFileSlot(filepath.Join(t.TempDir(), "state.json"))
		data, err := slot.Load()
		if err != nil {
			t.Fatalf("absent slot must not error: %v", err)
		}
		if data != nil {
			t.Errorf("expected nil data, got %q", data)
		}
	})

	t.Run("save then load", func(t *testing.T) {
		slot := NewFileSlot(filepath.Join(t.TempDir(), "state.json"))
		payload := []byte(`{"photos":[],"pages":[]}`)
		if err := slot.Save(payload); err != nil {
			t.Fatalf("save: %v", err)
		}
		data, err := slot.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !bytes.Equal(data, payload) {
			t.Errorf("expected %q, got %q", payload, data)
		}
	})

	t.Run("save creates parent directory", func(t *testing.T) {
		slot := NewFileSlot(filepath.Join(t.TempDir(), "nested", "dir", "state.json"))
		if err := slot.Save([]byte(`{}`)); err != nil {
			t.Fatalf("save into missing directory: %v", err)
		}
	})

	t.Run("overwrite replaces content", func(t *testing.T) {
		slot := NewFileSlot(filepath.Join(t.TempDir(), "state.json"))
		if err := slot.Save([]byte(`first`)); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := slot.Save([]byte(`second`)); err != nil {
			t.Fatalf("save: %v", err)
		}
		data, _ := slot.Load()
		if string(data) != "second" {
			t.Errorf("expected %q, got %q", "second", data)
		}
	})

	t.Run("delete", func(t *testing.T) {
		slot := NewFileSlot(filepath.Join(t.TempDir(), "state.json"))
		if err := slot.Save([]byte(`{}`)); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := slot.Delete(); err != nil {
			t.Fatalf("delete: %v", err)
		}
		data, err := slot.Load()
		if err != nil || data != nil {
			t.Errorf("deleted slot must read as absent, got %q err %v", data, err)
		}
		// Deleting twice is fine.
		if err := slot.Delete(); err != nil {
			t.Errorf("deleting an absent slot must not error: %v", err)
		}
	})
}
