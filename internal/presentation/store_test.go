package presentation

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

// memSlot is an in-memory Slot for tests.
type memSlot struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	deleted bool
}

func (m *memSlot) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *memSlot) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *memSlot) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.deleted = true
	return nil
}

func (m *memSlot) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func newTestStore() *Store {
	return NewStore(&memSlot{})
}

func photoIDs(photos []PhotoAsset) []string {
	ids := make([]string, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}
	return ids
}

func TestAddPhoto(t *testing.T) {
	t.Run("appends in order", func(t *testing.T) {
		s := newTestStore()
		s.AddPhoto(PhotoAsset{ID: "1"})
		s.AddPhoto(PhotoAsset{ID: "2"})
		got := photoIDs(s.Snapshot().Photos)
		if !reflect.DeepEqual(got, []string{"1", "2"}) {
			t.Errorf("expected [1 2], got %v", got)
		}
	})

	t.Run("idempotent by id", func(t *testing.T) {
		s := newTestStore()
		s.AddPhoto(PhotoAsset{ID: "1", Caption: "first"})
		s.AddPhoto(PhotoAsset{ID: "2"})
		s.AddPhoto(PhotoAsset{ID: "1", Caption: "second"})
		st := s.Snapshot()
		if len(st.Photos) != 2 {
			t.Fatalf("expected 2 photos, got %d", len(st.Photos))
		}
		if st.Photos[0].Caption != "first" {
			t.Errorf("duplicate add must not replace the existing asset")
		}
	})
}

func TestRemovePhoto(t *testing.T) {
	t.Run("removes by id", func(t *testing.T) {
		s := newTestStore()
		s.AddPhoto(PhotoAsset{ID: "1"})
		s.AddPhoto(PhotoAsset{ID: "2"})
		s.RemovePhoto("1")
		got := photoIDs(s.Snapshot().Photos)
		if !reflect.DeepEqual(got, []string{"2"}) {
			t.Errorf("expected [2], got %v", got)
		}
	})

	t.Run("does not cascade into pages", func(t *testing.T) {
		s := newTestStore()
		s.AddPhoto(PhotoAsset{ID: "1"})
		s.AddPhoto(PhotoAsset{ID: "2"})
		if err := s.GeneratePages(LayoutTwo); err != nil {
			t.Fatalf("GeneratePages: %v", err)
		}
		s.RemovePhoto("1")
		st := s.Snapshot()
		if len(st.Pages) != 1 || len(st.Pages[0].PhotoIDs) != 2 {
			t.Fatalf("page slots must keep dangling references, got %+v", st.Pages)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := newTestStore()
		s.AddPhoto(PhotoAsset{ID: "1"})
		s.RemovePhoto("nope")
		if len(s.Snapshot().Photos) != 1 {
			t.Error("unexpected removal")
		}
	})
}

func TestReorderPhotos(t *testing.T) {
	seed := func() *Store {
		s := newTestStore()
		for _, id := range []string{"a", "b", "c", "d"} {
			s.AddPhoto(PhotoAsset{ID: id})
		}
		return s
	}

	t.Run("moves forward", func(t *testing.T) {
		s := seed()
		if !s.ReorderPhotos(0, 2) {
			t.Fatal("expected reorder to succeed")
		}
		got := photoIDs(s.Snapshot().Photos)
		if !reflect.DeepEqual(got, []string{"b", "c", "a", "d"}) {
			t.Errorf("expected [b c a d], got %v", got)
		}
	})

	t.Run("moves backward", func(t *testing.T) {
		s := seed()
		s.ReorderPhotos(3, 0)
		got := photoIDs(s.Snapshot().Photos)
		if !reflect.DeepEqual(got, []string{"d", "a", "b", "c"}) {
			t.Errorf("expected [d a b c], got %v", got)
		}
	})

	t.Run("equal indices", func(t *testing.T) {
		s := seed()
		if !s.ReorderPhotos(1, 1) {
			t.Error("equal indices should be an accepted no-op")
		}
		got := photoIDs(s.Snapshot().Photos)
		if !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
			t.Errorf("order must be unchanged, got %v", got)
		}
	})

	t.Run("out of range rejected", func(t *testing.T) {
		s := seed()
		if s.ReorderPhotos(0, 4) || s.ReorderPhotos(-1, 0) {
			t.Error("out-of-range reorder must be rejected")
		}
		got := photoIDs(s.Snapshot().Photos)
		if !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
			t.Errorf("order must be unchanged, got %v", got)
		}
	})
}

func TestPageEdits(t *testing.T) {
	seed := func(t *testing.T) (*Store, string) {
		t.Helper()
		s := newTestStore()
		for _, id := range []string{"1", "2", "3", "4"} {
			s.AddPhoto(PhotoAsset{ID: id})
		}
		if err := s.GeneratePages(LayoutGrid4); err != nil {
			t.Fatalf("GeneratePages: %v", err)
		}
		return s, s.Snapshot().Pages[0].ID
	}

	t.Run("set title and notes", func(t *testing.T) {
		s, id := seed(t)
		s.SetPageTitle(id, "Azotea centro")
		s.SetPageNotes(id, "luz natural por la tarde")
		p := s.Snapshot().Pages[0]
		if p.Title != "Azotea centro" || p.Notes != "luz natural por la tarde" {
			t.Errorf("unexpected page %+v", p)
		}
	})

	t.Run("unknown page id is a no-op", func(t *testing.T) {
		s, _ := seed(t)
		s.SetPageTitle("missing", "x")
		s.SetPageNotes("missing", "y")
		s.SetPageLayout("missing", LayoutSingle)
		if p := s.Snapshot().Pages[0]; p.Title != "" || p.Notes != "" || p.Layout != LayoutGrid4 {
			t.Errorf("unexpected mutation: %+v", p)
		}
	})

	t.Run("layout shrink truncates photo ids", func(t *testing.T) {
		s, id := seed(t)
		s.SetPageLayout(id, LayoutTwo)
		p := s.Snapshot().Pages[0]
		if p.Layout != LayoutTwo {
			t.Fatalf("expected layout two, got %s", p.Layout)
		}
		if !reflect.DeepEqual(p.PhotoIDs, []string{"1", "2"}) {
			t.Errorf("expected [1 2], got %v", p.PhotoIDs)
		}
	})
}

func TestCoverAndSummaryPatches(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }
	strPtr := func(v string) *string { return &v }

	s := newTestStore()
	s.SetCover(CoverPatch{Enabled: boolPtr(true), Title: strPtr("Locaciones CDMX")})
	s.SetCover(CoverPatch{Subtitle: strPtr("Campaña otoño")})
	s.SetSummary(SummaryPatch{Enabled: boolPtr(true)})

	st := s.Snapshot()
	if !st.Cover.Enabled || st.Cover.Title != "Locaciones CDMX" || st.Cover.Subtitle != "Campaña otoño" {
		t.Errorf("cover patches must merge, got %+v", st.Cover)
	}
	if !st.Summary.Enabled {
		t.Error("summary patch must merge")
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestStore()
	s.AddPhoto(PhotoAsset{ID: "1", URL: "https://img/1.jpg"})
	s.AddPhoto(PhotoAsset{ID: "2", URL: "https://img/2.jpg"})
	if err := s.GeneratePages(LayoutTwo); err != nil {
		t.Fatalf("GeneratePages: %v", err)
	}

	snap := s.Snapshot()
	s.RemovePhoto("1")
	s.ReplacePages(nil)
	s.Restore(snap)

	if !reflect.DeepEqual(s.Snapshot(), snap) {
		t.Error("restore must reproduce the snapshot tuple")
	}

	// Snapshot must not alias store internals.
	snap.Photos[0].ID = "mutated"
	if s.Snapshot().Photos[0].ID == "mutated" {
		t.Error("snapshot aliases the store's slices")
	}
}

func TestClear(t *testing.T) {
	slot := &memSlot{}
	s := NewStore(slot)
	s.AddPhoto(PhotoAsset{ID: "1"})
	s.Clear()

	st := s.Snapshot()
	if len(st.Photos) != 0 || len(st.Pages) != 0 || st.Cover.Enabled || st.Summary.Enabled {
		t.Errorf("state not cleared: %+v", st)
	}
	if !slot.deleted {
		t.Error("clear must remove the durable slot")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	slot := &memSlot{}
	s := NewStore(slot)
	s.AddPhoto(PhotoAsset{ID: "1", URL: "https://img/1.jpg", Caption: "patio"})
	s.AddPhoto(PhotoAsset{ID: "2", URL: "https://img/2.jpg"})
	if err := s.GeneratePages(LayoutTwo); err != nil {
		t.Fatalf("GeneratePages: %v", err)
	}
	enabled := true
	s.SetCover(CoverPatch{Enabled: &enabled})
	s.SetSummary(SummaryPatch{Enabled: &enabled})
	s.Close()

	rehydrated := NewStore(slot)
	if !reflect.DeepEqual(rehydrated.Snapshot(), s.Snapshot()) {
		t.Error("rehydrated state must deep-equal the persisted state")
	}
}

func TestNewStoreToleratesCorruptSlot(t *testing.T) {
	slot := &memSlot{data: []byte("{not json")}
	s := NewStore(slot)
	st := s.Snapshot()
	if len(st.Photos) != 0 || len(st.Pages) != 0 {
		t.Errorf("corrupt slot must fall back to empty defaults, got %+v", st)
	}
}

func TestAutosaveDebounce(t *testing.T) {
	slot := &memSlot{}
	s := NewStore(slot)

	// Burst of edits within the debounce window should collapse to one write.
	for _, id := range []string{"1", "2", "3"} {
		s.AddPhoto(PhotoAsset{ID: id})
	}
	time.Sleep(autosaveDebounce + 150*time.Millisecond)

	if got := slot.saveCount(); got != 1 {
		t.Errorf("expected a single debounced write, got %d", got)
	}

	rehydrated := NewStore(slot)
	if len(rehydrated.Snapshot().Photos) != 3 {
		t.Error("debounced write must carry the final state")
	}
}
