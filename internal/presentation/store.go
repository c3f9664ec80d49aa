package presentation

import (
	"encoding/json"
	"log"
	"sync"
)

// Slot is the durable storage for one presentation state blob.
// Load returns (nil, nil) when nothing has been stored yet.
type Slot interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
}

// Store holds the editable presentation and keeps it durable. All mutations
// go through the exported operations; every change schedules a debounced
// write of the full state tuple to the slot.
//
// The store assumes one active editor. The mutex only coordinates the
// autosave flush and concurrent HTTP handlers, not multi-writer editing.
type Store struct {
	mu       sync.Mutex
	state    State
	autosave *autosaver
}

// NewStore creates a store backed by the given slot. The slot is read once;
// absence or corruption falls back to empty defaults and is never surfaced
// as an error.
func NewStore(slot Slot) *Store {
	s := &Store{autosave: newAutosaver(slot)}

	data, err := slot.Load()
	if err != nil {
		log.Printf("WARNING: failed to read presentation slot: %v", err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		log.Printf("WARNING: corrupt presentation slot, starting empty: %v", err)
		return s
	}
	s.state = st
	return s
}

// Close flushes any pending autosave write.
func (s *Store) Close() {
	s.autosave.flush()
}

// changed must be called with the lock held.
func (s *Store) changed() {
	s.autosave.schedule(s.state.clone())
}

// AddPhoto appends the asset to the end of the order. Adding an asset whose
// id already exists is a no-op, so repeated "add to presentation" actions
// are idempotent.
func (s *Store) AddPhoto(p PhotoAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.state.Photos {
		if existing.ID == p.ID {
			return
		}
	}
	s.state.Photos = append(s.state.Photos, p)
	s.changed()
}

// RemovePhoto removes the asset with the given id. References from existing
// pages are intentionally left in place; the composer resolves dangling ids.
func (s *Store) RemovePhoto(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.state.Photos {
		if p.ID == id {
			s.state.Photos = append(s.state.Photos[:i], s.state.Photos[i+1:]...)
			s.changed()
			return
		}
	}
}

// ReorderPhotos moves the element at src before the current element at dst.
// Out-of-range indices are rejected; equal indices are a no-op.
func (s *Store) ReorderPhotos(src, dst int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Photos)
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return false
	}
	if src == dst {
		return true
	}
	moved := s.state.Photos[src]
	rest := append(s.state.Photos[:src], s.state.Photos[src+1:]...)
	s.state.Photos = append(rest[:dst], append([]PhotoAsset{moved}, rest[dst:]...)...)
	s.changed()
	return true
}

// GeneratePages derives a fresh page list from the current photo order,
// replacing the existing one. Returns an error for unknown layout values.
func (s *Store) GeneratePages(layout LayoutType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages, err := GeneratePagesFromOrder(s.state.Photos, layout)
	if err != nil {
		return err
	}
	s.state.Pages = pages
	s.changed()
	return nil
}

// SetPageLayout changes the layout of the matching page, truncating
// PhotoIDs when the new layout holds fewer slots. No-op when id is unknown.
func (s *Store) SetPageLayout(pageID string, layout LayoutType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Pages {
		if s.state.Pages[i].ID != pageID {
			continue
		}
		s.state.Pages[i].Layout = layout
		if slots := layout.SlotCount(); slots > 0 && len(s.state.Pages[i].PhotoIDs) > slots {
			s.state.Pages[i].PhotoIDs = s.state.Pages[i].PhotoIDs[:slots]
		}
		s.changed()
		return
	}
}

// SetPageTitle updates the title of the matching page. No-op when id is unknown.
func (s *Store) SetPageTitle(pageID, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Pages {
		if s.state.Pages[i].ID == pageID {
			s.state.Pages[i].Title = title
			s.changed()
			return
		}
	}
}

// SetPageNotes updates the free-text notes of the matching page. No-op when
// id is unknown.
func (s *Store) SetPageNotes(pageID, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Pages {
		if s.state.Pages[i].ID == pageID {
			s.state.Pages[i].Notes = notes
			s.changed()
			return
		}
	}
}

// ReplacePages swaps in a whole new page list. Used to apply enrichment
// results or to restore a snapshot.
func (s *Store) ReplacePages(pages []Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pages = pages
	s.changed()
}

// ReplacePhotos swaps in a whole new asset list.
func (s *Store) ReplacePhotos(photos []PhotoAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Photos = photos
	s.changed()
}

// SetCover shallow-merges the patch into the cover.
func (s *Store) SetCover(patch CoverPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Enabled != nil {
		s.state.Cover.Enabled = *patch.Enabled
	}
	if patch.Title != nil {
		s.state.Cover.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		s.state.Cover.Subtitle = *patch.Subtitle
	}
	if patch.ImageID != nil {
		s.state.Cover.ImageID = *patch.ImageID
	}
	s.changed()
}

// SetSummary shallow-merges the patch into the summary.
func (s *Store) SetSummary(patch SummaryPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Enabled != nil {
		s.state.Summary.Enabled = *patch.Enabled
	}
	s.changed()
}

// Clear empties the presentation and removes the durable slot.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.autosave.cancel()
	if err := s.autosave.slot.Delete(); err != nil {
		log.Printf("WARNING: failed to delete presentation slot: %v", err)
	}
}

// Snapshot returns a deep copy of the full state tuple.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Restore replaces the full state tuple with a previously taken snapshot.
func (s *Store) Restore(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st.clone()
	s.changed()
}

// Document builds the immutable composition input from the current state.
func (s *Store) Document(meta Metadata) Document {
	st := s.Snapshot()
	return Document{
		Photos:   st.Photos,
		Pages:    st.Pages,
		Cover:    st.Cover,
		Summary:  st.Summary,
		Metadata: meta,
	}
}
