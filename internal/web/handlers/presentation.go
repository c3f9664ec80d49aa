package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// PresentationHandler exposes the state store operations.
type PresentationHandler struct {
	store *presentation.Store
}

func NewPresentationHandler(store *presentation.Store) *PresentationHandler {
	return &PresentationHandler{store: store}
}

// Get returns the full editable state.
func (h *PresentationHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

// Clear empties the presentation and deletes the durable slot.
func (h *PresentationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// AddPhoto appends an asset to the presentation order.
func (h *PresentationHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	var asset presentation.PhotoAsset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if asset.ID == "" || asset.URL == "" {
		respondError(w, http.StatusBadRequest, "photo id and url are required")
		return
	}

	h.store.AddPhoto(asset)
	log.Printf("Added photo %s to presentation", sanitizeForLog(asset.ID))
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

// RemovePhoto removes an asset from the presentation order. Page references
// stay; the composer skips them.
func (h *PresentationHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "photo id is required")
		return
	}

	h.store.RemovePhoto(id)
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

type reorderRequest struct {
	Src int `json:"src"`
	Dst int `json:"dst"`
}

// ReorderPhotos moves a photo within the presentation order.
func (h *PresentationHandler) ReorderPhotos(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if !h.store.ReorderPhotos(req.Src, req.Dst) {
		respondError(w, http.StatusBadRequest, "reorder indices out of range")
		return
	}
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

type generatePagesRequest struct {
	Layout presentation.LayoutType `json:"layout"`
}

// GeneratePages rebuilds the page list from the current photo order.
func (h *PresentationHandler) GeneratePages(w http.ResponseWriter, r *http.Request) {
	var req generatePagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if err := h.store.GeneratePages(req.Layout); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

type updatePageRequest struct {
	Layout *presentation.LayoutType `json:"layout"`
	Title  *string                  `json:"title"`
	Notes  *string                  `json:"notes"`
}

// UpdatePage patches one page: layout, title and notes, each optional.
func (h *PresentationHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "page id is required")
		return
	}

	var req updatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Layout != nil {
		if req.Layout.SlotCount() == 0 {
			respondError(w, http.StatusBadRequest, "unknown layout")
			return
		}
		h.store.SetPageLayout(id, *req.Layout)
	}
	if req.Title != nil {
		h.store.SetPageTitle(id, *req.Title)
	}
	if req.Notes != nil {
		h.store.SetPageNotes(id, *req.Notes)
	}
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

// SetCover shallow-merges a cover patch.
func (h *PresentationHandler) SetCover(w http.ResponseWriter, r *http.Request) {
	var patch presentation.CoverPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	h.store.SetCover(patch)
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

// SetSummary shallow-merges a summary patch.
func (h *PresentationHandler) SetSummary(w http.ResponseWriter, r *http.Request) {
	var patch presentation.SummaryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	h.store.SetSummary(patch)
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}
