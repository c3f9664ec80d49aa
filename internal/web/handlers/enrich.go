package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/scoutdeck/scoutdeck/internal/enrich"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/studio"
)

// EnrichHandler runs the AI content passes over the current presentation.
type EnrichHandler struct {
	store    *presentation.Store
	provider enrich.Provider
}

func NewEnrichHandler(store *presentation.Store, provider enrich.Provider) *EnrichHandler {
	return &EnrichHandler{store: store, provider: provider}
}

// enrichOptionsRequest patches the default option set; absent fields keep
// their defaults.
type enrichOptionsRequest struct {
	ImproveTitles       *bool `json:"improveTitles"`
	GenerateNotes       *bool `json:"generateNotes"`
	FillMissingCaptions *bool `json:"fillMissingCaptions"`
	ExecutiveSummary    *bool `json:"executiveSummary"`
}

func (req *enrichOptionsRequest) apply(opts studio.EnrichOptions) studio.EnrichOptions {
	if req.ImproveTitles != nil {
		opts.ImproveTitles = *req.ImproveTitles
	}
	if req.GenerateNotes != nil {
		opts.GenerateNotes = *req.GenerateNotes
	}
	if req.FillMissingCaptions != nil {
		opts.FillMissingCaptions = *req.FillMissingCaptions
	}
	if req.ExecutiveSummary != nil {
		opts.ExecutiveSummary = *req.ExecutiveSummary
	}
	return opts
}

type enrichResponse struct {
	AIApplied bool               `json:"aiApplied"`
	State     presentation.State `json:"state"`
}

// Enrich sends the presentation through the configured provider and stores
// the rewritten content. An empty body runs with the default options.
func (h *EnrichHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		respondError(w, http.StatusServiceUnavailable, "no enrichment provider configured")
		return
	}

	opts := studio.DefaultEnrichOptions()
	var req enrichOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	opts = req.apply(opts)

	result, err := h.provider.Enrich(r.Context(), h.store.Snapshot(), opts)
	if err != nil {
		log.Printf("WARNING: enrichment via %s failed: %v", h.provider.Name(), err)
		respondError(w, http.StatusBadGateway, "enrichment failed")
		return
	}

	h.store.Restore(result.State)
	respondJSON(w, http.StatusOK, enrichResponse{
		AIApplied: result.AIApplied,
		State:     h.store.Snapshot(),
	})
}
