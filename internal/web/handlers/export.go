package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/scoutdeck/scoutdeck/internal/export"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// ExportHandler produces the final artifact for download.
type ExportHandler struct {
	store  *presentation.Store
	driver *export.Driver
}

func NewExportHandler(store *presentation.Store, driver *export.Driver) *ExportHandler {
	return &ExportHandler{store: store, driver: driver}
}

// Export composes the presentation and streams it back: a PDF attachment,
// or the HTML fallback body when the remote service degrades. The mode
// query parameter selects local or remote rendering (default local).
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	mode, err := export.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := h.store.Snapshot()
	doc := h.store.Document(presentation.Metadata{
		Title:     state.Cover.Title,
		Author:    r.URL.Query().Get("author"),
		CreatedAt: time.Now(),
	})

	result, err := h.driver.Export(r.Context(), mode, doc)
	if err != nil {
		log.Printf("WARNING: %s export failed: %v", mode, err)
		respondError(w, http.StatusBadGateway, "export failed")
		return
	}

	switch result.Kind {
	case export.KindDocument:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		w.WriteHeader(http.StatusOK)
		w.Write(result.Document)
	case export.KindHTMLFallback:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(result.HTML))
	default:
		respondError(w, http.StatusInternalServerError, "unknown export result")
	}
}
