package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scoutdeck/scoutdeck/internal/enrich"
	"github.com/scoutdeck/scoutdeck/internal/export"
	"github.com/scoutdeck/scoutdeck/internal/web/handlers"
)

func (s *Server) setupRoutes(provider enrich.Provider, driver *export.Driver) {
	presentationHandler := handlers.NewPresentationHandler(s.store)
	enrichHandler := handlers.NewEnrichHandler(s.store, provider)
	exportHandler := handlers.NewExportHandler(s.store, driver)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1/presentation", func(r chi.Router) {
		r.Get("/", presentationHandler.Get)
		r.Delete("/", presentationHandler.Clear)

		r.Post("/photos", presentationHandler.AddPhoto)
		r.Delete("/photos/{id}", presentationHandler.RemovePhoto)
		r.Put("/photos/reorder", presentationHandler.ReorderPhotos)

		r.Post("/pages/generate", presentationHandler.GeneratePages)
		r.Put("/pages/{id}", presentationHandler.UpdatePage)

		r.Put("/cover", presentationHandler.SetCover)
		r.Put("/summary", presentationHandler.SetSummary)

		r.Post("/enrich", enrichHandler.Enrich)
		r.Get("/export", exportHandler.Export)
	})

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>ScoutDeck</title></head>
<body>
    <h1>ScoutDeck</h1>
    <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
</body>
</html>`))
	})
}
