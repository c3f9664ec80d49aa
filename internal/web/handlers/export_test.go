package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scoutdeck/scoutdeck/internal/export"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/studio"
)

type stubComposer struct {
	out []byte
	err error
}

func (s *stubComposer) Compose(_ context.Context, _ presentation.Document) ([]byte, error) {
	return s.out, s.err
}

type stubRemote struct {
	result *studio.ExportResult
	err    error
}

func (s *stubRemote) Export(_ context.Context, _ presentation.State, _ studio.ExportOptions) (*studio.ExportResult, error) {
	return s.result, s.err
}

func TestExportLocal(t *testing.T) {
	store := newTestStore(t)
	store.SetCover(presentation.CoverPatch{Title: ptr("Rodaje centro")})

	driver := export.New(&stubComposer{out: []byte("%PDF fake")}, nil)
	handler := NewExportHandler(store, driver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presentation/export?mode=local", nil)
	rec := httptest.NewRecorder()
	handler.Export(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	assertContentType(t, rec, "application/pdf")
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Rodaje_centro.pdf") {
		t.Errorf("unexpected disposition %q", cd)
	}
	if rec.Body.String() != "%PDF fake" {
		t.Error("document bytes do not round-trip")
	}
}

func TestExportDefaultsToLocal(t *testing.T) {
	driver := export.New(&stubComposer{out: []byte("%PDF fake")}, nil)
	handler := NewExportHandler(newTestStore(t), driver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presentation/export", nil)
	rec := httptest.NewRecorder()
	handler.Export(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	assertContentType(t, rec, "application/pdf")
}

func TestExportRemoteHTMLFallback(t *testing.T) {
	remote := &stubRemote{result: &studio.ExportResult{Kind: studio.ExportHTMLFallback, HTML: "<html>fallback</html>"}}
	driver := export.New(&stubComposer{}, remote)
	handler := NewExportHandler(newTestStore(t), driver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presentation/export?mode=remote", nil)
	rec := httptest.NewRecorder()
	handler.Export(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	assertContentType(t, rec, "text/html; charset=utf-8")
	if !strings.Contains(rec.Body.String(), "fallback") {
		t.Error("fallback markup missing")
	}
}

func TestExportUnknownMode(t *testing.T) {
	driver := export.New(&stubComposer{}, nil)
	handler := NewExportHandler(newTestStore(t), driver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presentation/export?mode=cloud", nil)
	rec := httptest.NewRecorder()
	handler.Export(rec, req)

	assertStatusCode(t, rec, http.StatusBadRequest)
}

func TestExportFailure(t *testing.T) {
	driver := export.New(&stubComposer{err: errors.New("compose failed")}, nil)
	handler := NewExportHandler(newTestStore(t), driver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/presentation/export?mode=local", nil)
	rec := httptest.NewRecorder()
	handler.Export(rec, req)

	assertStatusCode(t, rec, http.StatusBadGateway)
	assertJSONError(t, rec, "export failed")
}

func ptr[T any](v T) *T { return &v }
