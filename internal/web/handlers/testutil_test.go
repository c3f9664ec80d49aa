package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// memSlot is an in-memory durable slot for handler tests.
type memSlot struct {
	data []byte
}

func (m *memSlot) Load() ([]byte, error) { return m.data, nil }
func (m *memSlot) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}
func (m *memSlot) Delete() error {
	m.data = nil
	return nil
}

// newTestStore creates a store with a small presentation loaded.
func newTestStore(t *testing.T) *presentation.Store {
	t.Helper()
	store := presentation.NewStore(&memSlot{})
	t.Cleanup(store.Close)

	store.AddPhoto(presentation.PhotoAsset{ID: "ph1", URL: "http://img/1.jpg", Caption: "Nave norte"})
	store.AddPhoto(presentation.PhotoAsset{ID: "ph2", URL: "http://img/2.jpg"})
	if err := store.GeneratePages(presentation.LayoutTwo); err != nil {
		t.Fatalf("seeding pages: %v", err)
	}
	return store
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
