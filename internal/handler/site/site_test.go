package site

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func setupRouter(t *testing.T, opts Options) *chi.Mux {
	t.Helper()
	h, err := New(opts)
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestIndexRendersTemplate(t *testing.T) {
	r := setupRouter(t, Options{Simulation: true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "<title>Emotion Detector</title>") {
		t.Fatalf("expected default title in page:\n%s", body)
	}
	if !strings.Contains(body, `src="/static/mywebscript.js"`) {
		t.Fatalf("expected script reference in page:\n%s", body)
	}
	if !strings.Contains(body, "Canned results") {
		t.Fatal("expected simulation note when simulation is enabled")
	}
}

func TestIndexOmitsSimulationNote(t *testing.T) {
	r := setupRouter(t, Options{Title: "Detector", Simulation: false})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	body := resp.Body.String()
	if strings.Contains(body, "Canned results") {
		t.Fatal("did not expect simulation note")
	}
	if !strings.Contains(body, "<h1>Detector</h1>") {
		t.Fatalf("expected custom title:\n%s", body)
	}
}

func TestStaticScriptServed(t *testing.T) {
	r := setupRouter(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/static/mywebscript.js", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "emotionDetector?textToAnalyze=") {
		t.Fatal("expected script body")
	}
}
