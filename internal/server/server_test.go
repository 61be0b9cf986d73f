package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/heat-plan", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestServer_StatusAndNoRoute(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("no route code = %d", rec.Code)
	}
}

func TestNewServer_InvalidTTL(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Export.DownloadTTL = "later"
	if _, err := NewServer(cfg); err == nil {
		t.Fatalf("expected error for invalid ttl")
	}
}
