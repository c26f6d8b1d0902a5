package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(8760, func() Status { return Status{} })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := NewServer(8760, func() Status {
		return Status{
			LastFullExport:   1709640000,
			Busy:             true,
			BufferedChannels: 3,
			LastRunID:        "run-1",
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mirror/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}

	var body Status
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.LastFullExport != 1709640000 {
		t.Errorf("unexpected watermark %d", body.LastFullExport)
	}
	if !body.Busy || body.BufferedChannels != 3 {
		t.Errorf("unexpected status %+v", body)
	}
	if body.LastRunID != "run-1" {
		t.Errorf("unexpected run id %q", body.LastRunID)
	}
}

func TestStatusEndpoint_OmitsEmptyRunID(t *testing.T) {
	srv := NewServer(8760, func() Status { return Status{} })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mirror/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["last_run_id"]; ok {
		t.Error("expected last_run_id omitted before the first run")
	}
}
