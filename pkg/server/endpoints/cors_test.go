package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORSAllowsAnyOrigin(t *testing.T) {
	m := newMockServer(t)

	req := httptest.NewRequest("GET", "/v1/datasets", nil)
	req.Header.Set("Origin", "http://localhost:8888")
	w := httptest.NewRecorder()
	m.Server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
	}
}

func TestCORSPreflightDelete(t *testing.T) {
	m := newMockServer(t)

	req := httptest.NewRequest("OPTIONS", "/v1/runs/some-id", nil)
	req.Header.Set("Origin", "http://localhost:8888")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	m.Server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") {
		t.Errorf("expected DELETE in Access-Control-Allow-Methods, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Content-Type") {
		t.Errorf("expected Content-Type in Access-Control-Allow-Headers, got %q", got)
	}
}

func TestCORSPreflightRejectsUnknownMethod(t *testing.T) {
	m := newMockServer(t)

	req := httptest.NewRequest("OPTIONS", "/v1/datasets", nil)
	req.Header.Set("Origin", "http://localhost:8888")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	m.Server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
}
