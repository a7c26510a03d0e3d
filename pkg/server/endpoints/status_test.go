package endpoints

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestStatusEndpoint(t *testing.T) {
	m := newMockServer(t)
	m.ExpectHealthCheck(nil)

	w := doRequest(t, m, "GET", "/v1/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var status StatusResponse
	decodeData(t, w, &status)

	if status.Status != "ok" {
		t.Errorf("expected status ok, got %q", status.Status)
	}
	if status.Database != "ok" {
		t.Errorf("expected database ok, got %q", status.Database)
	}
	if status.Version == "" {
		t.Error("expected a version")
	}
	if status.Datasets < 2 {
		t.Errorf("expected at least the embedded datasets, got %d", status.Datasets)
	}

	if err := m.VerifyExpectations(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStatusEndpointDegraded(t *testing.T) {
	m := newMockServer(t)
	m.ExpectHealthCheck(errors.New("connection refused"))

	w := doRequest(t, m, "GET", "/v1/status", nil)

	// A broken database degrades the status but never fails the
	// endpoint; wait loops depend on getting an answer.
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var status StatusResponse
	decodeData(t, w, &status)

	if status.Status != "degraded" {
		t.Errorf("expected status degraded, got %q", status.Status)
	}
	if status.Database != "unavailable" {
		t.Errorf("expected database unavailable, got %q", status.Database)
	}
}

func TestStatusEndpointText(t *testing.T) {
	m := newMockServer(t)
	m.ExpectHealthCheck(nil)

	w := doRequest(t, m, "GET", "/v1/status?format=text", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain, got %q", ct)
	}

	body := w.Body.String()
	for _, key := range []string{"status", "version", "database"} {
		if !strings.Contains(body, key) {
			t.Errorf("expected body to mention %q:\n%s", key, body)
		}
	}
}
