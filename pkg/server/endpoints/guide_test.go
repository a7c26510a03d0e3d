package endpoints

import (
	"net/http"
	"strings"
	"testing"
)

func TestGuideIndexPage(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "GET", "/guide", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{"Workshop guide", "/guide/getting-started", "HTTP API"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected index to contain %q", want)
		}
	}
}

func TestGuideChapterPage(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "GET", "/guide/datasets", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "Datasets") {
		t.Error("expected the rendered chapter heading")
	}

	// Neighbour navigation: chapter 3 links back to 2 and on to 4.
	if !strings.Contains(body, "/guide/the-dashboard") {
		t.Error("expected a link to the previous chapter")
	}
	if !strings.Contains(body, "/guide/k-means") {
		t.Error("expected a link to the next chapter")
	}
}

func TestGuideChapterByNumber(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "GET", "/guide/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Datasets") {
		t.Error("expected chapter 3 by number")
	}
}

func TestGuideChapterNotFound(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "GET", "/guide/fourier-transforms", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
