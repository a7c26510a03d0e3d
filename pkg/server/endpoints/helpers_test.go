package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/centroidhq/centroid/pkg/server/response"
)

// envelope mirrors the response wrapper with the payload left raw so
// each test can decode its own shape.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *response.Error `json:"error"`
}

func newMockServer(t *testing.T) *MockServer {
	t.Helper()

	m, err := NewMockServer()
	if err != nil {
		t.Fatalf("failed to create mock server: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// doRequest runs one request through the router. A non-nil body is
// sent as JSON.
func doRequest(t *testing.T, m *MockServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	m.Server.Router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return env
}

// decodeData unwraps a success envelope into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	env := decodeEnvelope(t, w)
	if env.Error != nil {
		t.Fatalf("unexpected error response: %s", w.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to parse data: %v", err)
	}
}

// wantError asserts a failure envelope with the given status and code
// and returns the error for further checks.
func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) *response.Error {
	t.Helper()

	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Error == nil {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("expected error code %q, got %q", code, env.Error.Code)
	}
	return env.Error
}
