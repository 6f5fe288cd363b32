// Package testutil holds helpers shared by the agent handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/shared/server/middleware"
)

// Tracker captures tracked interactions in memory.
type Tracker struct {
	mu      sync.Mutex
	entries []interactions.Entry
}

func (t *Tracker) Track(_ context.Context, e interactions.Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Actions returns the recorded actions in order.
func (t *Tracker) Actions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Action)
	}
	return out
}

// Entries returns a copy of the recorded entries.
func (t *Tracker) Entries() []interactions.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]interactions.Entry(nil), t.entries...)
}

// Router mounts register under /api/agents/test behind the identity middleware.
func Router(register func(rg *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/api/agents/test", middleware.Identity())
	register(rg)
	return r
}

// Do sends a JSON request as userID and returns the recorded response.
// body may be nil, a string of raw JSON, or any value to marshal.
func Do(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

// Decode unmarshals the response body into T.
func Decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, resp.Body.String())
	}
	return out
}

// ErrorBody mirrors the error envelope.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details []struct {
		Field string `json:"field"`
		Issue string `json:"issue"`
	} `json:"details"`
	Meta map[string]any `json:"meta"`
}

// ListBody mirrors the collection envelope.
type ListBody[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ExpectStatus fails the test when resp has a different status code.
func ExpectStatus(t *testing.T, resp *httptest.ResponseRecorder, want int) {
	t.Helper()
	if resp.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.Code, resp.Body.String())
	}
}
