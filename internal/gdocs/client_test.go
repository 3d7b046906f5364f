package gdocs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(srv *httptest.Server, maxRetries int) *Client {
	return NewClient(srv.URL, srv.URL, "test-token", 5*time.Second, maxRetries)
}

func TestGetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/documents/doc1" {
			t.Errorf("expected path /v1/documents/doc1, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("includeTabsContent"); got != "true" {
			t.Errorf("expected includeTabsContent=true, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"documentId": "doc1",
			"title":      "Roadmap",
		})
	}))
	defer srv.Close()

	doc, err := newTestClient(srv, 0).GetDocument(context.Background(), "doc1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.DocumentID != "doc1" || doc.Title != "Roadmap" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestBatchUpdate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/documents/doc1:batchUpdate" {
			t.Errorf("expected batchUpdate path, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"documentId": "doc1",
			"replies":    []map[string]any{{"replaceAllText": map[string]any{"occurrencesChanged": 3}}},
		})
	}))
	defer srv.Close()

	reqs := []Request{NewReplaceAllText("a", "b", true, nil)}
	resp, err := newTestClient(srv, 0).BatchUpdate(context.Background(), "doc1", reqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Replies) != 1 || resp.Replies[0].ReplaceAllText == nil {
		t.Fatalf("unexpected replies %+v", resp.Replies)
	}
	if got := resp.Replies[0].ReplaceAllText.OccurrencesChanged; got != 3 {
		t.Errorf("expected 3 occurrences, got %d", got)
	}

	sent, ok := gotBody["requests"].([]any)
	if !ok || len(sent) != 1 {
		t.Fatalf("expected one request in payload, got %v", gotBody["requests"])
	}
	if _, ok := sent[0].(map[string]any)["replaceAllText"]; !ok {
		t.Errorf("expected replaceAllText request, got %v", sent[0])
	}
}

func TestDo_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"documentId": "doc1"})
	}))
	defer srv.Close()

	doc, err := newTestClient(srv, 2).GetDocument(context.Background(), "doc1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.DocumentID != "doc1" {
		t.Errorf("unexpected document %+v", doc)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestDo_TerminalErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Requested entity was not found.", "status": "NOT_FOUND"},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 3).GetDocument(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Status != "NOT_FOUND" || apiErr.Message != "Requested entity was not found." {
		t.Errorf("unexpected error fields %+v", apiErr)
	}
	if apiErr.Transient() {
		t.Error("404 must not be transient")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
}

func TestSearchDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/drive/v3/files" {
			t.Errorf("expected path /drive/v3/files, got %s", r.URL.Path)
		}
		q := r.URL.Query().Get("q")
		want := "mimeType='application/vnd.google-apps.document' and trashed=false and name contains 'plan'"
		if q != want {
			t.Errorf("expected query %q, got %q", want, q)
		}
		if got := r.URL.Query().Get("pageSize"); got != "10" {
			t.Errorf("expected pageSize 10, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{{"id": "f1", "name": "plan 2026"}},
		})
	}))
	defer srv.Close()

	files, err := newTestClient(srv, 0).SearchDocuments(context.Background(), "plan", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].ID != "f1" || files[0].Name != "plan 2026" {
		t.Errorf("unexpected files %+v", files)
	}
}

func TestAPIError_Transient(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{400, false},
		{404, false},
		{409, false},
	}
	for _, tt := range tests {
		err := &APIError{StatusCode: tt.code}
		if got := err.Transient(); got != tt.want {
			t.Errorf("status %d: expected transient=%v, got %v", tt.code, tt.want, got)
		}
	}
}
