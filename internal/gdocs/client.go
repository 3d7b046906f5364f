package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Google Docs v1 and Drive v3 REST APIs. It is
// handed an already-authorized bearer token; credential acquisition
// and refresh happen elsewhere. Transient failures (429, 5xx) are
// retried here with backoff, so callers see either success or a typed
// terminal error.
type Client struct {
	docsBaseURL  string
	driveBaseURL string
	token        string
	httpClient   *http.Client
	maxRetries   int

	Stats *CallStats
}

func NewClient(docsBaseURL, driveBaseURL, token string, timeout time.Duration, maxRetries int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		docsBaseURL:  strings.TrimSuffix(docsBaseURL, "/"),
		driveBaseURL: strings.TrimSuffix(driveBaseURL, "/"),
		token:        token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		Stats:      NewCallStats(time.Hour),
	}
}

// GetDocument fetches a document snapshot with tab content included.
// A snapshot without embedded tab content cannot drive any downstream
// operation, so includeTabsContent is always requested.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	u := c.docsBaseURL + "/v1/documents/" + url.PathEscape(documentID) + "?includeTabsContent=true"

	var doc Document
	if err := c.do(ctx, "documents.get", http.MethodGet, u, nil, &doc); err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return &doc, nil
}

// BatchUpdate submits an ordered sequence of mutation requests as one
// atomic remote call.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []Request) (*BatchUpdateResponse, error) {
	u := c.docsBaseURL + "/v1/documents/" + url.PathEscape(documentID) + ":batchUpdate"
	payload := map[string]any{"requests": requests}

	var resp BatchUpdateResponse
	if err := c.do(ctx, "documents.batchUpdate", http.MethodPost, u, payload, &resp); err != nil {
		return nil, fmt.Errorf("batch update %s: %w", documentID, err)
	}
	return &resp, nil
}

// CreateDocument creates a new, empty document with the given title.
func (c *Client) CreateDocument(ctx context.Context, title string) (*Document, error) {
	u := c.docsBaseURL + "/v1/documents"
	payload := map[string]any{"title": title}

	var doc Document
	if err := c.do(ctx, "documents.create", http.MethodPost, u, payload, &doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &doc, nil
}

// DriveFile is one Docs file from a Drive search.
type DriveFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	WebViewLink  string `json:"webViewLink,omitempty"`
}

// SearchDocuments finds Docs files in Drive by name. An empty query
// lists the most recently modified documents.
func (c *Client) SearchDocuments(ctx context.Context, query string, maxResults int) ([]DriveFile, error) {
	if maxResults <= 0 || maxResults > 100 {
		maxResults = 100
	}

	q := "mimeType='application/vnd.google-apps.document' and trashed=false"
	if query != "" {
		safe := strings.ReplaceAll(query, `'`, `\'`)
		q += " and name contains '" + safe + "'"
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("pageSize", strconv.Itoa(maxResults))
	params.Set("fields", "files(id, name, modifiedTime, webViewLink)")
	params.Set("orderBy", "modifiedTime desc")
	u := c.driveBaseURL + "/drive/v3/files?" + params.Encode()

	var result struct {
		Files []DriveFile `json:"files"`
	}
	if err := c.do(ctx, "drive.files.list", http.MethodGet, u, nil, &result); err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return result.Files, nil
}

// do performs one logical call with retries on transient failures and
// decodes the JSON reply into out.
func (c *Client) do(ctx context.Context, op, method, u string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	start := time.Now()
	defer func() {
		c.Stats.Record(op, time.Since(start).Milliseconds())
	}()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.Stats.RecordRetry()
			select {
			case <-time.After(Backoff(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.doOnce(ctx, method, u, body, out)
		if lastErr == nil || !IsTransient(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, u string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		apiErr.Status = envelope.Error.Status
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
