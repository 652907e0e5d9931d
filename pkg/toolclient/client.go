// Copyright (c) 2026 Toolshelf. All rights reserved.

/*
Package toolclient is a Go client for the Toolshelf directory API.

It mirrors the server's wire contract: bare JSON payloads on success and a
{message, details} envelope on failure. Errors carry the HTTP status and the
per-field validation details so callers (such as the terminal browser's
submission form) can map them onto form fields.
*/
package toolclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Tool is one directory entry as served by the API.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Rating      *float64 `json:"rating,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Author      string   `json:"author"`
}

// Submission is the payload for POST /api/tools/submit. Field names follow
// the store's column headers, so the body doubles as the record's fields.
type Submission struct {
	Name        string `json:"Tool Name"`
	URL         string `json:"URL"`
	Description string `json:"Description"`
	Category    string `json:"Category"`
	ImageURL    string `json:"Image URL,omitempty"`
}

// Params is the canonical filter/sort parameter set for GET /api/tools.
// Zero-valued fields are omitted from the query string.
type Params struct {
	Search    string
	Category  string
	SortBy    string
	SortOrder string
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("toolshelf api: %d: %s", e.StatusCode, e.Message)
}

// IsValidation reports whether the error is a 400 with field-level details.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest
}

// Client talks to one Toolshelf API server. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a client for the given API base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListTools fetches the directory entries matching params.
func (client *Client) ListTools(ctx context.Context, params Params) ([]Tool, error) {
	values := url.Values{}
	if params.Search != "" {
		values.Set("search", params.Search)
	}
	if params.Category != "" {
		values.Set("category", params.Category)
	}
	if params.SortBy != "" {
		values.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		values.Set("sortOrder", params.SortOrder)
	}

	endpoint := client.baseURL + "/api/tools"
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var tools []Tool
	if err := client.do(ctx, http.MethodGet, endpoint, nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// GetTool fetches a single entry by its id.
func (client *Client) GetTool(ctx context.Context, id string) (*Tool, error) {
	var found Tool
	endpoint := client.baseURL + "/api/tools/" + url.PathEscape(id)
	if err := client.do(ctx, http.MethodGet, endpoint, nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// SubmitTool creates a new entry and returns it as stored.
func (client *Client) SubmitTool(ctx context.Context, submission Submission) (*Tool, error) {
	var created Tool
	endpoint := client.baseURL + "/api/tools/submit"
	if err := client.do(ctx, http.MethodPost, endpoint, submission, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do performs one round-trip, decoding error envelopes into [*APIError].
func (client *Client) do(ctx context.Context, method, endpoint string, body any, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("toolclient: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("toolclient: build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("toolclient: request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("toolclient: read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiError := &APIError{StatusCode: response.StatusCode, Message: "Request failed"}
		var envelope struct {
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		}
		if decodeErr := json.Unmarshal(responseBody, &envelope); decodeErr == nil && envelope.Message != "" {
			apiError.Message = envelope.Message
			apiError.Details = envelope.Details
		}
		return apiError
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, target); err != nil {
		return fmt.Errorf("toolclient: decode response: %w", err)
	}
	return nil
}
