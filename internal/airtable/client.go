// Copyright (c) 2026 Toolshelf. All rights reserved.

/*
Package airtable implements a minimal REST client for an Airtable-compatible
tabular record store.

The store is addressed by an API key, a base identifier, and a table name.
Listing supports a formula-based filter expression, a sort specification,
a field projection, and offset-cursor pagination. The client knows nothing
about the application's domain model; callers work with raw records (an id
plus an untyped field bag) and normalize them at the store layer.
*/
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/toolshelf/toolshelf/internal/platform/constants"
)

// ErrRecordNotFound is returned when the store reports an unknown record id.
var ErrRecordNotFound = errors.New("airtable: record not found")

// Config carries the credentials and identifiers required to reach the store.
//
// All three of APIKey, BaseID, and Table are mandatory; [NewClient] rejects a
// Config missing any of them so no request is ever attempted against a
// misconfigured store.
type Config struct {
	// APIKey is the bearer token for the store API.
	APIKey string
	// BaseID identifies the hosted base (spreadsheet).
	BaseID string
	// Table is the table name within the base.
	Table string
	// BaseURL is the API root. Defaults to the hosted service endpoint.
	BaseURL string
}

// Client talks to a single table of the record store.
//
// # Concurrency
//
// Client is stateless apart from its configuration and is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

// NewClient validates the store configuration and returns a ready client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" || cfg.BaseID == "" || cfg.Table == "" {
		return nil, errors.New("airtable: api key, base id, and table name are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.airtable.com/v0"
	}
	return &Client{
		httpClient: &http.Client{Timeout: constants.StoreRequestTimeout},
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Record is one row of the store: an opaque id plus an untyped field bag.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// SortField is one entry of the store's sort specification list.
type SortField struct {
	Field     string
	Direction string // "asc" or "desc"
}

// ListOptions controls filtering, sorting, and projection for [Client.ListRecords].
type ListOptions struct {
	// Formula is the store's filter expression. Empty means no filter.
	Formula string
	// Sort is applied in order; an empty slice leaves store order.
	Sort []SortField
	// Fields restricts the returned columns. Empty returns all columns.
	Fields []string
	// PageSize caps records per page. Zero uses [constants.StorePageSize].
	PageSize int
}

// listResponse is the wire shape of a list page.
type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// errorResponse is the wire shape of a store error body.
type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ListRecords retrieves every record matching opts, following the store's
// offset cursor across pages until exhaustion.
func (client *Client) ListRecords(ctx context.Context, opts ListOptions) ([]Record, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = constants.StorePageSize
	}

	var all []Record
	offset := ""

	for {
		values := url.Values{}
		values.Set("pageSize", strconv.Itoa(pageSize))
		if opts.Formula != "" {
			values.Set("filterByFormula", opts.Formula)
		}
		for _, field := range opts.Fields {
			values.Add("fields[]", field)
		}
		for i, sort := range opts.Sort {
			values.Set(fmt.Sprintf("sort[%d][field]", i), sort.Field)
			values.Set(fmt.Sprintf("sort[%d][direction]", i), sort.Direction)
		}
		if offset != "" {
			values.Set("offset", offset)
		}

		var page listResponse
		if err := client.do(ctx, http.MethodGet, client.tableURL()+"?"+values.Encode(), nil, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// GetRecord retrieves a single record by its store-assigned id.
//
// An unknown id yields an error wrapping [ErrRecordNotFound].
func (client *Client) GetRecord(ctx context.Context, id string) (*Record, error) {
	var record Record
	if err := client.do(ctx, http.MethodGet, client.tableURL()+"/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRecord creates exactly one record from the given field map and
// returns it as stored (id assigned, fields echoed back).
func (client *Client) CreateRecord(ctx context.Context, fields map[string]any) (*Record, error) {
	payload := map[string]any{"fields": fields}

	var record Record
	if err := client.do(ctx, http.MethodPost, client.tableURL(), payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Ping issues a one-record probe list to verify the store is reachable and
// the credentials are accepted. Used by the readiness endpoint.
func (client *Client) Ping(ctx context.Context) error {
	_, err := client.ListRecords(ctx, ListOptions{PageSize: 1})
	return err
}

// tableURL returns the endpoint for the configured base and table.
func (client *Client) tableURL() string {
	return client.cfg.BaseURL + "/" + url.PathEscape(client.cfg.BaseID) + "/" + url.PathEscape(client.cfg.Table)
}

// do performs one HTTP round-trip against the store and decodes the response
// into target. Non-2xx statuses are mapped to errors; a 404 wraps
// [ErrRecordNotFound].
func (client *Client) do(ctx context.Context, method, requestURL string, body any, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("airtable: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("airtable: build request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.cfg.APIKey)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("airtable: request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("airtable: read response: %w", err)
	}

	if response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("airtable: %s: %w", requestURL, ErrRecordNotFound)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var storeError errorResponse
		if decodeErr := json.Unmarshal(responseBody, &storeError); decodeErr == nil && storeError.Error.Message != "" {
			client.logger.Error("store_request_failed",
				slog.Int("status", response.StatusCode),
				slog.String("type", storeError.Error.Type),
				slog.String("message", storeError.Error.Message),
			)
			return fmt.Errorf("airtable: status %d: %s", response.StatusCode, storeError.Error.Message)
		}
		return fmt.Errorf("airtable: status %d: %s", response.StatusCode, string(responseBody))
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, target); err != nil {
		return fmt.Errorf("airtable: decode response: %w", err)
	}
	return nil
}
