package sdk

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

const defaultTimeout = 60 * time.Second

// Client talks to a wikichat API server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Health reports the server health. A degraded server returns a valid
// status alongside a nil error; only transport failures error out.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out, http.StatusOK, http.StatusServiceUnavailable); err != nil {
		return Health{}, err
	}
	return out, nil
}

// AddDocument stores a document. Returns true if the document was
// created, false if an existing one was updated.
func (c *Client) AddDocument(ctx context.Context, id, content string, metadata map[string]any) (bool, error) {
	req := addDocumentRequest{ID: id, Content: content, Metadata: metadata}

	var out messageResponse
	status, err := c.doStatus(ctx, http.MethodPost, "/documents/", req, &out, http.StatusOK, http.StatusCreated)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

// GetDocument fetches a document by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (Document, error) {
	var out Document
	path := "/documents/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return Document{}, err
	}
	return out, nil
}

// DeleteDocument removes a document by ID.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	var out messageResponse
	path := "/documents/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, &out, http.StatusOK)
}

// Search runs the retrieval pipeline for a query. nResults <= 0 uses
// the server default.
func (c *Client) Search(ctx context.Context, query string, nResults int) (SearchAnswer, error) {
	req := searchRequest{Query: query, NResults: nResults}

	var out SearchAnswer
	if err := c.do(ctx, http.MethodPost, "/search/", req, &out, http.StatusOK); err != nil {
		return SearchAnswer{}, err
	}
	return out, nil
}

// CollectionInfo reports the collection name and document count.
func (c *Client) CollectionInfo(ctx context.Context) (CollectionInfo, error) {
	var out CollectionInfo
	if err := c.do(ctx, http.MethodGet, "/collection/info", nil, &out, http.StatusOK); err != nil {
		return CollectionInfo{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, okStatuses ...int) error {
	_, err := c.doStatus(ctx, method, path, in, out, okStatuses...)
	return err
}

// doStatus runs a request and decodes the response. Statuses outside
// okStatuses are turned into *APIError.
func (c *Client) doStatus(ctx context.Context, method, path string, in, out any, okStatuses ...int) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("sdk: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("sdk: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sdk: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	for _, ok := range okStatuses {
		if resp.StatusCode == ok {
			if out != nil {
				if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
					return resp.StatusCode, fmt.Errorf("sdk: decode response: %w", err)
				}
			}
			return resp.StatusCode, nil
		}
	}

	return resp.StatusCode, parseAPIError(resp)
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
