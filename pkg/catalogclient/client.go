// Package catalogclient is the data-access adapter front-end tooling uses to
// talk to the catalog API. It mirrors the server's envelope contract and keeps
// per-client loading/error state for UI binding.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL       = "http://localhost:8080"
	productsPath         = "/api/products"
	defaultClientTimeout = 10 * time.Second
)

// Product is the client-side view of a catalog row. Price unmarshals from
// either a string-encoded decimal or a bare JSON number, so older API builds
// that serialized numbers still parse.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProductInput is the payload for Create.
type CreateProductInput struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// UpdateProductInput is a partial mutation; nil fields are left out of the
// request body entirely. ClearDescription sends an explicit null.
type UpdateProductInput struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Price            *decimal.Decimal
	Stock            *int
	IsActive         *bool
}

func (in UpdateProductInput) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if in.Name != nil {
		body["name"] = *in.Name
	}
	if in.ClearDescription {
		body["description"] = nil
	} else if in.Description != nil {
		body["description"] = *in.Description
	}
	if in.Price != nil {
		body["price"] = *in.Price
	}
	if in.Stock != nil {
		body["stock"] = *in.Stock
	}
	if in.IsActive != nil {
		body["is_active"] = *in.IsActive
	}
	return json.Marshal(body)
}

// APIError carries the server's failure envelope back to the caller.
type APIError struct {
	Status  int
	Message string
	Errors  map[string][]string
	Detail  string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Client issues catalog API calls and tracks loading/error state.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	loading   bool
	lastError string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// New builds a catalog client.
func New(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Loading reports whether a request is currently in flight.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the display message from the most recent failure, or ""
// after a success.
func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// FetchAll retrieves every product.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	env, err := c.do(ctx, http.MethodGet, productsPath, nil, "Failed to fetch products")
	if err != nil {
		return nil, err
	}

	var rows []Product
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, c.fail("Failed to fetch products", fmt.Errorf("decode products payload: %w", err))
	}
	return rows, nil
}

// FetchOne retrieves a single product by id.
func (c *Client) FetchOne(ctx context.Context, id int64) (*Product, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", productsPath, id), nil, "Failed to fetch product")
	if err != nil {
		return nil, err
	}
	return decodeProduct(c, env.Data, "Failed to fetch product")
}

// Create adds a product to the catalog.
func (c *Client) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	env, err := c.do(ctx, http.MethodPost, productsPath, input, "Failed to create product")
	if err != nil {
		return nil, err
	}
	return decodeProduct(c, env.Data, "Failed to create product")
}

// Update applies a partial mutation to a product.
func (c *Client) Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", productsPath, id), input, "Failed to update product")
	if err != nil {
		return nil, err
	}
	return decodeProduct(c, env.Data, "Failed to update product")
}

// Delete removes a product permanently.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", productsPath, id), nil, "Failed to delete product")
	return err
}

type envelope struct {
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
	Error   string              `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, fallback string) (*envelope, error) {
	c.begin()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, c.fail(fallback, fmt.Errorf("marshal request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	url := strings.TrimRight(c.baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, c.fail(fallback, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(fallback, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(fallback, fmt.Errorf("read response body: %w", err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < http.StatusMultipleChoices {
		return nil, c.fail(fallback, fmt.Errorf("decode response envelope: %w", err))
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		message := env.Message
		if message == "" {
			message = fallback
		}
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: message,
			Errors:  env.Errors,
			Detail:  env.Error,
		}
		return nil, c.fail(message, apiErr)
	}

	c.finish("")
	return &env, nil
}

func decodeProduct(c *Client, data json.RawMessage, fallback string) (*Product, error) {
	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, c.fail(fallback, fmt.Errorf("decode product payload: %w", err))
	}
	return &product, nil
}

func (c *Client) begin() {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
}

func (c *Client) finish(errMsg string) {
	c.mu.Lock()
	c.loading = false
	c.lastError = errMsg
	c.mu.Unlock()
}

func (c *Client) fail(message string, err error) error {
	c.finish(message)
	return err
}
