// Package catalog is an HTTP client for the catalog service's creation
// endpoints.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalogseed/internal/models"
	"catalogseed/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Endpoint paths relative to the base URL.
const (
	UsersPath      = "/users"
	CategoriesPath = "/categories"
	ProductsPath   = "/products"
)

// CorrelationHeader carries the seeding run's correlation id.
const CorrelationHeader = "X-Correlation-ID"

// maxErrorBody bounds how much of a rejected response is kept for logging.
const maxErrorBody = 64 << 10

// ErrMissingID is returned when a success response carries no id.
var ErrMissingID = errors.New("catalog response has no id")

// StatusError is returned when the service answers with a status outside
// the creation-success class. Body holds the raw response text.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsSuccess reports whether status is in the creation-success class.
func IsSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

// Client posts creation requests to the catalog service.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used
// as-is, without tracing instrumentation.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient returns a client for the service rooted at baseURL
// (e.g. http://localhost:8080/api). A zero timeout means no client timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateUser posts a user and returns the id the service assigned.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.ID, error) {
	return c.create(ctx, "user", UsersPath, req)
}

// CreateCategory posts a category and returns the id the service assigned.
func (c *Client) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (models.ID, error) {
	return c.create(ctx, "category", CategoriesPath, req)
}

// CreateProduct posts a product and returns the id the service assigned.
func (c *Client) CreateProduct(ctx context.Context, req models.CreateProductRequest) (models.ID, error) {
	return c.create(ctx, "product", ProductsPath, req)
}

func (c *Client) create(ctx context.Context, entity, path string, body any) (models.ID, error) {
	done := observability.TrackRequest(entity)

	payload, err := json.Marshal(body)
	if err != nil {
		done(observability.OutcomeError)
		return "", fmt.Errorf("encode %s: %w", entity, err)
	}

	endpoint := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		done(observability.OutcomeError)
		return "", fmt.Errorf("build %s request: %w", entity, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if id := observability.ExtractCorrelationID(ctx); id != "" {
		httpReq.Header.Set(CorrelationHeader, id)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		done(observability.OutcomeError)
		return "", fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !IsSuccess(resp.StatusCode) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		done(observability.OutcomeRejected)
		return "", &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	var created models.CreatedResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		done(observability.OutcomeError)
		return "", fmt.Errorf("decode %s response: %w", entity, err)
	}
	if created.ID.IsZero() {
		done(observability.OutcomeError)
		return "", fmt.Errorf("%s: %w", endpoint, ErrMissingID)
	}

	done(observability.OutcomeCreated)
	return created.ID, nil
}
