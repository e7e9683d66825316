// Package client implements the catalog API consumer. Every endpoint wraps
// its payload in the {success, data, message, error} envelope; a non-success
// envelope or non-2xx status surfaces as an error carrying the server's
// message, and the caller gets no partial data.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"prosmart/pkg/models"
)

const defaultTimeout = 30 * time.Second

// Client talks to the catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// New creates a client for the given API base URL, e.g.
// "https://api.prosmart.in/api". A non-positive timeout uses the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("prosmart/client"),
	}
}

// FetchCatalog retrieves the full category -> subcategory -> product
// hierarchy as one immutable snapshot.
func (c *Client) FetchCatalog(ctx context.Context) (*models.CatalogSnapshot, error) {
	snapshot, err := doGet[*models.CatalogSnapshot](ctx, c, "/categories-with-products", nil)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot = &models.CatalogSnapshot{}
	}
	return snapshot, nil
}

// FetchProductByID retrieves a single product for the detail and image
// viewer pages.
func (c *Client) FetchProductByID(ctx context.Context, id string) (*models.Product, error) {
	return doGet[*models.Product](ctx, c, "/products/"+url.PathEscape(id), nil)
}

// FetchCategories retrieves the bare category list.
func (c *Client) FetchCategories(ctx context.Context) ([]models.Category, error) {
	return doGet[[]models.Category](ctx, c, "/categories", nil)
}

// FetchSubcategories retrieves subcategories, optionally scoped to one
// category.
func (c *Client) FetchSubcategories(ctx context.Context, categoryID string) ([]models.Subcategory, error) {
	var params url.Values
	if categoryID != "" {
		params = url.Values{"category_id": []string{categoryID}}
	}
	return doGet[[]models.Subcategory](ctx, c, "/subcategories", params)
}

// doGet performs one enveloped GET request against the catalog API.
func doGet[T any](ctx context.Context, c *Client, path string, params url.Values) (T, error) {
	var zero T

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	ctx, span := c.tracer.Start(ctx, "catalog.get",
		trace.WithAttributes(attribute.String("http.url", endpoint)))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).Str("url", endpoint).Str("request_id", requestID).Msg("catalog request failed")
		return zero, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("catalog request: HTTP %d", resp.StatusCode)
		span.SetStatus(codes.Error, err.Error())
		log.Error().Int("status", resp.StatusCode).Str("url", endpoint).Str("request_id", requestID).Msg("catalog request returned error status")
		return zero, err
	}

	var envelope models.APIResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("decode response: %w", err)
	}
	if !envelope.Success {
		msg := envelope.ErrorMessage("catalog request failed")
		span.SetStatus(codes.Error, msg)
		return zero, fmt.Errorf("%s", msg)
	}

	log.Debug().
		Str("url", endpoint).
		Str("request_id", requestID).
		Dur("duration", time.Since(start)).
		Msg("catalog request completed")
	return envelope.Data, nil
}
