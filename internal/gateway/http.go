package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/domain"
)

// maxResponseSize is the maximum allowed response size from the platform (10MB).
const maxResponseSize = 10 * 1024 * 1024

// HTTPClient implements Client against the platform's storefront REST API.
type HTTPClient struct {
	config     Config
	httpClient *http.Client
}

// NewHTTPClient builds an HTTPClient from the given configuration.
func NewHTTPClient(config Config) (*HTTPClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &HTTPClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

func (c *HTTPClient) Products(ctx context.Context, limit int) ([]domain.Product, error) {
	path := "/api/products"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp productListResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return toDomainProducts(resp.Products)
}

func (c *HTTPClient) ProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	var resp productResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/products/"+url.PathEscape(handle), nil, &resp); err != nil {
		return nil, err
	}
	p, err := toDomainProduct(resp.Product)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Collections(ctx context.Context) ([]domain.Collection, error) {
	var resp collectionListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/collections", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Collection, 0, len(resp.Collections))
	for _, w := range resp.Collections {
		products, err := toDomainProducts(w.Products)
		if err != nil {
			return nil, err
		}
		col := domain.Collection{
			ID:          w.ID,
			Handle:      w.Handle,
			Title:       w.Title,
			Description: w.Description,
			Products:    products,
		}
		if w.Image != nil {
			img := toDomainImage(*w.Image)
			col.Image = &img
		}
		out = append(out, col)
	}
	return out, nil
}

func (c *HTTPClient) CollectionProducts(ctx context.Context, collectionID string) ([]domain.Product, error) {
	var resp productListResponse
	path := "/api/collections/" + url.PathEscape(collectionID) + "/products"
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return toDomainProducts(resp.Products)
}

func (c *HTTPClient) CreateSession(ctx context.Context) (*Session, error) {
	var resp checkoutResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/checkouts", nil, &resp); err != nil {
		return nil, err
	}
	return toSession(resp.Checkout), nil
}

func (c *HTTPClient) FetchSession(ctx context.Context, id string) (*Session, error) {
	var resp checkoutResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/checkouts/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return toSession(resp.Checkout), nil
}

func (c *HTTPClient) AddLine(ctx context.Context, sessionID, variantID string, quantity int) (*Session, error) {
	body := addLineRequest{VariantID: variantID, Quantity: quantity}
	var resp checkoutResponse
	path := "/api/checkouts/" + url.PathEscape(sessionID) + "/line-items"
	if err := c.doRequest(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return toSession(resp.Checkout), nil
}

func (c *HTTPClient) UpdateLine(ctx context.Context, sessionID, lineID string, quantity int) (*Session, error) {
	body := updateLineRequest{Quantity: quantity}
	var resp checkoutResponse
	path := "/api/checkouts/" + url.PathEscape(sessionID) + "/line-items/" + url.PathEscape(lineID)
	if err := c.doRequest(ctx, http.MethodPut, path, body, &resp); err != nil {
		return nil, err
	}
	return toSession(resp.Checkout), nil
}

func (c *HTTPClient) RemoveLine(ctx context.Context, sessionID, lineID string) (*Session, error) {
	var resp checkoutResponse
	path := "/api/checkouts/" + url.PathEscape(sessionID) + "/line-items/" + url.PathEscape(lineID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return toSession(resp.Checkout), nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.AccessToken != "" {
		req.Header.Set("X-Storefront-Access-Token", c.config.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("gateway: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("gateway: decode response: %w", err)
		}
	}
	return nil
}
