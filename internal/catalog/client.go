// Package catalog is the read-side client for the storefront product catalog.
// All calls go through the shared retrying HTTP client behind a circuit
// breaker; the catalog is an availability dependency, not a correctness one,
// so listing degrades to partial results instead of failing the caller.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/unifit/bundle-service/pkg/errors"
	"github.com/unifit/bundle-service/pkg/httpclient"

	"github.com/unifit/bundle-service/internal/domain"
)

const defaultPageSize = 250

// maxPages bounds ListAllProducts so a misbehaving upstream that keeps
// returning full pages cannot loop us forever.
const maxPages = 40

// Client reads products from the storefront catalog API.
type Client struct {
	baseURL  string
	http     *httpclient.CircuitBreakerClient
	logger   *slog.Logger
	pageSize int
}

// ListResult is the outcome of a full catalog listing. Partial is set when
// pagination stopped early because the upstream became unavailable; Products
// then holds everything fetched up to that point.
type ListResult struct {
	Products []domain.Product
	Partial  bool
}

// New creates a catalog client over the given breaker-wrapped HTTP client.
func New(baseURL string, httpClient *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		logger:   logger,
		pageSize: defaultPageSize,
	}
}

// GetProductByHandle fetches a single product. A missing product, whether
// reported as 404 or as a JSON null body, is a NotFound error.
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	u := fmt.Sprintf("%s/products/%s.js", c.baseURL, url.PathEscape(handle))

	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", handle, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("product", handle)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Unavailable(fmt.Sprintf("catalog returned status %d", resp.StatusCode))
	}

	var product *domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", handle, err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product", handle)
	}
	return product, nil
}

// ListProducts fetches one page of the catalog. Page numbering starts at 1.
func (c *Client) ListProducts(ctx context.Context, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = c.pageSize
	}

	u := fmt.Sprintf("%s/products.json?limit=%s&page=%s",
		c.baseURL, strconv.Itoa(pageSize), strconv.Itoa(page))

	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("list products page %d: %w", page, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Unavailable(fmt.Sprintf("catalog returned status %d", resp.StatusCode))
	}

	var payload struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode products page %d: %w", page, err)
	}
	return payload.Products, nil
}

// ListAllProducts walks the catalog page by page. When a page fails after the
// retry budget is exhausted, the products gathered so far are returned with
// Partial set instead of discarding them.
func (c *Client) ListAllProducts(ctx context.Context) (ListResult, error) {
	var all []domain.Product

	for page := 1; page <= maxPages; page++ {
		products, err := c.ListProducts(ctx, page, c.pageSize)
		if err != nil {
			if len(all) == 0 {
				return ListResult{}, err
			}
			c.logger.WarnContext(ctx, "catalog pagination stopped early, returning partial listing",
				slog.Int("pages_fetched", page-1),
				slog.Int("products", len(all)),
				slog.String("error", err.Error()),
			)
			return ListResult{Products: all, Partial: true}, nil
		}

		all = append(all, products...)
		if len(products) < c.pageSize {
			break
		}
	}

	return ListResult{Products: all}, nil
}
