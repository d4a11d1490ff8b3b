package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/govalues/decimal"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
	"go.uber.org/zap"
)

// Client resolves products against the product service. Lookups are
// synchronous, one call per cart line, with a hard timeout so a hung
// catalog cannot block an order-creation request forever.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(conf *config.Catalog, log *zap.Logger) (*Client, error) {
	if conf.BaseURL == "" {
		return nil, fmt.Errorf("product service base URL is not configured")
	}

	return &Client{
		baseURL:    strings.TrimRight(conf.BaseURL, "/"),
		httpClient: &http.Client{Timeout: conf.Timeout},
		logger:     log,
	}, nil
}

type productResponse struct {
	ID       uint64          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*port.CatalogProduct, error) {
	requestURL := c.baseURL + "/products/" + url.PathEscape(productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error on %s: %w", requestURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status from product service",
			zap.String("product", productID), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var result productResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("%w: error on response decode: %s", domain.ErrCatalogUnavailable, err)
	}

	return &port.CatalogProduct{
		ID:       productID,
		Name:     result.Name,
		Price:    result.Price,
		Category: result.Category,
	}, nil
}
