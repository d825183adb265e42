package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/productgoat/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client reads products from the Open Food Facts public API. It is the
// fallback product source, consulted only after the primary source has
// settled. A single shared limiter keeps the service polite toward the
// public API; one attempt per lookup, no retry.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	log         *zap.SugaredLogger
}

// NewClient creates a new Open Food Facts client.
func NewClient(baseURL string, log *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 10),
		log:         log,
	}
}

type productResponse struct {
	Status  int         `json:"status"`
	Product *rawProduct `json:"product"`
	Errors  []any       `json:"errors,omitempty"`
}

// Lookup fetches one product by barcode. status == 0 in the response body is
// the API's not-found sentinel and resolves to ErrProductNotFound; transport
// or body failures are ErrFallbackFetch and terminal for the resolution.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrFallbackFetch, err)
	}

	reqURL := fmt.Sprintf("%s/api/v3/product/%s", c.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrFallbackFetch, err)
	}
	req.Header.Set("User-Agent", "ProductGoat/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFallbackFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrFallbackFetch, err)
	}

	// Unknown barcodes come back as 404 with a status:0 body, so the body
	// is decoded before the HTTP status is judged.
	var productResp productResponse
	if err := json.Unmarshal(body, &productResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", domain.ErrFallbackFetch, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrFallbackFetch, err)
	}

	// Only 200 and the documented 404 not-found shape carry a meaningful
	// status field. Any other HTTP failure is a source failure even when its
	// body happens to parse; it must never read as an empty result.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, fmt.Errorf("%w: status %d", domain.ErrFallbackFetch, resp.StatusCode)
	}

	if productResp.Status == 0 || productResp.Product == nil {
		c.log.Debugw("product not in Open Food Facts", "barcode", barcode)
		return nil, domain.ErrProductNotFound
	}

	product := mapProduct(productResp.Product)
	c.log.Debugw("resolved product from Open Food Facts", "barcode", barcode, "name", product.ProductName)
	return product, nil
}
