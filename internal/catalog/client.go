package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"altura-network/internal/commission"
)

// Client fetches the product catalog from the remote catalog service over
// HTTP. It satisfies commission.Catalog; callers impose their own timeout
// through ctx on top of the client-level ceiling.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type productPayload struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	CommissionRate string `json:"commission_rate"`
}

type catalogResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []productPayload `json:"data"`
}

func (c *Client) ListProducts(ctx context.Context) ([]commission.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("catalog error: %s", payload.Message)
	}

	products := make([]commission.Product, 0, len(payload.Data))
	for _, p := range payload.Data {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d has bad price %q: %w", p.ID, p.Price, err)
		}
		rate, err := decimal.NewFromString(p.CommissionRate)
		if err != nil {
			return nil, fmt.Errorf("product %d has bad commission rate %q: %w", p.ID, p.CommissionRate, err)
		}
		products = append(products, commission.Product{
			ID:             p.ID,
			Name:           p.Name,
			Price:          price,
			CommissionRate: rate,
		})
	}
	return products, nil
}
