package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ExchangeClient fetches the live NPR→USD conversion rate used for display
// prices. Stored purchase amounts never depend on it.
type ExchangeClient interface {
	USDRate(ctx context.Context) (float64, error)
}

type exchangeClientImpl struct {
	httpClient *http.Client
	baseAPIURL string
}

func NewExchangeClient(baseAPIURL string) ExchangeClient {
	return &exchangeClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseAPIURL: baseAPIURL,
	}
}

// USDRate returns how many NPR one USD buys.
func (c *exchangeClientImpl) USDRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseAPIURL, nil)
	if err != nil {
		return 0, fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate api returned status %d", resp.StatusCode)
	}

	var res struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return 0, fmt.Errorf("decode rate response: %w", err)
	}

	usd, ok := res.Rates["USD"]
	if !ok || usd == 0 {
		return 0, fmt.Errorf("USD rate missing in response")
	}
	return 1 / usd, nil
}
