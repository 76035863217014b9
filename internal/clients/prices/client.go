// Package prices implements the HTTP client for the pricing service. The
// aggregation service consumes it through a narrow capability interface
// (GetPrice), so any transport can stand in; this is the production
// implementation against the pricing service's REST surface.
package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPriceNotFound is returned when the pricing service has no price on file
// for the requested vehicle.
var ErrPriceNotFound = errors.New("no price on file for vehicle")

// priceResponse mirrors the pricing service payload:
// {"currency":"USD","price":"10000.00","vehicleId":1}.
type priceResponse struct {
	Currency  string          `json:"currency"`
	Price     decimal.Decimal `json:"price"`
	VehicleID int64           `json:"vehicleId"`
}

// Client looks up vehicle prices over HTTP. The zero value is not usable;
// construct with New. The embedded http.Client owns the call timeout, as
// required by the enrichment contract: the aggregation service never bounds
// these calls itself.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a price client for the pricing service at baseURL.
// A timeout <= 0 falls back to 5s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetPrice fetches the current price for vehicleID and formats it as a
// display string such as "USD 10000.00".
//
// Error semantics:
//   - ErrPriceNotFound when the service answers 404 (no price on file).
//   - A transport or decoding error otherwise. Callers are expected to
//     substitute a placeholder rather than propagate either case.
func (c *Client) GetPrice(ctx context.Context, vehicleID int64) (string, error) {
	u := fmt.Sprintf("%s/services/price?vehicleId=%s",
		c.baseURL, url.QueryEscape(strconv.FormatInt(vehicleID, 10)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrPriceNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("pricing service returned status %d", resp.StatusCode)
	}

	var pr priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decode price response: %w", err)
	}
	if pr.Currency == "" {
		return "", errors.New("price response missing currency")
	}
	return fmt.Sprintf("%s %s", pr.Currency, pr.Price.StringFixed(2)), nil
}
