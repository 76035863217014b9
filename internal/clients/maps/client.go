// Package maps implements the HTTP client for the geocoding service, which
// resolves a raw coordinate pair into a street address. The aggregation
// service consumes it through the ResolveAddress capability and treats any
// failure as "keep the coordinates unresolved".
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Address is the resolver output for one coordinate pair.
type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Client resolves coordinates against the geocoding service. Construct with
// New; the embedded http.Client owns the call timeout.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a geocoding client for the service at baseURL.
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

// ResolveAddress resolves (lat, lon) into a street address.
//
// Any failure (transport, non-200, empty or malformed payload) is returned
// as an error; the caller keeps its input coordinates in that case and must
// not fail the surrounding read.
func (c *Client) ResolveAddress(ctx context.Context, lat, lon float64) (Address, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	u := fmt.Sprintf("%s/maps?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Address{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var a Address
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return Address{}, fmt.Errorf("decode address response: %w", err)
	}
	if a.Address == "" {
		return Address{}, errors.New("address response missing street address")
	}
	return a, nil
}
