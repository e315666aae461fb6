// Package treasury talks to the treasury.gov daily yield curve feed:
// fetching the XML document, parsing its entries, and relabeling the
// raw rate fields into canonical curve points.
package treasury

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches the daily yield curve XML document.
type Client struct {
	baseURL    string
	year       int
	httpClient *http.Client
}

// NewClient creates a feed client for the given endpoint and data year.
//
// baseURL is the XML resource root, e.g.
// "https://home.treasury.gov/resource-center/data-chart-center/interest-rates/pages/xml".
func NewClient(baseURL string, year int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		year:    year,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the raw XML document for the configured year.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	params := url.Values{}
	params.Set("data", "daily_treasury_yield_curve")
	params.Set("field_tdr_date_value", strconv.Itoa(c.year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("treasury: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("treasury: fetch yield curve: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("treasury: fetch yield curve: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("treasury: read response: %w", err)
	}
	return body, nil
}
