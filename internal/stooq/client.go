package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Stooq is a free quote service that serves latest quotes as CSV.
// https://stooq.com/q/l/?s=aapl.us&f=sd2t2ohlcv&h&e=csv
const defaultBaseURL = "https://stooq.com/q/l/"

// Client is an HTTP client for the Stooq quote endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Stooq client
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a new Stooq client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetQuote fetches the latest close price for a ticker. Symbols without an
// exchange suffix are assumed to be US listings ("aapl" -> "aapl.us").
func (c *Client) GetQuote(ctx context.Context, symbol string) (float64, error) {
	normalized := strings.ToLower(strings.TrimSpace(symbol))
	if !strings.Contains(normalized, ".") {
		normalized += ".us"
	}

	params := url.Values{}
	params.Set("s", normalized)
	params.Set("f", "sd2t2ohlcv")
	params.Set("h", "")
	params.Set("e", "csv")

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV response: %w", err)
	}

	// Header row (Symbol,Date,Time,Open,High,Low,Close,Volume) plus one data row
	if len(records) < 2 {
		return 0, fmt.Errorf("no quote data returned for %s", symbol)
	}
	row := records[1]
	if len(row) < 7 {
		return 0, fmt.Errorf("malformed quote row for %s", symbol)
	}

	// Unknown symbols come back as "N/D" in the close column
	price, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return 0, fmt.Errorf("no quote found for %s", symbol)
	}

	return price, nil
}
