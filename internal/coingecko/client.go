package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CoinGecko serves crypto spot prices as JSON. The free tier needs no API key.
// https://www.coingecko.com/en/api/documentation
const defaultBaseURL = "https://api.coingecko.com/api/v3/simple/price"

// symbolToCoinID maps common ticker symbols to CoinGecko coin ids. Symbols
// outside this map are unsupported and surface as an error.
var symbolToCoinID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"BNB":   "binancecoin",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
}

// Client is an HTTP client for the CoinGecko simple-price endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new CoinGecko client
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a new CoinGecko client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetSpotPrice fetches the current USD price for a coin symbol.
func (c *Client) GetSpotPrice(ctx context.Context, symbol string) (float64, error) {
	coinID, ok := symbolToCoinID[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return 0, fmt.Errorf("unsupported crypto symbol %q", symbol)
	}

	params := url.Values{}
	params.Set("ids", coinID)
	params.Set("vs_currencies", "usd")

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

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	// Response shape: {"bitcoin": {"usd": 67000.12}}
	var payload map[string]map[string]float64
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	price, ok := payload[coinID]["usd"]
	if !ok {
		return 0, fmt.Errorf("no USD price returned for %s", symbol)
	}

	return price, nil
}
