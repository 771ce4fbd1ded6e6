package gnews

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Google News exposes search results as an RSS feed; no API key required.
const defaultBaseURL = "https://news.google.com/rss/search"

// Item is a single parsed headline.
type Item struct {
	Title       string
	Link        string
	PublishedAt string
	Source      string
}

type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Source  string `xml:"source"`
}

// Client is an HTTP client for the Google News RSS search feed
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Google News client
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a new Google News client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search fetches headlines matching a query, preferring items published
// today (UTC). When nothing from today is available it falls back to the
// first items in the feed. At most limit items are returned.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Item, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	return selectItems(feed.Items, time.Now().UTC(), limit), nil
}

// selectItems keeps items published on the given day, falling back to the
// head of the feed when none match.
func selectItems(items []rssItem, now time.Time, limit int) []Item {
	var fromToday []Item
	for _, item := range items {
		parsed, ok := parseItem(item)
		if !ok {
			continue
		}
		published, err := parsePubDate(item.PubDate)
		if err != nil {
			continue
		}
		if sameDay(published.UTC(), now) {
			fromToday = append(fromToday, parsed)
		}
		if len(fromToday) >= limit {
			break
		}
	}
	if len(fromToday) > 0 {
		return fromToday
	}

	var head []Item
	for _, item := range items {
		if len(head) >= limit {
			break
		}
		if parsed, ok := parseItem(item); ok {
			head = append(head, parsed)
		}
	}
	return head
}

func parseItem(item rssItem) (Item, bool) {
	if item.Title == "" || item.Link == "" {
		return Item{}, false
	}
	source := item.Source
	if source == "" {
		source = "Google News"
	}
	return Item{
		Title:       item.Title,
		Link:        item.Link,
		PublishedAt: item.PubDate,
		Source:      source,
	}, true
}

func parsePubDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC1123Z, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC1123, s)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
