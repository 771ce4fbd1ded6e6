package services

import (
	"context"
	"fmt"

	"github.com/kwatts/networth/internal/cache"
	"github.com/kwatts/networth/internal/gnews"
	"github.com/kwatts/networth/internal/models"
)

// NewsService fetches recent headlines per symbol from the Google News RSS
// feed, shaping the query by asset type. Results are cached with a TTL.
type NewsService struct {
	cache *cache.MemoryCache
	gnews *gnews.Client
	limit int
}

// NewNewsService creates a new NewsService
func NewNewsService(memCache *cache.MemoryCache, gnewsClient *gnews.Client, limit int) *NewsService {
	return &NewsService{
		cache: memCache,
		gnews: gnewsClient,
		limit: limit,
	}
}

// NewsFor returns headlines for a symbol, newest-preferred, at most the
// configured limit. An error means the feed was unreachable; callers degrade
// to an empty list.
func (s *NewsService) NewsFor(ctx context.Context, symbol string, assetType models.AssetType) ([]models.NewsItem, error) {
	if items, ok := s.cache.GetNews(symbol); ok {
		return items, nil
	}

	raw, err := s.gnews.Search(ctx, newsQuery(symbol, assetType), s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}

	items := make([]models.NewsItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, models.NewsItem{
			Title:       r.Title,
			Link:        r.Link,
			PublishedAt: r.PublishedAt,
			Source:      r.Source,
		})
	}

	s.cache.SetNews(symbol, items)
	return items, nil
}

// newsQuery shapes the search query so results stay on topic for the asset
// class ("AAPL stock", "BTC crypto").
func newsQuery(symbol string, assetType models.AssetType) string {
	switch assetType {
	case models.AssetTypeCrypto:
		return symbol + " crypto"
	case models.AssetTypeStock, models.AssetTypeFund:
		return symbol + " stock"
	case models.AssetTypeRealEstate:
		return symbol + " real estate market"
	default:
		return symbol + " finance"
	}
}
