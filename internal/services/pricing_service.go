package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kwatts/networth/internal/cache"
	"github.com/kwatts/networth/internal/coingecko"
	"github.com/kwatts/networth/internal/models"
	"github.com/kwatts/networth/internal/stooq"
)

// ErrPriceUnavailable marks asset types with no live quote feed. The
// aggregation engine degrades these to cost-basis valuation.
var ErrPriceUnavailable = errors.New("price unavailable")

// PricingService resolves live prices, routing by asset type: Stooq for
// stocks and funds, CoinGecko for crypto, par value for cash-like accounts.
// Bonds and real estate have no quote feed. Resolved prices are cached
// in memory with a TTL.
type PricingService struct {
	cache     *cache.MemoryCache
	stooq     *stooq.Client
	coingecko *coingecko.Client
}

// NewPricingService creates a new PricingService
func NewPricingService(memCache *cache.MemoryCache, stooqClient *stooq.Client, cgClient *coingecko.Client) *PricingService {
	return &PricingService{
		cache:     memCache,
		stooq:     stooqClient,
		coingecko: cgClient,
	}
}

// CurrentPrice returns the current per-unit USD price for a symbol. Any
// error means "unavailable"; callers must not treat it as fatal.
func (s *PricingService) CurrentPrice(ctx context.Context, symbol string, assetType models.AssetType) (float64, error) {
	key := quoteCacheKey(symbol, assetType)
	if price, ok := s.cache.GetQuote(key); ok {
		return price, nil
	}

	var price float64
	var err error
	switch assetType {
	case models.AssetTypeStock, models.AssetTypeFund:
		price, err = s.stooq.GetQuote(ctx, symbol)
	case models.AssetTypeCrypto:
		price, err = s.coingecko.GetSpotPrice(ctx, symbol)
	case models.AssetTypeHYSA, models.AssetTypeCash:
		// Cash is valued at par in USD
		price = 1.0
	default:
		return 0, fmt.Errorf("%w: no quote feed for %s assets", ErrPriceUnavailable, assetType)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	s.cache.SetQuote(key, price)
	return price, nil
}

func quoteCacheKey(symbol string, assetType models.AssetType) string {
	return string(assetType) + ":" + strings.ToUpper(strings.TrimSpace(symbol))
}
