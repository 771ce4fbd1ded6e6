package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/kwatts/networth/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// lookupConcurrency bounds the provider fan-out per overview call.
const lookupConcurrency = 8

// PriceLookup resolves a current per-unit price for a symbol. Any error
// means the price is unavailable.
type PriceLookup interface {
	CurrentPrice(ctx context.Context, symbol string, assetType models.AssetType) (float64, error)
}

// NewsLookup resolves recent headlines for a symbol. Any error degrades to
// an empty headline list.
type NewsLookup interface {
	NewsFor(ctx context.Context, symbol string, assetType models.AssetType) ([]models.NewsItem, error)
}

// OverviewService turns a validated asset list into the consolidated
// portfolio view: per-asset valuation, aggregate totals, and related news.
// Provider lookups fan out concurrently, but the computation itself is one
// sequential order-preserving pass, so the output is identical regardless of
// the fan-out degree.
type OverviewService struct {
	prices        PriceLookup
	news          NewsLookup
	lookupTimeout time.Duration
	now           func() time.Time
}

// NewOverviewService creates a new OverviewService. lookupTimeout applies to
// each provider call independently.
func NewOverviewService(prices PriceLookup, news NewsLookup, lookupTimeout time.Duration) *OverviewService {
	return &OverviewService{
		prices:        prices,
		news:          news,
		lookupTimeout: lookupTimeout,
		now:           time.Now,
	}
}

// Overview produces the full response for an asset list: enrichment,
// totals, and news, as of now.
func (s *OverviewService) Overview(ctx context.Context, assets []models.Asset) models.OverviewResponse {
	defer TrackTime("Overview", time.Now())

	enriched, totals := s.Enrich(ctx, assets)
	return s.Assemble(ctx, enriched, totals)
}

type lookupKey struct {
	symbol    string
	assetType models.AssetType
}

// Enrich resolves prices and computes the valuation for each asset,
// preserving input order. Per asset: a live price yields
// market_value = quantity * price; an unavailable price falls back to
// quantity * costBasis. gain_loss compares against the position cost basis,
// and gain_loss_pct is nil when that cost basis is exactly zero. Totals are
// sums over the enriched sequence with the same nil policy applied once at
// the aggregate level (percentage of sums, not sum of percentages).
func (s *OverviewService) Enrich(ctx context.Context, assets []models.Asset) ([]models.EnrichedAsset, models.PortfolioTotals) {
	prices := s.fetchPrices(ctx, assets)

	enriched := make([]models.EnrichedAsset, 0, len(assets))
	var totalCost, totalValue float64

	for _, a := range assets {
		e := models.EnrichedAsset{
			ID:        a.ID,
			AssetType: a.AssetType,
			Symbol:    strings.ToUpper(a.Symbol),
			Quantity:  a.Quantity,
			CostBasis: a.CostBasis,
			Account:   a.Account,
		}

		positionCost := a.Quantity * a.CostBasis
		if price, ok := prices[lookupKey{symbol: a.Symbol, assetType: a.AssetType}]; ok {
			p := price
			e.CurrentPrice = &p
			e.MarketValue = a.Quantity * price
			e.PricingSource = models.PricingSourceLive
		} else {
			e.MarketValue = positionCost
			e.PricingSource = models.PricingSourceCostBasisFallback
		}

		e.GainLoss = e.MarketValue - positionCost
		if positionCost != 0 {
			pct := e.GainLoss / positionCost * 100
			e.GainLossPct = &pct
		}

		totalCost += positionCost
		totalValue += e.MarketValue
		enriched = append(enriched, e)
	}

	totals := models.PortfolioTotals{
		CostBasis:   totalCost,
		MarketValue: totalValue,
		GainLoss:    totalValue - totalCost,
	}
	if totalCost != 0 {
		pct := totals.GainLoss / totalCost * 100
		totals.GainLossPct = &pct
	}

	return enriched, totals
}

// Assemble combines enrichment results with news into the final response.
// News is best-effort: a failed or timed-out feed maps to an empty list for
// that symbol, never an error.
func (s *OverviewService) Assemble(ctx context.Context, enriched []models.EnrichedAsset, totals models.PortfolioTotals) models.OverviewResponse {
	return models.OverviewResponse{
		AsOf:         s.now().UTC(),
		Totals:       totals,
		Assets:       enriched,
		NewsBySymbol: s.fetchNews(ctx, enriched),
	}
}

// fetchPrices issues one lookup per distinct symbol/type pair, concurrently,
// each with its own timeout. Failed, negative, and non-finite results are
// dropped so they degrade to the cost-basis fallback.
func (s *OverviewService) fetchPrices(ctx context.Context, assets []models.Asset) map[lookupKey]float64 {
	var keys []lookupKey
	seen := make(map[lookupKey]struct{}, len(assets))
	for _, a := range assets {
		k := lookupKey{symbol: a.Symbol, assetType: a.AssetType}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	results := make([]*float64, len(keys))
	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, k := range keys {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
			defer cancel()

			price, err := s.prices.CurrentPrice(cctx, k.symbol, k.assetType)
			if err != nil {
				log.Debugf("price lookup failed for %s (%s): %v", k.symbol, k.assetType, err)
				return nil
			}
			if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
				log.Warnf("discarding bogus price %v for %s", price, k.symbol)
				return nil
			}
			results[i] = &price
			return nil
		})
	}
	g.Wait()

	prices := make(map[lookupKey]float64, len(keys))
	for i, k := range keys {
		if results[i] != nil {
			prices[k] = *results[i]
		}
	}
	return prices
}

// fetchNews issues one lookup per distinct symbol in the enriched sequence,
// concurrently. The query is shaped by the asset type of the symbol's first
// occurrence.
func (s *OverviewService) fetchNews(ctx context.Context, enriched []models.EnrichedAsset) map[string][]models.NewsItem {
	var keys []lookupKey
	seen := make(map[string]struct{}, len(enriched))
	for _, e := range enriched {
		if _, ok := seen[e.Symbol]; ok {
			continue
		}
		seen[e.Symbol] = struct{}{}
		keys = append(keys, lookupKey{symbol: e.Symbol, assetType: e.AssetType})
	}

	results := make([][]models.NewsItem, len(keys))
	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, k := range keys {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
			defer cancel()

			items, err := s.news.NewsFor(cctx, k.symbol, k.assetType)
			if err != nil {
				log.Debugf("news lookup failed for %s: %v", k.symbol, err)
				return nil
			}
			results[i] = items
			return nil
		})
	}
	g.Wait()

	news := make(map[string][]models.NewsItem, len(keys))
	for i, k := range keys {
		items := results[i]
		if items == nil {
			items = []models.NewsItem{}
		}
		news[k.symbol] = items
	}
	return news
}
