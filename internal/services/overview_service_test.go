package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/kwatts/networth/internal/models"
)

type stubPrices struct {
	mu     sync.Mutex
	prices map[string]float64
	errs   map[string]error
	calls  map[string]int
}

func (s *stubPrices) CurrentPrice(_ context.Context, symbol string, _ models.AssetType) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[symbol]++
	if err, ok := s.errs[symbol]; ok {
		return 0, err
	}
	if p, ok := s.prices[symbol]; ok {
		return p, nil
	}
	return 0, ErrPriceUnavailable
}

type stubNews struct {
	mu    sync.Mutex
	items map[string][]models.NewsItem
	errs  map[string]error
	calls map[string]int
}

func (s *stubNews) NewsFor(_ context.Context, symbol string, _ models.AssetType) ([]models.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[symbol]++
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	return s.items[symbol], nil
}

func newTestOverviewService(prices *stubPrices, news *stubNews) *OverviewService {
	svc := NewOverviewService(prices, news, time.Second)
	svc.now = func() time.Time {
		return time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func stockAsset(id, symbol string, quantity, costBasis float64) models.Asset {
	return models.Asset{
		ID:        id,
		AssetType: models.AssetTypeStock,
		Symbol:    symbol,
		Quantity:  quantity,
		CostBasis: costBasis,
	}
}

func TestOverviewLivePrice(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"AAPL": 150}}
	news := &stubNews{}
	svc := newTestOverviewService(prices, news)

	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("a1", "AAPL", 10, 100),
	})

	if len(resp.Assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(resp.Assets))
	}
	e := resp.Assets[0]
	if e.CurrentPrice == nil || *e.CurrentPrice != 150 {
		t.Errorf("expected current price 150, got %v", e.CurrentPrice)
	}
	if e.MarketValue != 1500 {
		t.Errorf("expected market value 1500, got %v", e.MarketValue)
	}
	if e.GainLoss != 500 {
		t.Errorf("expected gain 500, got %v", e.GainLoss)
	}
	if e.GainLossPct == nil || *e.GainLossPct != 50 {
		t.Errorf("expected gain pct 50, got %v", e.GainLossPct)
	}
	if e.PricingSource != models.PricingSourceLive {
		t.Errorf("expected live pricing, got %s", e.PricingSource)
	}
}

func TestOverviewCostBasisFallback(t *testing.T) {
	prices := &stubPrices{errs: map[string]error{"AAPL": ErrPriceUnavailable}}
	news := &stubNews{}
	svc := newTestOverviewService(prices, news)

	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("a1", "AAPL", 10, 100),
	})

	e := resp.Assets[0]
	if e.CurrentPrice != nil {
		t.Errorf("expected no current price, got %v", *e.CurrentPrice)
	}
	if e.MarketValue != 1000 {
		t.Errorf("expected market value 1000, got %v", e.MarketValue)
	}
	if e.GainLoss != 0 {
		t.Errorf("expected zero gain, got %v", e.GainLoss)
	}
	if e.PricingSource != models.PricingSourceCostBasisFallback {
		t.Errorf("expected fallback pricing, got %s", e.PricingSource)
	}
}

func TestOverviewZeroCostBasis(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"FREE": 5}}
	news := &stubNews{}
	svc := newTestOverviewService(prices, news)

	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("f1", "FREE", 10, 0),
	})

	e := resp.Assets[0]
	if e.GainLoss != 50 {
		t.Errorf("expected gain 50, got %v", e.GainLoss)
	}
	if e.GainLossPct != nil {
		t.Errorf("expected nil gain pct for zero cost basis, got %v", *e.GainLossPct)
	}
	if resp.Totals.GainLossPct != nil {
		t.Errorf("expected nil total pct for zero total cost, got %v", *resp.Totals.GainLossPct)
	}
}

func TestOverviewEmptyPortfolio(t *testing.T) {
	svc := newTestOverviewService(&stubPrices{}, &stubNews{})

	resp := svc.Overview(context.Background(), nil)

	if resp.Assets == nil || len(resp.Assets) != 0 {
		t.Errorf("expected empty non-nil asset slice, got %v", resp.Assets)
	}
	if resp.NewsBySymbol == nil || len(resp.NewsBySymbol) != 0 {
		t.Errorf("expected empty non-nil news map, got %v", resp.NewsBySymbol)
	}
	if resp.Totals.CostBasis != 0 || resp.Totals.MarketValue != 0 || resp.Totals.GainLoss != 0 {
		t.Errorf("expected zero totals, got %+v", resp.Totals)
	}
	if resp.Totals.GainLossPct != nil {
		t.Errorf("expected nil total pct, got %v", *resp.Totals.GainLossPct)
	}
}

func TestOverviewPreservesOrderAndUppercasesSymbols(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"aapl": 150, "msft": 300}}
	news := &stubNews{}
	svc := newTestOverviewService(prices, news)

	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("a1", "aapl", 1, 100),
		stockAsset("m1", "msft", 2, 200),
		stockAsset("a2", "aapl", 3, 120),
	})

	if len(resp.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(resp.Assets))
	}
	wantIDs := []string{"a1", "m1", "a2"}
	wantSymbols := []string{"AAPL", "MSFT", "AAPL"}
	for i := range wantIDs {
		if resp.Assets[i].ID != wantIDs[i] {
			t.Errorf("position %d: expected id %s, got %s", i, wantIDs[i], resp.Assets[i].ID)
		}
		if resp.Assets[i].Symbol != wantSymbols[i] {
			t.Errorf("position %d: expected symbol %s, got %s", i, wantSymbols[i], resp.Assets[i].Symbol)
		}
	}
}

func TestOverviewLooksUpDistinctSymbolsOnce(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"AAPL": 150}}
	news := &stubNews{items: map[string][]models.NewsItem{
		"AAPL": {{Title: "headline", Source: "Google News"}},
	}}
	svc := newTestOverviewService(prices, news)

	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("a1", "AAPL", 1, 100),
		stockAsset("a2", "AAPL", 2, 120),
	})

	if got := prices.calls["AAPL"]; got != 1 {
		t.Errorf("expected 1 price lookup for AAPL, got %d", got)
	}
	if got := news.calls["AAPL"]; got != 1 {
		t.Errorf("expected 1 news lookup for AAPL, got %d", got)
	}
	if len(resp.NewsBySymbol["AAPL"]) != 1 {
		t.Errorf("expected 1 headline for AAPL, got %v", resp.NewsBySymbol["AAPL"])
	}
}

func TestOverviewDiscardsBogusPrices(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{
		"NEG": -5,
		"NAN": math.NaN(),
		"INF": math.Inf(1),
	}}
	svc := newTestOverviewService(prices, &stubNews{})

	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("n1", "NEG", 1, 100),
		stockAsset("n2", "NAN", 1, 100),
		stockAsset("n3", "INF", 1, 100),
	})

	for _, e := range resp.Assets {
		if e.PricingSource != models.PricingSourceCostBasisFallback {
			t.Errorf("%s: expected fallback pricing, got %s", e.Symbol, e.PricingSource)
		}
		if e.CurrentPrice != nil {
			t.Errorf("%s: expected no current price, got %v", e.Symbol, *e.CurrentPrice)
		}
		if e.MarketValue != 100 {
			t.Errorf("%s: expected market value 100, got %v", e.Symbol, e.MarketValue)
		}
	}
}

func TestOverviewTotalsArePercentageOfSums(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"A": 200, "B": 50}}
	svc := newTestOverviewService(prices, &stubNews{})

	// A: cost 100, value 200 (+100%). B: cost 300, value 150 (-50%).
	// Aggregate: cost 400, value 350, -12.5%. A naive average would be +25%.
	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("a", "A", 1, 100),
		stockAsset("b", "B", 3, 100),
	})

	if resp.Totals.CostBasis != 400 {
		t.Errorf("expected total cost 400, got %v", resp.Totals.CostBasis)
	}
	if resp.Totals.MarketValue != 350 {
		t.Errorf("expected total value 350, got %v", resp.Totals.MarketValue)
	}
	if resp.Totals.GainLoss != -50 {
		t.Errorf("expected total gain -50, got %v", resp.Totals.GainLoss)
	}
	if resp.Totals.GainLossPct == nil || *resp.Totals.GainLossPct != -12.5 {
		t.Errorf("expected total pct -12.5, got %v", resp.Totals.GainLossPct)
	}
}

func TestOverviewNewsFailureDegradesToEmptyList(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"AAPL": 150}}
	news := &stubNews{errs: map[string]error{"AAPL": errors.New("feed unreachable")}}
	svc := newTestOverviewService(prices, news)

	resp := svc.Overview(context.Background(), []models.Asset{
		stockAsset("a1", "AAPL", 1, 100),
	})

	items, ok := resp.NewsBySymbol["AAPL"]
	if !ok {
		t.Fatal("expected AAPL present in news map")
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil headline list, got %v", items)
	}
}

func TestOverviewAsOfUsesClock(t *testing.T) {
	svc := newTestOverviewService(&stubPrices{}, &stubNews{})

	first := svc.Overview(context.Background(), nil)
	second := svc.Overview(context.Background(), nil)

	want := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	if !first.AsOf.Equal(want) || !second.AsOf.Equal(want) {
		t.Errorf("expected as_of %v, got %v and %v", want, first.AsOf, second.AsOf)
	}
}
