package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kwatts/networth/internal/cache"
	"github.com/kwatts/networth/internal/coingecko"
	"github.com/kwatts/networth/internal/models"
	"github.com/kwatts/networth/internal/stooq"
)

func newTestPricingService(t *testing.T, stooqHandler, cgHandler http.HandlerFunc) (*PricingService, *cache.MemoryCache) {
	t.Helper()
	stooqServer := httptest.NewServer(stooqHandler)
	t.Cleanup(stooqServer.Close)
	cgServer := httptest.NewServer(cgHandler)
	t.Cleanup(cgServer.Close)

	memCache := cache.NewMemoryCache(time.Minute, time.Minute)
	svc := NewPricingService(
		memCache,
		stooq.NewClientWithBaseURL(stooqServer.URL),
		coingecko.NewClientWithBaseURL(cgServer.URL),
	)
	return svc, memCache
}

func stooqQuote(price float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Symbol,Date,Time,Open,High,Low,Close,Volume")
		fmt.Fprintf(w, "AAPL.US,2026-01-15,22:00:00,0,0,0,%v,0\n", price)
	}
}

func cgQuote(price float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"bitcoin":{"usd":%v}}`, price)
	}
}

func TestCurrentPriceRoutesStocksToStooq(t *testing.T) {
	svc, _ := newTestPricingService(t, stooqQuote(232.42), cgQuote(67000))

	price, err := svc.CurrentPrice(context.Background(), "AAPL", models.AssetTypeStock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 232.42 {
		t.Errorf("expected 232.42, got %v", price)
	}
}

func TestCurrentPriceRoutesCryptoToCoinGecko(t *testing.T) {
	svc, _ := newTestPricingService(t, stooqQuote(1), cgQuote(67000.12))

	price, err := svc.CurrentPrice(context.Background(), "BTC", models.AssetTypeCrypto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 67000.12 {
		t.Errorf("expected 67000.12, got %v", price)
	}
}

func TestCurrentPriceCashAtPar(t *testing.T) {
	svc, _ := newTestPricingService(t,
		func(w http.ResponseWriter, r *http.Request) { t.Error("unexpected quote request") },
		func(w http.ResponseWriter, r *http.Request) { t.Error("unexpected quote request") },
	)

	for _, at := range []models.AssetType{models.AssetTypeHYSA, models.AssetTypeCash} {
		price, err := svc.CurrentPrice(context.Background(), "amex hysa", at)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", at, err)
		}
		if price != 1.0 {
			t.Errorf("%s: expected par 1.0, got %v", at, price)
		}
	}
}

func TestCurrentPriceUnavailableForBondsAndRealEstate(t *testing.T) {
	svc, _ := newTestPricingService(t, stooqQuote(1), cgQuote(1))

	for _, at := range []models.AssetType{models.AssetTypeBond, models.AssetTypeRealEstate} {
		_, err := svc.CurrentPrice(context.Background(), "X", at)
		if !errors.Is(err, ErrPriceUnavailable) {
			t.Errorf("%s: expected ErrPriceUnavailable, got %v", at, err)
		}
	}
}

func TestCurrentPriceUsesCache(t *testing.T) {
	var hits atomic.Int64
	svc, _ := newTestPricingService(t,
		func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			stooqQuote(232.42)(w, r)
		},
		cgQuote(1),
	)

	for i := 0; i < 3; i++ {
		if _, err := svc.CurrentPrice(context.Background(), "AAPL", models.AssetTypeStock); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("expected 1 upstream request, got %d", got)
	}
}

func TestCurrentPriceDoesNotCacheFailures(t *testing.T) {
	var hits atomic.Int64
	svc, _ := newTestPricingService(t,
		func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		},
		cgQuote(1),
	)

	for i := 0; i < 2; i++ {
		if _, err := svc.CurrentPrice(context.Background(), "AAPL", models.AssetTypeStock); err == nil {
			t.Fatal("expected error from failing upstream")
		}
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("expected each failure to hit upstream, got %d", got)
	}
}
