package models

import (
	"time"
)

// PricingSource values reported on an EnrichedAsset.
const (
	PricingSourceLive              = "live"
	PricingSourceCostBasisFallback = "cost_basis_fallback"
)

// OverviewRequest is the request body for the portfolio overview endpoint.
// Asset records arrive untyped and run through the schema validator before
// any aggregation happens.
type OverviewRequest struct {
	Assets []map[string]any `json:"assets"`
}

// ReplaceAssetsRequest is the request body for bulk asset replacement.
type ReplaceAssetsRequest struct {
	Assets []map[string]any `json:"assets"`
}

// NewsItem is a single headline tied to a symbol.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
}

// PortfolioTotals aggregates cost basis and valuation across a portfolio.
// GainLossPct is nil when the aggregate cost basis is exactly zero.
type PortfolioTotals struct {
	CostBasis   float64  `json:"cost_basis"`
	MarketValue float64  `json:"market_value"`
	GainLoss    float64  `json:"gain_loss"`
	GainLossPct *float64 `json:"gain_loss_pct"`
}

// EnrichedAsset is an asset projected with its resolved price and computed
// valuation. CurrentPrice is nil when no live price was available;
// GainLossPct is nil when the position cost basis is exactly zero.
type EnrichedAsset struct {
	ID            string    `json:"id"`
	AssetType     AssetType `json:"asset_type"`
	Symbol        string    `json:"symbol"`
	Quantity      float64   `json:"quantity"`
	CostBasis     float64   `json:"cost_basis"`
	Account       *string   `json:"account,omitempty"`
	CurrentPrice  *float64  `json:"current_price"`
	MarketValue   float64   `json:"market_value"`
	GainLoss      float64   `json:"gain_loss"`
	GainLossPct   *float64  `json:"gain_loss_pct"`
	PricingSource string    `json:"pricing_source"`
}

// OverviewResponse is the consolidated portfolio view for one point in time.
type OverviewResponse struct {
	AsOf         time.Time             `json:"as_of"`
	Totals       PortfolioTotals       `json:"totals"`
	Assets       []EnrichedAsset       `json:"assets"`
	NewsBySymbol map[string][]NewsItem `json:"news_by_symbol"`
}

// FieldError is a single violated constraint: where and why.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}
