// Package market fetches quotes and historical price series from the
// upstream market-data provider. Every call carries a bounded timeout; any
// failure is reported as an error the analytics path can absorb.
package market

import "context"

// Quote is a single instrument snapshot from the provider.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PercentChange float64 `json:"percent_change"`
}

// MoversFeed is the gainers/losers/most-active candidate feed.
type MoversFeed struct {
	TopGainers []Quote `json:"top_gainers"`
	TopLosers  []Quote `json:"top_losers"`
	MostActive []Quote `json:"most_actively_traded"`
}

// Client is the market-data contract the analytics and recommendation layers
// depend on. Implementations may fail with network, authorization,
// rate-limit, or not-found errors, and may return partial or empty series.
type Client interface {
	// Quote fetches the current snapshot for one symbol.
	Quote(ctx context.Context, symbol string) (*Quote, error)

	// HistoricalCloses fetches a chronological close-price series for a
	// symbol over the given range and interval, e.g. ("1mo", "1d").
	HistoricalCloses(ctx context.Context, symbol, priceRange, interval string) ([]float64, error)

	// TopMovers fetches the gainers/losers/most-active feed.
	TopMovers(ctx context.Context) (*MoversFeed, error)

	// TrendingSymbols fetches the trending tickers for a region.
	TrendingSymbols(ctx context.Context, region string) ([]string, error)
}
