// Package analytics derives volatility and momentum statistics from market
// price series and scores instruments against a risk profile.
package analytics

import (
	"context"

	"smartfinance/internal/logger"
)

// HistorySource fetches a chronological close-price series for a symbol.
// Implementations may fail, time out, or return partial data.
type HistorySource interface {
	HistoricalCloses(ctx context.Context, symbol, priceRange, interval string) ([]float64, error)
}

// historyInterval is the sampling interval used for every lookback fetch.
const historyInterval = "1d"

// Engine computes instrument metrics over cached price history. Metric
// lookups for a (symbol, period) pair hit the upstream source once; all
// later calls are served from the cache until ClearCache.
type Engine struct {
	source HistorySource
	cache  *priceCache
}

// NewEngine creates an analytics engine over the given history source with a
// bounded series cache.
func NewEngine(source HistorySource, cacheCapacity int) *Engine {
	return &Engine{
		source: source,
		cache:  newPriceCache(cacheCapacity),
	}
}

// History returns the close-price series for symbol over the period,
// fetching and caching it on first use.
func (e *Engine) History(ctx context.Context, symbol, period string) ([]float64, error) {
	if closes, ok := e.cache.get(symbol, period); ok {
		return closes, nil
	}

	closes, err := e.source.HistoricalCloses(ctx, symbol, period, historyInterval)
	if err != nil {
		return nil, err
	}

	e.cache.put(symbol, period, closes)
	logger.Get().Debugw("cached price history", "symbol", symbol, "period", period, "points", len(closes))
	return closes, nil
}

// Volatility returns the annualized log-return volatility for symbol over
// the period. The bool is false when the statistic is undefined for the
// available data.
func (e *Engine) Volatility(ctx context.Context, symbol, period string) (float64, bool, error) {
	closes, err := e.History(ctx, symbol, period)
	if err != nil {
		return 0, false, err
	}
	v, ok := VolatilityFromCloses(closes)
	return v, ok, nil
}

// Momentum returns the fractional price change for symbol over the period.
// The bool is false when the statistic is undefined for the available data.
func (e *Engine) Momentum(ctx context.Context, symbol, period string) (float64, bool, error) {
	closes, err := e.History(ctx, symbol, period)
	if err != nil {
		return 0, false, err
	}
	m, ok := MomentumFromCloses(closes)
	return m, ok, nil
}

// ClearCache drops every cached price series.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// CachedSeries reports how many series are currently cached.
func (e *Engine) CachedSeries() int {
	return e.cache.len()
}
