package services

import (
	"context"
	"math"
	"sort"
	"sync"

	"smartfinance/internal/analytics"
	"smartfinance/internal/logger"
	"smartfinance/internal/market"
	"smartfinance/internal/metrics"
)

const (
	// suitabilityThreshold is the minimum score a live candidate must reach
	// to appear in a suggestion list.
	suitabilityThreshold = 40.0

	// maxSuggestions caps the ranked suggestion list.
	maxSuggestions = 5

	// trendingRegion selects the trending-tickers feed.
	trendingRegion = "US"
)

// Candidate caps per profile when selecting from the movers feed. The cap is
// on the accumulated selection, so later slices only top it up.
const (
	conservativeLoserCap  = 6
	conservativeTotalCap  = 10
	moderateGainerCap     = 8
	moderateLoserCap      = 14
	moderateTotalCap      = 18
	aggressiveGainerCap   = 8
	aggressiveTotalCap    = 12
)

// recommendationService gathers candidate instruments, enriches them with
// analytics metrics, and ranks them. All upstream failures degrade to the
// static fallback list; callers never observe an error.
type recommendationService struct {
	market    market.Client
	engine    *analytics.Engine
	collector *metrics.Collector
	period    string

	// quotes caches per-symbol quote lookups for the service lifetime,
	// alongside the engine's price-series cache. Cleared by ClearCaches.
	quoteMu sync.RWMutex
	quotes  map[string]market.Quote
}

// NewRecommendationService creates a new RecommendationServicer using the
// given lookback period (e.g. "1mo") for metric computation.
func NewRecommendationService(client market.Client, engine *analytics.Engine, collector *metrics.Collector, period string) RecommendationServicer {
	if period == "" {
		period = "1mo"
	}
	return &recommendationService{
		market:    client,
		engine:    engine,
		collector: collector,
		period:    period,
		quotes:    make(map[string]market.Quote),
	}
}

// Suggestions returns at most maxSuggestions instruments ranked by
// suitability for the profile. Candidates below the threshold are dropped;
// an empty or failed candidate set falls back to the static per-profile list.
func (s *recommendationService) Suggestions(ctx context.Context, profile analytics.RiskProfile) []StockSuggestion {
	candidates := s.gatherCandidates(ctx, profile)
	if len(candidates) == 0 {
		return s.fallback(profile)
	}

	suggestions := make([]StockSuggestion, 0, len(candidates))
	for _, quote := range candidates {
		enriched, ok := s.enrich(ctx, quote, profile)
		if !ok {
			continue
		}
		if enriched.Score < suitabilityThreshold {
			continue
		}
		suggestions = append(suggestions, enriched)
	}

	if len(suggestions) == 0 {
		return s.fallback(profile)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// TrendingStocks returns the trending feed enriched with metrics, ranked by
// descending absolute percent change. Each instrument is labeled with the
// profile that scores it highest rather than filtered against one profile.
func (s *recommendationService) TrendingStocks(ctx context.Context) []StockSuggestion {
	symbols, err := s.market.TrendingSymbols(ctx, trendingRegion)
	if err != nil || len(symbols) == 0 {
		if err != nil {
			logger.Get().Warnw("trending feed unavailable", "error", err)
		}
		return s.fallback(analytics.Moderate)
	}

	suggestions := make([]StockSuggestion, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := s.cachedQuote(ctx, symbol)
		if err != nil {
			s.skipSymbol(symbol, err)
			continue
		}
		enriched, ok := s.enrichBestFit(ctx, quote)
		if !ok {
			continue
		}
		suggestions = append(suggestions, enriched)
	}

	if len(suggestions) == 0 {
		return s.fallback(analytics.Moderate)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return math.Abs(suggestions[i].PercentChange) > math.Abs(suggestions[j].PercentChange)
	})
	return suggestions
}

// HistoricalPrices exposes the (cached) close series for a symbol, e.g. for
// rendering a price chart next to a suggestion.
func (s *recommendationService) HistoricalPrices(ctx context.Context, symbol string) ([]float64, error) {
	return s.engine.History(ctx, symbol, s.period)
}

// ClearCaches drops all cached price series and quotes.
func (s *recommendationService) ClearCaches() {
	s.engine.ClearCache()
	s.quoteMu.Lock()
	s.quotes = make(map[string]market.Quote)
	s.quoteMu.Unlock()
}

// cachedQuote returns the symbol's quote, fetching it from the market client
// on first use. Failed lookups are not cached so a later request can recover.
func (s *recommendationService) cachedQuote(ctx context.Context, symbol string) (market.Quote, error) {
	s.quoteMu.RLock()
	quote, ok := s.quotes[symbol]
	s.quoteMu.RUnlock()
	if ok {
		return quote, nil
	}

	fetched, err := s.market.Quote(ctx, symbol)
	if err != nil {
		return market.Quote{}, err
	}

	s.quoteMu.Lock()
	s.quotes[symbol] = *fetched
	s.quoteMu.Unlock()
	return *fetched, nil
}

// gatherCandidates assembles the profile-specific candidate set from the
// movers feed. A failed feed fetch yields an empty set, which triggers the
// fallback path upstream.
func (s *recommendationService) gatherCandidates(ctx context.Context, profile analytics.RiskProfile) []market.Quote {
	feed, err := s.market.TopMovers(ctx)
	if err != nil {
		logger.Get().Warnw("movers feed unavailable", "error", err)
		return nil
	}

	var selection []market.Quote
	switch profile {
	case analytics.Conservative:
		selection = appendLimited(selection, feed.TopLosers, conservativeLoserCap)
		selection = appendLimited(selection, feed.TopGainers, conservativeTotalCap)
	case analytics.Moderate:
		selection = appendLimited(selection, feed.TopGainers, moderateGainerCap)
		selection = appendLimited(selection, feed.TopLosers, moderateLoserCap)
		selection = appendLimited(selection, feed.MostActive, moderateTotalCap)
	case analytics.Aggressive:
		selection = appendLimited(selection, feed.TopGainers, aggressiveGainerCap)
		selection = appendLimited(selection, feed.MostActive, aggressiveTotalCap)
	}
	return selection
}

// appendLimited tops up target from source until target reaches limit.
func appendLimited(target, source []market.Quote, limit int) []market.Quote {
	for _, q := range source {
		if len(target) >= limit {
			break
		}
		target = append(target, q)
	}
	return target
}

// enrich computes metrics for one candidate and scores it against the
// profile. Returns false when the candidate must be skipped because its
// history could not be fetched; a fetch that succeeds but yields undefined
// metrics still produces a (zero-scored) suggestion.
func (s *recommendationService) enrich(ctx context.Context, quote market.Quote, profile analytics.RiskProfile) (StockSuggestion, bool) {
	volatility, momentum, ok := s.computeMetrics(ctx, quote.Symbol)
	if !ok {
		return StockSuggestion{}, false
	}

	score := profile.SuitabilityScore(orNaN(volatility), orNaN(momentum))
	if s.collector != nil {
		s.collector.ObserveScore(score)
	}

	return StockSuggestion{
		Symbol:        quote.Symbol,
		Name:          quote.Name,
		Price:         quote.Price,
		PercentChange: quote.PercentChange,
		Volatility:    volatility,
		Momentum:      momentum,
		Score:         score,
		Profile:       profile,
	}, true
}

// enrichBestFit is like enrich but labels the instrument with whichever
// profile yields the highest score.
func (s *recommendationService) enrichBestFit(ctx context.Context, quote market.Quote) (StockSuggestion, bool) {
	volatility, momentum, ok := s.computeMetrics(ctx, quote.Symbol)
	if !ok {
		return StockSuggestion{}, false
	}

	profile, score := analytics.BestProfile(orNaN(volatility), orNaN(momentum))
	if s.collector != nil {
		s.collector.ObserveScore(score)
	}

	return StockSuggestion{
		Symbol:        quote.Symbol,
		Name:          quote.Name,
		Price:         quote.Price,
		PercentChange: quote.PercentChange,
		Volatility:    volatility,
		Momentum:      momentum,
		Score:         score,
		Profile:       profile,
	}, true
}

// computeMetrics fetches (cached) history for the symbol and derives its
// metrics. The bool is false only on a fetch failure; undefined statistics
// come back as nil pointers.
func (s *recommendationService) computeMetrics(ctx context.Context, symbol string) (volatility, momentum *float64, ok bool) {
	closes, err := s.engine.History(ctx, symbol, s.period)
	if err != nil {
		s.skipSymbol(symbol, err)
		return nil, nil, false
	}

	if v, defined := analytics.VolatilityFromCloses(closes); defined {
		volatility = &v
	}
	if m, defined := analytics.MomentumFromCloses(closes); defined {
		momentum = &m
	}
	return volatility, momentum, true
}

// skipSymbol logs and counts a per-symbol failure. Individual symbols are
// skipped, never retried, and never fatal to the batch.
func (s *recommendationService) skipSymbol(symbol string, err error) {
	logger.Get().Warnw("skipping symbol", "symbol", symbol, "error", err)
	if s.collector != nil {
		s.collector.RecordSkippedSymbol()
	}
}

// orNaN converts an undefined (nil) metric into NaN so the scoring function
// reports zero suitability for it.
func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// fallback returns the static, hand-authored per-profile suggestion list.
// The entries carry pre-assigned plausible volatility/momentum values so the
// UI can still render metrics when live data is unavailable.
func (s *recommendationService) fallback(profile analytics.RiskProfile) []StockSuggestion {
	logger.Get().Warnw("serving fallback suggestions", "profile", profile)
	if s.collector != nil {
		s.collector.RecordFallback()
	}

	entries := fallbackEntries[profile]
	suggestions := make([]StockSuggestion, 0, len(entries))
	for _, e := range entries {
		vol, mom := e.volatility, e.momentum
		suggestions = append(suggestions, StockSuggestion{
			Symbol:        e.symbol,
			Name:          e.name,
			Price:         e.price,
			PercentChange: e.percentChange,
			Volatility:    &vol,
			Momentum:      &mom,
			Score:         profile.SuitabilityScore(vol, mom),
			Profile:       profile,
		})
	}
	return suggestions
}

type fallbackEntry struct {
	name          string
	symbol        string
	price         float64
	percentChange float64
	volatility    float64
	momentum      float64
}

var fallbackEntries = map[analytics.RiskProfile][]fallbackEntry{
	analytics.Conservative: {
		{"HDFC Bank Ltd", "HDFCBANK", 1550.00, 0.45, 0.16, 0.020},
		{"Infosys Ltd", "INFY", 1405.00, 0.30, 0.19, 0.015},
		{"ITC Ltd", "ITC", 440.00, 0.25, 0.14, 0.010},
	},
	analytics.Moderate: {
		{"Reliance Industries Ltd", "RELIANCE", 2435.00, 0.65, 0.27, 0.040},
		{"Tata Consultancy Services", "TCS", 3550.00, 0.55, 0.23, 0.030},
		{"Larsen & Toubro Ltd", "LT", 3330.00, 0.75, 0.30, 0.050},
	},
	analytics.Aggressive: {
		{"Adani Enterprises Ltd", "ADANIENT", 2800.00, 1.25, 0.55, 0.080},
		{"Tata Motors Ltd", "TATAMOTORS", 720.00, 1.05, 0.48, 0.060},
		{"State Bank of India", "SBIN", 570.00, 0.95, 0.42, 0.050},
	},
}
