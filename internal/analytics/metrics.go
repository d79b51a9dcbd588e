package analytics

import "math"

// TradingDaysPerYear scales daily return variance to an annualized figure.
const TradingDaysPerYear = 252

// VolatilityFromCloses computes the annualized standard deviation of daily
// log returns over a chronological close-price series. The second return
// value is false when the statistic is undefined: fewer than 2 prices, or
// fewer than 2 usable log returns after skipping non-positive price pairs.
func VolatilityFromCloses(closes []float64) (float64, bool) {
	if len(closes) < 2 {
		return 0, false
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		// log of a non-positive ratio is undefined; skip the pair.
		if closes[i-1] <= 0 || closes[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	if len(returns) < 2 {
		return 0, false
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(TradingDaysPerYear), true
}

// MomentumFromCloses computes the fractional price change over the series,
// (latest − earliest) / earliest. The second return value is false when the
// statistic is undefined: fewer than 2 prices or a zero earliest price.
func MomentumFromCloses(closes []float64) (float64, bool) {
	if len(closes) < 2 {
		return 0, false
	}
	earliest := closes[0]
	latest := closes[len(closes)-1]
	if earliest == 0 {
		return 0, false
	}
	return (latest - earliest) / earliest, true
}
