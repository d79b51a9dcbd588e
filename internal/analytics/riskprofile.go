package analytics

import (
	"math"
	"strings"

	apperrors "smartfinance/internal/errors"
)

// RiskProfile is a pure scoring strategy describing a client's tolerance for
// volatility. It is not persisted state.
type RiskProfile string

const (
	Conservative RiskProfile = "conservative"
	Moderate     RiskProfile = "moderate"
	Aggressive   RiskProfile = "aggressive"
)

// Profiles lists every known risk profile.
func Profiles() []RiskProfile {
	return []RiskProfile{Conservative, Moderate, Aggressive}
}

// ParseRiskProfile parses a case-insensitive profile name.
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch RiskProfile(strings.ToLower(strings.TrimSpace(s))) {
	case Conservative:
		return Conservative, nil
	case Moderate:
		return Moderate, nil
	case Aggressive:
		return Aggressive, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown risk profile: "+s)
}

// SuitabilityScore rates how well an instrument's volatility and momentum fit
// this profile, in [0, 100]. The sub-score construction and profile weights
// are the entire risk-tolerance model:
//
//	low-vol  = 1/(1+vol)            favors calm instruments
//	high-vol = vol/(vol+0.5)        favors volatile instruments
//	balanced = (low+high)/2
//	momentum = (tanh(m*2.5)+1)/2    squashes momentum into [0,1]
//
// Conservative = 0.7*low + 0.3*momentum, Moderate = 0.5*balanced +
// 0.5*momentum, Aggressive = 0.7*high + 0.3*momentum.
func (p RiskProfile) SuitabilityScore(volatility, momentum float64) float64 {
	if math.IsNaN(volatility) || math.IsInf(volatility, 0) || volatility < 0 ||
		math.IsNaN(momentum) || math.IsInf(momentum, 0) {
		return 0
	}

	lowVol := clampUnit(1.0 / (1.0 + volatility))
	highVol := clampUnit(volatility / (volatility + 0.5))
	balancedVol := clampUnit((lowVol + highVol) / 2.0)
	momentumScore := clampUnit((math.Tanh(momentum*2.5) + 1.0) / 2.0)

	var raw float64
	switch p {
	case Conservative:
		raw = 0.7*lowVol + 0.3*momentumScore
	case Moderate:
		raw = 0.5*balancedVol + 0.5*momentumScore
	case Aggressive:
		raw = 0.7*highVol + 0.3*momentumScore
	default:
		raw = momentumScore
	}

	return clampUnit(raw) * 100.0
}

// BestProfile returns the profile with the highest suitability score for the
// given metrics, along with that score.
func BestProfile(volatility, momentum float64) (RiskProfile, float64) {
	best := Conservative
	bestScore := math.Inf(-1)
	for _, p := range Profiles() {
		if score := p.SuitabilityScore(volatility, momentum); score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best, bestScore
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
