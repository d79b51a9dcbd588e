package analytics

import (
	"math"
	"testing"
)

func TestParseRiskProfile(t *testing.T) {
	cases := map[string]RiskProfile{
		"conservative": Conservative,
		"Moderate":     Moderate,
		"  AGGRESSIVE ": Aggressive,
	}
	for input, want := range cases {
		got, err := ParseRiskProfile(input)
		if err != nil {
			t.Errorf("ParseRiskProfile(%q): unexpected error %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseRiskProfile(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := ParseRiskProfile("reckless"); err == nil {
		t.Error("expected an error for an unknown profile")
	}
}

// score recomputes the documented formula directly so the test fails if the
// implementation drifts from it.
func score(p RiskProfile, vol, mom float64) float64 {
	lowVol := 1.0 / (1.0 + vol)
	highVol := vol / (vol + 0.5)
	balanced := (lowVol + highVol) / 2.0
	momScore := (math.Tanh(mom*2.5) + 1.0) / 2.0

	var raw float64
	switch p {
	case Conservative:
		raw = 0.7*lowVol + 0.3*momScore
	case Moderate:
		raw = 0.5*balanced + 0.5*momScore
	case Aggressive:
		raw = 0.7*highVol + 0.3*momScore
	}
	return raw * 100
}

func TestSuitabilityScore(t *testing.T) {
	t.Run("matches_formula_for_all_profiles", func(t *testing.T) {
		inputs := []struct{ vol, mom float64 }{
			{0.15, 0.02},
			{0.60, -0.10},
			{1.25, 0.30},
			{0.0, 0.0},
		}
		for _, p := range Profiles() {
			for _, in := range inputs {
				want := score(p, in.vol, in.mom)
				got := p.SuitabilityScore(in.vol, in.mom)
				if !almostEqual(got, want) {
					t.Errorf("%s SuitabilityScore(%v, %v) = %v, want %v", p, in.vol, in.mom, got, want)
				}
			}
		}
	})

	t.Run("hand_computed_reference_values", func(t *testing.T) {
		// volatility 0.1, momentum 0.02:
		//   lowVol = 1/1.1, highVol = 0.1/0.6, balanced = their average,
		//   momScore = (tanh(0.05)+1)/2 = 0.52497918747894.
		cases := []struct {
			profile RiskProfile
			want    float64
		}{
			{Conservative, 79.3857392607},
			{Moderate, 53.1428987679},
			{Aggressive, 27.4160422910},
		}
		for _, tc := range cases {
			got := tc.profile.SuitabilityScore(0.1, 0.02)
			if math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("%s SuitabilityScore(0.1, 0.02) = %v, want %v", tc.profile, got, tc.want)
			}
		}
	})

	t.Run("low_volatility_favors_conservative", func(t *testing.T) {
		cons := Conservative.SuitabilityScore(0.10, 0.01)
		aggr := Aggressive.SuitabilityScore(0.10, 0.01)
		if cons <= aggr {
			t.Errorf("expected conservative (%v) above aggressive (%v) for a calm instrument", cons, aggr)
		}
	})

	t.Run("high_volatility_favors_aggressive", func(t *testing.T) {
		cons := Conservative.SuitabilityScore(1.50, 0.05)
		aggr := Aggressive.SuitabilityScore(1.50, 0.05)
		if aggr <= cons {
			t.Errorf("expected aggressive (%v) above conservative (%v) for a volatile instrument", aggr, cons)
		}
	})

	t.Run("degenerate_inputs_score_zero", func(t *testing.T) {
		for _, p := range Profiles() {
			if got := p.SuitabilityScore(math.NaN(), 0.1); got != 0 {
				t.Errorf("%s: NaN volatility scored %v, want 0", p, got)
			}
			if got := p.SuitabilityScore(-0.5, 0.1); got != 0 {
				t.Errorf("%s: negative volatility scored %v, want 0", p, got)
			}
			if got := p.SuitabilityScore(0.2, math.Inf(1)); got != 0 {
				t.Errorf("%s: infinite momentum scored %v, want 0", p, got)
			}
		}
	})

	t.Run("always_within_bounds", func(t *testing.T) {
		vols := []float64{0, 0.05, 0.5, 2, 10, 100}
		moms := []float64{-5, -0.5, 0, 0.5, 5}
		for _, p := range Profiles() {
			for _, v := range vols {
				for _, m := range moms {
					got := p.SuitabilityScore(v, m)
					if got < 0 || got > 100 {
						t.Errorf("%s SuitabilityScore(%v, %v) = %v out of [0,100]", p, v, m, got)
					}
				}
			}
		}
	})
}

func TestBestProfile(t *testing.T) {
	profile, score := BestProfile(0.05, 0.01)
	if profile != Conservative {
		t.Errorf("expected conservative for a calm instrument, got %s", profile)
	}
	if score <= 0 {
		t.Errorf("expected a positive score, got %v", score)
	}

	profile, _ = BestProfile(2.0, 0.10)
	if profile != Aggressive {
		t.Errorf("expected aggressive for a volatile instrument, got %s", profile)
	}
}
