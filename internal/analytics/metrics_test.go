package analytics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVolatilityFromCloses(t *testing.T) {
	t.Run("matches_hand_computed_value", func(t *testing.T) {
		closes := []float64{100, 110, 105}

		r1 := math.Log(110.0 / 100.0)
		r2 := math.Log(105.0 / 110.0)
		mean := (r1 + r2) / 2
		variance := ((r1-mean)*(r1-mean) + (r2-mean)*(r2-mean)) / 1
		want := math.Sqrt(variance) * math.Sqrt(252)

		got, ok := VolatilityFromCloses(closes)
		if !ok {
			t.Fatal("expected a defined volatility")
		}
		if !almostEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("constant_series_has_zero_volatility", func(t *testing.T) {
		got, ok := VolatilityFromCloses([]float64{50, 50, 50, 50})
		if !ok {
			t.Fatal("expected a defined volatility")
		}
		if got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("fewer_than_two_prices_is_undefined", func(t *testing.T) {
		if _, ok := VolatilityFromCloses(nil); ok {
			t.Error("expected undefined for empty series")
		}
		if _, ok := VolatilityFromCloses([]float64{100}); ok {
			t.Error("expected undefined for single price")
		}
	})

	t.Run("non_positive_pairs_are_skipped", func(t *testing.T) {
		// Pairs touching the zero price are dropped; three usable
		// returns remain.
		withZero := []float64{100, 110, 0, 90, 110, 105}
		_, ok := VolatilityFromCloses(withZero)
		if !ok {
			t.Fatal("expected a defined volatility from the remaining pairs")
		}

		// A zero in the middle of a 3-price series leaves <2 usable returns.
		if _, ok := VolatilityFromCloses([]float64{100, 0, 105}); ok {
			t.Error("expected undefined when fewer than 2 usable returns remain")
		}
	})
}

func TestMomentumFromCloses(t *testing.T) {
	t.Run("fractional_change_over_series", func(t *testing.T) {
		got, ok := MomentumFromCloses([]float64{100, 103, 98, 110})
		if !ok {
			t.Fatal("expected a defined momentum")
		}
		if !almostEqual(got, 0.10) {
			t.Errorf("expected 0.10, got %v", got)
		}
	})

	t.Run("declining_series_is_negative", func(t *testing.T) {
		got, ok := MomentumFromCloses([]float64{200, 150})
		if !ok {
			t.Fatal("expected a defined momentum")
		}
		if !almostEqual(got, -0.25) {
			t.Errorf("expected -0.25, got %v", got)
		}
	})

	t.Run("undefined_cases", func(t *testing.T) {
		if _, ok := MomentumFromCloses([]float64{100}); ok {
			t.Error("expected undefined for single price")
		}
		if _, ok := MomentumFromCloses([]float64{0, 100}); ok {
			t.Error("expected undefined for zero earliest price")
		}
	})
}
