package forecast

import (
	"testing"
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

func TestSeasonalityFactor(t *testing.T) {
	tests := []struct {
		month    time.Month
		expected float64
	}{
		{time.February, 0.90},
		{time.June, 1.05},
		{time.July, 1.10},
		{time.December, 1.30},
	}

	for _, tt := range tests {
		if got := SeasonalityFactor(tt.month); got != tt.expected {
			t.Errorf("SeasonalityFactor(%v) = %v, want %v", tt.month, got, tt.expected)
		}
	}
}

func TestHistoricalAverage(t *testing.T) {
	e := testEngine()

	t.Run("uniform history averages to the monthly figure", func(t *testing.T) {
		ts := monthlyHistory(3000, 2500, 6)
		if got := e.HistoricalAverage(ts, models.Income, 6); !almostEqual(got, 3000) {
			t.Errorf("income average = %v, want 3000", got)
		}
		if got := e.HistoricalAverage(ts, models.Expense, 6); !almostEqual(got, 2500) {
			t.Errorf("expense average = %v, want 2500", got)
		}
	})

	t.Run("months outside the window count as zero samples", func(t *testing.T) {
		// 3 months of data averaged over a 6 month window
		ts := monthlyHistory(3000, 2500, 3)
		if got := e.HistoricalAverage(ts, models.Income, 6); !almostEqual(got, 1500) {
			t.Errorf("income average = %v, want 1500", got)
		}
	})

	t.Run("non-positive window yields zero", func(t *testing.T) {
		ts := monthlyHistory(3000, 2500, 6)
		if got := e.HistoricalAverage(ts, models.Income, 0); got != 0 {
			t.Errorf("average = %v, want 0", got)
		}
	})
}

func TestLinearTrend(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single value", []float64{42.5}, 42.5},
		{"constant series", []float64{5, 5, 5, 5}, 5},
		{"perfect linear series", []float64{10, 20, 30}, 30},
		{"declining series", []float64{100, 80, 60, 40}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearTrend(tt.values); !almostEqual(got, tt.expected) {
				t.Errorf("LinearTrend(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		recent   float64
		older    float64
		expected string
	}{
		{"increase above threshold is worsening", 1200, 1000, TrendWorsening},
		{"exactly +10% is still stable", 1100, 1000, TrendStable},
		{"decrease below threshold is improving", 880, 1000, TrendImproving},
		{"exactly -10% is still stable", 900, 1000, TrendStable},
		{"flat is stable", 1000, 1000, TrendStable},
		{"zero baseline is stable", 500, 0, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrend(tt.recent, tt.older); got != tt.expected {
				t.Errorf("ClassifyTrend(%v, %v) = %q, want %q", tt.recent, tt.older, got, tt.expected)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"fewer than two samples", []float64{500}, 0},
		{"zero mean", []float64{100, -100}, 0},
		{"identical samples are fully regular", []float64{500, 500, 500}, 100},
		{"spread equal to mean floors at zero", []float64{100, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.values); !almostEqual(got, tt.expected) {
				t.Errorf("Confidence(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}

	t.Run("mild variation scores high", func(t *testing.T) {
		got := Confidence([]float64{1000, 1050, 950, 1000})
		if got < 90 || got > 100 {
			t.Errorf("Confidence = %v, want within (90, 100]", got)
		}
	})
}
