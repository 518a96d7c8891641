package forecast

import (
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// Trend classification labels
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendWorsening = "worsening"
)

// trendThreshold is the relative change beyond which a 3-month comparison
// stops counting as stable.
const trendThreshold = 0.10

// seasonalityFactors holds one multiplicative spending factor per calendar
// month (index 0 = January). The values are a tunable policy constant, not
// derived from data: they approximate a northern-hemisphere retail pattern
// with a December gift-season peak and a February trough. Adjust for other
// locales as needed.
var seasonalityFactors = [12]float64{
	1.05, // January: post-holiday bills land
	0.90, // February: shortest month, lowest spend
	0.95, // March
	1.00, // April
	1.00, // May
	1.05, // June: vacation season starts
	1.10, // July: vacation peak
	1.00, // August
	0.95, // September
	1.00, // October
	1.10, // November: holiday shopping begins
	1.30, // December: gift season peak
}

// SeasonalityFactor returns the expected spending multiplier for a calendar month
func SeasonalityFactor(month time.Month) float64 {
	return seasonalityFactors[int(month)-1]
}

// HistoricalAverage returns the mean monthly aggregate of the given
// transaction type over the last months calendar months, current month
// included, one sample per month.
func (e *Engine) HistoricalAverage(ts *models.TransactionSet, tt models.TransactionType, months int) float64 {
	if months <= 0 {
		return 0
	}

	samples := e.monthlySamples(ts, tt, months)
	return mean(samples)
}

// monthlySamples collects one aggregate per month, most recent first
func (e *Engine) monthlySamples(ts *models.TransactionSet, tt models.TransactionType, months int) []float64 {
	now := e.now()
	samples := make([]float64, 0, months)
	for i := 0; i < months; i++ {
		month := startOfMonth(now).AddDate(0, -i, 0)
		samples = append(samples, e.monthlyTotal(ts, tt, month))
	}
	return samples
}

// LinearTrend fits an ordinary least-squares line to an index-valued series
// (index 0 = most recent sample) and returns the extrapolated next value,
// intercept + slope*(n-1). With fewer than two samples there is no trend:
// the single value, or 0, is returned as-is.
func LinearTrend(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return mean(values)
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	return intercept + slope*float64(n-1)
}

// ClassifyTrend compares a recent 3-month average against an older 3-month
// average. The sign convention follows burn rate: a relative increase above
// +10% is worsening, a drop below -10% is improving, anything else is
// stable. A zero older average yields stable, there is no baseline to
// compare against.
func ClassifyTrend(recentAvg, olderAvg float64) string {
	if olderAvg == 0 {
		return TrendStable
	}

	change := (recentAvg - olderAvg) / olderAvg
	switch {
	case change > trendThreshold:
		return TrendWorsening
	case change < -trendThreshold:
		return TrendImproving
	default:
		return TrendStable
	}
}

// Confidence scores how regular a series of monthly samples is:
// 100 - (stddev/mean)*100, clamped to [0, 100]. Fewer than two samples or a
// zero mean degrade to 0, there is nothing to be confident about.
func Confidence(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	if m == 0 {
		return 0
	}

	score := 100 - (stdDev(values)/m)*100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
