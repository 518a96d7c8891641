package forecast

import (
	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// DefaultBurnRateMonths is the history window used when callers pass a
// non-positive month count.
const DefaultBurnRateMonths = 6

// DefaultEmergencyFundMonths is the emergency-fund target expressed in
// months of seasonally adjusted burn.
const DefaultEmergencyFundMonths = 6

// Recommendation thresholds and texts are part of the observable contract;
// ordering is fixed and golden-tested.
const (
	recUrgentRunway   = "Urgent: runway under 3 months - reduce expenses or increase income now"
	recBuildReserve   = "Balance below emergency fund target - prioritize building reserves"
	recReviewExpenses = "Burn rate is worsening - review recent expense growth"
	recLowConfidence  = "Income or expenses are irregular - forecasts carry low confidence"
	recInvestSurplus  = "Runway exceeds 12 months - consider investing surplus cash"
)

// BurnRate returns the average monthly net cash outflow over the last
// months calendar months, ending at the current month. Months where income
// covered expenses contribute zero, never a negative burn.
func (e *Engine) BurnRate(ts *models.TransactionSet, months int) float64 {
	return mean(e.burnSamples(ts, months))
}

// burnSamples collects max(0, expenses-income) per month, most recent first
func (e *Engine) burnSamples(ts *models.TransactionSet, months int) []float64 {
	if months <= 0 {
		months = DefaultBurnRateMonths
	}

	now := e.now()
	samples := make([]float64, 0, months)
	for i := 0; i < months; i++ {
		month := startOfMonth(now).AddDate(0, -i, 0)
		burn := e.MonthlyExpenses(ts, month) - e.MonthlyIncome(ts, month)
		if burn < 0 {
			burn = 0
		}
		samples = append(samples, burn)
	}
	return samples
}

// Runway returns balance/burnRate in months, or nil when the burn rate is
// zero or negative: the balance never depletes and the runway is infinite.
// The nil sentinel keeps +Inf and NaN out of JSON output.
func Runway(balance, burnRate float64) *float64 {
	if burnRate <= 0 {
		return nil
	}
	months := balance / burnRate
	return &months
}

// EnhancedBurnRate reports the current burn rate together with a
// seasonally adjusted rate for the current calendar month, a trend
// classification over a 3-vs-3 month comparison, and a confidence score
// over the sampled window.
func (e *Engine) EnhancedBurnRate(ts *models.TransactionSet, months int) *models.EnhancedBurnRate {
	if months <= 0 {
		months = DefaultBurnRateMonths
	}

	samples := e.burnSamples(ts, months)
	currentRate := mean(samples)

	// Trend needs six months of samples regardless of the requested window
	trendSamples := samples
	if len(trendSamples) < 6 {
		trendSamples = e.burnSamples(ts, 6)
	}
	recent := mean(trendSamples[0:3])
	older := mean(trendSamples[3:6])

	return &models.EnhancedBurnRate{
		CurrentRate:          round2(currentRate),
		SeasonalAdjustedRate: round2(currentRate * SeasonalityFactor(e.now().Month())),
		Trend:                ClassifyTrend(recent, older),
		Confidence:           round2(Confidence(samples)),
	}
}

// EnhancedRunway computes runway estimates from active account balances and
// transaction history. The emergency fund target is emergencyFundMonths of
// seasonally adjusted burn (default 6); the conservative and optimistic
// runways spend the balance left after that reserve at 1.2x and 0.8x the
// adjusted rate. Recommendations are rule-based, in fixed priority order.
func (e *Engine) EnhancedRunway(accounts *models.AccountSet, ts *models.TransactionSet, emergencyFundMonths int) *models.EnhancedRunway {
	if emergencyFundMonths <= 0 {
		emergencyFundMonths = DefaultEmergencyFundMonths
	}

	burn := e.EnhancedBurnRate(ts, DefaultBurnRateMonths)
	totalBalance := accounts.ActiveBalance()

	emergencyFund := burn.SeasonalAdjustedRate * float64(emergencyFundMonths)
	available := totalBalance - emergencyFund
	if available < 0 {
		available = 0
	}

	baseline := Runway(totalBalance, burn.CurrentRate)
	conservative := Runway(available, burn.SeasonalAdjustedRate*1.2)
	optimistic := Runway(available, burn.SeasonalAdjustedRate*0.8)

	now := e.now()
	result := &models.EnhancedRunway{
		TotalBalance:       round2(totalBalance),
		EmergencyFund:      round2(emergencyFund),
		AvailableBalance:   round2(available),
		BaselineRunway:     roundRunway(baseline),
		ConservativeRunway: roundRunway(conservative),
		OptimisticRunway:   roundRunway(optimistic),
		BurnRate:           burn,
		CriticalThresholds: models.CriticalThresholds{
			ThreeMonths:  now.AddDate(0, 3, 0),
			SixMonths:    now.AddDate(0, 6, 0),
			TwelveMonths: now.AddDate(0, 12, 0),
		},
		Recommendations: buildRecommendations(baseline, totalBalance, emergencyFund, burn),
	}

	return result
}

// buildRecommendations applies the rule ladder in priority order. A nil
// baseline runway means burn is zero: the balance lasts forever, which only
// the surplus rule cares about.
func buildRecommendations(baseline *float64, totalBalance, emergencyFund float64, burn *models.EnhancedBurnRate) []string {
	recs := make([]string, 0, 5)

	if baseline != nil && *baseline < 3 {
		recs = append(recs, recUrgentRunway)
	}
	if totalBalance < emergencyFund {
		recs = append(recs, recBuildReserve)
	}
	if burn.Trend == TrendWorsening {
		recs = append(recs, recReviewExpenses)
	}
	if burn.Confidence < 50 {
		recs = append(recs, recLowConfidence)
	}
	if baseline == nil || *baseline > 12 {
		recs = append(recs, recInvestSurplus)
	}

	return recs
}

// roundRunway rounds a finite runway for display, preserving the nil sentinel
func roundRunway(months *float64) *float64 {
	if months == nil {
		return nil
	}
	r := round2(*months)
	return &r
}
