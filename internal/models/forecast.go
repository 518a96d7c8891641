package models

import "time"

// MonthlyProjection is one month of a projected balance trajectory. Rows
// form an ordered time series starting at the current calendar month.
// RunwayMonths is nil unless both the balance and the month's expenses are
// positive; absence is meaningful and must survive JSON round-trips.
type MonthlyProjection struct {
	MonthLabel     string    `json:"month_label"`
	Date           time.Time `json:"date"`
	Balance        float64   `json:"balance"`
	Income         float64   `json:"income"`
	Expenses       float64   `json:"expenses"`
	NetFlow        float64   `json:"net_flow"`
	CumulativeFlow float64   `json:"cumulative_flow"`
	RunwayMonths   *float64  `json:"runway_months,omitempty"`
}

// ProjectionSummary condenses a projection series. MonthsToDepletion is the
// 1-based index of the first month whose balance fell to or below zero, nil
// if the balance never depletes. BreakEvenMonth is the label of the first
// month with non-negative net flow, nil if none.
type ProjectionSummary struct {
	EndBalance        float64 `json:"end_balance"`
	TotalIncome       float64 `json:"total_income"`
	TotalExpenses     float64 `json:"total_expenses"`
	AverageNetFlow    float64 `json:"average_net_flow"`
	MinBalance        float64 `json:"min_balance"`
	MaxBalance        float64 `json:"max_balance"`
	MonthsToDepletion *int    `json:"months_to_depletion,omitempty"`
	BreakEvenMonth    *string `json:"break_even_month,omitempty"`
}

// RiskMetrics is the output of a Monte Carlo simulation over one scenario
type RiskMetrics struct {
	Iterations           int     `json:"iterations"`
	ConfidenceLevel      float64 `json:"confidence_level"`
	ConfidenceLow        float64 `json:"confidence_low"`
	ConfidenceHigh       float64 `json:"confidence_high"`
	ProbabilityOfSuccess float64 `json:"probability_of_success"`
	WorstCase            float64 `json:"worst_case"`
	BestCase             float64 `json:"best_case"`
	VolatilityScore      float64 `json:"volatility_score"` // 0-100
}

// ProjectionResult is the full per-scenario output returned to callers
type ProjectionResult struct {
	ScenarioName string              `json:"scenario_name"`
	Projections  []MonthlyProjection `json:"projections"`
	Summary      *ProjectionSummary  `json:"summary"`
	Risk         *RiskMetrics        `json:"risk,omitempty"`
}

// EnhancedBurnRate reports the current burn rate with seasonal adjustment,
// a trend classification ("improving", "stable", "worsening") and a 0-100
// confidence score derived from month-to-month variability.
type EnhancedBurnRate struct {
	CurrentRate          float64 `json:"current_rate"`
	SeasonalAdjustedRate float64 `json:"seasonal_adjusted_rate"`
	Trend                string  `json:"trend"`
	Confidence           float64 `json:"confidence"`
}

// CriticalThresholds are calendar dates used for runway threshold alerting
type CriticalThresholds struct {
	ThreeMonths  time.Time `json:"three_months"`
	SixMonths    time.Time `json:"six_months"`
	TwelveMonths time.Time `json:"twelve_months"`
}

// EnhancedRunway reports runway estimates under several spending
// assumptions. Runway pointers are nil when the corresponding burn rate is
// zero or negative: the runway is infinite, never +Inf or NaN.
type EnhancedRunway struct {
	TotalBalance       float64            `json:"total_balance"`
	EmergencyFund      float64            `json:"emergency_fund"`
	AvailableBalance   float64            `json:"available_balance"`
	BaselineRunway     *float64           `json:"baseline_runway,omitempty"`
	ConservativeRunway *float64           `json:"conservative_runway,omitempty"`
	OptimisticRunway   *float64           `json:"optimistic_runway,omitempty"`
	BurnRate           *EnhancedBurnRate  `json:"burn_rate"`
	CriticalThresholds CriticalThresholds `json:"critical_thresholds"`
	Recommendations    []string           `json:"recommendations"`
}

// GoalProbability estimates how achievable a goal is. ProjectedDate is the
// goal's target date when the estimated probability exceeds 0.5; otherwise
// it is nil, an explicit "not on track" signal rather than a guess.
type GoalProbability struct {
	GoalName                    string     `json:"goal_name"`
	Probability                 float64    `json:"probability"`
	ProjectedDate               *time.Time `json:"projected_date,omitempty"`
	RequiredMonthlyContribution float64    `json:"required_monthly_contribution"`
	FeasibilityScore            float64    `json:"feasibility_score"`
}

// SimulationConfig tunes the Monte Carlo simulator
type SimulationConfig struct {
	Iterations        int     `json:"iterations"`
	ConfidenceLevel   float64 `json:"confidence_level"`
	VariabilityFactor float64 `json:"variability_factor"`
}

// DefaultSimulationConfig returns the standard simulation parameters
func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Iterations:        1000,
		ConfidenceLevel:   0.9,
		VariabilityFactor: 0.15,
	}
}
