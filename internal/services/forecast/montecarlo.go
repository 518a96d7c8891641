package forecast

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// Simulate runs a Monte Carlo over the scenario's month walk, perturbing the
// monthly income and expenses with normally distributed noise. A nil rng gets
// a time-seeded source; tests pass a seeded one for reproducibility.
func (e *Engine) Simulate(scenario *models.Scenario, startBalance, fallbackIncome, fallbackExpenses float64, cfg models.SimulationConfig, rng *rand.Rand) (*models.RiskMetrics, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = models.DefaultSimulationConfig().Iterations
	}
	confidence := cfg.ConfidenceLevel
	if confidence <= 0 || confidence >= 1 {
		confidence = models.DefaultSimulationConfig().ConfidenceLevel
	}

	variability := cfg.VariabilityFactor
	if scenario.Variability > 0 {
		variability = scenario.Variability
	}

	income := scenario.IncomeOr(fallbackIncome)
	expenses := scenario.ExpensesOr(fallbackExpenses)

	finals := make([]float64, iterations)
	successes := 0

	for i := 0; i < iterations; i++ {
		balance := startBalance
		for m := 0; m < scenario.ProjectedMonths; m++ {
			simIncome := income * (1 + boxMuller(rng)*variability)
			simExpenses := expenses * (1 + boxMuller(rng)*variability)
			if simIncome < 0 {
				simIncome = 0
			}
			if simExpenses < 0 {
				simExpenses = 0
			}
			balance += simIncome - simExpenses
		}
		finals[i] = balance
		if balance > 0 {
			successes++
		}
	}

	sort.Float64s(finals)

	lowIdx := clampIndex(int(float64(iterations)*(1-confidence)/2), iterations)
	highIdx := clampIndex(int(float64(iterations)*(1+confidence)/2), iterations)

	return &models.RiskMetrics{
		Iterations:           iterations,
		ConfidenceLevel:      confidence,
		ConfidenceLow:        round2(finals[lowIdx]),
		ConfidenceHigh:       round2(finals[highIdx]),
		ProbabilityOfSuccess: round2(float64(successes) / float64(iterations) * 100),
		WorstCase:            round2(finals[0]),
		BestCase:             round2(finals[iterations-1]),
		VolatilityScore:      round2(volatilityScore(finals)),
	}, nil
}

// boxMuller draws a standard normal variate.
func boxMuller(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// volatilityScore maps the coefficient of variation of the outcomes onto a
// 0-100 scale. A zero mean with any spread is maximal uncertainty.
func volatilityScore(values []float64) float64 {
	m := mean(values)
	sd := stdDev(values)
	if m == 0 {
		if sd == 0 {
			return 0
		}
		return 100
	}
	score := sd / math.Abs(m) * 100
	if score > 100 {
		score = 100
	}
	return score
}
