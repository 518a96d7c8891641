package forecast

import (
	"math/rand"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// Project walks a scenario forward month by month from startBalance,
// starting at the current calendar month. Months where the scenario leaves
// income or expenses unset use the supplied historical fallbacks. Balances
// accumulate at full precision; each row carries display-grade 2dp values.
func (e *Engine) Project(scenario *models.Scenario, startBalance, fallbackIncome, fallbackExpenses float64) ([]models.MonthlyProjection, *models.ProjectionSummary, error) {
	if err := scenario.Validate(); err != nil {
		return nil, nil, err
	}

	income := scenario.IncomeOr(fallbackIncome)
	expenses := scenario.ExpensesOr(fallbackExpenses)
	netFlow := income - expenses

	start := startOfMonth(e.now())

	projections := make([]models.MonthlyProjection, 0, scenario.ProjectedMonths)
	balance := startBalance
	cumulative := 0.0
	totalIncome := 0.0
	totalExpenses := 0.0
	minBalance := startBalance
	maxBalance := startBalance

	var monthsToDepletion *int
	var breakEvenMonth *string

	for i := 0; i < scenario.ProjectedMonths; i++ {
		date := start.AddDate(0, i, 0)
		label := date.Format("Jan 2006")

		balance += netFlow
		cumulative += netFlow
		totalIncome += income
		totalExpenses += expenses

		if balance < minBalance {
			minBalance = balance
		}
		if balance > maxBalance {
			maxBalance = balance
		}
		if monthsToDepletion == nil && balance <= 0 {
			m := i + 1
			monthsToDepletion = &m
		}
		if breakEvenMonth == nil && netFlow >= 0 {
			l := label
			breakEvenMonth = &l
		}

		// Per-row runway only makes sense with money left and ongoing spend
		var runway *float64
		if balance > 0 && expenses > 0 {
			r := round2(balance / expenses)
			runway = &r
		}

		projections = append(projections, models.MonthlyProjection{
			MonthLabel:     label,
			Date:           date,
			Balance:        round2(balance),
			Income:         round2(income),
			Expenses:       round2(expenses),
			NetFlow:        round2(netFlow),
			CumulativeFlow: round2(cumulative),
			RunwayMonths:   runway,
		})
	}

	summary := &models.ProjectionSummary{
		EndBalance:        round2(balance),
		TotalIncome:       round2(totalIncome),
		TotalExpenses:     round2(totalExpenses),
		AverageNetFlow:    round2(cumulative / float64(scenario.ProjectedMonths)),
		MinBalance:        round2(minBalance),
		MaxBalance:        round2(maxBalance),
		MonthsToDepletion: monthsToDepletion,
		BreakEvenMonth:    breakEvenMonth,
	}

	return projections, summary, nil
}

// Analyze runs the deterministic projection and the Monte Carlo simulation
// for one scenario and bundles both into a single result.
func (e *Engine) Analyze(scenario *models.Scenario, startBalance, fallbackIncome, fallbackExpenses float64, cfg models.SimulationConfig, rng *rand.Rand) (*models.ProjectionResult, error) {
	projections, summary, err := e.Project(scenario, startBalance, fallbackIncome, fallbackExpenses)
	if err != nil {
		return nil, err
	}
	risk, err := e.Simulate(scenario, startBalance, fallbackIncome, fallbackExpenses, cfg, rng)
	if err != nil {
		return nil, err
	}
	return &models.ProjectionResult{
		ScenarioName: scenario.Name,
		Projections:  projections,
		Summary:      summary,
		Risk:         risk,
	}, nil
}
