package forecast

import (
	"github.com/google/uuid"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

const (
	stressVariability      = 0.15
	crashVariability       = 0.35
	recessionIncomeFactor  = 0.6
	recessionExpenseFactor = 1.1
	jobLossIncomeFactor    = 0.2
	jobLossExpenseFactor   = 0.8
	crashIncomeFactor      = 0.95
	crashExpenseFactor     = 1.05
	healthExpenseFactor    = 1.5
)

// StressScenarios builds the standard catalogue of adverse scenarios from the
// caller's historical monthly averages. Pure constructors; feed the results
// into Project or Simulate.
func (e *Engine) StressScenarios(avgIncome, avgExpenses float64) []*models.Scenario {
	return []*models.Scenario{
		stressScenario("Recession", avgIncome*recessionIncomeFactor, avgExpenses*recessionExpenseFactor, 18, stressVariability),
		stressScenario("Job Loss", avgIncome*jobLossIncomeFactor, avgExpenses*jobLossExpenseFactor, 12, stressVariability),
		stressScenario("Market Crash", avgIncome*crashIncomeFactor, avgExpenses*crashExpenseFactor, 24, crashVariability),
		stressScenario("Healthcare Emergency", avgIncome, avgExpenses*healthExpenseFactor, 6, stressVariability),
	}
}

func stressScenario(name string, income, expenses float64, months int, variability float64) *models.Scenario {
	income = round2(income)
	expenses = round2(expenses)
	return &models.Scenario{
		ID:              uuid.NewString(),
		Name:            name,
		MonthlyIncome:   &income,
		MonthlyExpenses: &expenses,
		ProjectedMonths: months,
		Variability:     variability,
	}
}
