package forecast

import (
	"math/rand"
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

const (
	goalSimIterations  = 1000
	goalSimVariability = 0.1
)

// GoalProbability estimates the odds of reaching a goal by its target date,
// assuming the scenario's monthly net flow is what gets saved toward it.
func (e *Engine) GoalProbability(goal *models.FinancialGoal, scenario *models.Scenario, fallbackIncome, fallbackExpenses float64, rng *rand.Rand) (*models.GoalProbability, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	months := monthsUntil(e.now(), goal.TargetDate)
	required := goal.Remaining() / float64(months)

	income := scenario.IncomeOr(fallbackIncome)
	expenses := scenario.ExpensesOr(fallbackExpenses)
	contribution := income - expenses

	availableForGoal := contribution - required
	if availableForGoal < 0 {
		availableForGoal = 0
	}

	feasibility := 0.0
	if availableForGoal > 0 && required > 0 {
		feasibility = availableForGoal / required * 100
		if feasibility > 100 {
			feasibility = 100
		}
	}

	successes := 0
	for i := 0; i < goalSimIterations; i++ {
		balance := goal.CurrentAmount
		for m := 0; m < months; m++ {
			simContribution := contribution * (1 + boxMuller(rng)*goalSimVariability)
			balance += simContribution
		}
		if balance >= goal.TargetAmount {
			successes++
		}
	}
	probability := float64(successes) / float64(goalSimIterations)

	var projected *time.Time
	if probability > 0.5 {
		t := goal.TargetDate
		projected = &t
	}

	return &models.GoalProbability{
		GoalName:                    goal.Name,
		Probability:                 round2(probability * 100),
		ProjectedDate:               projected,
		RequiredMonthlyContribution: round2(required),
		FeasibilityScore:            round2(feasibility),
	}, nil
}

// monthsUntil counts whole calendar months from now to target, rounding any
// partial month up, never less than 1.
func monthsUntil(now, target time.Time) int {
	if !target.After(now) {
		return 1
	}
	months := (target.Year()-now.Year())*12 + int(target.Month()) - int(now.Month())
	if target.Day() > now.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}
