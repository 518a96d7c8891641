package models

import (
	"errors"
	"fmt"
)

// Scenario is a declarative set of monthly cash-flow assumptions to project
// forward. MonthlyIncome and MonthlyExpenses are optional; when absent the
// projector falls back to historical averages supplied by the caller.
// A Scenario is immutable once constructed and validated.
type Scenario struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	MonthlyIncome   *float64 `json:"monthly_income,omitempty"`
	MonthlyExpenses *float64 `json:"monthly_expenses,omitempty"`
	ProjectedMonths int      `json:"projected_months"`
	Variability     float64  `json:"variability"`

	// Optional stress-test knobs
	IncomeReduction     *float64 `json:"income_reduction,omitempty"`
	ExpenseIncrease     *float64 `json:"expense_increase,omitempty"`
	EmergencyFundMonths *int     `json:"emergency_fund_months,omitempty"`
}

// ErrInvalidScenario wraps all scenario validation failures
var ErrInvalidScenario = errors.New("invalid scenario")

// Validate rejects scenarios that would misbehave inside a projection or
// simulation loop. It is called at construction time so failures surface
// before any work is done.
func (s *Scenario) Validate() error {
	if s.ProjectedMonths <= 0 {
		return fmt.Errorf("%w: projected_months must be positive, got %d", ErrInvalidScenario, s.ProjectedMonths)
	}
	if s.Variability < 0 {
		return fmt.Errorf("%w: variability must not be negative, got %v", ErrInvalidScenario, s.Variability)
	}
	if s.MonthlyIncome != nil && *s.MonthlyIncome < 0 {
		return fmt.Errorf("%w: monthly_income must not be negative, got %v", ErrInvalidScenario, *s.MonthlyIncome)
	}
	if s.MonthlyExpenses != nil && *s.MonthlyExpenses < 0 {
		return fmt.Errorf("%w: monthly_expenses must not be negative, got %v", ErrInvalidScenario, *s.MonthlyExpenses)
	}
	return nil
}

// NewScenario builds a validated scenario with fixed monthly assumptions
func NewScenario(name string, monthlyIncome, monthlyExpenses float64, months int, variability float64) (*Scenario, error) {
	s := &Scenario{
		Name:            name,
		MonthlyIncome:   &monthlyIncome,
		MonthlyExpenses: &monthlyExpenses,
		ProjectedMonths: months,
		Variability:     variability,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// IncomeOr returns the scenario income, or fallback when unset
func (s *Scenario) IncomeOr(fallback float64) float64 {
	if s.MonthlyIncome != nil {
		return *s.MonthlyIncome
	}
	return fallback
}

// ExpensesOr returns the scenario expenses, or fallback when unset
func (s *Scenario) ExpensesOr(fallback float64) float64 {
	if s.MonthlyExpenses != nil {
		return *s.MonthlyExpenses
	}
	return fallback
}
