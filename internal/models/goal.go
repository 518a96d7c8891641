package models

import "time"

// FinancialGoal is a savings target with a deadline. The goal estimator
// reads goals; creation and progress tracking happen upstream.
type FinancialGoal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CurrentAmount float64   `json:"current_amount"`
	TargetAmount  float64   `json:"target_amount"`
	TargetDate    time.Time `json:"target_date"`
}

// Remaining returns the amount still needed to reach the target
func (g *FinancialGoal) Remaining() float64 {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}
