package forecast

import (
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// MonthlyIncome sums the absolute amounts of Income transactions dated
// within month's calendar month, boundaries inclusive. A zero month means
// the engine's current month.
func (e *Engine) MonthlyIncome(ts *models.TransactionSet, month time.Time) float64 {
	return e.monthlyTotal(ts, models.Income, month)
}

// MonthlyExpenses sums the absolute amounts of Expense transactions dated
// within month's calendar month, boundaries inclusive. A zero month means
// the engine's current month.
func (e *Engine) MonthlyExpenses(ts *models.TransactionSet, month time.Time) float64 {
	return e.monthlyTotal(ts, models.Expense, month)
}

// monthlyTotal buckets one transaction type into a single calendar month.
// Transfers never match either type so they are excluded by construction.
func (e *Engine) monthlyTotal(ts *models.TransactionSet, tt models.TransactionType, month time.Time) float64 {
	if ts == nil || ts.Len() == 0 {
		return 0
	}
	if month.IsZero() {
		month = e.now()
	}

	start := startOfMonth(month)
	end := endOfMonth(month)

	return ts.FilterByDateRange(start, end).FilterByType(tt).SumAbsAmount()
}
