package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// testNow is the fixed clock used across the package tests: mid-June 2025.
func testNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func testEngine() *Engine {
	return NewWithClock(testNow)
}

// tx builds a transaction for test fixtures
func tx(date time.Time, amount float64, tt models.TransactionType, category string) models.Transaction {
	return models.Transaction{
		ID:              "test",
		Date:            date,
		Amount:          amount,
		Currency:        "GBP",
		Category:        category,
		TransactionType: tt,
	}
}

// monthlyHistory builds count months of history ending at the current month,
// one income and one expense transaction per month.
func monthlyHistory(income, expenses float64, count int) *models.TransactionSet {
	var txs []models.Transaction
	for i := 0; i < count; i++ {
		date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		txs = append(txs, tx(date, income, models.Income, "Salary"))
		txs = append(txs, tx(date, expenses, models.Expense, "Living"))
	}
	return models.NewTransactionSet(txs)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{1.005, 1.0}, // float64 stores 1.005 as slightly below
		{1.015, 1.01},
		{2.345, 2.35},
		{-1.555, -1.56},
		{0, 0},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.expected {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}

func TestMeanAndStdDev(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		if got := mean(nil); got != 0 {
			t.Errorf("mean(nil) = %v, want 0", got)
		}
		if got := stdDev(nil); got != 0 {
			t.Errorf("stdDev(nil) = %v, want 0", got)
		}
	})

	t.Run("single sample has no deviation", func(t *testing.T) {
		if got := stdDev([]float64{42}); got != 0 {
			t.Errorf("stdDev = %v, want 0", got)
		}
	})

	t.Run("known series", func(t *testing.T) {
		values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		if got := mean(values); got != 5 {
			t.Errorf("mean = %v, want 5", got)
		}
		if got := stdDev(values); got != 2 {
			t.Errorf("stdDev = %v, want 2", got)
		}
	})
}

func TestMonthBoundaries(t *testing.T) {
	mid := time.Date(2025, time.June, 15, 12, 30, 0, 0, time.UTC)

	start := startOfMonth(mid)
	if !start.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("startOfMonth = %v", start)
	}

	end := endOfMonth(mid)
	if end.Month() != time.June || end.Day() != 30 {
		t.Errorf("endOfMonth = %v, want last instant of June", end)
	}
	if !end.Before(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("endOfMonth %v reaches into July", end)
	}
}

func TestNowInjection(t *testing.T) {
	e := testEngine()
	if !e.Now().Equal(testNow()) {
		t.Errorf("Now() = %v, want %v", e.Now(), testNow())
	}

	wall := New()
	if time.Since(wall.Now()) > time.Minute {
		t.Errorf("default engine clock is stale: %v", wall.Now())
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
