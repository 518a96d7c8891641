package forecast

import (
	"testing"
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

func TestGoalProbability(t *testing.T) {
	e := testEngine()
	scenario, err := models.NewScenario("Current Path", 5000, 3000, 12, 0.1)
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}

	t.Run("comfortably on track", func(t *testing.T) {
		goal := &models.FinancialGoal{
			Name:          "Holiday Fund",
			CurrentAmount: 5000,
			TargetAmount:  6000,
			TargetDate:    time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC),
		}

		got, err := e.GoalProbability(goal, scenario, 0, 0, seededRand(42))
		if err != nil {
			t.Fatalf("GoalProbability: %v", err)
		}

		if got.GoalName != "Holiday Fund" {
			t.Errorf("GoalName = %q", got.GoalName)
		}
		if got.Probability < 99 {
			t.Errorf("Probability = %v, want near certain", got.Probability)
		}
		if got.ProjectedDate == nil || !got.ProjectedDate.Equal(goal.TargetDate) {
			t.Errorf("ProjectedDate = %v, want the target date", got.ProjectedDate)
		}
		// 1000 remaining over 7 whole months (Jun 15 to Dec 20 rounds up)
		if !almostEqual(got.RequiredMonthlyContribution, 142.86) {
			t.Errorf("RequiredMonthlyContribution = %v, want 142.86", got.RequiredMonthlyContribution)
		}
		if !almostEqual(got.FeasibilityScore, 100) {
			t.Errorf("FeasibilityScore = %v, want 100", got.FeasibilityScore)
		}
	})

	t.Run("unreachable target", func(t *testing.T) {
		goal := &models.FinancialGoal{
			Name:          "Moonshot",
			CurrentAmount: 0,
			TargetAmount:  1000000,
			TargetDate:    time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		}

		got, err := e.GoalProbability(goal, scenario, 0, 0, seededRand(42))
		if err != nil {
			t.Fatalf("GoalProbability: %v", err)
		}

		if got.Probability != 0 {
			t.Errorf("Probability = %v, want 0", got.Probability)
		}
		if got.ProjectedDate != nil {
			t.Errorf("ProjectedDate = %v, want nil for off-track goal", got.ProjectedDate)
		}
		if got.FeasibilityScore != 0 {
			t.Errorf("FeasibilityScore = %v, want 0", got.FeasibilityScore)
		}
	})

	t.Run("harder targets are never likelier", func(t *testing.T) {
		targetDate := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
		easy := &models.FinancialGoal{Name: "Easy", TargetAmount: 10000, TargetDate: targetDate}
		hard := &models.FinancialGoal{Name: "Hard", TargetAmount: 26000, TargetDate: targetDate}

		easyGot, err := e.GoalProbability(easy, scenario, 0, 0, seededRand(5))
		if err != nil {
			t.Fatalf("GoalProbability: %v", err)
		}
		hardGot, err := e.GoalProbability(hard, scenario, 0, 0, seededRand(5))
		if err != nil {
			t.Fatalf("GoalProbability: %v", err)
		}

		if hardGot.Probability > easyGot.Probability {
			t.Errorf("hard goal probability %v exceeds easy goal %v", hardGot.Probability, easyGot.Probability)
		}
	})

	t.Run("past target date counts a single month", func(t *testing.T) {
		goal := &models.FinancialGoal{
			Name:          "Overdue",
			CurrentAmount: 0,
			TargetAmount:  1000,
			TargetDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		}

		got, err := e.GoalProbability(goal, scenario, 0, 0, seededRand(42))
		if err != nil {
			t.Fatalf("GoalProbability: %v", err)
		}
		if !almostEqual(got.RequiredMonthlyContribution, 1000) {
			t.Errorf("RequiredMonthlyContribution = %v, want full remainder in one month", got.RequiredMonthlyContribution)
		}
	})

	t.Run("scenario fallbacks apply", func(t *testing.T) {
		bare := &models.Scenario{Name: "Historical", ProjectedMonths: 12}
		goal := &models.FinancialGoal{
			Name:          "From History",
			CurrentAmount: 0,
			TargetAmount:  5000,
			TargetDate:    time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		}

		got, err := e.GoalProbability(goal, bare, 4000, 3000, seededRand(42))
		if err != nil {
			t.Fatalf("GoalProbability: %v", err)
		}
		// 1000/month of net flow against a 5000 target over 12 months
		if got.Probability < 99 {
			t.Errorf("Probability = %v, want near certain with fallback flows", got.Probability)
		}
	})
}

func TestMonthsUntil(t *testing.T) {
	now := testNow()

	tests := []struct {
		name     string
		target   time.Time
		expected int
	}{
		{"past date floors at one", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 1},
		{"same day floors at one", testNow(), 1},
		{"same day next month", time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), 1},
		{"partial month rounds up", time.Date(2025, time.July, 20, 0, 0, 0, 0, time.UTC), 2},
		{"mid-December", time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC), 6},
		{"late December rounds up", time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC), 7},
		{"one year out", time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := monthsUntil(now, tt.target); got != tt.expected {
				t.Errorf("monthsUntil(now, %v) = %d, want %d", tt.target, got, tt.expected)
			}
		})
	}
}
