package forecast

import (
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Staysteady/financial-dashboard-sub003/internal/config"
	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
	forecastsvc "github.com/Staysteady/financial-dashboard-sub003/internal/services/forecast"
	"github.com/Staysteady/financial-dashboard-sub003/internal/testutil"
)

func testNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

// testHandlers builds handlers with a fixed clock and six months of steady
// history: 3000 income, 3500 expenses per month.
func testHandlers(t *testing.T) *Handlers {
	t.Helper()

	cfg := config.DefaultConfig()
	engine := forecastsvc.NewWithClock(testNow)
	h := NewWithEngine(cfg, engine)

	var txs []models.Transaction
	for i := 0; i < 6; i++ {
		date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		txs = append(txs, models.Transaction{
			Date: date, Amount: 3000, Currency: "GBP",
			Description: "Salary", TransactionType: models.Income,
		})
		txs = append(txs, models.Transaction{
			Date: date, Amount: -3500, Currency: "GBP",
			Description: "Living costs", TransactionType: models.Expense,
		})
	}

	accounts := models.NewAccountSet([]models.Account{
		{ID: "a1", Name: "Current", Balance: 12000, Currency: "GBP", IsActive: true},
		{ID: "a2", Name: "Dormant", Balance: 500, Currency: "GBP", IsActive: false},
	})

	goals := []models.FinancialGoal{
		{ID: "g1", Name: "Emergency Fund", CurrentAmount: 9000, TargetAmount: 10000,
			TargetDate: time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)},
	}

	h.SetData(models.NewTransactionSet(txs), accounts, goals)
	return h
}

func newServer(t *testing.T) *testutil.TestServer {
	t.Helper()

	h := testHandlers(t)
	r := chi.NewRouter()
	r.Route("/api/forecast", h.Routes)

	ts := testutil.NewTestServer(t, r)
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleBurnRate(t *testing.T) {
	ts := newServer(t)

	var got models.EnhancedBurnRate
	testutil.AssertResponse(t, ts.GET("/api/forecast/burnrate")).
		StatusOK().
		IsJSON().
		DecodeJSON(&got)

	if got.CurrentRate != 500 {
		t.Errorf("CurrentRate = %v, want 500", got.CurrentRate)
	}
	if got.SeasonalAdjustedRate != 525 {
		t.Errorf("SeasonalAdjustedRate = %v, want 525", got.SeasonalAdjustedRate)
	}
	if got.Trend != "stable" {
		t.Errorf("Trend = %q, want stable", got.Trend)
	}
}

func TestHandleRunway(t *testing.T) {
	ts := newServer(t)

	var got models.EnhancedRunway
	testutil.AssertResponse(t, ts.GET("/api/forecast/runway")).
		StatusOK().
		DecodeJSON(&got)

	if got.TotalBalance != 12000 {
		t.Errorf("TotalBalance = %v, want 12000 (inactive account excluded)", got.TotalBalance)
	}
	if got.BaselineRunway == nil || *got.BaselineRunway != 24 {
		t.Errorf("BaselineRunway = %v, want 24", got.BaselineRunway)
	}
	if len(got.Recommendations) == 0 {
		t.Error("expected at least one recommendation")
	}
}

func TestHandleProjection(t *testing.T) {
	ts := newServer(t)

	t.Run("valid scenario", func(t *testing.T) {
		body := `{"name":"Steady","monthly_income":3200,"monthly_expenses":2850.75,"projected_months":12,"variability":0.1}`

		var got models.ProjectionResult
		testutil.AssertResponse(t, ts.POST("/api/forecast/projection", "application/json", strings.NewReader(body))).
			StatusOK().
			DecodeJSON(&got)

		if got.ScenarioName != "Steady" {
			t.Errorf("ScenarioName = %q", got.ScenarioName)
		}
		if len(got.Projections) != 12 {
			t.Errorf("got %d projections, want 12", len(got.Projections))
		}
		if got.Summary == nil {
			t.Fatal("missing summary")
		}
		if got.Risk != nil {
			t.Error("projection endpoint must not run simulations")
		}
		if got.Projections[0].MonthLabel != "Jun 2025" {
			t.Errorf("first month = %q, want Jun 2025", got.Projections[0].MonthLabel)
		}
	})

	t.Run("fallbacks from history", func(t *testing.T) {
		// No income/expense assumptions: 3000/3500 historical averages apply
		body := `{"name":"History","projected_months":6,"variability":0}`

		var got models.ProjectionResult
		testutil.AssertResponse(t, ts.POST("/api/forecast/projection", "application/json", strings.NewReader(body))).
			StatusOK().
			DecodeJSON(&got)

		if got.Projections[0].NetFlow != -500 {
			t.Errorf("NetFlow = %v, want -500 from historical averages", got.Projections[0].NetFlow)
		}
	})

	t.Run("invalid months rejected", func(t *testing.T) {
		body := `{"name":"Bad","projected_months":0}`
		testutil.AssertResponse(t, ts.POST("/api/forecast/projection", "application/json", strings.NewReader(body))).
			Status(400).
			Contains("projected_months")
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		testutil.AssertResponse(t, ts.POST("/api/forecast/projection", "application/json", strings.NewReader("{nope"))).
			Status(400)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		body := `{"name":"Odd","projected_months":6,"surprise":true}`
		testutil.AssertResponse(t, ts.POST("/api/forecast/projection", "application/json", strings.NewReader(body))).
			Status(400)
	})
}

func TestHandleBaseline(t *testing.T) {
	ts := newServer(t)

	t.Run("default horizon", func(t *testing.T) {
		var got models.ProjectionResult
		testutil.AssertResponse(t, ts.GET("/api/forecast/projection")).
			StatusOK().
			DecodeJSON(&got)

		if got.ScenarioName != "Baseline" {
			t.Errorf("ScenarioName = %q", got.ScenarioName)
		}
		if len(got.Projections) != 12 {
			t.Errorf("got %d projections, want 12", len(got.Projections))
		}
		if got.Risk == nil {
			t.Fatal("baseline should include risk metrics")
		}
		// 3000 income vs 3500 expenses from the historical window
		if got.Projections[0].NetFlow != -500 {
			t.Errorf("NetFlow = %v, want -500", got.Projections[0].NetFlow)
		}
	})

	t.Run("months override", func(t *testing.T) {
		var got models.ProjectionResult
		testutil.AssertResponse(t, ts.GET("/api/forecast/projection?months=6")).
			StatusOK().
			DecodeJSON(&got)

		if len(got.Projections) != 6 {
			t.Errorf("got %d projections, want 6", len(got.Projections))
		}
	})

	t.Run("invalid months rejected", func(t *testing.T) {
		testutil.AssertResponse(t, ts.GET("/api/forecast/projection?months=-3")).
			Status(400).
			Contains("projected_months")
	})
}

func TestHandleScenario(t *testing.T) {
	ts := newServer(t)
	body := `{"name":"Risky","monthly_income":3000,"monthly_expenses":2900,"projected_months":12,"variability":0.2}`

	var got models.ProjectionResult
	testutil.AssertResponse(t, ts.POST("/api/forecast/scenario", "application/json", strings.NewReader(body))).
		StatusOK().
		DecodeJSON(&got)

	if got.Risk == nil {
		t.Fatal("scenario endpoint must include risk metrics")
	}
	if got.Risk.Iterations != 1000 {
		t.Errorf("Iterations = %d, want 1000", got.Risk.Iterations)
	}
	if got.Risk.WorstCase > got.Risk.BestCase {
		t.Errorf("WorstCase %v exceeds BestCase %v", got.Risk.WorstCase, got.Risk.BestCase)
	}
}

func TestHandleStress(t *testing.T) {
	ts := newServer(t)

	var got []models.ProjectionResult
	testutil.AssertResponse(t, ts.GET("/api/forecast/stress")).
		StatusOK().
		DecodeJSON(&got)

	if len(got) != 4 {
		t.Fatalf("got %d stress results, want 4", len(got))
	}

	names := []string{"Recession", "Job Loss", "Market Crash", "Healthcare Emergency"}
	for i, want := range names {
		if got[i].ScenarioName != want {
			t.Errorf("result[%d] = %q, want %q", i, got[i].ScenarioName, want)
		}
		if got[i].Risk == nil {
			t.Errorf("result[%d] missing risk metrics", i)
		}
	}

	// Job loss: 600 in vs 1600 out on a 12000 balance depletes mid-run
	jobLoss := got[1]
	if jobLoss.Summary.MonthsToDepletion == nil {
		t.Error("job loss scenario should deplete")
	}
}

func TestHandleHistory(t *testing.T) {
	ts := newServer(t)

	t.Run("full span", func(t *testing.T) {
		var got struct {
			Months []struct {
				Month    string  `json:"month"`
				Income   float64 `json:"income"`
				Expenses float64 `json:"expenses"`
				NetFlow  float64 `json:"net_flow"`
			} `json:"months"`
			Categories []string `json:"categories"`
		}
		testutil.AssertResponse(t, ts.GET("/api/forecast/history")).
			StatusOK().
			DecodeJSON(&got)

		if len(got.Months) != 6 {
			t.Fatalf("got %d months, want 6", len(got.Months))
		}
		first := got.Months[0]
		if first.Month != "2025-01" {
			t.Errorf("first month = %q, want 2025-01", first.Month)
		}
		if first.Income != 3000 || first.Expenses != 3500 {
			t.Errorf("month totals = %v/%v, want 3000/3500", first.Income, first.Expenses)
		}
		if first.NetFlow != -500 {
			t.Errorf("net flow = %v, want -500", first.NetFlow)
		}
	})

	t.Run("date range filter", func(t *testing.T) {
		var got struct {
			Months []struct {
				Month string `json:"month"`
			} `json:"months"`
		}
		testutil.AssertResponse(t, ts.GET("/api/forecast/history?start=2025-05-01&end=2025-06-30")).
			StatusOK().
			DecodeJSON(&got)

		if len(got.Months) != 2 {
			t.Fatalf("got %d months, want 2", len(got.Months))
		}
	})
}

func TestHandleGoals(t *testing.T) {
	ts := newServer(t)

	var got []models.GoalProbability
	testutil.AssertResponse(t, ts.GET("/api/forecast/goals")).
		StatusOK().
		DecodeJSON(&got)

	if len(got) != 1 {
		t.Fatalf("got %d goal results, want 1", len(got))
	}

	r := got[0]
	if r.GoalName != "Emergency Fund" {
		t.Errorf("GoalName = %q", r.GoalName)
	}
	// Historical net flow is -500/month, so the goal is not on track
	if r.Probability > 50 {
		t.Errorf("Probability = %v, want off-track", r.Probability)
	}
	if r.ProjectedDate != nil {
		t.Errorf("ProjectedDate = %v, want nil", r.ProjectedDate)
	}
	if r.RequiredMonthlyContribution <= 0 {
		t.Errorf("RequiredMonthlyContribution = %v, want positive", r.RequiredMonthlyContribution)
	}
}
