// Package forecast exposes the forecasting engine over a JSON API.
package forecast

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Staysteady/financial-dashboard-sub003/internal/config"
	"github.com/Staysteady/financial-dashboard-sub003/internal/httpx"
	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
	forecastsvc "github.com/Staysteady/financial-dashboard-sub003/internal/services/forecast"
)

// Handlers serves the forecasting endpoints over in-memory data loaded at
// startup or refresh time.
type Handlers struct {
	cfg    *config.Config
	engine *forecastsvc.Engine

	mu           sync.RWMutex
	transactions *models.TransactionSet
	accounts     *models.AccountSet
	goals        []models.FinancialGoal
}

// New creates handlers backed by a wall-clock engine
func New(cfg *config.Config) *Handlers {
	return &Handlers{
		cfg:          cfg,
		engine:       forecastsvc.New(),
		transactions: models.NewTransactionSet(nil),
		accounts:     models.NewAccountSet(nil),
	}
}

// NewWithEngine creates handlers around an existing engine, used by tests
// to inject a fixed clock.
func NewWithEngine(cfg *config.Config, engine *forecastsvc.Engine) *Handlers {
	h := New(cfg)
	h.engine = engine
	return h
}

// SetData replaces the working dataset. Handlers read a snapshot under the
// lock, so a refresh never races an in-flight request.
func (h *Handlers) SetData(transactions *models.TransactionSet, accounts *models.AccountSet, goals []models.FinancialGoal) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if transactions == nil {
		transactions = models.NewTransactionSet(nil)
	}
	if accounts == nil {
		accounts = models.NewAccountSet(nil)
	}
	h.transactions = transactions
	h.accounts = accounts
	h.goals = goals

	stressCache.invalidate()
}

// Routes registers the forecasting endpoints on a chi router
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/projection", h.handleBaseline)
	r.Post("/projection", h.handleProjection)
	r.Post("/scenario", h.handleScenario)
	r.Get("/burnrate", h.handleBurnRate)
	r.Get("/runway", h.handleRunway)
	r.Get("/stress", h.handleStress)
	r.Get("/goals", h.handleGoals)
	r.Get("/history", h.handleHistory)
}

// snapshot returns the current dataset under a read lock
func (h *Handlers) snapshot() (*models.TransactionSet, *models.AccountSet, []models.FinancialGoal) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.transactions, h.accounts, h.goals
}

// fallbacks returns the historical monthly income and expense averages used
// when a scenario leaves its assumptions unset.
func (h *Handlers) fallbacks(ts *models.TransactionSet) (income, expenses float64) {
	months := h.cfg.HistoryMonths
	income = h.engine.HistoricalAverage(ts, models.Income, months)
	expenses = h.engine.HistoricalAverage(ts, models.Expense, months)
	return income, expenses
}

// simConfig builds the simulation parameters from configuration
func (h *Handlers) simConfig() models.SimulationConfig {
	cfg := *models.DefaultSimulationConfig()
	if h.cfg.SimulationRuns > 0 {
		cfg.Iterations = h.cfg.SimulationRuns
	}
	return cfg
}

// handleBaseline projects the current trajectory: historical averages over
// the configured window, active account balance, risk metrics attached.
func (h *Handlers) handleBaseline(w http.ResponseWriter, r *http.Request) {
	months := httpx.IntParam(r, "months", 12)

	scenario := models.Scenario{
		ID:              uuid.NewString(),
		Name:            "Baseline",
		ProjectedMonths: months,
	}

	ts, accounts, _ := h.snapshot()
	income, expenses := h.fallbacks(ts)

	result, err := h.engine.Analyze(&scenario, accounts.ActiveBalance(), income, expenses, h.simConfig(), nil)
	if err != nil {
		httpx.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	httpx.JSON(w, http.StatusOK, result)
}

// handleProjection runs the deterministic month walk for a posted scenario
func (h *Handlers) handleProjection(w http.ResponseWriter, r *http.Request) {
	var scenario models.Scenario
	if err := httpx.DecodeBody(r, &scenario); err != nil {
		httpx.Error(w, fmt.Sprintf("invalid scenario: %v", err), http.StatusBadRequest)
		return
	}
	if scenario.ID == "" {
		scenario.ID = uuid.NewString()
	}

	ts, accounts, _ := h.snapshot()
	income, expenses := h.fallbacks(ts)

	projections, summary, err := h.engine.Project(&scenario, accounts.ActiveBalance(), income, expenses)
	if err != nil {
		httpx.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	httpx.JSON(w, http.StatusOK, &models.ProjectionResult{
		ScenarioName: scenario.Name,
		Projections:  projections,
		Summary:      summary,
	})
}

// handleScenario runs the full analysis: deterministic projection plus
// Monte Carlo risk metrics.
func (h *Handlers) handleScenario(w http.ResponseWriter, r *http.Request) {
	var scenario models.Scenario
	if err := httpx.DecodeBody(r, &scenario); err != nil {
		httpx.Error(w, fmt.Sprintf("invalid scenario: %v", err), http.StatusBadRequest)
		return
	}
	if scenario.ID == "" {
		scenario.ID = uuid.NewString()
	}

	ts, accounts, _ := h.snapshot()
	income, expenses := h.fallbacks(ts)

	result, err := h.engine.Analyze(&scenario, accounts.ActiveBalance(), income, expenses, h.simConfig(), nil)
	if err != nil {
		httpx.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	httpx.JSON(w, http.StatusOK, result)
}

// handleBurnRate reports the current and seasonally adjusted burn rate
func (h *Handlers) handleBurnRate(w http.ResponseWriter, r *http.Request) {
	ts, _, _ := h.snapshot()
	months := httpx.IntParam(r, "months", h.cfg.HistoryMonths)

	httpx.JSON(w, http.StatusOK, h.engine.EnhancedBurnRate(ts, months))
}

// handleRunway reports runway estimates and recommendations
func (h *Handlers) handleRunway(w http.ResponseWriter, r *http.Request) {
	ts, accounts, _ := h.snapshot()
	fundMonths := httpx.IntParam(r, "emergency_fund_months", h.cfg.EmergencyFundMonths)

	httpx.JSON(w, http.StatusOK, h.engine.EnhancedRunway(accounts, ts, fundMonths))
}

// handleStress runs the full analysis for every catalogue stress scenario.
// The historical baselines can be overridden with income/expenses query
// parameters for exploratory runs.
func (h *Handlers) handleStress(w http.ResponseWriter, r *http.Request) {
	ts, accounts, _ := h.snapshot()
	income, expenses := h.fallbacks(ts)
	income = httpx.FloatParam(r, "income", income)
	expenses = httpx.FloatParam(r, "expenses", expenses)
	balance := accounts.ActiveBalance()

	if cached := stressCache.get(balance, income, expenses); cached != nil {
		httpx.JSON(w, http.StatusOK, cached)
		return
	}

	scenarios := h.engine.StressScenarios(income, expenses)
	results := make([]*models.ProjectionResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := h.engine.Analyze(scenario, balance, income, expenses, h.simConfig(), nil)
		if err != nil {
			httpx.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		results = append(results, result)
	}

	stressCache.set(balance, income, expenses, results)
	httpx.JSON(w, http.StatusOK, results)
}

// handleGoals estimates achievement probability for every configured goal,
// assuming current historical cash flows continue.
func (h *Handlers) handleGoals(w http.ResponseWriter, r *http.Request) {
	ts, _, goals := h.snapshot()
	income, expenses := h.fallbacks(ts)

	scenario := &models.Scenario{
		Name:            "Current Path",
		ProjectedMonths: 12,
	}

	results := make([]*models.GoalProbability, 0, len(goals))
	for i := range goals {
		result, err := h.engine.GoalProbability(&goals[i], scenario, income, expenses, nil)
		if err != nil {
			httpx.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		results = append(results, result)
	}

	httpx.JSON(w, http.StatusOK, results)
}

// monthHistory is one month of aggregated history for the history endpoint
type monthHistory struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	NetFlow  float64 `json:"net_flow"`
}

type historyResponse struct {
	Months     []monthHistory `json:"months"`
	Categories []string       `json:"categories"`
}

// handleHistory reports per-month income/expense totals over an optional
// date range, defaulting to the full span of the loaded data.
func (h *Handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	ts, _, _ := h.snapshot()

	q := r.URL.Query()
	start, end := httpx.ParseDateRange(q.Get("start"), q.Get("end"), ts.MinDate(), ts.MaxDate())
	window := ts.FilterByDateRange(start, end)

	grouped := window.GroupByMonth()
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	months := make([]monthHistory, 0, len(keys))
	for _, key := range keys {
		set := grouped[key]
		income := set.FilterByType(models.Income).SumAbsAmount()
		expenses := set.FilterByType(models.Expense).SumAbsAmount()
		months = append(months, monthHistory{
			Month:    key,
			Income:   income,
			Expenses: expenses,
			NetFlow:  income - expenses,
		})
	}

	httpx.JSON(w, http.StatusOK, historyResponse{
		Months:     months,
		Categories: window.Categories(),
	})
}

// stressResultCache caches stress analysis keyed by an input hash; stress
// tests are the most expensive endpoint (4 scenarios x 1000 trials).
type stressResultCache struct {
	mu       sync.RWMutex
	hash     string
	results  []*models.ProjectionResult
	cachedAt time.Time
}

var stressCache = &stressResultCache{}

func stressHash(balance, income, expenses float64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%.2f|%.2f|%.2f", balance, income, expenses)))
	return fmt.Sprintf("%x", sum[:8])
}

func (c *stressResultCache) get(balance, income, expenses float64) []*models.ProjectionResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.hash == stressHash(balance, income, expenses) && time.Since(c.cachedAt) < 5*time.Minute {
		return c.results
	}
	return nil
}

func (c *stressResultCache) set(balance, income, expenses float64, results []*models.ProjectionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hash = stressHash(balance, income, expenses)
	c.results = results
	c.cachedAt = time.Now()
}

func (c *stressResultCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hash = ""
	c.results = nil
}
