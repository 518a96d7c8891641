// Package forecast turns transaction history and account balances into
// forward-looking cash-flow projections, burn-rate/runway estimates,
// stress-test scenarios and Monte Carlo risk metrics. It is a pure
// computation engine: no I/O, no shared mutable state between calls.
package forecast

import (
	"math"
	"time"
)

// Engine performs all forecasting calculations. The clock is injected so
// "the current month" is a parameter of the engine rather than an ambient
// read, keeping results deterministic under test.
type Engine struct {
	now func() time.Time
}

// New creates an engine using the wall clock
func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock creates an engine with an injected time source
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Now returns the engine's current time
func (e *Engine) Now() time.Time {
	return e.now()
}

// startOfMonth truncates t to the first instant of its calendar month
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// endOfMonth returns the last instant of t's calendar month
func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// round2 rounds to 2 decimal places for display-grade output
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// mean returns the arithmetic mean, 0 for empty input
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the population standard deviation, 0 for fewer than 2 samples
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
