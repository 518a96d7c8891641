package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// TransactionType indicates how a transaction participates in cash-flow math.
// Transfers move money between own accounts and are excluded from monthly
// income/expense aggregation.
type TransactionType string

const (
	Income   TransactionType = "Income"
	Expense  TransactionType = "Expense"
	Transfer TransactionType = "Transfer"
)

// Transaction represents a single financial transaction. The forecasting
// engine only reads transactions; creation and mutation happen upstream.
type Transaction struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	TransactionType TransactionType `json:"transaction_type"`
	SourceFile      string          `json:"source_file,omitempty"`
	Hash            string          `json:"hash,omitempty"`
}

// ComputeHash generates a short hash for duplicate detection
func (t *Transaction) ComputeHash() string {
	dateStr := t.Date.Format("2006-01-02")
	desc := strings.ToLower(strings.TrimSpace(t.Description))
	amount := fmt.Sprintf("%.2f", t.Amount)

	input := fmt.Sprintf("%s|%s|%s", dateStr, desc, amount)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:8])
}

// AbsAmount returns the amount as a non-negative magnitude
func (t *Transaction) AbsAmount() float64 {
	return math.Abs(t.Amount)
}

// TransactionSet wraps a slice with filtering/aggregation methods
type TransactionSet struct {
	Transactions []Transaction
}

// NewTransactionSet creates a new TransactionSet from a slice
func NewTransactionSet(transactions []Transaction) *TransactionSet {
	return &TransactionSet{Transactions: transactions}
}

// Len returns the number of transactions
func (ts *TransactionSet) Len() int {
	return len(ts.Transactions)
}

// FilterByType returns transactions of the specified type
func (ts *TransactionSet) FilterByType(tt TransactionType) *TransactionSet {
	result := &TransactionSet{}
	for _, t := range ts.Transactions {
		if t.TransactionType == tt {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// FilterByDateRange returns transactions within [start, end] inclusive.
// Bounds are compared directly, so callers control the granularity: a
// transaction stamped at the last instant of a month still belongs to that
// month when end is the month's final instant.
func (ts *TransactionSet) FilterByDateRange(start, end time.Time) *TransactionSet {
	result := &TransactionSet{}
	for _, t := range ts.Transactions {
		if !t.Date.Before(start) && !t.Date.After(end) {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// FilterByCategory returns transactions matching the category
func (ts *TransactionSet) FilterByCategory(category string) *TransactionSet {
	result := &TransactionSet{}
	catLower := strings.ToLower(category)
	for _, t := range ts.Transactions {
		if strings.ToLower(t.Category) == catLower {
			result.Transactions = append(result.Transactions, t)
		}
	}
	return result
}

// SumAmount returns the sum of all transaction amounts
func (ts *TransactionSet) SumAmount() float64 {
	var sum float64
	for _, t := range ts.Transactions {
		sum += t.Amount
	}
	return sum
}

// SumAbsAmount returns the sum of absolute values
func (ts *TransactionSet) SumAbsAmount() float64 {
	var sum float64
	for _, t := range ts.Transactions {
		sum += math.Abs(t.Amount)
	}
	return sum
}

// GroupByMonth groups transactions by "2006-01" month key
func (ts *TransactionSet) GroupByMonth() map[string]*TransactionSet {
	result := make(map[string]*TransactionSet)
	for _, t := range ts.Transactions {
		month := t.Date.Format("2006-01")
		if result[month] == nil {
			result[month] = &TransactionSet{}
		}
		result[month].Transactions = append(result[month].Transactions, t)
	}
	return result
}

// SortByDate sorts transactions by date (ascending)
func (ts *TransactionSet) SortByDate() *TransactionSet {
	sorted := make([]Transaction, len(ts.Transactions))
	copy(sorted, ts.Transactions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return &TransactionSet{Transactions: sorted}
}

// MinDate returns the earliest transaction date
func (ts *TransactionSet) MinDate() time.Time {
	if len(ts.Transactions) == 0 {
		return time.Time{}
	}
	minDate := ts.Transactions[0].Date
	for _, t := range ts.Transactions[1:] {
		if t.Date.Before(minDate) {
			minDate = t.Date
		}
	}
	return minDate
}

// MaxDate returns the latest transaction date
func (ts *TransactionSet) MaxDate() time.Time {
	if len(ts.Transactions) == 0 {
		return time.Time{}
	}
	maxDate := ts.Transactions[0].Date
	for _, t := range ts.Transactions[1:] {
		if t.Date.After(maxDate) {
			maxDate = t.Date
		}
	}
	return maxDate
}

// Categories returns a sorted list of unique categories
func (ts *TransactionSet) Categories() []string {
	catMap := make(map[string]bool)
	for _, t := range ts.Transactions {
		cat := t.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		catMap[cat] = true
	}

	cats := make([]string, 0, len(catMap))
	for cat := range catMap {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Copy creates a shallow copy of the TransactionSet
func (ts *TransactionSet) Copy() *TransactionSet {
	copied := make([]Transaction, len(ts.Transactions))
	copy(copied, ts.Transactions)
	return &TransactionSet{Transactions: copied}
}
