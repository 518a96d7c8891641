// Package classifier assigns a transaction type (Income, Expense or
// Transfer) to raw imported transactions based on description and category
// keywords. Transfers move money between own accounts and must be tagged so
// the forecasting engine can exclude them from cash-flow aggregation.
package classifier

import (
	"math"
	"strings"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// Income detection keywords (lowercase)
var IncomeKeywords = []string{
	"payroll", "salary", "paycheck",
	"direct deposit", "deposit direct",
	"refund", "cashback", "cash back",
	"dividend", "interest earned", "interest",
	"bonus", "tax refund", "rebate",
	"payment received", "reimbursement",
	"freelance", "commission", "income",
	"wages", "earnings", "net pay",
}

// Income categories (lowercase)
var IncomeCategories = []string{
	"paycheck", "salary", "income",
	"wages", "payroll", "earnings",
	"dividend", "interest", "refund",
	"reimbursement",
}

// Keywords that should NEVER be income (lowercase)
var NeverIncomeKeywords = []string{
	"credit card payment", "cc payment", "card payment", "payment to",
	"loan payment", "mortgage payment", "bill payment", "autopay",
	"scheduled payment", "recurring payment", "withdrawal",
	"fee", "charge", "penalty", "subscription", "membership",
	"automatic payment", "payment - thank you",
}

// Transfer patterns between own accounts (lowercase)
var TransferPatterns = []string{
	"internal transfer",
	"funds transfer",
	"transfer to",
	"transfer from",
	"credit card payment",
	"cc payment",
	"automatic payment - thank you",
	"standing order to savings",
}

// ClassifyTransactions assigns a type to each transaction in place and
// normalizes income amounts to positive magnitudes.
func ClassifyTransactions(transactions []models.Transaction) []models.Transaction {
	for i := range transactions {
		transactions[i].TransactionType = classifyTransaction(&transactions[i])

		switch transactions[i].TransactionType {
		case models.Income:
			transactions[i].Amount = math.Abs(transactions[i].Amount)
		case models.Expense:
			if transactions[i].Amount < 0 {
				transactions[i].Amount = -math.Abs(transactions[i].Amount)
			}
			// Positive amounts that aren't income stay positive (credits/refunds)
		}
	}
	return transactions
}

// classifyTransaction determines the type of a single transaction. An
// explicit type set upstream wins over keyword heuristics.
func classifyTransaction(t *models.Transaction) models.TransactionType {
	switch t.TransactionType {
	case models.Income, models.Expense, models.Transfer:
		return t.TransactionType
	}

	if IsTransfer(t) {
		return models.Transfer
	}

	descLower := strings.ToLower(strings.TrimSpace(t.Description))
	catLower := strings.ToLower(strings.TrimSpace(t.Category))

	for _, kw := range NeverIncomeKeywords {
		if strings.Contains(descLower, kw) {
			return models.Expense
		}
	}

	if t.Amount > 0 {
		for _, cat := range IncomeCategories {
			if catLower == cat || strings.Contains(catLower, cat) {
				return models.Income
			}
		}
		for _, kw := range IncomeKeywords {
			if strings.Contains(descLower, kw) {
				return models.Income
			}
		}
	}

	return models.Expense
}

// IsTransfer checks if a transaction moves money between own accounts
func IsTransfer(t *models.Transaction) bool {
	descLower := strings.ToLower(strings.TrimSpace(t.Description))
	catLower := strings.ToLower(strings.TrimSpace(t.Category))

	if catLower == "transfer" || catLower == "transfers" {
		return true
	}

	for _, pattern := range TransferPatterns {
		if strings.Contains(descLower, pattern) {
			// Don't tag as transfer if it clearly reads as income
			if t.Amount > 0 && containsAny(descLower, IncomeKeywords) {
				return false
			}
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
