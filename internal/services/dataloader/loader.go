// Package dataloader reads the transaction, account and goal inputs that
// feed the forecasting engine. Transactions come from CSV exports with
// bank-specific column names; accounts and goals are JSON documents.
package dataloader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
	"github.com/Staysteady/financial-dashboard-sub003/internal/services/classifier"
	"github.com/Staysteady/financial-dashboard-sub003/internal/services/storage"
)

// Loader handles loading and preprocessing of financial data files
type Loader struct {
	DataDirectory  string
	DuplicateCount int
	store          *storage.Store
}

// New creates a new Loader over the given data directory
func New(dataDirectory string, store *storage.Store) *Loader {
	return &Loader{
		DataDirectory: dataDirectory,
		store:         store,
	}
}

// LoadTransactions loads and combines transactions from all CSV files in
// the data directory, classifies them and drops duplicates.
func (l *Loader) LoadTransactions() (*models.TransactionSet, error) {
	pattern := filepath.Join(l.DataDirectory, "*.csv")
	files, err := l.store.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("error finding CSV files: %w", err)
	}

	if len(files) == 0 {
		log.Printf("No CSV files found in %s - returning empty dataset", l.DataDirectory)
		return models.NewTransactionSet(nil), nil
	}

	var all []models.Transaction
	for _, file := range files {
		filename := filepath.Base(file)

		transactions, err := l.loadCSVFile(file)
		if err != nil {
			log.Printf("Warning: failed to load %s: %v", filename, err)
			continue
		}

		log.Printf("Loaded %d transactions from %s", len(transactions), filename)
		all = append(all, transactions...)
	}

	all = classifier.ClassifyTransactions(all)
	all = l.deduplicate(all)

	log.Printf("Total transactions after processing: %d", len(all))

	return models.NewTransactionSet(all), nil
}

// LoadAccounts loads account balances from the accounts JSON file. A
// missing file is an empty portfolio, not an error.
func (l *Loader) LoadAccounts(path string) (*models.AccountSet, error) {
	data, err := l.store.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewAccountSet(nil), nil
		}
		return nil, fmt.Errorf("error reading accounts file: %w", err)
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("error parsing accounts file: %w", err)
	}

	return models.NewAccountSet(accounts), nil
}

// LoadGoals loads financial goals from the goals JSON file. A missing file
// means no goals are configured.
func (l *Loader) LoadGoals(path string) ([]models.FinancialGoal, error) {
	data, err := l.store.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading goals file: %w", err)
	}

	var goals []models.FinancialGoal
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("error parsing goals file: %w", err)
	}

	return goals, nil
}

// deduplicate drops transactions whose content hash was already seen
func (l *Loader) deduplicate(transactions []models.Transaction) []models.Transaction {
	seen := make(map[string]bool, len(transactions))
	result := make([]models.Transaction, 0, len(transactions))
	dropped := 0

	for _, t := range transactions {
		hash := t.Hash
		if hash == "" {
			hash = t.ComputeHash()
		}
		if seen[hash] {
			dropped++
			continue
		}
		seen[hash] = true
		result = append(result, t)
	}

	l.DuplicateCount = dropped
	if dropped > 0 {
		log.Printf("Dropped %d duplicate transactions", dropped)
	}
	return result
}

// parseTransactionType maps a CSV type cell to a transaction type, leaving
// the zero value for unknown cells so the classifier decides.
func parseTransactionType(s string) models.TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "credit in":
		return models.Income
	case "expense", "outflow", "debit out":
		return models.Expense
	case "transfer", "internal":
		return models.Transfer
	}
	return ""
}
