package dataloader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Staysteady/financial-dashboard-sub003/internal/models"
)

// columnMappings maps common bank export column names to our standard names
var columnMappings = map[string][]string{
	"Date": {
		"date", "Date", "DATE",
		"transaction date", "Transaction Date",
		"posted date", "Posted Date",
		"posting date", "Posting Date",
	},
	"Description": {
		"description", "Description", "DESCRIPTION",
		"memo", "Memo",
		"details", "Details",
		"payee", "Payee",
		"merchant", "Merchant",
		"narrative", "Narrative",
	},
	"Amount": {
		"amount", "Amount", "AMOUNT",
		"value", "Value",
		"transaction amount", "Transaction Amount",
	},
	"Category": {
		"category", "Category", "CATEGORY",
		"category name", "Category Name",
	},
	"Type": {
		"type", "Type", "TYPE",
		"transaction type", "Transaction Type",
	},
	"Currency": {
		"currency", "Currency", "CURRENCY",
		"ccy", "CCY",
	},
	"Debit": {
		"debit", "Debit", "DEBIT",
		"withdrawal", "Withdrawal",
		"money out", "Money Out",
	},
	"Credit": {
		"credit", "Credit", "CREDIT",
		"deposit", "Deposit",
		"money in", "Money In",
	},
}

// normalizeColumnName maps a bank export column name to our standard name
func normalizeColumnName(col string) string {
	col = strings.TrimSpace(col)
	for standard, variants := range columnMappings {
		for _, variant := range variants {
			if col == variant {
				return standard
			}
		}
	}
	return col
}

// buildColumnIndex creates a normalized column index from CSV headers.
// First match wins when two headers normalize to the same name.
func buildColumnIndex(header []string) map[string]int {
	colIndex := make(map[string]int)
	for i, col := range header {
		normalized := normalizeColumnName(col)
		if _, exists := colIndex[normalized]; !exists {
			colIndex[normalized] = i
		}
	}
	return colIndex
}

// loadCSVFile loads transactions from a single CSV file
func (l *Loader) loadCSVFile(filePath string) ([]models.Transaction, error) {
	file, err := l.store.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	colIndex := buildColumnIndex(header)

	_, hasAmount := colIndex["Amount"]
	_, hasDebit := colIndex["Debit"]
	_, hasCredit := colIndex["Credit"]
	useDebitCredit := !hasAmount && (hasDebit || hasCredit)

	if _, ok := colIndex["Date"]; !ok {
		return nil, fmt.Errorf("missing required column: Date (tried: %v)", columnMappings["Date"])
	}
	if _, ok := colIndex["Description"]; !ok {
		return nil, fmt.Errorf("missing required column: Description (tried: %v)", columnMappings["Description"])
	}
	if !hasAmount && !useDebitCredit {
		return nil, fmt.Errorf("missing required column: Amount or Debit/Credit (tried: %v)", columnMappings["Amount"])
	}

	var transactions []models.Transaction
	sourceFile := filepath.Base(filePath)
	lineNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: error reading line %d: %v", lineNum+1, err)
			lineNum++
			continue
		}
		lineNum++

		t := models.Transaction{
			SourceFile: sourceFile,
			Currency:   "GBP",
		}

		if idx, ok := colIndex["Date"]; ok && idx < len(record) {
			dateStr := strings.TrimSpace(record[idx])
			t.Date = parseDate(dateStr)
			if t.Date.IsZero() {
				log.Printf("Warning: could not parse date %q on line %d", dateStr, lineNum)
				continue
			}
		}

		if useDebitCredit {
			t.Amount = parseDebitCredit(record, colIndex)
		} else if idx, ok := colIndex["Amount"]; ok && idx < len(record) {
			t.Amount = parseAmount(strings.TrimSpace(record[idx]))
		}

		if idx, ok := colIndex["Description"]; ok && idx < len(record) {
			t.Description = strings.TrimSpace(record[idx])
		}
		if idx, ok := colIndex["Category"]; ok && idx < len(record) {
			t.Category = strings.TrimSpace(record[idx])
		}
		if idx, ok := colIndex["Type"]; ok && idx < len(record) {
			t.TransactionType = parseTransactionType(record[idx])
		}
		if idx, ok := colIndex["Currency"]; ok && idx < len(record) {
			if ccy := strings.ToUpper(strings.TrimSpace(record[idx])); ccy != "" {
				t.Currency = ccy
			}
		}

		t.ID = t.ComputeHash()
		t.Hash = t.ID
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// parseDebitCredit combines Debit and Credit columns into a single amount.
// Credits are positive, debits negative.
func parseDebitCredit(record []string, colIndex map[string]int) float64 {
	var amount float64

	if idx, ok := colIndex["Credit"]; ok && idx < len(record) {
		if creditStr := strings.TrimSpace(record[idx]); creditStr != "" {
			if credit := parseAmount(creditStr); credit != 0 {
				amount = abs(credit)
			}
		}
	}

	if idx, ok := colIndex["Debit"]; ok && idx < len(record) {
		if debitStr := strings.TrimSpace(record[idx]); debitStr != "" {
			if debit := parseAmount(debitStr); debit != 0 {
				amount = -abs(debit)
			}
		}
	}

	return amount
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// parseDate tries multiple date formats
func parseDate(s string) time.Time {
	formats := []string{
		"2006-01-02",
		"02/01/2006",
		"2/1/2006",
		"01/02/2006",
		"2006/01/02",
		"Jan 2, 2006",
		"2 Jan 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

// parseAmount parses an amount string, handling currency symbols and parentheses
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	// Parentheses mean negative: (100.00) -> -100.00
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}

	amount, _ := strconv.ParseFloat(s, 64)
	return amount
}
