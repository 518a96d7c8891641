package models

// Account represents a financial account balance snapshot. Only active
// accounts contribute to the current-balance figure used by the engine.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
	IsActive bool    `json:"is_active"`
}

// AccountSet wraps a slice of accounts
type AccountSet struct {
	Accounts []Account
}

// NewAccountSet creates a new AccountSet from a slice
func NewAccountSet(accounts []Account) *AccountSet {
	return &AccountSet{Accounts: accounts}
}

// ActiveBalance returns the sum of balances over active accounts
func (as *AccountSet) ActiveBalance() float64 {
	var sum float64
	for _, a := range as.Accounts {
		if a.IsActive {
			sum += a.Balance
		}
	}
	return sum
}

// ActiveCount returns the number of active accounts
func (as *AccountSet) ActiveCount() int {
	count := 0
	for _, a := range as.Accounts {
		if a.IsActive {
			count++
		}
	}
	return count
}
