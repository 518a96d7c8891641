package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds application configuration
type Config struct {
	// Server settings
	ListenAddr string `json:"listen_addr"`
	Debug      bool   `json:"debug"`

	// Directories
	DataDirectory string `json:"data_directory"`

	// Data files consumed by the loader
	TransactionsFile string `json:"transactions_file"`
	AccountsFile     string `json:"accounts_file"`
	GoalsFile        string `json:"goals_file"`

	// Encryption of the data directory at rest
	EncryptData bool `json:"encrypt_data"`

	// Forecasting defaults
	HistoryMonths       int `json:"history_months"`
	EmergencyFundMonths int `json:"emergency_fund_months"`
	SimulationRuns      int `json:"simulation_runs"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	dataDir := filepath.Join(wd, "data")
	return &Config{
		ListenAddr:          ":8080",
		Debug:               false,
		DataDirectory:       dataDir,
		TransactionsFile:    filepath.Join(dataDir, "transactions.csv"),
		AccountsFile:        filepath.Join(dataDir, "accounts.json"),
		GoalsFile:           filepath.Join(dataDir, "goals.json"),
		EncryptData:         false,
		HistoryMonths:       6,
		EmergencyFundMonths: 6,
		SimulationRuns:      1000,
	}
}

// Load loads configuration from environment variables over defaults
func Load() *Config {
	cfg := DefaultConfig()

	if addr := os.Getenv("FINDASH_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if debug := os.Getenv("FINDASH_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}
	if dataDir := os.Getenv("FINDASH_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
		cfg.TransactionsFile = filepath.Join(dataDir, "transactions.csv")
		cfg.AccountsFile = filepath.Join(dataDir, "accounts.json")
		cfg.GoalsFile = filepath.Join(dataDir, "goals.json")
	}
	if enc := os.Getenv("FINDASH_ENCRYPT_DATA"); enc == "true" || enc == "1" {
		cfg.EncryptData = true
	}
	if months := intEnv("FINDASH_HISTORY_MONTHS"); months > 0 {
		cfg.HistoryMonths = months
	}
	if months := intEnv("FINDASH_EMERGENCY_FUND_MONTHS"); months > 0 {
		cfg.EmergencyFundMonths = months
	}
	if runs := intEnv("FINDASH_SIMULATION_RUNS"); runs > 0 {
		cfg.SimulationRuns = runs
	}

	cfg.ensureDirectories()

	return cfg
}

func intEnv(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, raw, err)
		return 0
	}
	return v
}

// ensureDirectories creates required directories if they don't exist
func (c *Config) ensureDirectories() {
	if err := os.MkdirAll(c.DataDirectory, 0755); err != nil {
		log.Printf("Warning: could not create directory %s: %v", c.DataDirectory, err)
	}
}
