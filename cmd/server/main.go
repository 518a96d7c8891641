// Command server runs the financial forecasting API.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/term"

	"github.com/Staysteady/financial-dashboard-sub003/internal/config"
	"github.com/Staysteady/financial-dashboard-sub003/internal/handlers/forecast"
	"github.com/Staysteady/financial-dashboard-sub003/internal/httpx"
	"github.com/Staysteady/financial-dashboard-sub003/internal/services/dataloader"
	"github.com/Staysteady/financial-dashboard-sub003/internal/services/storage"
	"github.com/Staysteady/financial-dashboard-sub003/internal/version"
)

func main() {
	cfg := config.Load()

	info := version.Get()
	log.Printf("Starting forecasting API (%s) on %s", info.String(), cfg.ListenAddr)
	log.Printf("Data directory: %s", cfg.DataDirectory)

	store, err := storage.Open(cfg.DataDirectory)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	if store.IsEncrypted() {
		if err := unlockStore(store); err != nil {
			log.Fatalf("Failed to unlock data directory: %v", err)
		}
		log.Printf("Data directory unlocked")
	} else if cfg.EncryptData {
		log.Printf("Warning: FINDASH_ENCRYPT_DATA is set but the data directory is not encrypted; run with an encrypted directory or enable encryption first")
	}

	loader := dataloader.New(cfg.DataDirectory, store)
	handlers := forecast.New(cfg)

	if err := refreshData(cfg, loader, handlers); err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	r := newRouter(cfg, loader, handlers)

	log.Printf("Server listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}

// newRouter wires middleware and routes; tests build the same router around
// their own data directory.
func newRouter(cfg *config.Config, loader *dataloader.Loader, handlers *forecast.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/api/health", handleHealth)
	r.Get("/api/version", handleVersion)
	r.Post("/api/reload", func(w http.ResponseWriter, req *http.Request) {
		if err := refreshData(cfg, loader, handlers); err != nil {
			httpx.Error(w, fmt.Sprintf("reload failed: %v", err), http.StatusInternalServerError)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
	})
	r.Route("/api/forecast", handlers.Routes)

	return r
}

// unlockStore prompts for the passphrase without echoing it. FINDASH_PASSPHRASE
// takes precedence for non-interactive runs.
func unlockStore(store *storage.Store) error {
	if pass := os.Getenv("FINDASH_PASSPHRASE"); pass != "" {
		return store.Unlock(pass)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("data directory is encrypted: set FINDASH_PASSPHRASE or run interactively")
	}

	fmt.Fprint(os.Stderr, "Data passphrase: ")
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}

	return store.Unlock(string(pass))
}

// refreshData reloads all inputs and swaps them into the handlers
func refreshData(cfg *config.Config, loader *dataloader.Loader, handlers *forecast.Handlers) error {
	transactions, err := loader.LoadTransactions()
	if err != nil {
		return fmt.Errorf("transactions: %w", err)
	}
	accounts, err := loader.LoadAccounts(cfg.AccountsFile)
	if err != nil {
		return fmt.Errorf("accounts: %w", err)
	}
	goals, err := loader.LoadGoals(cfg.GoalsFile)
	if err != nil {
		return fmt.Errorf("goals: %w", err)
	}

	handlers.SetData(transactions, accounts, goals)
	log.Printf("Loaded %d transactions, %d active accounts, %d goals",
		transactions.Len(), accounts.ActiveCount(), len(goals))
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, version.Get())
}
