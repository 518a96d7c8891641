// Command validate smoke-tests a running forecasting API.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type endpoint struct {
	path     string
	method   string
	body     string
	contains []string
}

var endpoints = []endpoint{
	{path: "/api/health", method: "GET", contains: []string{`"status":"ok"`}},
	{path: "/api/version", method: "GET", contains: []string{`"version"`}},

	{path: "/api/forecast/projection", method: "GET", contains: []string{`"projections"`, `"risk"`}},
	{path: "/api/forecast/burnrate", method: "GET", contains: []string{`"current_rate"`, `"trend"`}},
	{path: "/api/forecast/runway", method: "GET", contains: []string{`"total_balance"`, `"critical_thresholds"`, `"recommendations"`}},
	{path: "/api/forecast/stress", method: "GET", contains: []string{"Recession", "Job Loss", "Market Crash", "Healthcare Emergency"}},
	{path: "/api/forecast/goals", method: "GET", contains: nil},
	{path: "/api/forecast/history", method: "GET", contains: []string{`"months"`, `"categories"`}},

	{
		path:     "/api/forecast/projection",
		method:   "POST",
		body:     `{"name":"Validation","monthly_income":3000,"monthly_expenses":2500,"projected_months":12,"variability":0.1}`,
		contains: []string{`"projections"`, `"summary"`},
	},
	{
		path:     "/api/forecast/scenario",
		method:   "POST",
		body:     `{"name":"Validation","monthly_income":3000,"monthly_expenses":2500,"projected_months":12,"variability":0.1}`,
		contains: []string{`"risk"`, `"probability_of_success"`},
	},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
	body     string
}

func main() {
	url := flag.String("url", "http://localhost:8080", "Base URL of the server to validate")
	verbose := flag.Bool("v", false, "Verbose output")
	timeout := flag.Int("timeout", 10, "Request timeout in seconds")
	flag.Parse()

	client := &http.Client{
		Timeout: time.Duration(*timeout) * time.Second,
	}

	fmt.Printf("Validating server at %s\n", *url)
	fmt.Printf("Testing %d endpoints...\n\n", len(endpoints))

	var passed, failed int

	for _, ep := range endpoints {
		r := validateEndpoint(client, *url, ep)

		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Error: %v\n", r.err)
		} else if r.status != http.StatusOK {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Status: %d (expected 200)\n", r.status)
		} else {
			passed++
			if *verbose {
				fmt.Printf("PASS %s %s (%v)\n", ep.method, ep.path, r.duration)
			}
		}
	}

	fmt.Printf("\n========================================\n")
	fmt.Printf("Results: %d passed, %d failed\n", passed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func validateEndpoint(client *http.Client, baseURL string, ep endpoint) result {
	start := time.Now()

	var bodyReader io.Reader
	if ep.body != "" {
		bodyReader = strings.NewReader(ep.body)
	}

	req, err := http.NewRequest(ep.method, baseURL+ep.path, bodyReader)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to create request: %w", err)}
	}
	if ep.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to read body: %w", err)}
	}

	r := result{
		endpoint: ep,
		status:   resp.StatusCode,
		duration: time.Since(start),
		body:     string(body),
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		r.err = fmt.Errorf("wrong content type: got %q, expected JSON", ct)
		return r
	}

	var js interface{}
	if err := json.Unmarshal(body, &js); err != nil {
		r.err = fmt.Errorf("invalid JSON: %w", err)
		return r
	}

	for _, needle := range ep.contains {
		if !strings.Contains(string(body), needle) {
			r.err = fmt.Errorf("missing expected content: %q", needle)
			return r
		}
	}

	return r
}
