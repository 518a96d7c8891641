// Package httpx provides small JSON response helpers shared by the API handlers.
package httpx

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

// JSON writes v as a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Error sends a JSON error response and logs it
func Error(w http.ResponseWriter, message string, status int) {
	log.Printf("Error: %s (status %d)", message, status)
	JSON(w, status, map[string]string{"error": message})
}

// DecodeBody decodes a JSON request body into v
func DecodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// IntParam parses an integer query parameter, falling back when absent or malformed
func IntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// FloatParam parses a float query parameter, falling back when absent or malformed
func FloatParam(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// ParseDateRange parses start and end date query parameters with defaults
// taken from the loaded data's date span.
func ParseDateRange(startStr, endStr string, minDate, maxDate time.Time) (start, end time.Time) {
	if startStr != "" {
		start, _ = time.Parse("2006-01-02", startStr)
	} else {
		start = minDate
	}

	if endStr != "" {
		end, _ = time.Parse("2006-01-02", endStr)
	} else {
		end = maxDate
	}

	return start, end
}
