package httpx

import (
	"encoding/json"
	"maps"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the storefront error body
// {"error": code, "error_description": description, ...extra}.
func WriteError(w http.ResponseWriter, status int, code, description string, extra ...map[string]any) {
	body := map[string]any{
		"error":             code,
		"error_description": description,
	}
	for _, e := range extra {
		maps.Copy(body, e)
	}
	WriteJSON(w, status, body)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Payment results and session state must never be served from a cache.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
