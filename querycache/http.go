package querycache

import (
	"encoding/json"
	"net/http"
)

// StatsHandler returns an HTTP handler exposing cache statistics as JSON.
func StatsHandler(c Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(c.Stats())
	}
}

// ClearHandler returns an HTTP handler that empties the cache.
// Used to force cold-start behavior after a project's documents are
// re-ingested, so stale answers are not served.
func ClearHandler(c Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		c.Clear()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
	}
}

// RegisterHandlers registers the cache admin handlers on the given mux.
func RegisterHandlers(mux *http.ServeMux, c Cache) {
	mux.HandleFunc("/cache/stats", StatsHandler(c))
	mux.HandleFunc("/cache/clear", ClearHandler(c))
}
