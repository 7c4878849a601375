package ui

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"photodeck/app"
)

// NewOpsRouter builds the operational sidecar served on its own port:
// liveness, readiness, and a small status snapshot. It stays off the
// presentation router so probes never compete with viewers.
func NewOpsRouter(decks *app.DeckService, started time.Time) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		// Ready once the deck exists; there is no storage to wait on.
		if decks.Deck().Len() == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	r.Get("/statusz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"uptime_s":   int64(time.Since(started).Seconds()),
			"sessions":   decks.SessionCount(),
			"slides":     decks.Deck().Len(),
			"goroutines": runtime.NumGoroutine(),
		})
	})

	return r
}
