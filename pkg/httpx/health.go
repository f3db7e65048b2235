package httpx

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
)

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// RegisterHealthCheck registers GET /health. Any failing check turns the
// response into a 503 naming the failed dependencies.
func RegisterHealthCheck(router *mux.Router, checks map[string]HealthCheck) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		failed := map[string]string{}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			RespondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Dependencies unavailable",
				Errors:  failed,
			})
			return
		}

		RespondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Storefront is healthy",
		})
	}).Methods("GET")
}
