package httpserver

import (
	"net/http"

	"chargesmart/backend/services/recommendation-service/internal/http/handlers"
)

// RouterDeps collects handler dependencies. Nil optional handlers leave their route unregistered.
type RouterDeps struct {
	RecommendationHandlers *handlers.RecommendationHandlers
	HealthHandler          http.HandlerFunc
	MetricsHandler         http.Handler
	DashboardHandler       http.Handler
}

// NewRouter wires HTTP routes.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, deps.HealthHandler))

	recommend := http.HandlerFunc(deps.RecommendationHandlers.Recommend)
	mux.Handle("/api/recommendations", method(http.MethodGet, recommend))
	mux.Handle("/recommend", method(http.MethodGet, recommend))
	mux.Handle("/api/stations", method(http.MethodGet, http.HandlerFunc(deps.RecommendationHandlers.ListStations)))

	if deps.MetricsHandler != nil {
		mux.Handle("/metrics", method(http.MethodGet, deps.MetricsHandler))
	}
	if deps.DashboardHandler != nil {
		mux.Handle("/ws/dashboard", method(http.MethodGet, deps.DashboardHandler))
	}

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
