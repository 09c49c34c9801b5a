package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
)

// NewRouter builds the local front door for the intake endpoint. In
// production API Gateway plays this role; locally chi routes the form POST
// and go-chi/cors answers browser preflights.
func NewRouter(submit http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", HealthCheck)

	r.Method(http.MethodPost, "/submit", submit)
	r.Method(http.MethodOptions, "/submit", submit)

	return r
}

// HealthCheck reports liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		logger.Warn("response write failed", "error", err)
	}
}
