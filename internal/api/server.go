// Package api provides the HTTP server for the reward bank: the bank's
// read-only query surface, its mutation operations, and the gamification
// read surface. Transport errors are HTTP errors; rule violations inside
// the bank come back as structured results with status 200, because the
// caller is expected to branch on them, not on status codes.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plaisir-app/plaisir/internal/app/bank"
	"github.com/plaisir-app/plaisir/internal/app/gamification"
	"github.com/plaisir-app/plaisir/internal/health"
	"github.com/plaisir-app/plaisir/internal/infra/scheduler"
)

// Server is the reward bank HTTP API server.
type Server struct {
	bank           *bank.Bank
	rewards        *gamification.Service
	nudges         *gamification.NudgeService
	checker        *health.Checker
	sched          *scheduler.Scheduler
	corsOrigins    []string
	metricsEnabled bool
}

// NewServer creates a new API server. Checker and scheduler may be nil
// (tests).
func NewServer(b *bank.Bank, rewards *gamification.Service, nudges *gamification.NudgeService) *Server {
	return &Server{bank: b, rewards: rewards, nudges: nudges}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetCORSOrigins restricts CORS to the given origins. Empty, or any
// entry equal to "*", allows every origin.
func (s *Server) SetCORSOrigins(origins []string) { s.corsOrigins = origins }

// SetChecker wires the health checker into /health.
func (s *Server) SetChecker(c *health.Checker) { s.checker = c }

// SetScheduler wires the scheduler so /api/bank/refresh can trigger the
// rollover check through the same path the cron job uses.
func (s *Server) SetScheduler(sched *scheduler.Scheduler) { s.sched = sched }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware(s.corsOrigins))

	r.Get("/health", s.handleHealth)

	r.Route("/api/bank", func(r chi.Router) {
		r.Get("/", s.handleBankSummary)
		r.Get("/suggestion", s.handleSuggestion)
		r.Get("/history", s.handleHistory)
		r.Post("/balance", s.handleRecordBalance)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/redeem", s.handleRedeem)
		r.Post("/bonus", s.handleActivateBonus)
		r.Delete("/bonus", s.handleDeactivateBonus)
		r.Post("/confirm-start", s.handleConfirmStart)
	})

	r.Route("/api/gamification", func(r chi.Router) {
		r.Get("/level", s.handleLevel)
		r.Get("/summary", s.handleGamificationSummary)
		r.Get("/nudges", s.handleNudges)
		r.Post("/nudges/{id}/shown", s.handleNudgeShown)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	status := http.StatusOK
	if !s.checker.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"checks": s.checker.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the mobile app shell. With no
// configured origins (or a "*" entry) every origin is allowed; otherwise
// only requests from a listed origin get the allow header.
func corsMiddleware(allowed []string) func(http.Handler) http.Handler {
	anyOrigin := len(allowed) == 0
	for _, origin := range allowed {
		if origin == "*" {
			anyOrigin = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case anyOrigin:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && originAllowed(allowed, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}
