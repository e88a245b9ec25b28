// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/okian/pinpoint/pkg/logger"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 16

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CharacterDependencies
	CheckDependencies
	SessionDependencies
	ScoresDependencies
	HealthDependencies
	StatsProvider
}

// Server wires HTTP routes for the game API.
type Server struct {
	charactersHandler *CharactersHandler
	checkHandler      *CheckHandler
	sessionHandler    *SessionHandler
	scoresHandler     *ScoresHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		charactersHandler: NewCharactersHandler(deps, log),
		checkHandler:      NewCheckHandler(deps, log),
		sessionHandler:    NewSessionHandler(deps, log),
		scoresHandler:     NewScoresHandler(deps, log),
		healthHandler:     NewHealthHandler(deps),
		statsHandler:      NewStatsHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/characters", MetricsMiddleware(s.charactersHandler.HandleList, "characters"))
		r.Post("/check", MetricsMiddleware(s.checkHandler.HandleCheck, "check"))
		r.Post("/reset", MetricsMiddleware(s.sessionHandler.HandleReset, "reset"))
		r.Post("/score", MetricsMiddleware(s.sessionHandler.HandleSubmitScore, "score"))
		r.Get("/scores", MetricsMiddleware(s.scoresHandler.HandleList, "scores"))
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
