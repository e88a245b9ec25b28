package api

import (
	"context"
	"net/http"

	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/pkg/logger"
)

// ScoresDependencies defines the interface for leaderboard reads.
type ScoresDependencies interface {
	Leaderboard(ctx context.Context) ([]model.Score, error)
}

// ScoresHandler handles leaderboard requests.
type ScoresHandler struct {
	deps ScoresDependencies
	log  logger.Logger
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoresDependencies, log logger.Logger) *ScoresHandler {
	return &ScoresHandler{deps: deps, log: log}
}

// HandleList handles GET /api/scores.
func (h *ScoresHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_scores"
	scores, err := h.deps.Leaderboard(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "leaderboard failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, scores)
}
