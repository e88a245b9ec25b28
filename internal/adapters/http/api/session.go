package api

import (
	"context"
	"errors"
	"math"
	"net/http"

	service "github.com/okian/pinpoint/internal/app"
	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/internal/domain/types"
	"github.com/okian/pinpoint/pkg/logger"
)

// SessionDependencies defines the interface for round lifecycle operations.
type SessionDependencies interface {
	Reset(ctx context.Context) error
	SubmitScore(ctx context.Context, name string, timeMs int64) (model.Score, error)
}

// scoreRequest is the POST /api/score body.
type scoreRequest struct {
	Name   *string  `json:"name"`
	TimeMs *float64 `json:"timeMs"`
}

func (s scoreRequest) validate() error {
	switch {
	case s.Name == nil:
		return errors.New("missing name")
	case s.TimeMs == nil:
		return errors.New("missing timeMs")
	case math.IsNaN(*s.TimeMs) || math.IsInf(*s.TimeMs, 0):
		return errors.New("timeMs must be a finite number")
	}
	return nil
}

// SessionHandler handles reset and score submission.
type SessionHandler struct {
	deps SessionDependencies
	log  logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies, log logger.Logger) *SessionHandler {
	return &SessionHandler{deps: deps, log: log}
}

// HandleReset handles POST /api/reset.
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset"
	if err := h.deps.Reset(r.Context()); err != nil {
		h.log.Error(r.Context(), "reset failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.Ack{OK: true})
}

// HandleSubmitScore handles POST /api/score.
func (h *SessionHandler) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_score"
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.Ack{OK: false, Error: WrapKind(op, ErrBadRequest, err).Error()})
		return
	}
	if err := req.validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, types.Ack{OK: false, Error: WrapKind(op, ErrBadRequest, err).Error()})
		return
	}

	_, err := h.deps.SubmitScore(r.Context(), *req.Name, int64(math.Round(*req.TimeMs)))
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, types.Ack{OK: false, Error: WrapKind(op, ErrBadRequest, err).Error()})
		return
	case err != nil:
		h.log.Error(r.Context(), "submit score failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.Ack{OK: true})
}
