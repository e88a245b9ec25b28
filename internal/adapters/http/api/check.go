package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/pinpoint/internal/app"
	"github.com/okian/pinpoint/internal/domain/hittest"
	"github.com/okian/pinpoint/internal/domain/types"
	"github.com/okian/pinpoint/pkg/logger"
)

// CheckDependencies defines the interface for hit-testing.
type CheckDependencies interface {
	Check(ctx context.Context, click hittest.Click) (types.CheckResult, error)
}

// checkRequest is the POST /api/check body. Pointers tell a missing field
// apart from an explicit zero.
type checkRequest struct {
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	ImageWidth  *float64 `json:"imageWidth"`
	ImageHeight *float64 `json:"imageHeight"`
	CharacterID string   `json:"characterId"`
}

func (c checkRequest) validate() error {
	switch {
	case c.X == nil:
		return errors.New("missing x")
	case c.Y == nil:
		return errors.New("missing y")
	case c.ImageWidth == nil:
		return errors.New("missing imageWidth")
	case c.ImageHeight == nil:
		return errors.New("missing imageHeight")
	case c.CharacterID == "":
		return errors.New("missing characterId")
	}
	return nil
}

func (c checkRequest) click() hittest.Click {
	return hittest.Click{
		X:           *c.X,
		Y:           *c.Y,
		ImageWidth:  *c.ImageWidth,
		ImageHeight: *c.ImageHeight,
		CharacterID: c.CharacterID,
	}
}

// CheckHandler handles hit-test requests.
type CheckHandler struct {
	deps CheckDependencies
	log  logger.Logger
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(deps CheckDependencies, log logger.Logger) *CheckHandler {
	return &CheckHandler{deps: deps, log: log}
}

// HandleCheck handles POST /api/check. Bad input answers 400 with
// {"correct":false} so the client treats it like a miss.
func (h *CheckHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	const op = "api.check"
	var req checkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rejected(r, WrapKind(op, ErrBadRequest, err))
		writeJSON(w, http.StatusBadRequest, types.CheckResult{Correct: false})
		return
	}
	if err := req.validate(); err != nil {
		h.rejected(r, WrapKind(op, ErrBadRequest, err))
		writeJSON(w, http.StatusBadRequest, types.CheckResult{Correct: false})
		return
	}

	res, err := h.deps.Check(r.Context(), req.click())
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.rejected(r, WrapKind(op, ErrBadRequest, err))
		writeJSON(w, http.StatusBadRequest, types.CheckResult{Correct: false})
		return
	case err != nil:
		h.log.Error(r.Context(), "check failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CheckHandler) rejected(r *http.Request, err error) {
	h.log.Debug(r.Context(), "check rejected", logger.Error(err))
}
