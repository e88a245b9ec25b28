package api

import (
	"context"
	"net/http"

	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/pkg/logger"
)

// CharacterDependencies defines the interface for listing characters.
type CharacterDependencies interface {
	Characters(ctx context.Context) ([]model.Character, error)
}

// CharactersHandler handles character listing requests.
type CharactersHandler struct {
	deps CharacterDependencies
	log  logger.Logger
}

// NewCharactersHandler creates a new characters handler.
func NewCharactersHandler(deps CharacterDependencies, log logger.Logger) *CharactersHandler {
	return &CharactersHandler{deps: deps, log: log}
}

// HandleList handles GET /api/characters. The response includes target
// geometry so the client can draw markers without another round-trip.
func (h *CharactersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_characters"
	chars, err := h.deps.Characters(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "list characters failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, chars)
}
