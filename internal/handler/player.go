package handler

import (
	"net/http"
	"strconv"

	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/service"
)

// PlayerHandler handles /api/players.
type PlayerHandler struct {
	players *service.PlayerDirectory
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(players *service.PlayerDirectory) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// List handles GET /api/players.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.players.List(r.Context()))
}

// Get handles GET /api/players/{id}.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamID(r, "id", "player")
	if err != nil {
		RespondError(w, err)
		return
	}

	player, err := h.players.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	if player == nil {
		RespondError(w, domain.ErrNotFound("player", strconv.FormatInt(id, 10)))
		return
	}

	RespondJSON(w, http.StatusOK, player)
}

// Create handles POST /api/players.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.NewPlayer
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	player, err := h.players.Create(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, player)
}

// Update handles PATCH /api/players/{id}.
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamID(r, "id", "player")
	if err != nil {
		RespondError(w, err)
		return
	}

	var patch domain.PlayerPatch
	if err := DecodeJSON(r, &patch); err != nil {
		RespondBadBody(w)
		return
	}

	player, err := h.players.Update(r.Context(), id, patch)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, player)
}

// Delete handles DELETE /api/players/{id}.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamID(r, "id", "player")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.players.Delete(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusNoContent, nil)
}
