package handler

import (
	"net/http"

	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/service"
)

// AttendanceHandler handles /api/sessions/{id}/attendance and the
// available-players view.
type AttendanceHandler struct {
	attendance *service.AttendanceManager
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceManager) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List handles GET /api/sessions/{id}/attendance?q=name.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}

	rows, err := h.attendance.List(r.Context(), sessionID, r.URL.Query().Get("q"))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, rows)
}

// AddPlayer handles POST /api/sessions/{id}/attendance.
func (h *AttendanceHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	sessionID, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input domain.AddPlayerInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	row, err := h.attendance.AddPlayer(r.Context(), sessionID, input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, row)
}

// Update handles PATCH /api/sessions/{id}/attendance/{playerID}.
func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	sessionID, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}
	playerID, err := URLParamID(r, "playerID", "player")
	if err != nil {
		RespondError(w, err)
		return
	}

	var patch domain.AttendancePatch
	if err := DecodeJSON(r, &patch); err != nil {
		RespondBadBody(w)
		return
	}

	row, err := h.attendance.Update(r.Context(), sessionID, playerID, patch)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, row)
}

// RemovePlayer handles DELETE /api/sessions/{id}/attendance/{playerID}.
func (h *AttendanceHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	sessionID, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}
	playerID, err := URLParamID(r, "playerID", "player")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.attendance.RemovePlayer(r.Context(), sessionID, playerID); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusNoContent, nil)
}

// AvailablePlayers handles GET /api/sessions/{id}/available-players.
func (h *AttendanceHandler) AvailablePlayers(w http.ResponseWriter, r *http.Request) {
	sessionID, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}

	players, err := h.attendance.AvailablePlayers(r.Context(), sessionID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, players)
}
