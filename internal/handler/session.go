package handler

import (
	"net/http"
	"strconv"

	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/service"
)

// SessionHandler handles /api/sessions.
type SessionHandler struct {
	sessions *service.SessionDirectory
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *service.SessionDirectory) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// List handles GET /api/sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.sessions.List(r.Context()))
}

// Get handles GET /api/sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	if session == nil {
		RespondError(w, domain.ErrNotFound("training session", strconv.FormatInt(id, 10)))
		return
	}

	RespondJSON(w, http.StatusOK, session)
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.NewTrainingSession
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}

	session, err := h.sessions.Create(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, session)
}

// Update handles PATCH /api/sessions/{id}.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}

	var patch domain.SessionPatch
	if err := DecodeJSON(r, &patch); err != nil {
		RespondBadBody(w)
		return
	}

	session, err := h.sessions.Update(r.Context(), id, patch)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /api/sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamID(r, "id", "training session")
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.sessions.Delete(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusNoContent, nil)
}
