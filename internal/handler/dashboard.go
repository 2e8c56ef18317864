package handler

import (
	"net/http"

	"github.com/squadroom/platform/internal/service"
)

// DashboardHandler serves the aggregate view.
type DashboardHandler struct {
	dashboard *service.Dashboard
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard *service.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.dashboard.Stats(r.Context()))
}
