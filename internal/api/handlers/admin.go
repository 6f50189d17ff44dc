package handlers

import (
	"log"
	"net/http"

	"github.com/picklewheel/picklewheel/internal/api/middleware"
	"github.com/picklewheel/picklewheel/internal/domain"
	"github.com/picklewheel/picklewheel/internal/service"
)

type AdminHandler struct {
	metricsService *service.MetricsService
}

func NewAdminHandler(metricsService *service.MetricsService) *AdminHandler {
	return &AdminHandler{metricsService: metricsService}
}

// Metrics returns the system snapshot. Admin role only.
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if user.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	snapshot, err := h.metricsService.Snapshot(r.Context())
	if err != nil {
		log.Printf("ERROR [admin.Metrics] failed to collect metrics: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
