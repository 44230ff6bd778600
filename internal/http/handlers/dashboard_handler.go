package handlers

import (
	"net/http"

	mw "github.com/laisvitor/wedding-backend/internal/http/middleware"
	"github.com/laisvitor/wedding-backend/internal/http/response"
	"github.com/laisvitor/wedding-backend/internal/repo/postgres"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type DashboardHandler struct {
	Repo postgres.StatsRepo
}

func NewDashboardHandler(repo postgres.StatsRepo) *DashboardHandler {
	return &DashboardHandler{Repo: repo}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Dashboard(r.Context(), mw.AdminID(r))
	if err != nil {
		logger.ErrorContext(r.Context(), "dashboard stats failed", "error", err)
		response.InternalError(w, "erro ao consultar estatísticas")
		return
	}
	response.WriteJSON(w, http.StatusOK, s)
}
