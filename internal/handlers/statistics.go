package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/kateder/internal/app"
)

type StatsHandler struct {
	service *app.Service
}

func NewStatsHandler(service *app.Service) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

func (h *StatsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Store.OverviewStats()
	if err != nil {
		writeServerError(w, "Failed to fetch overview stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) HandleTeacher(w http.ResponseWriter, r *http.Request) {
	user, ok := app.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}

	stats, err := h.service.Store.TeacherStats(user.ID)
	if err != nil {
		writeServerError(w, "Failed to fetch teacher stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
