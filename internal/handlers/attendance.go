package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/kateder/internal/app"
	"github.com/shrimpsizemoose/kateder/internal/metrics"
)

type AttendanceHandler struct {
	service *app.Service
}

func NewAttendanceHandler(service *app.Service) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
	}
}

func (h *AttendanceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.ParseInt(r.URL.Query().Get("classId"), 10, 64)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if err != nil || classID <= 0 || date == "" {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY")
		return
	}

	records, err := h.service.Store.ListAttendance(classID, date)
	if err != nil {
		writeServerError(w, "Failed to list attendance", err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// HandleMark upserts the per-day mark, so attendance can be corrected
// same-day without duplicating rows.
func (h *AttendanceHandler) HandleMark(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	user, ok := app.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}

	if err := h.service.Store.UpsertAttendance(req.ClassID, req.StudentID, user.ID, req.Status, req.Date); err != nil {
		writeServerError(w, "Failed to record attendance", err)
		return
	}

	metrics.AttendanceMarksTotal.WithLabelValues(req.Status).Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
