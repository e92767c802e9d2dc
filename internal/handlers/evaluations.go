package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shrimpsizemoose/kateder/internal/app"
	"github.com/shrimpsizemoose/kateder/internal/metrics"
)

type EvaluationHandler struct {
	service *app.Service
}

func NewEvaluationHandler(service *app.Service) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
	}
}

func (h *EvaluationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequest
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

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		writeServerError(w, "Failed to serialize tags", err)
		return
	}

	id, err := h.service.Store.CreateEvaluation(req.ClassID, req.StudentID, user.ID, req.Score, string(tagsJSON), req.Comment)
	if err != nil {
		writeServerError(w, "Failed to create evaluation", err)
		return
	}

	metrics.EvaluationsTotal.WithLabelValues(strconv.Itoa(req.Score)).Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}
