package handlers

import (
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/kateder/internal/app"
)

type ClassHandler struct {
	service *app.Service
}

func NewClassHandler(service *app.Service) *ClassHandler {
	return &ClassHandler{
		service: service,
	}
}

func (h *ClassHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.Store.ListClasses()
	if err != nil {
		writeServerError(w, "Failed to list classes", err)
		return
	}

	writeJSON(w, http.StatusOK, classes)
}

func (h *ClassHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	id, err := h.service.Store.CreateClass(strings.TrimSpace(req.Name), strings.TrimSpace(req.Grade))
	if err != nil {
		writeServerError(w, "Failed to create class", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}

// HandleUpdate merges the provided fields onto the stored row; an omitted
// field keeps its old value, but the resolved name must stay non-empty.
func (h *ClassHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_CLASS_ID")
		return
	}

	var req updateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	existing, err := h.service.Store.GetClass(classID)
	if err != nil {
		writeServerError(w, "Failed to load class", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "CLASS_NOT_FOUND")
		return
	}

	name := existing.Name
	if req.Name != nil {
		name = *req.Name
	}
	grade := existing.Grade
	if req.Grade != nil {
		grade = *req.Grade
	}

	name = strings.TrimSpace(name)
	grade = strings.TrimSpace(grade)
	if name == "" {
		writeError(w, http.StatusBadRequest, "INVALID_CLASS_NAME")
		return
	}

	if err := h.service.Store.UpdateClass(classID, name, grade); err != nil {
		writeServerError(w, "Failed to update class", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": classID})
}

func (h *ClassHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_CLASS_ID")
		return
	}

	deleted, err := h.service.Store.DeleteClassCascade(classID)
	if err != nil {
		writeServerError(w, "Failed to delete class", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": classID, "deleted": deleted})
}

func (h *ClassHandler) HandleListStudents(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_CLASS_ID")
		return
	}

	students, err := h.service.Store.ListStudentsByClass(classID)
	if err != nil {
		writeServerError(w, "Failed to list students", err)
		return
	}

	writeJSON(w, http.StatusOK, students)
}

func (h *ClassHandler) HandleEvaluationStats(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_CLASS_ID")
		return
	}

	stats, err := h.service.Store.ClassEvaluationStats(classID)
	if err != nil {
		writeServerError(w, "Failed to fetch class evaluation stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
