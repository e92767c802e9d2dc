package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/kateder/internal/app"
)

type StudentHandler struct {
	service *app.Service
}

func NewStudentHandler(service *app.Service) *StudentHandler {
	return &StudentHandler{
		service: service,
	}
}

func (h *StudentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	class, err := h.service.Store.GetClass(req.ClassID)
	if err != nil {
		writeServerError(w, "Failed to load class", err)
		return
	}
	if class == nil {
		writeError(w, http.StatusNotFound, "CLASS_NOT_FOUND")
		return
	}

	// Seat numbers are unique within a class, but only when actually set.
	if req.StudentNo != "" {
		taken, err := h.service.Store.HasStudentNo(req.ClassID, req.StudentNo)
		if err != nil {
			writeServerError(w, "Failed to check student number", err)
			return
		}
		if taken {
			writeError(w, http.StatusConflict, "DUPLICATE_STUDENT_NO")
			return
		}
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	id, err := h.service.Store.CreateStudent(req.ClassID, req.StudentNo, req.Name, status)
	if err != nil {
		writeServerError(w, "Failed to create student", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}

func (h *StudentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_STUDENT_ID")
		return
	}

	deleted, err := h.service.Store.DeleteStudentCascade(studentID)
	if err != nil {
		writeServerError(w, "Failed to delete student", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": studentID, "deleted": deleted})
}

// HandleBatchDelete reports deleted < requested when some ids were already
// gone; that is not an error.
func (h *StudentHandler) HandleBatchDelete(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteStudentsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	ids := dedupeIDs(req.StudentIDs)
	deleted, err := h.service.Store.BatchDeleteStudents(ids)
	if err != nil {
		writeServerError(w, "Failed to batch-delete students", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"requested": len(ids),
		"deleted":   deleted,
	})
}
