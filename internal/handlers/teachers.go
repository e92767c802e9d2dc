package handlers

import (
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/kateder/internal/app"
	"github.com/shrimpsizemoose/kateder/internal/models"
)

type TeacherHandler struct {
	service *app.Service
}

func NewTeacherHandler(service *app.Service) *TeacherHandler {
	return &TeacherHandler{
		service: service,
	}
}

func (h *TeacherHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.service.Store.ListTeachersWithClasses()
	if err != nil {
		writeServerError(w, "Failed to list teachers", err)
		return
	}

	writeJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTeacherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	existing, err := h.service.Store.GetUserByUsername(username)
	if err != nil {
		writeServerError(w, "Failed to check username", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "DUPLICATE_USERNAME")
		return
	}

	hash, err := app.HashPassword(req.Password)
	if err != nil {
		writeServerError(w, "Failed to hash password", err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleTeacher
	}

	id, err := h.service.Store.CreateUser(username, strings.TrimSpace(req.Name), hash, role)
	if err != nil {
		writeServerError(w, "Failed to create teacher", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}

func (h *TeacherHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_TEACHER_ID")
		return
	}

	var req updateTeacherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	current, err := h.service.Store.GetUserByID(teacherID)
	if err != nil {
		writeServerError(w, "Failed to load teacher", err)
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "TEACHER_NOT_FOUND")
		return
	}

	name := current.Name
	if req.Name != nil {
		name = *req.Name
	}
	name = strings.TrimSpace(name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "INVALID_NAME")
		return
	}

	role := current.Role
	if req.Role != nil {
		role = *req.Role
	}

	passwordHash := current.PasswordHash
	if req.Password != nil {
		passwordHash, err = app.HashPassword(*req.Password)
		if err != nil {
			writeServerError(w, "Failed to hash password", err)
			return
		}
	}

	if err := h.service.Store.UpdateUser(teacherID, name, role, passwordHash); err != nil {
		writeServerError(w, "Failed to update teacher", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": teacherID})
}

func (h *TeacherHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_TEACHER_ID")
		return
	}

	deleted, err := h.service.Store.DeleteUserCascade(teacherID)
	if err != nil {
		writeServerError(w, "Failed to delete teacher", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": teacherID, "deleted": deleted})
}

func (h *TeacherHandler) HandleGetPermissions(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_TEACHER_ID")
		return
	}

	teacher, err := h.service.Store.GetUserByID(teacherID)
	if err != nil {
		writeServerError(w, "Failed to load teacher", err)
		return
	}
	if teacher == nil {
		writeError(w, http.StatusNotFound, "TEACHER_NOT_FOUND")
		return
	}

	classIDs, err := h.service.Store.ListTeacherClassIDs(teacherID)
	if err != nil {
		writeServerError(w, "Failed to list teacher permissions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"classIds": classIDs})
}

// HandleReplacePermissions swaps the whole assignment set. Every supplied
// class id must exist, otherwise nothing changes.
func (h *TeacherHandler) HandleReplacePermissions(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_TEACHER_ID")
		return
	}

	var req updatePermissionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	teacher, err := h.service.Store.GetUserByID(teacherID)
	if err != nil {
		writeServerError(w, "Failed to load teacher", err)
		return
	}
	if teacher == nil {
		writeError(w, http.StatusNotFound, "TEACHER_NOT_FOUND")
		return
	}

	classIDs := dedupeIDs(req.ClassIDs)
	if len(classIDs) > 0 {
		count, err := h.service.Store.CountClassesByIDs(classIDs)
		if err != nil {
			writeServerError(w, "Failed to validate class ids", err)
			return
		}
		if count != len(classIDs) {
			writeError(w, http.StatusBadRequest, "INVALID_CLASS_IDS")
			return
		}
	}

	if err := h.service.Store.ReplaceTeacherClassPermissions(teacherID, classIDs); err != nil {
		writeServerError(w, "Failed to replace teacher permissions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"teacherId": teacherID,
		"classIds":  classIDs,
	})
}
