package handlers

import (
	"net/http"
	"time"

	"github.com/shrimpsizemoose/kateder/internal/app"
)

// NewRouter wires the full API surface onto a fresh mux.
func NewRouter(service *app.Service) *http.ServeMux {
	authHandler := NewAuthHandler(service)
	classHandler := NewClassHandler(service)
	studentHandler := NewStudentHandler(service)
	teacherHandler := NewTeacherHandler(service)
	attendanceHandler := NewAttendanceHandler(service)
	evaluationHandler := NewEvaluationHandler(service)
	statsHandler := NewStatsHandler(service)
	kvHandler := NewKVHandler(service)

	mux := http.NewServeMux()
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.HandleFunc(pattern, Instrument(pattern, fn))
	}
	protected := func(pattern string, fn http.HandlerFunc) {
		handle(pattern, RequireAuth(service, fn))
	}

	handle("POST /api/auth/login", authHandler.HandleLogin)
	protected("GET /api/auth/me", authHandler.HandleMe)
	handle("POST /api/auth/logout", authHandler.HandleLogout)

	handle("GET /api/classes", classHandler.HandleList)
	handle("POST /api/classes", classHandler.HandleCreate)
	handle("PUT /api/classes/{id}", classHandler.HandleUpdate)
	handle("DELETE /api/classes/{id}", classHandler.HandleDelete)
	handle("GET /api/classes/{id}/students", classHandler.HandleListStudents)
	handle("GET /api/classes/{id}/students/evaluation-stats", classHandler.HandleEvaluationStats)

	handle("POST /api/students", studentHandler.HandleCreate)
	handle("DELETE /api/students/{id}", studentHandler.HandleDelete)
	handle("POST /api/students/batch-delete", studentHandler.HandleBatchDelete)

	handle("GET /api/teachers", teacherHandler.HandleList)
	handle("POST /api/teachers", teacherHandler.HandleCreate)
	handle("PUT /api/teachers/{id}", teacherHandler.HandleUpdate)
	handle("DELETE /api/teachers/{id}", teacherHandler.HandleDelete)
	handle("GET /api/teachers/{id}/class-permissions", teacherHandler.HandleGetPermissions)
	handle("PUT /api/teachers/{id}/class-permissions", teacherHandler.HandleReplacePermissions)

	protected("GET /api/attendance", attendanceHandler.HandleList)
	protected("POST /api/attendance", attendanceHandler.HandleMark)
	protected("POST /api/evaluations", evaluationHandler.HandleCreate)
	protected("GET /api/statistics/overview", statsHandler.HandleOverview)
	protected("GET /api/statistics/teacher", statsHandler.HandleTeacher)

	handle("GET /api/kv/snapshot", kvHandler.HandleSnapshot)
	handle("POST /api/kv/upsert", kvHandler.HandleUpsert)
	handle("POST /api/kv/delete", kvHandler.HandleDelete)
	handle("POST /api/kv/clear", kvHandler.HandleClear)

	handle("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":        true,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return mux
}
