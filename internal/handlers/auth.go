package handlers

import (
	"errors"
	"net/http"

	"github.com/shrimpsizemoose/kateder/internal/app"
	"github.com/shrimpsizemoose/kateder/internal/metrics"
)

type AuthHandler struct {
	service *app.Service
}

func NewAuthHandler(service *app.Service) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	resolved, err := h.service.Login(req.Username, req.Password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
		return
	}
	if err != nil {
		writeServerError(w, "Login failed", err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, resolved)
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := app.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), app.BearerToken(r)); err != nil {
		writeServerError(w, "Logout failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
