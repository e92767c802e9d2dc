package handlers

import (
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/kateder/internal/app"
)

// KVHandler exposes the generic namespaced key-value mirror the front-end
// uses to sync its client-local state. It has no relation to the entity model.
type KVHandler struct {
	service *app.Service
}

func NewKVHandler(service *app.Service) *KVHandler {
	return &KVHandler{
		service: service,
	}
}

func (h *KVHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	namespace := r.URL.Query().Get("namespace")
	if namespace == "" {
		namespace = "global"
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		writeError(w, http.StatusBadRequest, "INVALID_NAMESPACE")
		return
	}

	items, err := h.service.Store.KVSnapshot(namespace)
	if err != nil {
		writeServerError(w, "Failed to snapshot namespace", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"namespace": namespace,
		"items":     items,
	})
}

func (h *KVHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req kvUpsertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	if err := h.service.Store.KVUpsert(req.Namespace, req.Key, req.Value); err != nil {
		writeServerError(w, "Failed to upsert kv entry", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *KVHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req kvDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	if err := h.service.Store.KVDelete(req.Namespace, req.Key); err != nil {
		writeServerError(w, "Failed to delete kv entry", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *KVHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	var req kvClearRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	if err := h.service.Store.KVClear(req.Namespace); err != nil {
		writeServerError(w, "Failed to clear namespace", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
