package http

import (
	"net/http"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, http.StatusOK, h.services.AppInfoService.GetVersionInfo(r.Context()), "server version")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, http.StatusOK, map[string]string{"status": "ok"}, "healthy")
}

// ready answers 503 while the database is unreachable.
func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.Ready(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, map[string]string{"status": "ready"}, "ready")
}
