package http

import "net/http"

func (h *Handler) channelStats(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.services.DashboardService.ChannelStats(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *Handler) channelVideos(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	videos, err := h.services.DashboardService.ChannelVideos(r.Context(), caller, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, videos, "Channel videos fetched successfully")
}
