package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-video-tube/models"
)

type toggleFunc func(ctx context.Context, identity models.Identity, targetID string) (models.ToggleResult, error)

// toggle flips the caller's edge to the target named by param and reports
// whether it exists afterwards.
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, param string, fn toggleFunc, message string) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	targetID, err := h.pathID(r, param)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := fn(r.Context(), caller, targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, result, message)
}

func (h *Handler) toggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoID", h.services.SocialService.ToggleVideoLike, "Video like toggled")
}

func (h *Handler) toggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentID", h.services.SocialService.ToggleCommentLike, "Comment like toggled")
}

func (h *Handler) togglePostLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "postID", h.services.SocialService.TogglePostLike, "Post like toggled")
}

func (h *Handler) toggleSubscription(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "channelID", h.services.SocialService.ToggleSubscription, "Subscription toggled")
}

func (h *Handler) likedVideos(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	videos, err := h.services.SocialService.LikedVideos(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, videos, "Liked videos fetched successfully")
}

func (h *Handler) subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := h.pathID(r, "channelID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.services.SocialService.Subscribers(r.Context(), channelID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, entries, "Subscribers fetched successfully")
}

func (h *Handler) subscriptions(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.services.SocialService.Subscriptions(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, entries, "Subscribed channels fetched successfully")
}
