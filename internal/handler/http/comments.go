package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-video-tube/models"
)

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	videoID, err := h.pathID(r, "videoID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.services.CommentService.ListVideoComments(r.Context(), viewer(r), videoID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, comments, "Comments fetched successfully")
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	videoID, err := h.pathID(r, "videoID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ContentRequest
	if err = h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.AddComment(r.Context(), caller, videoID, strings.TrimSpace(req.Content))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusCreated, comment, "Comment added successfully")
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	commentID, err := h.pathID(r, "commentID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ContentRequest
	if err = h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.UpdateComment(r.Context(), caller, commentID, strings.TrimSpace(req.Content))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, comment, "Comment updated successfully")
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	commentID, err := h.pathID(r, "commentID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.CommentService.DeleteComment(r.Context(), caller, commentID); err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, struct{}{}, "Comment deleted successfully")
}
