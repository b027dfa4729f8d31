package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-video-tube/models"
)

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ContentRequest
	if err = h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.CreatePost(r.Context(), caller, strings.TrimSpace(req.Content))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusCreated, post, "Post created successfully")
}

func (h *Handler) listUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.services.PostService.ListUserPosts(r.Context(), userID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, posts, "Posts fetched successfully")
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	postID, err := h.pathID(r, "postID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ContentRequest
	if err = h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.UpdatePost(r.Context(), caller, postID, strings.TrimSpace(req.Content))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, post, "Post updated successfully")
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	postID, err := h.pathID(r, "postID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PostService.DeletePost(r.Context(), caller, postID); err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, struct{}{}, "Post deleted successfully")
}
