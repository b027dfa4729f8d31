package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-video-tube/models"
)

func (h *Handler) createPlaylist(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.playlistRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	playlist, err := h.services.PlaylistService.CreatePlaylist(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *Handler) listUserPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	playlists, err := h.services.PlaylistService.ListUserPlaylists(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, playlists, "User playlists fetched successfully")
}

func (h *Handler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, err := h.pathID(r, "playlistID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	playlist, err := h.services.PlaylistService.GetPlaylist(r.Context(), playlistID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *Handler) updatePlaylist(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	playlistID, err := h.pathID(r, "playlistID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.playlistRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	playlist, err := h.services.PlaylistService.UpdatePlaylist(r.Context(), caller, playlistID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *Handler) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	playlistID, err := h.pathID(r, "playlistID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PlaylistService.DeletePlaylist(r.Context(), caller, playlistID); err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, struct{}{}, "Playlist deleted successfully")
}

func (h *Handler) addVideoToPlaylist(w http.ResponseWriter, r *http.Request) {
	h.playlistMembership(w, r, h.services.PlaylistService.AddVideo, "Video added to playlist")
}

func (h *Handler) removeVideoFromPlaylist(w http.ResponseWriter, r *http.Request) {
	h.playlistMembership(w, r, h.services.PlaylistService.RemoveVideo, "Video removed from playlist")
}

type membershipChange func(ctx context.Context, identity models.Identity, playlistID, videoID string) error

func (h *Handler) playlistMembership(w http.ResponseWriter, r *http.Request, change membershipChange, message string) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	playlistID, err := h.pathID(r, "playlistID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	videoID, err := h.pathID(r, "videoID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = change(r.Context(), caller, playlistID, videoID); err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, struct{}{}, message)
}

func (h *Handler) playlistRequest(r *http.Request) (models.PlaylistRequest, error) {
	var req models.PlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		return req, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	return req, h.validator.Validate(r.Context(), req)
}
