package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
)

func (h *Handler) listVideos(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	values := r.URL.Query()
	query := models.ListVideosQuery{
		Page:     page.Page,
		Limit:    page.Limit,
		Query:    strings.TrimSpace(values.Get("query")),
		SortBy:   values.Get("sortBy"),
		SortType: strings.ToLower(values.Get("sortType")),
		UserID:   values.Get("userId"),
	}
	if err = h.validator.Validate(r.Context(), query); err != nil {
		writeError(w, r, err)
		return
	}

	videos, err := h.services.VideoService.ListVideos(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, videos, "Videos fetched successfully")
}

func (h *Handler) publishVideo(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.parseMultipart(w, r); err != nil {
		writeError(w, r, err)
		return
	}
	files := newFormFiles(r)
	defer files.close()

	req := models.PublishVideoRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if raw := r.FormValue("duration"); raw != "" {
		req.Duration, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, apperr.Wrap(apperr.KindInvalidInput, "duration must be a number", err))
			return
		}
	}
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	videoFile, err := files.get("videoFile")
	if err != nil {
		writeError(w, r, err)
		return
	}
	thumbnail, err := files.get("thumbnail")
	if err != nil {
		writeError(w, r, err)
		return
	}

	video, err := h.services.VideoService.PublishVideo(r.Context(), caller, req, videoFile, thumbnail)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("video_id", video.ID).Msg("video published")
	writeResponse(w, r, http.StatusCreated, video, "Video published successfully")
}

func (h *Handler) getVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := h.pathID(r, "videoID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	video, err := h.services.VideoService.GetVideo(r.Context(), viewer(r), videoID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, video, "Video fetched successfully")
}

func (h *Handler) updateVideo(w http.ResponseWriter, r *http.Request) {
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

	if err = h.parseMultipart(w, r); err != nil {
		writeError(w, r, err)
		return
	}
	files := newFormFiles(r)
	defer files.close()

	req := models.UpdateVideoRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Thumbnail, err = files.get("thumbnail"); err != nil {
		writeError(w, r, err)
		return
	}

	video, err := h.services.VideoService.UpdateVideo(r.Context(), caller, videoID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, video, "Video updated successfully")
}

func (h *Handler) deleteVideo(w http.ResponseWriter, r *http.Request) {
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

	if err = h.services.VideoService.DeleteVideo(r.Context(), caller, videoID); err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, struct{}{}, "Video deleted successfully")
}

func (h *Handler) togglePublish(w http.ResponseWriter, r *http.Request) {
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

	video, err := h.services.VideoService.TogglePublish(r.Context(), caller, videoID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResponse(w, r, http.StatusOK, video, fmt.Sprintf("Video publish status set to %t", video.IsPublished))
}
