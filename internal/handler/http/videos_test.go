package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListVideos(t *testing.T) {
	t.Run("query mapping", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.videos.EXPECT().ListVideos(gomock.Any(), models.ListVideosQuery{
			Page:     2,
			Limit:    5,
			Query:    "cats",
			SortBy:   "views",
			SortType: "asc",
			UserID:   testUserID,
		}).Return(models.Page[models.VideoView]{Items: []models.VideoView{}, TotalCount: 6, TotalPages: 2, CurrentPage: 2, Limit: 5}, nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet,
			"/api/v1/videos?page=2&limit=5&query=%20cats%20&sortBy=views&sortType=ASC&userId="+testUserID, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var page models.Page[models.VideoView]
		decodeData(t, rec, &page)
		assert.Equal(t, int64(6), page.TotalCount)
		assert.NotNil(t, page.Items)
	})

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"non numeric page", "page=first", "page must be a number"},
		{"non numeric limit", "limit=ten", "limit must be a number"},
		{"page beyond addressable rows", "page=" + strconv.Itoa(models.MaxPage+1), fmt.Sprintf("page must be at most %d", models.MaxPage)},
		{"unknown sort field", "sortBy=likes", "validation failed"},
		{"unknown sort direction", "sortType=up", "validation failed"},
		{"malformed owner", "userId=42", "validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/videos?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeEnvelope(t, rec).Message)
		})
	}
}

func TestGetVideo(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/videos/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "videoID must be a valid id", env.Message)
		assert.Equal(t, []string{"videoID must be a valid id"}, env.Errors)
	})

	t.Run("viewer is passed through", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.expectAuth()
		m.videos.EXPECT().GetVideo(gomock.Any(), testIdentity, testVideoID).
			Return(models.VideoView{Video: models.Video{ID: testVideoID, Views: 3}}, nil)

		rec := serve(h, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+testVideoID, nil)))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.VideoView
		decodeData(t, rec, &got)
		assert.Equal(t, int64(3), got.Views)
	})

	t.Run("not found", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.videos.EXPECT().GetVideo(gomock.Any(), models.Identity{}, testVideoID).
			Return(models.VideoView{}, service.ErrVideoNotFound)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+testVideoID, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "video not found", decodeEnvelope(t, rec).Message)
	})

	t.Run("unclassified failure is masked", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.videos.EXPECT().GetVideo(gomock.Any(), gomock.Any(), testVideoID).
			Return(models.VideoView{}, errors.New("pq: relation \"videos\" does not exist"))

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+testVideoID, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeEnvelope(t, rec).Message)
		assert.NotContains(t, rec.Body.String(), "relation")
	})
}

func TestPublishVideo(t *testing.T) {
	fields := map[string]string{"title": " Title ", "description": "Desc", "duration": "42"}

	t.Run("created", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.expectAuth()
		m.videos.EXPECT().PublishVideo(gomock.Any(), testIdentity,
			models.PublishVideoRequest{Title: "Title", Description: "Desc", Duration: 42},
			gomock.Any(), gomock.Any(),
		).DoAndReturn(func(_ context.Context, _ models.Identity, req models.PublishVideoRequest, videoFile, thumbnail *models.Upload) (models.Video, error) {
			require.NotNil(t, videoFile)
			require.NotNil(t, thumbnail)
			assert.Equal(t, "clip.mp4", videoFile.FileName)
			return models.Video{ID: testVideoID, Title: req.Title, Duration: req.Duration, IsPublished: true}, nil
		})

		req := newMultipartRequest(t, http.MethodPost, "/api/v1/videos", fields,
			map[string]string{"videoFile": "clip.mp4", "thumbnail": "thumb.png"})
		rec := serve(h, authorized(req))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var video models.Video
		decodeData(t, rec, &video)
		assert.Equal(t, testVideoID, video.ID)
	})

	t.Run("bad duration", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.expectAuth()

		req := newMultipartRequest(t, http.MethodPost, "/api/v1/videos",
			map[string]string{"title": "T", "description": "D", "duration": "long"}, nil)
		rec := serve(h, authorized(req))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "duration must be a number", decodeEnvelope(t, rec).Message)
	})

	t.Run("missing video file", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.expectAuth()
		m.videos.EXPECT().PublishVideo(gomock.Any(), gomock.Any(), gomock.Any(), nil, nil).
			Return(models.Video{}, service.ErrVideoFileRequired)

		rec := serve(h, authorized(newMultipartRequest(t, http.MethodPost, "/api/v1/videos", fields, nil)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "video file is required", decodeEnvelope(t, rec).Message)
	})
}

func TestUpdateVideo(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.videos.EXPECT().UpdateVideo(gomock.Any(), testIdentity, testVideoID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ models.Identity, _ string, req models.UpdateVideoRequest) (models.Video, error) {
			assert.Equal(t, "New title", req.Title)
			assert.Nil(t, req.Thumbnail)
			return models.Video{}, service.ErrForbidden
		})

	req := newMultipartRequest(t, http.MethodPatch, "/api/v1/videos/"+testVideoID,
		map[string]string{"title": "New title", "description": "New description"}, nil)
	rec := serve(h, authorized(req))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "you are not allowed to modify this resource", decodeEnvelope(t, rec).Message)
}

func TestDeleteVideo(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.videos.EXPECT().DeleteVideo(gomock.Any(), testIdentity, testVideoID).Return(nil)

	rec := serve(h, authorized(httptest.NewRequest(http.MethodDelete, "/api/v1/videos/"+testVideoID, nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Video deleted successfully", decodeEnvelope(t, rec).Message)
}

func TestTogglePublish(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth()
	m.videos.EXPECT().TogglePublish(gomock.Any(), testIdentity, testVideoID).
		Return(models.Video{ID: testVideoID, IsPublished: false}, nil)

	rec := serve(h, authorized(httptest.NewRequest(http.MethodPatch, "/api/v1/videos/"+testVideoID+"/publish", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Video publish status set to false", decodeEnvelope(t, rec).Message)
}
