package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/mock"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestVideoSvc(ctrl *gomock.Controller) (VideoService, *repoMocks, *mock.MockStorage) {
	m := newRepoMocks(ctrl)
	storage := mock.NewMockStorage(ctrl)
	return NewVideoService(m.storages, storage, testLogger()), m, storage
}

func expectVideoEnrichment(m *repoMocks, ownerID string, videoIDs ...string) {
	m.users.EXPECT().FindProfiles(gomock.Any(), []string{ownerID}).
		Return(map[string][]models.PublicProfile{ownerID: {profile(ownerID)}}, nil)
	m.likes.EXPECT().CountLikes(gomock.Any(), models.LikeTargetVideo, videoIDs).
		Return(map[string]int64{}, nil)
}

func TestVideoService_MutationsCheckExistenceThenOwnership(t *testing.T) {
	owner := models.Identity{UserID: "owner"}
	stranger := models.Identity{UserID: "stranger"}
	video := models.Video{ID: "v1", OwnerID: "owner", Title: "t", IsPublished: true}

	tests := []struct {
		name string
		call func(svc VideoService, identity models.Identity, id string) error
	}{
		{
			name: "update",
			call: func(svc VideoService, identity models.Identity, id string) error {
				_, err := svc.UpdateVideo(context.Background(), identity, id, models.UpdateVideoRequest{Title: "x", Description: "y"})
				return err
			},
		},
		{
			name: "delete",
			call: func(svc VideoService, identity models.Identity, id string) error {
				return svc.DeleteVideo(context.Background(), identity, id)
			},
		},
		{
			name: "toggle publish",
			call: func(svc VideoService, identity models.Identity, id string) error {
				_, err := svc.TogglePublish(context.Background(), identity, id)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/missing video is not found even for a stranger", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m, _ := newTestVideoSvc(ctrl)
			m.videos.EXPECT().FindVideoByID(gomock.Any(), "gone").Return(models.Video{}, store.ErrNotFound)

			err := tt.call(svc, stranger, "gone")
			assertKind(t, apperr.KindNotFound, err)
		})

		t.Run(tt.name+"/stranger is forbidden", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m, _ := newTestVideoSvc(ctrl)
			m.videos.EXPECT().FindVideoByID(gomock.Any(), "v1").Return(video, nil)

			err := tt.call(svc, stranger, "v1")
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}

	t.Run("owner toggles publish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestVideoSvc(ctrl)
		m.videos.EXPECT().FindVideoByID(gomock.Any(), "v1").Return(video, nil)
		m.videos.EXPECT().SetPublished(gomock.Any(), "v1", false).Return(models.Video{ID: "v1", IsPublished: false}, nil)

		got, err := svc.TogglePublish(context.Background(), owner, "v1")
		require.NoError(t, err)
		assert.False(t, got.IsPublished)
	})

	t.Run("owner deletes and media is removed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, storage := newTestVideoSvc(ctrl)
		withMedia := video
		withMedia.VideoFile = "http://cdn/v.mp4"
		withMedia.Thumbnail = "http://cdn/t.png"

		m.videos.EXPECT().FindVideoByID(gomock.Any(), "v1").Return(withMedia, nil)
		m.videos.EXPECT().DeleteVideo(gomock.Any(), "v1").Return(nil)
		storage.EXPECT().Delete(gomock.Any(), "http://cdn/v.mp4").Return(nil)
		storage.EXPECT().Delete(gomock.Any(), "http://cdn/t.png").Return(nil)

		require.NoError(t, svc.DeleteVideo(context.Background(), owner, "v1"))
	})
}

func TestVideoService_GetVideo_RecordsView(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, _ := newTestVideoSvc(ctrl)
	viewer := models.Identity{UserID: "viewer"}

	m.videos.EXPECT().FindVideoByID(gomock.Any(), "v1").Return(models.Video{ID: "v1", OwnerID: "owner", Views: 4, IsPublished: true}, nil)
	m.videos.EXPECT().IncrementViews(gomock.Any(), "v1").Return(nil)
	m.users.EXPECT().AddToWatchHistory(gomock.Any(), "viewer", "v1").Return(nil)
	expectVideoEnrichment(m, "owner", "v1")

	view, err := svc.GetVideo(context.Background(), viewer, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), view.Views)
	assert.Equal(t, profile("owner"), view.Owner)
}

func TestVideoService_GetVideo_Anonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, _ := newTestVideoSvc(ctrl)

	m.videos.EXPECT().FindVideoByID(gomock.Any(), "v1").Return(models.Video{ID: "v1", OwnerID: "owner", IsPublished: true}, nil)
	expectVideoEnrichment(m, "owner", "v1")

	_, err := svc.GetVideo(context.Background(), models.Identity{}, "v1")
	require.NoError(t, err)
}

func TestVideoService_GetVideo_UnpublishedHiddenFromOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, _ := newTestVideoSvc(ctrl)

	m.videos.EXPECT().FindVideoByID(gomock.Any(), "v1").Return(models.Video{ID: "v1", OwnerID: "owner"}, nil)

	_, err := svc.GetVideo(context.Background(), models.Identity{UserID: "someone"}, "v1")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoService_ListVideos_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, _ := newTestVideoSvc(ctrl)

	query := models.ListVideosQuery{Page: 2, Limit: 2, Query: "cats", SortBy: "views", SortType: "asc", UserID: "owner"}

	m.videos.EXPECT().ListVideos(gomock.Any(),
		models.VideoFilter{Query: "cats", OwnerID: "owner", PublishedOnly: true},
		models.PageRequest{Page: 2, Limit: 2, SortField: "views", SortDirection: models.SortAsc},
	).Return([]models.Video{{ID: "v3", OwnerID: "owner"}, {ID: "v4", OwnerID: "owner"}}, int64(5), nil)
	m.users.EXPECT().FindProfiles(gomock.Any(), []string{"owner"}).
		Return(map[string][]models.PublicProfile{"owner": {profile("owner")}}, nil)
	m.likes.EXPECT().CountLikes(gomock.Any(), models.LikeTargetVideo, []string{"v3", "v4"}).
		Return(map[string]int64{"v4": 1}, nil)

	page, err := svc.ListVideos(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(1), page.Items[1].LikesCount)
}

func TestVideoService_ListVideos_PageBeyondEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, _ := newTestVideoSvc(ctrl)

	m.videos.EXPECT().ListVideos(gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.Video{}, int64(3), nil)

	page, err := svc.ListVideos(context.Background(), models.ListVideosQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, int64(1), page.TotalPages)
	assert.Equal(t, 10, page.Limit)
}

func TestVideoService_PublishVideo(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, storage := newTestVideoSvc(ctrl)
	me := models.Identity{UserID: "u1"}

	storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("http://cdn/videos/x.mp4", nil)
	storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("http://cdn/thumbnails/x.png", nil)
	m.videos.EXPECT().CreateVideo(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, v models.Video) (models.Video, error) {
			assert.Equal(t, "u1", v.OwnerID)
			assert.True(t, v.IsPublished)
			assert.Equal(t, "http://cdn/videos/x.mp4", v.VideoFile)
			assert.Equal(t, "http://cdn/thumbnails/x.png", v.Thumbnail)
			return v, nil
		})

	video, err := svc.PublishVideo(context.Background(), me,
		models.PublishVideoRequest{Title: "Title", Description: "Desc", Duration: 12},
		testUpload("x.mp4"), testUpload("x.png"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), video.Duration)

	_, err = svc.PublishVideo(context.Background(), me, models.PublishVideoRequest{Title: "Title"}, nil, nil)
	assert.ErrorIs(t, err, ErrVideoFileRequired)
}
