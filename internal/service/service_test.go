package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/mock"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// repoMocks holds one mock per repository and the Storages built from them.
type repoMocks struct {
	users         *mock.MockUserRepository
	videos        *mock.MockVideoRepository
	comments      *mock.MockCommentRepository
	posts         *mock.MockPostRepository
	playlists     *mock.MockPlaylistRepository
	likes         *mock.MockLikeRepository
	subscriptions *mock.MockSubscriptionRepository
	dashboard     *mock.MockDashboardRepository

	storages *store.Storages
}

func newRepoMocks(ctrl *gomock.Controller) *repoMocks {
	m := &repoMocks{
		users:         mock.NewMockUserRepository(ctrl),
		videos:        mock.NewMockVideoRepository(ctrl),
		comments:      mock.NewMockCommentRepository(ctrl),
		posts:         mock.NewMockPostRepository(ctrl),
		playlists:     mock.NewMockPlaylistRepository(ctrl),
		likes:         mock.NewMockLikeRepository(ctrl),
		subscriptions: mock.NewMockSubscriptionRepository(ctrl),
		dashboard:     mock.NewMockDashboardRepository(ctrl),
	}
	m.storages = &store.Storages{
		UserRepository:         m.users,
		VideoRepository:        m.videos,
		CommentRepository:      m.comments,
		PostRepository:         m.posts,
		PlaylistRepository:     m.playlists,
		LikeRepository:         m.likes,
		SubscriptionRepository: m.subscriptions,
		DashboardRepository:    m.dashboard,
	}
	return m
}

func testAppConfig() config.App {
	return config.App{
		AccessTokenSignKey:   "access-secret",
		RefreshTokenSignKey:  "refresh-secret",
		TokenIssuer:          "go-video-tube-test",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 240 * time.Hour,
		HashKey:              "hash-secret",
		Version:              "test",
	}
}

func testLogger() *logger.Logger {
	return logger.Nop()
}

func profile(id string) models.PublicProfile {
	return models.PublicProfile{ID: id, Username: "user-" + id, FullName: "User " + id, Avatar: "http://cdn/" + id}
}

func assertKind(t *testing.T, want apperr.Kind, err error) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, want, apperr.KindOf(err), "error: %v", err)
	}
}
