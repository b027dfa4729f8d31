package service

import (
	"context"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/models"
)

type dashboardService struct {
	dashboard store.DashboardRepository
	videos    store.VideoRepository
	composer  *viewComposer

	logger *logger.Logger
}

func NewDashboardService(storages *store.Storages, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboard: storages.DashboardRepository,
		videos:    storages.VideoRepository,
		composer:  newViewComposer(storages.UserRepository, storages.LikeRepository),
		logger:    logger,
	}
}

// ChannelStats aggregates the caller's channel counters in one query.
func (s *dashboardService) ChannelStats(ctx context.Context, identity models.Identity) (models.ChannelStats, error) {
	stats, err := s.dashboard.ChannelStats(ctx, identity.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*dashboardService.ChannelStats").Str("user_id", identity.UserID).Msg("error aggregating channel stats")
		return models.ChannelStats{}, storeError(err, nil)
	}
	return stats, nil
}

// ChannelVideos lists every video of the caller, published or not.
func (s *dashboardService) ChannelVideos(ctx context.Context, identity models.Identity, page models.PageRequest) (models.Page[models.VideoView], error) {
	filter := models.VideoFilter{OwnerID: identity.UserID}
	return listVideoViews(ctx, s.videos, s.composer, filter, page.Normalized())
}
