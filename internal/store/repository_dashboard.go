package store

import (
	"context"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
)

type dashboardRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewDashboardRepository(db *DB, logger *logger.Logger) DashboardRepository {
	logger.Debug().Msg("creating dashboard repository")
	return &dashboardRepository{
		db:     db,
		logger: logger,
	}
}

// ChannelStats aggregates the channel counters of ownerID in a single query.
func (r *dashboardRepository) ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error) {
	log := logger.FromContext(ctx)

	var stats models.ChannelStats
	err := r.db.QueryRowContext(ctx, channelStats, ownerID).
		Scan(&stats.VideoCount, &stats.SubscriberCount, &stats.TotalLikes, &stats.TotalViews)
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.ChannelStats").Msg("error aggregating channel stats")
		return models.ChannelStats{}, r.db.mapError(err)
	}

	return stats, nil
}
