package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	sq "github.com/Masterminds/squirrel"
)

type likeRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewLikeRepository(db *DB, logger *logger.Logger) LikeRepository {
	logger.Debug().Msg("creating like repository")
	return &likeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *likeRepository) LikeExists(ctx context.Context, likedBy string, targetType models.LikeTarget, targetID string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, likeExists, likedBy, string(targetType), targetID).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*likeRepository.LikeExists").Msg("error checking like")
		return false, r.db.mapError(err)
	}

	return exists, nil
}

// CreateLike inserts the edge. A concurrent duplicate is reported as
// [ErrAlreadyExists] by the unique (liked_by, target_type, target_id) key.
func (r *likeRepository) CreateLike(ctx context.Context, like models.Like) (models.Like, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createLike, like.ID, like.LikedBy, string(like.TargetType), like.TargetID).
		Scan(&like.CreatedAt)
	if err != nil {
		err = r.db.mapError(err)
		if !errors.Is(err, ErrAlreadyExists) {
			log.Err(err).Str("func", "*likeRepository.CreateLike").Msg("error creating like")
		}
		return models.Like{}, err
	}

	return like, nil
}

// DeleteLike reports whether an edge was removed.
func (r *likeRepository) DeleteLike(ctx context.Context, likedBy string, targetType models.LikeTarget, targetID string) (bool, error) {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, deleteLike, likedBy, string(targetType), targetID)
	if err != nil {
		log.Err(err).Str("func", "*likeRepository.DeleteLike").Msg("error deleting like")
		return false, err
	}

	return n > 0, nil
}

// CountLikes counts likes per target with one grouped query.
func (r *likeRepository) CountLikes(ctx context.Context, targetType models.LikeTarget, targetIDs []string) (map[string]int64, error) {
	log := logger.FromContext(ctx)

	if len(targetIDs) == 0 {
		return map[string]int64{}, nil
	}

	query, args, err := psql.
		Select("target_id", "COUNT(*)").
		From("likes").
		Where(sq.Eq{"target_type": string(targetType)}).
		Where(sq.Eq{"target_id": targetIDs}).
		GroupBy("target_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*likeRepository.CountLikes").Msg("error counting likes")
		return nil, r.db.mapError(err)
	}

	counts, err := collectCounts(rows)
	if err != nil {
		log.Err(err).Str("func", "*likeRepository.CountLikes").Msg("error scanning like counts")
		return nil, err
	}

	return counts, nil
}

// LikedVideos returns the published videos liked by userID, most recently
// liked first.
func (r *likeRepository) LikedVideos(ctx context.Context, userID string) ([]models.Video, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, likedVideos, userID)
	if err != nil {
		log.Err(err).Str("func", "*likeRepository.LikedVideos").Msg("error listing liked videos")
		return nil, r.db.mapError(err)
	}

	videos, err := collectRows(rows, func(row rowScanner) (models.Video, error) { return scanVideo(row) })
	if err != nil {
		log.Err(err).Str("func", "*likeRepository.LikedVideos").Msg("error scanning liked videos")
		return nil, err
	}

	return videos, nil
}
