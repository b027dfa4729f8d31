package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	sq "github.com/Masterminds/squirrel"
)

type videoRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewVideoRepository(db *DB, logger *logger.Logger) VideoRepository {
	logger.Debug().Msg("creating video repository")
	return &videoRepository{
		db:     db,
		logger: logger,
	}
}

func (r *videoRepository) CreateVideo(ctx context.Context, video models.Video) (models.Video, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createVideo, video.ID, video.OwnerID, video.VideoFile, video.Thumbnail,
		video.Title, video.Description, video.Duration, video.IsPublished)

	created, err := scanVideo(row)
	if err != nil {
		log.Err(err).Str("func", "*videoRepository.CreateVideo").Msg("error creating video")
		return models.Video{}, r.db.mapError(err)
	}

	return created, nil
}

func (r *videoRepository) FindVideoByID(ctx context.Context, id string) (models.Video, error) {
	return r.findOne(ctx, "*videoRepository.FindVideoByID", findVideoByID, id)
}

// UpdateVideo overwrites title, description and thumbnail of video.ID.
func (r *videoRepository) UpdateVideo(ctx context.Context, video models.Video) (models.Video, error) {
	return r.findOne(ctx, "*videoRepository.UpdateVideo", updateVideo, video.ID, video.Title, video.Description, video.Thumbnail)
}

// DeleteVideo removes the video, its comments and every like pointing at
// either of them.
func (r *videoRepository) DeleteVideo(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := r.db.deleteWithLikes(ctx, deleteVideoLikes, deleteVideo, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*videoRepository.DeleteVideo").Msg("error deleting video")
		}
		return err
	}

	return nil
}

func (r *videoRepository) SetPublished(ctx context.Context, id string, published bool) (models.Video, error) {
	return r.findOne(ctx, "*videoRepository.SetPublished", setVideoPublished, id, published)
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, incrementVideoViews, id)
	if err != nil {
		log.Err(err).Str("func", "*videoRepository.IncrementViews").Msg("error incrementing views")
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// ListVideos returns one page of videos matching filter and the total number
// of matches. Rows are ordered by the requested column and then by id.
func (r *videoRepository) ListVideos(ctx context.Context, filter models.VideoFilter, page models.PageRequest) ([]models.Video, int64, error) {
	log := logger.FromContext(ctx)

	where := videoFilterClause(filter)

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("videos").Where(where).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*videoRepository.ListVideos").Msg("error building count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*videoRepository.ListVideos").Msg("error counting videos")
		return nil, 0, r.db.mapError(err)
	}

	listQuery, listArgs, err := psql.
		Select(videoColumns).
		From("videos").
		Where(where).
		OrderBy(orderBy(page, videoSortColumns, "created_at")...).
		Limit(uint64(page.Limit)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*videoRepository.ListVideos").Msg("error building list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", "*videoRepository.ListVideos").Msg("error listing videos")
		return nil, 0, r.db.mapError(err)
	}

	videos, err := collectRows(rows, func(row rowScanner) (models.Video, error) { return scanVideo(row) })
	if err != nil {
		log.Err(err).Str("func", "*videoRepository.ListVideos").Msg("error scanning videos")
		return nil, 0, err
	}

	return videos, total, nil
}

func videoFilterClause(filter models.VideoFilter) sq.And {
	where := sq.And{}
	if filter.PublishedOnly {
		where = append(where, sq.Eq{"is_published": true})
	}
	if filter.OwnerID != "" {
		where = append(where, sq.Eq{"owner_id": filter.OwnerID})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := containsPattern(q)
		where = append(where, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	return where
}

func (r *videoRepository) findOne(ctx context.Context, funcName, query string, args ...any) (models.Video, error) {
	log := logger.FromContext(ctx)

	video, err := scanVideo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error querying video")
		}
		return models.Video{}, r.db.mapError(err)
	}

	return video, nil
}
