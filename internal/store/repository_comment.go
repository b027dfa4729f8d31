package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
)

type commentRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	return r.findOne(ctx, "*commentRepository.CreateComment", createComment, comment.ID, comment.VideoID, comment.OwnerID, comment.Content)
}

func (r *commentRepository) FindCommentByID(ctx context.Context, id string) (models.Comment, error) {
	return r.findOne(ctx, "*commentRepository.FindCommentByID", findCommentByID, id)
}

func (r *commentRepository) UpdateComment(ctx context.Context, id, content string) (models.Comment, error) {
	return r.findOne(ctx, "*commentRepository.UpdateComment", updateComment, id, content)
}

func (r *commentRepository) DeleteComment(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := r.db.deleteWithLikes(ctx, deleteCommentLikes, deleteComment, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*commentRepository.DeleteComment").Msg("error deleting comment")
		}
		return err
	}

	return nil
}

// ListVideoComments ranks the comments of a video by like count. The count is
// computed by a grouped subquery joined onto the page.
func (r *commentRepository) ListVideoComments(ctx context.Context, videoID string, page models.PageRequest) ([]models.CommentView, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countVideoComments, videoID).Scan(&total); err != nil {
		log.Err(err).Str("func", "*commentRepository.ListVideoComments").Msg("error counting comments")
		return nil, 0, r.db.mapError(err)
	}

	rows, err := r.db.QueryContext(ctx, listVideoComments, videoID, page.Limit, page.Offset())
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListVideoComments").Msg("error listing comments")
		return nil, 0, r.db.mapError(err)
	}

	comments, err := collectRows(rows, func(row rowScanner) (models.CommentView, error) {
		var view models.CommentView
		comment, err := scanComment(row, &view.LikesCount)
		view.Comment = comment
		return view, err
	})
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.ListVideoComments").Msg("error scanning comments")
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) findOne(ctx context.Context, funcName, query string, args ...any) (models.Comment, error) {
	log := logger.FromContext(ctx)

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error querying comment")
		}
		return models.Comment{}, r.db.mapError(err)
	}

	return comment, nil
}
