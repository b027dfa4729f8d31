package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	sq "github.com/Masterminds/squirrel"
)

type postRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	return r.findOne(ctx, "*postRepository.CreatePost", createPost, post.ID, post.OwnerID, post.Content)
}

func (r *postRepository) FindPostByID(ctx context.Context, id string) (models.Post, error) {
	return r.findOne(ctx, "*postRepository.FindPostByID", findPostByID, id)
}

func (r *postRepository) UpdatePost(ctx context.Context, id, content string) (models.Post, error) {
	return r.findOne(ctx, "*postRepository.UpdatePost", updatePost, id, content)
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := r.db.deleteWithLikes(ctx, deletePostLikes, deletePost, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*postRepository.DeletePost").Msg("error deleting post")
		}
		return err
	}

	return nil
}

// ListUserPosts pages through the posts of ownerID ordered by creation time.
func (r *postRepository) ListUserPosts(ctx context.Context, ownerID string, page models.PageRequest) ([]models.Post, int64, error) {
	log := logger.FromContext(ctx)

	where := sq.Eq{"owner_id": ownerID}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("posts").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*postRepository.ListUserPosts").Msg("error counting posts")
		return nil, 0, r.db.mapError(err)
	}

	listQuery, listArgs, err := psql.
		Select(postColumns).
		From("posts").
		Where(where).
		OrderBy(orderBy(page, nil, "created_at")...).
		Limit(uint64(page.Limit)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListUserPosts").Msg("error listing posts")
		return nil, 0, r.db.mapError(err)
	}

	posts, err := collectRows(rows, scanPost)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListUserPosts").Msg("error scanning posts")
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) findOne(ctx context.Context, funcName, query string, args ...any) (models.Post, error) {
	log := logger.FromContext(ctx)

	post, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error querying post")
		}
		return models.Post{}, r.db.mapError(err)
	}

	return post, nil
}
