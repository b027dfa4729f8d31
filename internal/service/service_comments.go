package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
)

type commentService struct {
	comments store.CommentRepository
	videos   store.VideoRepository
	composer *viewComposer

	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

func NewCommentService(storages *store.Storages, logger *logger.Logger) CommentService {
	return &commentService{
		comments:    storages.CommentRepository,
		videos:      storages.VideoRepository,
		composer:    newViewComposer(storages.UserRepository, storages.LikeRepository),
		idGenerator: utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

// ListVideoComments returns one page of a video's comments, most liked
// first.
func (s *commentService) ListVideoComments(ctx context.Context, viewer models.Identity, videoID string, page models.PageRequest) (models.Page[models.CommentView], error) {
	page = page.Normalized()

	if _, err := visibleVideo(ctx, s.videos, viewer, videoID); err != nil {
		return models.Page[models.CommentView]{}, err
	}

	comments, total, err := s.comments.ListVideoComments(ctx, videoID, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.ListVideoComments").Str("video_id", videoID).Msg("error listing comments")
		return models.Page[models.CommentView]{}, storeError(err, nil)
	}

	views, err := s.composer.commentViews(ctx, comments)
	if err != nil {
		return models.Page[models.CommentView]{}, err
	}

	return models.NewPage(views, total, page), nil
}

func (s *commentService) AddComment(ctx context.Context, identity models.Identity, videoID, content string) (models.Comment, error) {
	if _, err := visibleVideo(ctx, s.videos, identity, videoID); err != nil {
		return models.Comment{}, err
	}

	created, err := s.comments.CreateComment(ctx, models.Comment{
		ID:      s.idGenerator.Generate(),
		VideoID: videoID,
		OwnerID: identity.UserID,
		Content: content,
	})
	if errors.Is(err, store.ErrReferenceNotFound) {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrVideoNotFound, err)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.AddComment").Str("video_id", videoID).Msg("error creating comment")
		return models.Comment{}, storeError(err, nil)
	}

	return created, nil
}

func (s *commentService) UpdateComment(ctx context.Context, identity models.Identity, commentID, content string) (models.Comment, error) {
	if _, err := s.ownedComment(ctx, identity, commentID); err != nil {
		return models.Comment{}, err
	}

	updated, err := s.comments.UpdateComment(ctx, commentID, content)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.UpdateComment").Str("comment_id", commentID).Msg("error updating comment")
		return models.Comment{}, storeError(err, ErrCommentNotFound)
	}
	return updated, nil
}

func (s *commentService) DeleteComment(ctx context.Context, identity models.Identity, commentID string) error {
	if _, err := s.ownedComment(ctx, identity, commentID); err != nil {
		return err
	}

	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentService.DeleteComment").Str("comment_id", commentID).Msg("error deleting comment")
		return storeError(err, ErrCommentNotFound)
	}
	return nil
}

func (s *commentService) ownedComment(ctx context.Context, identity models.Identity, commentID string) (models.Comment, error) {
	comment, err := s.comments.FindCommentByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, storeError(err, ErrCommentNotFound)
	}
	if err = AuthorizeOwnership(identity, comment.OwnerID); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}
