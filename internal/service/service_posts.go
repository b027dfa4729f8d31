package service

import (
	"context"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
)

type postService struct {
	posts    store.PostRepository
	users    store.UserRepository
	composer *viewComposer

	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

func NewPostService(storages *store.Storages, logger *logger.Logger) PostService {
	return &postService{
		posts:       storages.PostRepository,
		users:       storages.UserRepository,
		composer:    newViewComposer(storages.UserRepository, storages.LikeRepository),
		idGenerator: utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, identity models.Identity, content string) (models.Post, error) {
	created, err := s.posts.CreatePost(ctx, models.Post{
		ID:      s.idGenerator.Generate(),
		OwnerID: identity.UserID,
		Content: content,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.CreatePost").Str("user_id", identity.UserID).Msg("error creating post")
		return models.Post{}, storeError(err, nil)
	}
	return created, nil
}

// ListUserPosts returns one page of a user's posts, newest first.
func (s *postService) ListUserPosts(ctx context.Context, userID string, page models.PageRequest) (models.Page[models.PostView], error) {
	page = page.Normalized()

	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return models.Page[models.PostView]{}, storeError(err, ErrUserNotFound)
	}

	posts, total, err := s.posts.ListUserPosts(ctx, userID, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.ListUserPosts").Str("user_id", userID).Msg("error listing posts")
		return models.Page[models.PostView]{}, storeError(err, nil)
	}

	views, err := s.composer.postViews(ctx, posts)
	if err != nil {
		return models.Page[models.PostView]{}, err
	}

	return models.NewPage(views, total, page), nil
}

func (s *postService) UpdatePost(ctx context.Context, identity models.Identity, postID, content string) (models.Post, error) {
	if err := s.authorize(ctx, identity, postID); err != nil {
		return models.Post{}, err
	}

	updated, err := s.posts.UpdatePost(ctx, postID, content)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.UpdatePost").Str("post_id", postID).Msg("error updating post")
		return models.Post{}, storeError(err, ErrPostNotFound)
	}
	return updated, nil
}

func (s *postService) DeletePost(ctx context.Context, identity models.Identity, postID string) error {
	if err := s.authorize(ctx, identity, postID); err != nil {
		return err
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.DeletePost").Str("post_id", postID).Msg("error deleting post")
		return storeError(err, ErrPostNotFound)
	}
	return nil
}

func (s *postService) authorize(ctx context.Context, identity models.Identity, postID string) error {
	post, err := s.posts.FindPostByID(ctx, postID)
	if err != nil {
		return storeError(err, ErrPostNotFound)
	}
	return AuthorizeOwnership(identity, post.OwnerID)
}
