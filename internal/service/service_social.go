package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/metrics"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
)

type socialService struct {
	users         store.UserRepository
	videos        store.VideoRepository
	comments      store.CommentRepository
	posts         store.PostRepository
	likes         store.LikeRepository
	subscriptions store.SubscriptionRepository

	composer    *viewComposer
	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

func NewSocialService(storages *store.Storages, logger *logger.Logger) SocialService {
	return &socialService{
		users:         storages.UserRepository,
		videos:        storages.VideoRepository,
		comments:      storages.CommentRepository,
		posts:         storages.PostRepository,
		likes:         storages.LikeRepository,
		subscriptions: storages.SubscriptionRepository,
		composer:      newViewComposer(storages.UserRepository, storages.LikeRepository),
		idGenerator:   utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// edgeOps binds the three primitives of a toggle to one concrete edge.
type edgeOps struct {
	name     string
	notFound *apperr.Error
	exists   func(ctx context.Context) (bool, error)
	create   func(ctx context.Context) error
	remove   func(ctx context.Context) (bool, error)
}

// toggle flips an edge. An existing edge is removed and reported inactive;
// a missing one is created and reported active. Races with a concurrent
// toggle by the same actor resolve to the state the other request produced:
// a unique violation on create means the edge is there, a delete that
// removed nothing means it is gone.
func toggle(ctx context.Context, ops edgeOps) (models.ToggleResult, error) {
	log := logger.FromContext(ctx)

	exists, err := ops.exists(ctx)
	if err != nil {
		log.Err(err).Str("func", "toggle").Str("edge", ops.name).Msg("error checking edge")
		return models.ToggleResult{}, storeError(err, nil)
	}

	if exists {
		if _, err = ops.remove(ctx); err != nil {
			log.Err(err).Str("func", "toggle").Str("edge", ops.name).Msg("error removing edge")
			return models.ToggleResult{}, storeError(err, nil)
		}
		metrics.RecordEdgeToggle(ops.name, false)
		return models.ToggleResult{Active: false}, nil
	}

	err = ops.create(ctx)
	switch {
	case err == nil, errors.Is(err, store.ErrAlreadyExists):
		metrics.RecordEdgeToggle(ops.name, true)
		return models.ToggleResult{Active: true}, nil
	case errors.Is(err, store.ErrReferenceNotFound):
		return models.ToggleResult{}, storeError(store.ErrNotFound, ops.notFound)
	default:
		log.Err(err).Str("func", "toggle").Str("edge", ops.name).Msg("error creating edge")
		return models.ToggleResult{}, storeError(err, nil)
	}
}

func (s *socialService) likeOps(identity models.Identity, target models.LikeTarget, targetID string, notFound *apperr.Error) edgeOps {
	return edgeOps{
		name:     string(target) + "_like",
		notFound: notFound,
		exists: func(ctx context.Context) (bool, error) {
			return s.likes.LikeExists(ctx, identity.UserID, target, targetID)
		},
		create: func(ctx context.Context) error {
			_, err := s.likes.CreateLike(ctx, models.Like{
				ID:         s.idGenerator.Generate(),
				LikedBy:    identity.UserID,
				TargetType: target,
				TargetID:   targetID,
			})
			return err
		},
		remove: func(ctx context.Context) (bool, error) {
			return s.likes.DeleteLike(ctx, identity.UserID, target, targetID)
		},
	}
}

func (s *socialService) ToggleVideoLike(ctx context.Context, identity models.Identity, videoID string) (models.ToggleResult, error) {
	if _, err := visibleVideo(ctx, s.videos, identity, videoID); err != nil {
		return models.ToggleResult{}, err
	}
	return toggle(ctx, s.likeOps(identity, models.LikeTargetVideo, videoID, ErrVideoNotFound))
}

func (s *socialService) ToggleCommentLike(ctx context.Context, identity models.Identity, commentID string) (models.ToggleResult, error) {
	if _, err := s.comments.FindCommentByID(ctx, commentID); err != nil {
		return models.ToggleResult{}, storeError(err, ErrCommentNotFound)
	}
	return toggle(ctx, s.likeOps(identity, models.LikeTargetComment, commentID, ErrCommentNotFound))
}

func (s *socialService) TogglePostLike(ctx context.Context, identity models.Identity, postID string) (models.ToggleResult, error) {
	if _, err := s.posts.FindPostByID(ctx, postID); err != nil {
		return models.ToggleResult{}, storeError(err, ErrPostNotFound)
	}
	return toggle(ctx, s.likeOps(identity, models.LikeTargetPost, postID, ErrPostNotFound))
}

// ToggleSubscription subscribes identity to channelID or cancels an existing
// subscription. Subscribing to oneself is an invalid operation.
func (s *socialService) ToggleSubscription(ctx context.Context, identity models.Identity, channelID string) (models.ToggleResult, error) {
	if _, err := s.users.FindUserByID(ctx, channelID); err != nil {
		return models.ToggleResult{}, storeError(err, ErrChannelNotFound)
	}
	if err := AuthorizeSelfExclusion(identity, channelID, ErrSelfSubscription); err != nil {
		return models.ToggleResult{}, err
	}

	return toggle(ctx, edgeOps{
		name:     "subscription",
		notFound: ErrChannelNotFound,
		exists: func(ctx context.Context) (bool, error) {
			return s.subscriptions.SubscriptionExists(ctx, identity.UserID, channelID)
		},
		create: func(ctx context.Context) error {
			_, err := s.subscriptions.CreateSubscription(ctx, models.Subscription{
				ID:           s.idGenerator.Generate(),
				SubscriberID: identity.UserID,
				ChannelID:    channelID,
			})
			return err
		},
		remove: func(ctx context.Context) (bool, error) {
			return s.subscriptions.DeleteSubscription(ctx, identity.UserID, channelID)
		},
	})
}

func (s *socialService) LikedVideos(ctx context.Context, identity models.Identity) ([]models.VideoView, error) {
	videos, err := s.likes.LikedVideos(ctx, identity.UserID)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return s.composer.videoViews(ctx, videos)
}

// Subscribers lists the accounts subscribed to channelID.
func (s *socialService) Subscribers(ctx context.Context, channelID string) ([]models.ChannelEntry, error) {
	if _, err := s.users.FindUserByID(ctx, channelID); err != nil {
		return nil, storeError(err, ErrChannelNotFound)
	}

	subs, err := s.subscriptions.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	return s.channelEntries(ctx, subs, func(sub models.Subscription) string { return sub.SubscriberID })
}

// Subscriptions lists the channels userID is subscribed to.
func (s *socialService) Subscriptions(ctx context.Context, userID string) ([]models.ChannelEntry, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, storeError(err, ErrUserNotFound)
	}

	subs, err := s.subscriptions.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	return s.channelEntries(ctx, subs, func(sub models.Subscription) string { return sub.ChannelID })
}

// channelEntries resolves the far end of every subscription to its public
// profile and subscriber count.
func (s *socialService) channelEntries(ctx context.Context, subs []models.Subscription, farEnd func(models.Subscription) string) ([]models.ChannelEntry, error) {
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, farEnd(sub))
	}

	profiles, err := s.composer.profiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	if len(ids) > 0 {
		counts, err = s.subscriptions.CountSubscribers(ctx, unique(ids))
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*socialService.channelEntries").Msg("error counting subscribers")
			return nil, storeError(err, nil)
		}
	}

	entries := make([]models.ChannelEntry, 0, len(subs))
	for _, sub := range subs {
		id := farEnd(sub)
		profile, err := exactlyOne(profiles, id)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*socialService.channelEntries").Str("user_id", id).Msg("subscription end does not resolve")
			return nil, err
		}
		entries = append(entries, models.ChannelEntry{
			PublicProfile:    profile,
			SubscribersCount: counts[id],
			SubscribedAt:     sub.CreatedAt,
		})
	}

	return entries, nil
}
