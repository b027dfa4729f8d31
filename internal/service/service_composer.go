package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/models"
)

// viewComposer enriches stored entities into views: each owner reference is
// replaced by the owner's public profile and like counts are attached.
// Counts always come from aggregate queries; edge rows are never loaded to be
// counted.
type viewComposer struct {
	users store.UserRepository
	likes store.LikeRepository
}

func newViewComposer(users store.UserRepository, likes store.LikeRepository) *viewComposer {
	return &viewComposer{users: users, likes: likes}
}

// exactlyOne returns the single match for key. A structurally single-valued
// reference that resolves to zero or several rows means the data is broken,
// which is an internal error and never NotFound.
func exactlyOne[T any](matches map[string][]T, key string) (T, error) {
	var zero T

	found := matches[key]
	if len(found) != 1 {
		return zero, fmt.Errorf("%w: %d matches for %q", ErrInconsistentReference, len(found), key)
	}

	return found[0], nil
}

// profiles loads the public profiles of the given accounts in one query.
func (c *viewComposer) profiles(ctx context.Context, ids []string) (map[string][]models.PublicProfile, error) {
	if len(ids) == 0 {
		return map[string][]models.PublicProfile{}, nil
	}

	profiles, err := c.users.FindProfiles(ctx, unique(ids))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*viewComposer.profiles").Msg("error loading owner profiles")
		return nil, storeError(err, nil)
	}

	return profiles, nil
}

func (c *viewComposer) likeCounts(ctx context.Context, target models.LikeTarget, ids []string) (map[string]int64, error) {
	if len(ids) == 0 {
		return map[string]int64{}, nil
	}

	counts, err := c.likes.CountLikes(ctx, target, ids)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*viewComposer.likeCounts").Str("target", string(target)).Msg("error counting likes")
		return nil, storeError(err, nil)
	}

	return counts, nil
}

// videoViews attaches owner and like count to every video, preserving order.
func (c *viewComposer) videoViews(ctx context.Context, videos []models.Video) ([]models.VideoView, error) {
	ownerIDs := make([]string, 0, len(videos))
	videoIDs := make([]string, 0, len(videos))
	for _, v := range videos {
		ownerIDs = append(ownerIDs, v.OwnerID)
		videoIDs = append(videoIDs, v.ID)
	}

	owners, err := c.profiles(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	likes, err := c.likeCounts(ctx, models.LikeTargetVideo, videoIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.VideoView, 0, len(videos))
	for _, v := range videos {
		owner, err := exactlyOne(owners, v.OwnerID)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*viewComposer.videoViews").Str("video_id", v.ID).Msg("video owner does not resolve")
			return nil, err
		}
		views = append(views, models.VideoView{Video: v, Owner: owner, LikesCount: likes[v.ID]})
	}

	return views, nil
}

func (c *viewComposer) videoView(ctx context.Context, video models.Video) (models.VideoView, error) {
	views, err := c.videoViews(ctx, []models.Video{video})
	if err != nil {
		return models.VideoView{}, err
	}
	return views[0], nil
}

// commentViews fills the owners of comments whose like counts were already
// aggregated by the listing query.
func (c *viewComposer) commentViews(ctx context.Context, comments []models.CommentView) ([]models.CommentView, error) {
	ownerIDs := make([]string, 0, len(comments))
	for _, cm := range comments {
		ownerIDs = append(ownerIDs, cm.OwnerID)
	}

	owners, err := c.profiles(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, cm := range comments {
		owner, err := exactlyOne(owners, cm.OwnerID)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*viewComposer.commentViews").Str("comment_id", cm.ID).Msg("comment owner does not resolve")
			return nil, err
		}
		cm.Owner = owner
		views = append(views, cm)
	}

	return views, nil
}

func (c *viewComposer) postViews(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	ownerIDs := make([]string, 0, len(posts))
	postIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		ownerIDs = append(ownerIDs, p.OwnerID)
		postIDs = append(postIDs, p.ID)
	}

	owners, err := c.profiles(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	likes, err := c.likeCounts(ctx, models.LikeTargetPost, postIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		owner, err := exactlyOne(owners, p.OwnerID)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*viewComposer.postViews").Str("post_id", p.ID).Msg("post owner does not resolve")
			return nil, err
		}
		views = append(views, models.PostView{Post: p, Owner: owner, LikesCount: likes[p.ID]})
	}

	return views, nil
}

// watchedViews enriches watch-history entries, keeping their order.
func (c *viewComposer) watchedViews(ctx context.Context, history []models.WatchedVideo) ([]models.WatchedVideo, error) {
	videos := make([]models.Video, 0, len(history))
	for _, h := range history {
		videos = append(videos, h.Video)
	}

	views, err := c.videoViews(ctx, videos)
	if err != nil {
		return nil, err
	}

	watched := make([]models.WatchedVideo, 0, len(history))
	for i, h := range history {
		watched = append(watched, models.WatchedVideo{VideoView: views[i], WatchedAt: h.WatchedAt})
	}

	return watched, nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
