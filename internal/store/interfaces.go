package store

import (
	"context"

	"github.com/MKhiriev/go-video-tube/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts, their rotation-token digest and their
// watch history.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByLogin(ctx context.Context, email, username string) (models.User, error)
	UpdateAccountDetails(ctx context.Context, id, fullName, email string) (models.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	UpdateAvatar(ctx context.Context, id, url string) (models.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (models.User, error)

	// SetRefreshTokenHash overwrites the stored digest; nil clears it.
	SetRefreshTokenHash(ctx context.Context, id string, hash *string) error
	// SwapRefreshTokenHash replaces the stored digest only while it still
	// equals expected. Returns ErrRefreshTokenMismatch otherwise.
	SwapRefreshTokenHash(ctx context.Context, id, expected, next string) error

	// FindProfiles returns the public projections of the given accounts keyed
	// by id. Ids without a row are absent from the map.
	FindProfiles(ctx context.Context, ids []string) (map[string][]models.PublicProfile, error)
	ChannelProfile(ctx context.Context, username, viewerID string) (models.ChannelProfile, error)

	AddToWatchHistory(ctx context.Context, userID, videoID string) error
	WatchHistory(ctx context.Context, userID string) ([]models.WatchedVideo, error)
}

type VideoRepository interface {
	CreateVideo(ctx context.Context, video models.Video) (models.Video, error)
	FindVideoByID(ctx context.Context, id string) (models.Video, error)
	UpdateVideo(ctx context.Context, video models.Video) (models.Video, error)
	DeleteVideo(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) (models.Video, error)
	IncrementViews(ctx context.Context, id string) error
	ListVideos(ctx context.Context, filter models.VideoFilter, page models.PageRequest) ([]models.Video, int64, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	FindCommentByID(ctx context.Context, id string) (models.Comment, error)
	UpdateComment(ctx context.Context, id, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	// ListVideoComments returns one page of comments ranked by like count
	// (descending, ties by id) with LikesCount filled in.
	ListVideoComments(ctx context.Context, videoID string, page models.PageRequest) ([]models.CommentView, int64, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	FindPostByID(ctx context.Context, id string) (models.Post, error)
	UpdatePost(ctx context.Context, id, content string) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListUserPosts(ctx context.Context, ownerID string, page models.PageRequest) ([]models.Post, int64, error)
}

type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist models.Playlist) (models.Playlist, error)
	// FindPlaylistByID returns the playlist with its video count and total
	// views aggregated over published videos.
	FindPlaylistByID(ctx context.Context, id string) (models.PlaylistSummary, error)
	UpdatePlaylist(ctx context.Context, playlist models.Playlist) (models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
	ListUserPlaylists(ctx context.Context, ownerID string) ([]models.PlaylistSummary, error)
	// PlaylistVideos returns the published videos of a playlist in insertion order.
	PlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)
}

type LikeRepository interface {
	LikeExists(ctx context.Context, likedBy string, targetType models.LikeTarget, targetID string) (bool, error)
	CreateLike(ctx context.Context, like models.Like) (models.Like, error)
	DeleteLike(ctx context.Context, likedBy string, targetType models.LikeTarget, targetID string) (bool, error)
	// CountLikes returns like counts keyed by target id. Targets without
	// likes are absent from the map.
	CountLikes(ctx context.Context, targetType models.LikeTarget, targetIDs []string) (map[string]int64, error)
	LikedVideos(ctx context.Context, userID string) ([]models.Video, error)
}

type SubscriptionRepository interface {
	SubscriptionExists(ctx context.Context, subscriberID, channelID string) (bool, error)
	CreateSubscription(ctx context.Context, subscription models.Subscription) (models.Subscription, error)
	DeleteSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)
	// CountSubscribers returns subscriber counts keyed by channel id.
	CountSubscribers(ctx context.Context, channelIDs []string) (map[string]int64, error)
	ListSubscribers(ctx context.Context, channelID string) ([]models.Subscription, error)
	ListSubscriptions(ctx context.Context, subscriberID string) ([]models.Subscription, error)
}

type DashboardRepository interface {
	ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error)
}
