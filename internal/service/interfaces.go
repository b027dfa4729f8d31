package service

import (
	"context"

	"github.com/MKhiriev/go-video-tube/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// CredentialService issues, verifies, rotates and revokes session tokens.
type CredentialService interface {
	// Issue signs a fresh access/rotation pair for accountID and stores the
	// rotation token digest on the account, replacing any previous one.
	Issue(ctx context.Context, accountID string) (models.TokenPair, error)
	// VerifyAccess resolves an access token to the identity of an existing
	// account.
	VerifyAccess(ctx context.Context, accessToken string) (models.Identity, error)
	// Rotate exchanges the current rotation token for a new pair. A token
	// that was already superseded is rejected.
	Rotate(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Revoke(ctx context.Context, accountID string) error
}

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest, avatar, coverImage *models.Upload) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error)
	Logout(ctx context.Context, identity models.Identity) error
	ChangePassword(ctx context.Context, identity models.Identity, req models.ChangePasswordRequest) error
	CurrentUser(ctx context.Context, identity models.Identity) (models.User, error)
	UpdateAccountDetails(ctx context.Context, identity models.Identity, req models.UpdateAccountRequest) (models.User, error)
	UpdateAvatar(ctx context.Context, identity models.Identity, avatar models.Upload) (models.User, error)
	UpdateCoverImage(ctx context.Context, identity models.Identity, coverImage models.Upload) (models.User, error)
	ChannelProfile(ctx context.Context, viewer models.Identity, username string) (models.ChannelProfile, error)
	WatchHistory(ctx context.Context, identity models.Identity) ([]models.WatchedVideo, error)
}

type VideoService interface {
	PublishVideo(ctx context.Context, identity models.Identity, req models.PublishVideoRequest, videoFile, thumbnail *models.Upload) (models.Video, error)
	// GetVideo returns the enriched video. When viewer is authenticated the
	// video is recorded in their watch history and its view counter grows.
	GetVideo(ctx context.Context, viewer models.Identity, videoID string) (models.VideoView, error)
	UpdateVideo(ctx context.Context, identity models.Identity, videoID string, req models.UpdateVideoRequest) (models.Video, error)
	DeleteVideo(ctx context.Context, identity models.Identity, videoID string) error
	TogglePublish(ctx context.Context, identity models.Identity, videoID string) (models.Video, error)
	ListVideos(ctx context.Context, query models.ListVideosQuery) (models.Page[models.VideoView], error)
}

type CommentService interface {
	ListVideoComments(ctx context.Context, viewer models.Identity, videoID string, page models.PageRequest) (models.Page[models.CommentView], error)
	AddComment(ctx context.Context, identity models.Identity, videoID, content string) (models.Comment, error)
	UpdateComment(ctx context.Context, identity models.Identity, commentID, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, identity models.Identity, commentID string) error
}

type PostService interface {
	CreatePost(ctx context.Context, identity models.Identity, content string) (models.Post, error)
	ListUserPosts(ctx context.Context, userID string, page models.PageRequest) (models.Page[models.PostView], error)
	UpdatePost(ctx context.Context, identity models.Identity, postID, content string) (models.Post, error)
	DeletePost(ctx context.Context, identity models.Identity, postID string) error
}

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, identity models.Identity, req models.PlaylistRequest) (models.Playlist, error)
	ListUserPlaylists(ctx context.Context, userID string) ([]models.PlaylistSummary, error)
	GetPlaylist(ctx context.Context, playlistID string) (models.PlaylistView, error)
	UpdatePlaylist(ctx context.Context, identity models.Identity, playlistID string, req models.PlaylistRequest) (models.Playlist, error)
	DeletePlaylist(ctx context.Context, identity models.Identity, playlistID string) error
	AddVideo(ctx context.Context, identity models.Identity, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, identity models.Identity, playlistID, videoID string) error
}

// SocialService toggles likes and subscriptions and lists the resulting
// edges.
type SocialService interface {
	ToggleVideoLike(ctx context.Context, identity models.Identity, videoID string) (models.ToggleResult, error)
	ToggleCommentLike(ctx context.Context, identity models.Identity, commentID string) (models.ToggleResult, error)
	TogglePostLike(ctx context.Context, identity models.Identity, postID string) (models.ToggleResult, error)
	ToggleSubscription(ctx context.Context, identity models.Identity, channelID string) (models.ToggleResult, error)

	LikedVideos(ctx context.Context, identity models.Identity) ([]models.VideoView, error)
	Subscribers(ctx context.Context, channelID string) ([]models.ChannelEntry, error)
	Subscriptions(ctx context.Context, userID string) ([]models.ChannelEntry, error)
}

type DashboardService interface {
	ChannelStats(ctx context.Context, identity models.Identity) (models.ChannelStats, error)
	ChannelVideos(ctx context.Context, identity models.Identity, page models.PageRequest) (models.Page[models.VideoView], error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionInfo
	// Ready reports whether the backing database answers.
	Ready(ctx context.Context) error
}
