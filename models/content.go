package models

import "time"

// Video is an uploaded video owned by exactly one account.
type Video struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int64     `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (v Video) TableName() string {
	return "videos"
}

// VideoView is a video enriched with its owner's public profile and its
// like count.
type VideoView struct {
	Video
	Owner      PublicProfile `json:"owner"`
	LikesCount int64         `json:"likesCount"`
}

// VideoFilter narrows a video listing.
type VideoFilter struct {
	// Query is matched case-insensitively against title and description.
	Query string
	// OwnerID restricts the listing to one channel when non-empty.
	OwnerID string
	// PublishedOnly hides unpublished videos.
	PublishedOnly bool
}

// Comment is a comment left on a video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Comment) TableName() string {
	return "comments"
}

// CommentView is a comment enriched with its owner and like count.
type CommentView struct {
	Comment
	Owner      PublicProfile `json:"owner"`
	LikesCount int64         `json:"likesCount"`
}

// Post is a short text post published on a channel.
type Post struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Post) TableName() string {
	return "posts"
}

// PostView is a post enriched with its owner and like count.
type PostView struct {
	Post
	Owner      PublicProfile `json:"owner"`
	LikesCount int64         `json:"likesCount"`
}

// Playlist is an owned, ordered set of videos. Membership has set semantics,
// storage keeps insertion order.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Playlist) TableName() string {
	return "playlists"
}

// PlaylistSummary is a playlist with its aggregate counters, used in listings.
type PlaylistSummary struct {
	Playlist
	TotalVideos int64 `json:"totalVideos"`
	TotalViews  int64 `json:"totalViews"`
}

// PlaylistView is a playlist with its owner and its videos in storage order.
type PlaylistView struct {
	PlaylistSummary
	Owner  PublicProfile `json:"owner"`
	Videos []VideoView   `json:"videos"`
}

// WatchedVideo is a watch-history entry.
type WatchedVideo struct {
	VideoView
	WatchedAt time.Time `json:"watchedAt"`
}
