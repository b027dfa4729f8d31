package models

import "time"

// LikeTarget is the kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetPost    LikeTarget = "post"
)

// Like is the edge liker -> target. Its existence is its state.
type Like struct {
	ID         string     `json:"id"`
	LikedBy    string     `json:"likedBy"`
	TargetType LikeTarget `json:"targetType"`
	TargetID   string     `json:"targetId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (l Like) TableName() string {
	return "likes"
}

// Subscription is the edge subscriber -> channel.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriberId"`
	ChannelID    string    `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s Subscription) TableName() string {
	return "subscriptions"
}

// ToggleResult reports whether the edge exists after a toggle.
type ToggleResult struct {
	Active bool `json:"active"`
}

// ChannelEntry is a single row of a subscriber or subscription listing: the
// account at the other end of the edge with its own subscriber count.
type ChannelEntry struct {
	PublicProfile
	SubscribersCount int64     `json:"subscribersCount"`
	SubscribedAt     time.Time `json:"subscribedAt"`
}
