package models

import "time"

// User represents an account (a channel) on the platform.
// Credential material is never serialized outward.
type User struct {
	// ID is the account identifier (UUIDv7).
	ID string `json:"id"`

	// Username is the unique lowercase handle of the account.
	Username string `json:"username"`

	// Email is the unique contact address of the account.
	Email string `json:"email"`

	// FullName is the display name shown next to content.
	FullName string `json:"fullName"`

	// Avatar is the public URL of the avatar image. Required at registration.
	Avatar string `json:"avatar"`

	// CoverImage is the public URL of the channel cover image. Optional.
	CoverImage string `json:"coverImage,omitempty"`

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// RefreshTokenHash is the digest of the single active rotation token,
	// nil when the account has no active session.
	RefreshTokenHash *string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns the public projection of the account.
func (u User) Profile() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// PublicProfile is the projection of an account embedded into content views
// in place of an owner reference.
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// Identity is the authenticated caller attached to a request scope.
type Identity struct {
	UserID   string
	Username string
}

// ChannelProfile is the public channel page of an account together with its
// subscription counters as seen by the viewer.
type ChannelProfile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage,omitempty"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// ChannelStats aggregates the counters shown on the owner's dashboard.
type ChannelStats struct {
	VideoCount      int64 `json:"videoCount"`
	SubscriberCount int64 `json:"subscriberCount"`
	TotalLikes      int64 `json:"totalLikes"`
	TotalViews      int64 `json:"totalViews"`
}
