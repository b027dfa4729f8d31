package models

import "io"

// RegisterRequest carries the text fields of the multipart registration form.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest authenticates by email or username.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the rotation token for non-cookie clients.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// PublishVideoRequest carries the text fields of the multipart publish form.
type PublishVideoRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	Duration    int64  `json:"duration" validate:"gte=0"`
}

// UpdateVideoRequest carries the fields of a video update; a nil Thumbnail
// keeps the current one.
type UpdateVideoRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=5000"`
	Thumbnail   *Upload `validate:"-"`
}

type ContentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type PlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description" validate:"max=2000"`
}

// ListVideosQuery holds the query string of the public video listing.
type ListVideosQuery struct {
	Page     int    `json:"page" validate:"gte=0"`
	Limit    int    `json:"limit" validate:"gte=0"`
	Query    string `json:"query" validate:"max=200"`
	SortBy   string `json:"sortBy" validate:"omitempty,oneof=createdAt views duration title"`
	SortType string `json:"sortType" validate:"omitempty,oneof=asc desc"`
	UserID   string `json:"userId" validate:"omitempty,uuid"`
}

// PageRequest converts the query into a normalized page request.
func (q ListVideosQuery) PageRequest() PageRequest {
	return PageRequest{
		Page:          q.Page,
		Limit:         q.Limit,
		SortField:     q.SortBy,
		SortDirection: SortDirection(q.SortType),
	}.Normalized()
}

// Upload is a single file received from a multipart form, passed on to media
// storage.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// LoginResponse is the body returned after a successful login.
type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
