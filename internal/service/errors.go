package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/media"
	"github.com/MKhiriev/go-video-tube/internal/store"
)

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("token creation failed")
)

// Classified errors returned to the transport layer. Every Unauthenticated
// failure uses the same message so the cause of a rejection is not revealed.
var (
	ErrUnauthenticated    = apperr.New(apperr.KindUnauthenticated, "unauthorized request")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "invalid user credentials")

	ErrForbidden        = apperr.New(apperr.KindForbidden, "you are not allowed to modify this resource")
	ErrSelfSubscription = apperr.New(apperr.KindInvalidOperation, "you cannot subscribe to your own channel")

	ErrUserNotFound     = apperr.New(apperr.KindNotFound, "user does not exist")
	ErrChannelNotFound  = apperr.New(apperr.KindNotFound, "channel does not exist")
	ErrVideoNotFound    = apperr.New(apperr.KindNotFound, "video not found")
	ErrCommentNotFound  = apperr.New(apperr.KindNotFound, "comment not found")
	ErrPostNotFound     = apperr.New(apperr.KindNotFound, "post not found")
	ErrPlaylistNotFound = apperr.New(apperr.KindNotFound, "playlist not found")
	ErrNotInPlaylist    = apperr.New(apperr.KindNotFound, "video is not in the playlist")

	ErrDuplicateAccount  = apperr.New(apperr.KindConflict, "user with email or username already exists")
	ErrEmailTaken        = apperr.New(apperr.KindConflict, "email is already in use")
	ErrAlreadyInPlaylist = apperr.New(apperr.KindConflict, "video is already in the playlist")

	ErrWrongPassword         = apperr.New(apperr.KindInvalidInput, "invalid old password")
	ErrAvatarRequired        = apperr.New(apperr.KindInvalidInput, "avatar file is required")
	ErrVideoFileRequired     = apperr.New(apperr.KindInvalidInput, "video file is required")
	ErrThumbnailRequired     = apperr.New(apperr.KindInvalidInput, "thumbnail is required")
	ErrUnavailable           = apperr.New(apperr.KindUnavailable, "service temporarily unavailable")
	ErrInconsistentReference = apperr.New(apperr.KindInternal, "internal server error")
)

// storeError classifies a repository failure. notFound is reported when the
// store says the primary resource is missing; pass nil where a missing row
// means broken data rather than a bad request.
func storeError(err error, notFound *apperr.Error) error {
	switch {
	case notFound != nil && errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", notFound, err)
	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return internalError(err)
	}
}

func internalError(err error) error {
	return apperr.Wrap(apperr.KindInternal, "internal server error", err)
}

// mediaError classifies an object storage failure.
func mediaError(err error) error {
	if errors.Is(err, media.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return apperr.Wrap(apperr.KindInternal, "error uploading file", err)
}
