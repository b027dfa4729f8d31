package media

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/media_mock.go -package=mock

// Storage persists media objects and returns their public location.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	// Delete removes the object previously returned by Save. Unknown
	// locations are ignored.
	Delete(ctx context.Context, location string) error
}
