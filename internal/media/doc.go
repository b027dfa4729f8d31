// Package media stores uploaded files (avatars, cover images, thumbnails and
// video files) in an S3-compatible object store and hands back their public
// URLs.
//
// [S3Storage] talks to the bucket; [BreakerStorage] wraps any [Storage] with a
// circuit breaker so that an unreachable object store fails requests fast
// instead of tying up handlers until the upload timeout.
package media
