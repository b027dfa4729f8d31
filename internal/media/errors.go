package media

import "errors"

var (
	ErrMissingBucket = errors.New("media storage: bucket is required")
	ErrEmptyKey      = errors.New("media storage: empty key")
	// ErrUnavailable is returned while the circuit breaker rejects calls.
	ErrUnavailable = errors.New("media storage unavailable")
)
