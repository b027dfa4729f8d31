package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates a missing database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidMediaConfigs indicates a missing media bucket.
	ErrInvalidMediaConfigs = errors.New("invalid media storage configuration")
	// ErrInvalidAppConfigs indicates missing signing or hashing keys.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrSameSignKeys indicates that access and rotation tokens share a key.
	ErrSameSignKeys = errors.New("access and refresh token sign keys must differ")
	// ErrInvalidTokenDurations indicates a non-positive access token lifetime
	// or a rotation token that does not outlive the access token.
	ErrInvalidTokenDurations = errors.New("invalid token durations")
	// ErrInvalidServerConfigs indicates a missing listen address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
