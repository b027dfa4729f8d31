// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-video-tube server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, hashing, logging and version settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database and media object store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listener addresses, timeouts and edge middleware settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the session
// token lifecycle.
type App struct {
	// AccessTokenSignKey signs and verifies access tokens.
	// Env: APP_ACCESS_TOKEN_SIGN_KEY
	AccessTokenSignKey string `env:"ACCESS_TOKEN_SIGN_KEY"`

	// RefreshTokenSignKey signs and verifies rotation tokens. Must differ
	// from AccessTokenSignKey.
	// Env: APP_REFRESH_TOKEN_SIGN_KEY
	RefreshTokenSignKey string `env:"REFRESH_TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in and required from every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration is the access token lifetime (default 15m).
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration is the rotation token lifetime (default 240h).
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// HashKey is the HMAC key used to digest rotation tokens before they
	// are persisted.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// LogLevel is the zerolog level name (default "info").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string exposed via /version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Media holds the S3-compatible object store settings for uploads.
	Media Media `envPrefix:"MEDIA_"`
}

// DB holds connection settings for the PostgreSQL backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns caps the connection pool (default 20).
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Media holds the object store settings used for avatars, cover images,
// thumbnails and video files.
type Media struct {
	// Bucket is the target bucket name.
	// Env: STORAGE_MEDIA_BUCKET
	Bucket string `env:"BUCKET"`

	// Region is the bucket region (default "us-east-1").
	// Env: STORAGE_MEDIA_REGION
	Region string `env:"REGION"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	// Env: STORAGE_MEDIA_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// PublicBaseURL is prepended to object keys to build public URLs.
	// Env: STORAGE_MEDIA_PUBLIC_BASE_URL
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// UploadTimeout bounds a single upload (default 2m).
	// Env: STORAGE_MEDIA_UPLOAD_TIMEOUT
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT"`
}

// Server holds network, timeout and edge settings for the inbound transport
// layer.
type Server struct {
	// HTTPAddress is the HTTP listen address (default ":8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the gRPC health listener address (default ":9090").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration of a single request (default 10s).
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CORSOrigins is the list of origins allowed to send credentialed requests.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// AuthRateLimit is the number of requests per minute and client IP
	// allowed on the login, register and refresh routes (default 20).
	// Env: SERVER_AUTH_RATE_LIMIT
	AuthRateLimit int `env:"AUTH_RATE_LIMIT"`

	// MaxUploadSize caps multipart request bodies in bytes (default 512 MiB).
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
