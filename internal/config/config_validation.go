// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Media.Bucket == "" {
		return ErrInvalidMediaConfigs
	}

	app := cfg.App
	if app.AccessTokenSignKey == "" || app.RefreshTokenSignKey == "" || app.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	if app.AccessTokenSignKey == app.RefreshTokenSignKey {
		return ErrSameSignKeys
	}

	if app.AccessTokenDuration <= 0 || app.RefreshTokenDuration <= app.AccessTokenDuration {
		return ErrInvalidTokenDurations
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
