// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/metrics"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
)

// credentialService is the concrete implementation of CredentialService.
//
// Access and rotation tokens are signed with different keys and carry a kind
// claim, so neither can be presented in place of the other. Only an HMAC
// digest of the rotation token is persisted; at most one rotation token is
// valid per account at any time.
type credentialService struct {
	userRepository store.UserRepository

	// accessSignKey and refreshSignKey are the HMAC secrets of the two token
	// kinds.
	accessSignKey  string
	refreshSignKey string

	// tokenIssuer is the "iss" claim embedded in and required from every token.
	tokenIssuer string

	accessDuration  time.Duration
	refreshDuration time.Duration

	// hashKey digests rotation tokens before they reach the store.
	hashKey string

	logger *logger.Logger
}

// NewCredentialService constructs a CredentialService from the token settings
// in cfg. The returned service holds no mutable state and is safe for
// concurrent use.
func NewCredentialService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) CredentialService {
	return &credentialService{
		userRepository:  userRepository,
		accessSignKey:   cfg.AccessTokenSignKey,
		refreshSignKey:  cfg.RefreshTokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		hashKey:         cfg.HashKey,
		logger:          logger,
	}
}

func (c *credentialService) Issue(ctx context.Context, accountID string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	pair, err := c.mint(accountID)
	if err != nil {
		log.Err(err).Str("func", "*credentialService.Issue").Str("user_id", accountID).Msg("error signing tokens")
		return models.TokenPair{}, internalError(err)
	}

	digest := c.digest(pair.RefreshToken)
	if err = c.userRepository.SetRefreshTokenHash(ctx, accountID, &digest); err != nil {
		log.Err(err).Str("func", "*credentialService.Issue").Str("user_id", accountID).Msg("error storing refresh token")
		return models.TokenPair{}, storeError(err, ErrUserNotFound)
	}

	return pair, nil
}

// VerifyAccess returns ErrUnauthenticated for a malformed, expired or
// foreign token and for a token whose subject no longer exists.
func (c *credentialService) VerifyAccess(ctx context.Context, accessToken string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(accessToken, c.accessSignKey, c.tokenIssuer, models.AccessTokenKind)
	if err != nil {
		log.Debug().Err(err).Str("func", "*credentialService.VerifyAccess").Msg("access token rejected")
		return models.Identity{}, ErrUnauthenticated
	}

	userID, err := token.UserID()
	if err != nil {
		return models.Identity{}, ErrUnauthenticated
	}

	user, err := c.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		log.Debug().Str("func", "*credentialService.VerifyAccess").Str("user_id", userID).Msg("token subject does not exist")
		return models.Identity{}, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Str("func", "*credentialService.VerifyAccess").Str("user_id", userID).Msg("error resolving token subject")
		return models.Identity{}, storeError(err, nil)
	}

	return models.Identity{UserID: user.ID, Username: user.Username}, nil
}

// Rotate verifies the rotation token and swaps the stored digest for the
// digest of a new token in one conditional update. Two concurrent rotations
// with the same token cannot both succeed: the loser finds the digest
// already replaced and receives ErrUnauthenticated.
func (c *credentialService) Rotate(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(refreshToken, c.refreshSignKey, c.tokenIssuer, models.RefreshTokenKind)
	if err != nil {
		log.Debug().Err(err).Str("func", "*credentialService.Rotate").Msg("refresh token rejected")
		metrics.RecordTokenRotation(false)
		return models.TokenPair{}, ErrUnauthenticated
	}

	userID, err := token.UserID()
	if err != nil {
		metrics.RecordTokenRotation(false)
		return models.TokenPair{}, ErrUnauthenticated
	}

	pair, err := c.mint(userID)
	if err != nil {
		log.Err(err).Str("func", "*credentialService.Rotate").Str("user_id", userID).Msg("error signing tokens")
		return models.TokenPair{}, internalError(err)
	}

	err = c.userRepository.SwapRefreshTokenHash(ctx, userID, c.digest(refreshToken), c.digest(pair.RefreshToken))
	switch {
	case errors.Is(err, store.ErrRefreshTokenMismatch), errors.Is(err, store.ErrNotFound):
		log.Warn().Str("func", "*credentialService.Rotate").Str("user_id", userID).Msg("superseded refresh token presented")
		metrics.RecordTokenRotation(false)
		return models.TokenPair{}, ErrUnauthenticated
	case err != nil:
		log.Err(err).Str("func", "*credentialService.Rotate").Str("user_id", userID).Msg("error swapping refresh token")
		return models.TokenPair{}, storeError(err, nil)
	}

	metrics.RecordTokenRotation(true)
	return pair, nil
}

func (c *credentialService) Revoke(ctx context.Context, accountID string) error {
	if err := c.userRepository.SetRefreshTokenHash(ctx, accountID, nil); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*credentialService.Revoke").Str("user_id", accountID).Msg("error clearing refresh token")
		return storeError(err, ErrUserNotFound)
	}
	return nil
}

func (c *credentialService) mint(userID string) (models.TokenPair, error) {
	access, err := utils.GenerateJWTToken(c.tokenIssuer, userID, models.AccessTokenKind, c.accessDuration, c.accessSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(c.tokenIssuer, userID, models.RefreshTokenKind, c.refreshDuration, c.refreshSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: access.String(), RefreshToken: refresh.String()}, nil
}

func (c *credentialService) digest(token string) string {
	return utils.HashString(token, c.hashKey)
}
