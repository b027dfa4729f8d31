// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
)

// Storages aggregates every repository backed by the shared PostgreSQL
// connection pool.
type Storages struct {
	UserRepository         UserRepository
	VideoRepository        VideoRepository
	CommentRepository      CommentRepository
	PostRepository         PostRepository
	PlaylistRepository     PlaylistRepository
	LikeRepository         LikeRepository
	SubscriptionRepository SubscriptionRepository
	DashboardRepository    DashboardRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and builds
// the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		logger.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return NewStoragesFromDB(db, logger), nil
}

// NewStoragesFromDB builds the repositories on top of an open connection.
func NewStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		VideoRepository:        NewVideoRepository(db, logger),
		CommentRepository:      NewCommentRepository(db, logger),
		PostRepository:         NewPostRepository(db, logger),
		PlaylistRepository:     NewPlaylistRepository(db, logger),
		LikeRepository:         NewLikeRepository(db, logger),
		SubscriptionRepository: NewSubscriptionRepository(db, logger),
		DashboardRepository:    NewDashboardRepository(db, logger),
		db:                     db,
	}
}

// Ping reports whether the database answers.
func (s *Storages) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return s.db.mapError(err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
