package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
)

type playlistService struct {
	playlists store.PlaylistRepository
	videos    store.VideoRepository
	users     store.UserRepository
	composer  *viewComposer

	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

func NewPlaylistService(storages *store.Storages, logger *logger.Logger) PlaylistService {
	return &playlistService{
		playlists:   storages.PlaylistRepository,
		videos:      storages.VideoRepository,
		users:       storages.UserRepository,
		composer:    newViewComposer(storages.UserRepository, storages.LikeRepository),
		idGenerator: utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, identity models.Identity, req models.PlaylistRequest) (models.Playlist, error) {
	created, err := s.playlists.CreatePlaylist(ctx, models.Playlist{
		ID:          s.idGenerator.Generate(),
		OwnerID:     identity.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.CreatePlaylist").Str("user_id", identity.UserID).Msg("error creating playlist")
		return models.Playlist{}, storeError(err, nil)
	}
	return created, nil
}

func (s *playlistService) ListUserPlaylists(ctx context.Context, userID string) ([]models.PlaylistSummary, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, storeError(err, ErrUserNotFound)
	}

	playlists, err := s.playlists.ListUserPlaylists(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.ListUserPlaylists").Str("user_id", userID).Msg("error listing playlists")
		return nil, storeError(err, nil)
	}
	return playlists, nil
}

// GetPlaylist returns the playlist with its owner and its published videos in
// insertion order, each video with its own owner.
func (s *playlistService) GetPlaylist(ctx context.Context, playlistID string) (models.PlaylistView, error) {
	summary, err := s.playlists.FindPlaylistByID(ctx, playlistID)
	if err != nil {
		return models.PlaylistView{}, storeError(err, ErrPlaylistNotFound)
	}

	videos, err := s.playlists.PlaylistVideos(ctx, playlistID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.GetPlaylist").Str("playlist_id", playlistID).Msg("error loading playlist videos")
		return models.PlaylistView{}, storeError(err, nil)
	}

	views, err := s.composer.videoViews(ctx, videos)
	if err != nil {
		return models.PlaylistView{}, err
	}

	owners, err := s.composer.profiles(ctx, []string{summary.OwnerID})
	if err != nil {
		return models.PlaylistView{}, err
	}
	owner, err := exactlyOne(owners, summary.OwnerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.GetPlaylist").Str("playlist_id", playlistID).Msg("playlist owner does not resolve")
		return models.PlaylistView{}, err
	}

	return models.PlaylistView{PlaylistSummary: summary, Owner: owner, Videos: views}, nil
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, identity models.Identity, playlistID string, req models.PlaylistRequest) (models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, identity, playlistID)
	if err != nil {
		return models.Playlist{}, err
	}

	playlist.Name = req.Name
	playlist.Description = req.Description

	updated, err := s.playlists.UpdatePlaylist(ctx, playlist)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.UpdatePlaylist").Str("playlist_id", playlistID).Msg("error updating playlist")
		return models.Playlist{}, storeError(err, ErrPlaylistNotFound)
	}
	return updated, nil
}

func (s *playlistService) DeletePlaylist(ctx context.Context, identity models.Identity, playlistID string) error {
	if _, err := s.ownedPlaylist(ctx, identity, playlistID); err != nil {
		return err
	}

	if err := s.playlists.DeletePlaylist(ctx, playlistID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.DeletePlaylist").Str("playlist_id", playlistID).Msg("error deleting playlist")
		return storeError(err, ErrPlaylistNotFound)
	}
	return nil
}

// AddVideo appends a video to the playlist. A video already present is a
// conflict.
func (s *playlistService) AddVideo(ctx context.Context, identity models.Identity, playlistID, videoID string) error {
	playlist, err := s.playlists.FindPlaylistByID(ctx, playlistID)
	if err != nil {
		return storeError(err, ErrPlaylistNotFound)
	}
	if _, err = visibleVideo(ctx, s.videos, identity, videoID); err != nil {
		return err
	}
	if err = AuthorizeOwnership(identity, playlist.OwnerID); err != nil {
		return err
	}

	err = s.playlists.AddVideo(ctx, playlistID, videoID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrAlreadyInPlaylist, err)
	case errors.Is(err, store.ErrReferenceNotFound):
		return fmt.Errorf("%w: %w", ErrVideoNotFound, err)
	default:
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.AddVideo").Str("playlist_id", playlistID).Msg("error adding video")
		return storeError(err, nil)
	}
}

// RemoveVideo removes a video from the playlist. A video that is not in the
// playlist is reported as NotFound.
func (s *playlistService) RemoveVideo(ctx context.Context, identity models.Identity, playlistID, videoID string) error {
	if _, err := s.ownedPlaylist(ctx, identity, playlistID); err != nil {
		return err
	}

	removed, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*playlistService.RemoveVideo").Str("playlist_id", playlistID).Msg("error removing video")
		return storeError(err, nil)
	}
	if !removed {
		return ErrNotInPlaylist
	}
	return nil
}

func (s *playlistService) ownedPlaylist(ctx context.Context, identity models.Identity, playlistID string) (models.Playlist, error) {
	summary, err := s.playlists.FindPlaylistByID(ctx, playlistID)
	if err != nil {
		return models.Playlist{}, storeError(err, ErrPlaylistNotFound)
	}
	if err = AuthorizeOwnership(identity, summary.OwnerID); err != nil {
		return models.Playlist{}, err
	}
	return summary.Playlist, nil
}
