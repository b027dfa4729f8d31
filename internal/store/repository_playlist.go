package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
)

type playlistRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewPlaylistRepository(db *DB, logger *logger.Logger) PlaylistRepository {
	logger.Debug().Msg("creating playlist repository")
	return &playlistRepository{
		db:     db,
		logger: logger,
	}
}

func (r *playlistRepository) CreatePlaylist(ctx context.Context, playlist models.Playlist) (models.Playlist, error) {
	return r.findOne(ctx, "*playlistRepository.CreatePlaylist", createPlaylist, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description)
}

func (r *playlistRepository) FindPlaylistByID(ctx context.Context, id string) (models.PlaylistSummary, error) {
	log := logger.FromContext(ctx)

	summary, err := scanPlaylistSummary(r.db.QueryRowContext(ctx, findPlaylistByID, id))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*playlistRepository.FindPlaylistByID").Msg("error querying playlist")
		}
		return models.PlaylistSummary{}, r.db.mapError(err)
	}

	return summary, nil
}

func (r *playlistRepository) UpdatePlaylist(ctx context.Context, playlist models.Playlist) (models.Playlist, error) {
	return r.findOne(ctx, "*playlistRepository.UpdatePlaylist", updatePlaylist, playlist.ID, playlist.Name, playlist.Description)
}

func (r *playlistRepository) DeletePlaylist(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, deletePlaylist, id)
	if err != nil {
		log.Err(err).Str("func", "*playlistRepository.DeletePlaylist").Msg("error deleting playlist")
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *playlistRepository) ListUserPlaylists(ctx context.Context, ownerID string) ([]models.PlaylistSummary, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUserPlaylists, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*playlistRepository.ListUserPlaylists").Msg("error listing playlists")
		return nil, r.db.mapError(err)
	}

	playlists, err := collectRows(rows, scanPlaylistSummary)
	if err != nil {
		log.Err(err).Str("func", "*playlistRepository.ListUserPlaylists").Msg("error scanning playlists")
		return nil, err
	}

	return playlists, nil
}

func (r *playlistRepository) PlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, playlistVideos, playlistID)
	if err != nil {
		log.Err(err).Str("func", "*playlistRepository.PlaylistVideos").Msg("error listing playlist videos")
		return nil, r.db.mapError(err)
	}

	videos, err := collectRows(rows, func(row rowScanner) (models.Video, error) { return scanVideo(row) })
	if err != nil {
		log.Err(err).Str("func", "*playlistRepository.PlaylistVideos").Msg("error scanning playlist videos")
		return nil, err
	}

	return videos, nil
}

// AddVideo appends videoID to the playlist. A video that is already a member
// yields [ErrAlreadyExists].
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, addPlaylistVideo, playlistID, videoID); err != nil {
		err = r.db.mapError(err)
		if !errors.Is(err, ErrAlreadyExists) {
			log.Err(err).Str("func", "*playlistRepository.AddVideo").Msg("error adding playlist video")
		}
		return err
	}

	return nil
}

// RemoveVideo reports whether videoID was a member of the playlist.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, removePlaylistVideo, playlistID, videoID)
	if err != nil {
		log.Err(err).Str("func", "*playlistRepository.RemoveVideo").Msg("error removing playlist video")
		return false, err
	}

	return n > 0, nil
}

func (r *playlistRepository) findOne(ctx context.Context, funcName, query string, args ...any) (models.Playlist, error) {
	log := logger.FromContext(ctx)

	playlist, err := scanPlaylist(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error querying playlist")
		}
		return models.Playlist{}, r.db.mapError(err)
	}

	return playlist, nil
}
