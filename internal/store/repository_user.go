package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	sq "github.com/Masterminds/squirrel"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles accounts, the rotation-token digest and the watch history
// against the "users" and "watch_history" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the canonical database
// representation of it.
//
// Error handling:
//   - unique_violation on username or email → [ErrAlreadyExists].
//   - any other driver-level error → mapped by [DB.mapError].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.ID, user.Username, user.Email, user.FullName,
		user.Avatar, user.CoverImage, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		return models.User{}, r.db.mapError(err)
	}

	return created, nil
}

// FindUserByID returns [ErrNotFound] when no account has the given id.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, id)
}

// FindUserByLogin looks an account up by email or username; either may be
// empty.
func (r *userRepository) FindUserByLogin(ctx context.Context, email, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByLogin", findUserByLogin, email, username)
}

func (r *userRepository) UpdateAccountDetails(ctx context.Context, id, fullName, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.UpdateAccountDetails", updateAccountDetails, id, fullName, email)
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, updatePasswordHash, id, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Msg("error updating password hash")
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, url string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.UpdateAvatar", updateAvatar, id, url)
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, id, url string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.UpdateCoverImage", updateCoverImage, id, url)
}

// SetRefreshTokenHash unconditionally overwrites the stored digest. Passing
// nil clears it, which revokes every outstanding rotation token.
func (r *userRepository) SetRefreshTokenHash(ctx context.Context, id string, hash *string) error {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, setRefreshTokenHash, id, hash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetRefreshTokenHash").Msg("error storing refresh token")
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// SwapRefreshTokenHash is a compare-and-swap on the stored digest: it writes
// next only while the row still holds expected. Of two concurrent rotations
// presenting the same token exactly one observes an affected row.
func (r *userRepository) SwapRefreshTokenHash(ctx context.Context, id, expected, next string) error {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, swapRefreshTokenHash, id, expected, next)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SwapRefreshTokenHash").Msg("error swapping refresh token")
		return err
	}
	if n == 0 {
		log.Warn().Str("func", "*userRepository.SwapRefreshTokenHash").Msg("stored refresh token changed")
		return ErrRefreshTokenMismatch
	}

	return nil
}

// FindProfiles loads public projections for ids with a single IN query.
func (r *userRepository) FindProfiles(ctx context.Context, ids []string) (map[string][]models.PublicProfile, error) {
	log := logger.FromContext(ctx)

	profiles := make(map[string][]models.PublicProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	query, args, err := psql.
		Select("id", "username", "full_name", "avatar").
		From("users").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindProfiles").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindProfiles").Msg("error querying profiles")
		return nil, r.db.mapError(err)
	}

	found, err := collectRows(rows, func(row rowScanner) (models.PublicProfile, error) {
		var p models.PublicProfile
		err := row.Scan(&p.ID, &p.Username, &p.FullName, &p.Avatar)
		return p, err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindProfiles").Msg("error scanning profiles")
		return nil, err
	}

	for _, p := range found {
		profiles[p.ID] = append(profiles[p.ID], p)
	}

	return profiles, nil
}

// ChannelProfile returns the channel page of username together with its
// subscription counts and whether viewerID subscribes to it.
func (r *userRepository) ChannelProfile(ctx context.Context, username, viewerID string) (models.ChannelProfile, error) {
	log := logger.FromContext(ctx)

	var p models.ChannelProfile
	err := r.db.QueryRowContext(ctx, channelProfile, username, viewerID).Scan(
		&p.ID, &p.Username, &p.FullName, &p.Email, &p.Avatar, &p.CoverImage,
		&p.SubscribersCount, &p.SubscribedToCount, &p.IsSubscribed,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.ChannelProfile").Msg("error loading channel profile")
		}
		return models.ChannelProfile{}, r.db.mapError(err)
	}

	return p, nil
}

// AddToWatchHistory records that userID watched videoID now. Watching the
// same video again only refreshes the timestamp.
func (r *userRepository) AddToWatchHistory(ctx context.Context, userID, videoID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, addToWatchHistory, userID, videoID); err != nil {
		log.Err(err).Str("func", "*userRepository.AddToWatchHistory").Msg("error recording watch history")
		return r.db.mapError(err)
	}

	return nil
}

// WatchHistory returns the watched videos of userID, most recent first.
func (r *userRepository) WatchHistory(ctx context.Context, userID string) ([]models.WatchedVideo, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, watchHistory, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.WatchHistory").Msg("error querying watch history")
		return nil, r.db.mapError(err)
	}

	history, err := collectRows(rows, func(row rowScanner) (models.WatchedVideo, error) {
		var w models.WatchedVideo
		video, err := scanVideo(row, &w.WatchedAt)
		w.Video = video
		return w, err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.WatchHistory").Msg("error scanning watch history")
		return nil, err
	}

	return history, nil
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, args ...any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error querying user")
		}
		return models.User{}, r.db.mapError(err)
	}

	return user, nil
}
