package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/media"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
	"golang.org/x/crypto/bcrypt"
)

// userService implements account management on top of UserRepository,
// media storage for avatar and cover images, and CredentialService for
// sessions.
type userService struct {
	users       store.UserRepository
	credentials CredentialService
	media       media.Storage
	composer    *viewComposer

	idGenerator *utils.UUIDGenerator
	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	logger *logger.Logger
}

func NewUserService(storages *store.Storages, credentials CredentialService, mediaStorage media.Storage, logger *logger.Logger) UserService {
	return &userService{
		users:       storages.UserRepository,
		credentials: credentials,
		media:       mediaStorage,
		composer:    newViewComposer(storages.UserRepository, storages.LikeRepository),
		idGenerator: utils.NewUUIDGenerator(),
		bcryptCost:  bcrypt.DefaultCost,
		logger:      logger,
	}
}

// Register creates an account. The username is stored lowercased. Files are
// uploaded only after the email and username are known to be free, and are
// removed again when the insert fails.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest, avatar, coverImage *models.Upload) (models.User, error) {
	log := logger.FromContext(ctx)

	if avatar == nil {
		return models.User{}, ErrAvatarRequired
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	_, err := s.users.FindUserByLogin(ctx, req.Email, username)
	switch {
	case err == nil:
		return models.User{}, ErrDuplicateAccount
	case !errors.Is(err, store.ErrNotFound):
		log.Err(err).Str("func", "*userService.Register").Msg("error checking existing account")
		return models.User{}, storeError(err, nil)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*userService.Register").Msg("error hashing password")
		return models.User{}, internalError(err)
	}

	user := models.User{
		ID:           s.idGenerator.Generate(),
		Username:     username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(passwordHash),
	}

	user.Avatar, err = s.upload(ctx, media.KindAvatar, user.ID, *avatar)
	if err != nil {
		return models.User{}, err
	}
	if coverImage != nil {
		user.CoverImage, err = s.upload(ctx, media.KindCoverImage, user.ID, *coverImage)
		if err != nil {
			s.discard(ctx, user.Avatar)
			return models.User{}, err
		}
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*userService.Register").Str("username", username).Msg("user creation ended with error")
		s.discard(ctx, user.Avatar, user.CoverImage)
		if errors.Is(err, store.ErrAlreadyExists) {
			return models.User{}, fmt.Errorf("%w: %w", ErrDuplicateAccount, err)
		}
		return models.User{}, storeError(err, nil)
	}

	log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login authenticates by email or username and issues a token pair.
func (s *userService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByLogin(ctx, req.Email, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("func", "*userService.Login").Msg("user search by login failed")
		}
		return models.User{}, models.TokenPair{}, storeError(err, ErrUserNotFound)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("func", "*userService.Login").Str("user_id", user.ID).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.credentials.Issue(ctx, user.ID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

func (s *userService) Logout(ctx context.Context, identity models.Identity) error {
	return s.credentials.Revoke(ctx, identity.UserID)
}

func (s *userService) ChangePassword(ctx context.Context, identity models.Identity, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByID(ctx, identity.UserID)
	if err != nil {
		return storeError(err, ErrUserNotFound)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*userService.ChangePassword").Msg("error hashing password")
		return internalError(err)
	}

	if err = s.users.UpdatePasswordHash(ctx, user.ID, string(passwordHash)); err != nil {
		log.Err(err).Str("func", "*userService.ChangePassword").Str("user_id", user.ID).Msg("error updating password")
		return storeError(err, ErrUserNotFound)
	}

	return nil
}

func (s *userService) CurrentUser(ctx context.Context, identity models.Identity) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, identity.UserID)
	if err != nil {
		return models.User{}, storeError(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) UpdateAccountDetails(ctx context.Context, identity models.Identity, req models.UpdateAccountRequest) (models.User, error) {
	user, err := s.users.UpdateAccountDetails(ctx, identity.UserID, req.FullName, req.Email)
	if errors.Is(err, store.ErrAlreadyExists) {
		return models.User{}, fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.UpdateAccountDetails").Str("user_id", identity.UserID).Msg("error updating account")
		return models.User{}, storeError(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, identity models.Identity, avatar models.Upload) (models.User, error) {
	return s.replaceImage(ctx, identity, media.KindAvatar, avatar,
		func(u models.User) string { return u.Avatar },
		s.users.UpdateAvatar)
}

func (s *userService) UpdateCoverImage(ctx context.Context, identity models.Identity, coverImage models.Upload) (models.User, error) {
	return s.replaceImage(ctx, identity, media.KindCoverImage, coverImage,
		func(u models.User) string { return u.CoverImage },
		s.users.UpdateCoverImage)
}

// replaceImage uploads a new image, points the account at it and then
// removes the previous object.
func (s *userService) replaceImage(
	ctx context.Context,
	identity models.Identity,
	kind string,
	file models.Upload,
	current func(models.User) string,
	update func(ctx context.Context, id, url string) (models.User, error),
) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, identity.UserID)
	if err != nil {
		return models.User{}, storeError(err, ErrUserNotFound)
	}

	location, err := s.upload(ctx, kind, user.ID, file)
	if err != nil {
		return models.User{}, err
	}

	updated, err := update(ctx, user.ID, location)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.replaceImage").Str("kind", kind).Msg("error updating image")
		s.discard(ctx, location)
		return models.User{}, storeError(err, ErrUserNotFound)
	}

	s.discard(ctx, current(user))
	return updated, nil
}

func (s *userService) ChannelProfile(ctx context.Context, viewer models.Identity, username string) (models.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return models.ChannelProfile{}, ErrChannelNotFound
	}

	profile, err := s.users.ChannelProfile(ctx, username, viewer.UserID)
	if err != nil {
		return models.ChannelProfile{}, storeError(err, ErrChannelNotFound)
	}
	return profile, nil
}

func (s *userService) WatchHistory(ctx context.Context, identity models.Identity) ([]models.WatchedVideo, error) {
	history, err := s.users.WatchHistory(ctx, identity.UserID)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return s.composer.watchedViews(ctx, history)
}

func (s *userService) upload(ctx context.Context, kind, ownerID string, file models.Upload) (string, error) {
	location, err := s.media.Save(ctx, media.ObjectKey(kind, ownerID, file.FileName), file.Body, file.ContentType)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.upload").Str("kind", kind).Msg("error uploading file")
		return "", mediaError(err)
	}
	return location, nil
}

// discard removes objects that are no longer referenced. Failures are logged
// only.
func (s *userService) discard(ctx context.Context, locations ...string) {
	discardMedia(ctx, s.media, locations...)
}

func discardMedia(ctx context.Context, storage media.Storage, locations ...string) {
	for _, location := range locations {
		if location == "" {
			continue
		}
		if err := storage.Delete(ctx, location); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("location", location).Msg("error deleting media object")
		}
	}
}
