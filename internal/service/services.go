package service

import (
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/media"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/models"
)

type Services struct {
	CredentialService CredentialService
	UserService       UserService
	VideoService      VideoService
	CommentService    CommentService
	PostService       PostService
	PlaylistService   PlaylistService
	SocialService     SocialService
	DashboardService  DashboardService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, mediaStorage media.Storage, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, build, storages, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	credentials := NewCredentialService(storages.UserRepository, cfg.App, logger)

	return &Services{
		CredentialService: credentials,
		UserService:       NewUserService(storages, credentials, mediaStorage, logger),
		VideoService:      NewVideoService(storages, mediaStorage, logger),
		CommentService:    NewCommentService(storages, logger),
		PostService:       NewPostService(storages, logger),
		PlaylistService:   NewPlaylistService(storages, logger),
		SocialService:     NewSocialService(storages, logger),
		DashboardService:  NewDashboardService(storages, logger),
		AppInfoService:    appInfoService,
	}, nil
}
