package service

import (
	"context"

	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
)

// Pinger is anything that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appInfoService struct {
	appVersion string
	build      models.AppBuildInfo
	db         Pinger

	logger *logger.Logger
}

// NewAppInfoService fails when no version is configured. Build metadata
// injected at link time may be empty. A nil db is always ready.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, db Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		build:      build,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// GetVersionInfo reports the configured version together with the build
// date and commit. The configured version wins over the linked one.
func (s *appInfoService) GetVersionInfo(ctx context.Context) models.VersionInfo {
	info := s.build.VersionInfo()
	info.Version = s.appVersion
	if info.BuildDate == "" {
		info.BuildDate = "N/A"
	}
	if info.BuildCommit == "" {
		info.BuildCommit = "N/A"
	}
	return info
}

func (s *appInfoService) Ready(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("database is not ready")
		return storeError(err, nil)
	}
	return nil
}
