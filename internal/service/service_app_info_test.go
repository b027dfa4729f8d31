package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.AppBuildInfo{}, nil, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, models.AppBuildInfo{}, nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

func TestGetVersionInfo(t *testing.T) {
	tests := []struct {
		name  string
		build models.AppBuildInfo
		want  models.VersionInfo
	}{
		{
			name:  "linked metadata",
			build: models.NewAppBuildInfo("0.9.0", "2026-01-02", "abc123"),
			want:  models.VersionInfo{Version: "1.0.0", BuildDate: "2026-01-02", BuildCommit: "abc123"},
		},
		{
			name:  "nothing linked",
			build: models.AppBuildInfo{},
			want:  models.VersionInfo{Version: "1.0.0", BuildDate: "N/A", BuildCommit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, tt.build, nil, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.want, svc.GetVersionInfo(context.Background()))
		})
	}
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReady(t *testing.T) {
	ctx := context.Background()

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, nil, logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, svc.Ready(ctx))

	svc, err = NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{},
		pingerFunc(func(context.Context) error { return store.ErrUnavailable }), logger.Nop())
	require.NoError(t, err)

	err = svc.Ready(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))
}
