package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/handler"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/media"
	"github.com/MKhiriev/go-video-tube/internal/server"
	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/validators"
	"github.com/MKhiriev/go-video-tube/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("video-tube-server", "info").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("video-tube-server", cfg.App.LogLevel)
	log.Debug().Any("server", cfg.Server).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	s3Storage, err := media.NewS3Storage(ctx, cfg.Storage.Media, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating media storage")
	}
	mediaStorage := media.NewBreakerStorage(s3Storage, media.BreakerSettings{}, log)

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, mediaStorage, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, validators.NewRequestValidator(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
