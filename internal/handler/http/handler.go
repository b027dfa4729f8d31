package http

import (
	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	cfg       config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, validator validators.Validator, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}
