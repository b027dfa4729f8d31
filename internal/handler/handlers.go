package handler

import (
	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/handler/grpc"
	"github.com/MKhiriev/go-video-tube/internal/handler/http"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/internal/validators"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, validator validators.Validator, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, validator, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
