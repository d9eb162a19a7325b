package http

import (
	"github.com/MKhiriev/go-spend-keeper/internal/config"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/service"
)

type Handler struct {
	services   *service.Services
	authConfig config.Auth

	logger *logger.Logger
}

func NewHandler(services *service.Services, authConfig config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		authConfig: authConfig,
		logger:     logger,
	}
}
