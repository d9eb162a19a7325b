package main

import (
	"context"
	"fmt"

	httphandler "github.com/MKhiriev/go-spend-keeper/internal/handler/http"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/config"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/server"
	"github.com/MKhiriev/go-spend-keeper/internal/service"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
	"github.com/MKhiriev/go-spend-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("spend-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	sheets, err := adapter.NewHTTPSheetStore(cfg.Sheets, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating sheet store")
	}

	services := service.NewServices(storages, sheets, *cfg, log)
	handler := httphandler.NewHandler(services, cfg.Auth, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(
		workers.NewHydrationWorker(services.HydrationService, log),
	).Run()

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
