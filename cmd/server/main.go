package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/handler"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/server"
	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/workers"
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
		logger.NewLogger("tyre-shop-server").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLoggerWithLevel("tyre-shop-server", cfg.App.LogLevel)

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	adapters := adapter.NewAdapters(cfg.Adapter, log)
	defer func() {
		if err := adapters.Close(); err != nil {
			log.Err(err).Msg("error closing adapters")
		}
	}()

	services := service.NewServices(storages, adapters, *cfg, log)

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	backgroundWorkers, err := workers.NewWorkers(cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}
	backgroundWorkers.Run()
	defer backgroundWorkers.Stop()

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
