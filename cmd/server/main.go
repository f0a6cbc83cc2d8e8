package main

import (
	"context"
	"fmt"

	"github.com/rmorgan-dev/folio/internal/config"
	myHTTP "github.com/rmorgan-dev/folio/internal/handler/http"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/server"
	"github.com/rmorgan-dev/folio/internal/service"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("folio-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg, log)
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(
		workers.NewRevocationSweeper(services.AuthService, cfg.Server.RevocationSweepInterval, log),
	)
	background.Run()
	defer background.Stop()

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
