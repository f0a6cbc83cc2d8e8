package main

import (
	"fmt"

	"github.com/rmorgan-dev/folio/internal/adapter"
	"github.com/rmorgan-dev/folio/internal/client"
	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/service"
	"github.com/rmorgan-dev/folio/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("folio-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	sessions, err := store.NewSessionStore(cfg.Client.SessionDBPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local session store")
	}

	services := service.NewClientServices(serverAdapter, sessions, cfg.Client, log)

	app, err := client.NewApp(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
