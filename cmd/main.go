// Package main starts the shared expense ledger API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/splitpot/splitpot/cmd/httpserver"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/storage"
	"github.com/splitpot/splitpot/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	repos, err := storage.Open(config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open storage backend")
	}
	defer repos.Close()

	server, err := httpserver.New(repos, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("EXPENSE LEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
