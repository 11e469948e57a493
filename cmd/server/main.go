// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mailmahee/nifty/internal/bootstrap"
	"github.com/mailmahee/nifty/internal/channel"
	"github.com/mailmahee/nifty/internal/config"
	"github.com/mailmahee/nifty/internal/handler"
	httphandler "github.com/mailmahee/nifty/internal/handler/http"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/metrics"
	"github.com/mailmahee/nifty/internal/server"
	"github.com/mailmahee/nifty/internal/transport"
	"github.com/mailmahee/nifty/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("nifty-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	version := cfg.App.Version
	if version == "" {
		version = buildVersion
	}

	m := metrics.New()
	handlers := handler.NewHandlers(httphandler.Options{
		Version:      version,
		TokenSignKey: cfg.App.TokenSignKey,
		TokenIssuer:  cfg.App.TokenIssuer,
		Metrics:      m,
	}, log)

	coordinator, err := bootstrap.New(
		transport.DefinitionsFromConfig(cfg.AllTransports()),
		transport.NewRegistry(handlers, log),
		cfg.Bootstrap,
		channel.NewGroup("nifty"),
		log,
		bootstrap.WithMetrics(m),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating transports")
	}

	srv, err := server.NewServer(coordinator, cfg.Bootstrap.ShutdownTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(context.Background()); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}
