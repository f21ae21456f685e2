//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/tomoika/tripmag/internal/bootstrap"
	"github.com/tomoika/tripmag/internal/domain/trip"
	"github.com/tomoika/tripmag/internal/infra/config"
	httpiface "github.com/tomoika/tripmag/internal/interface/http"
	"github.com/tomoika/tripmag/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideTripConfig,
		provideTripRepository,
		provideTripStore,
		trip.NewService,
		httpiface.NewTripHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
