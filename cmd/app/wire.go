//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/valentinromain/astrosiderale/internal/bootstrap"
	"github.com/valentinromain/astrosiderale/internal/domain/chart"
	"github.com/valentinromain/astrosiderale/internal/infra/config"
	"github.com/valentinromain/astrosiderale/internal/infra/ephemeris"
	httpiface "github.com/valentinromain/astrosiderale/internal/interface/http"
	"github.com/valentinromain/astrosiderale/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideEngineConfig,
		provideChartConfig,
		ephemeris.NewProvider,
		wire.Bind(new(chart.Ephemeris), new(*ephemeris.Provider)),
		wire.Bind(new(chart.HouseProvider), new(*ephemeris.Provider)),
		chart.NewEngine,
		provideHistoryRepository,
		provideChartCache,
		provideChartArchive,
		chart.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
