//go:build wireinject
// +build wireinject

package di

import (
	"CoinScope/pkg/config"
	"CoinScope/pkg/server"

	"github.com/google/wire"
)

// InitializeDashboard wires up the dashboard service.
// Wire will generate the implementation of this function.
func InitializeDashboard(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCacheFetcher,

		// External providers
		ProvideHistoricalSource,
		ProvideSentimentSource,
		ProvidePredictionClient,
		ProvideLocalLoader,

		// Use cases
		ProvideDashboard,
		ProvideSessionManager,

		// HTTP surface
		ProvideDashboardHandler,
		ProvideDashboardApp,
	)
	return &server.App{}, nil
}

// InitializePredictor wires up the prediction service.
func InitializePredictor(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideArtifact,
		ProvidePredictionService,
		ProvidePredictorHandler,
		ProvidePredictorApp,
	)
	return &server.App{}, nil
}
