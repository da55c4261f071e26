package di

import (
	"fmt"

	"CoinScope/internal/domain/repository"
	"CoinScope/internal/handler/api"
	"CoinScope/internal/service/coindesk"
	"CoinScope/internal/service/feargreed"
	"CoinScope/internal/service/localdata"
	"CoinScope/internal/service/model"
	"CoinScope/internal/service/prediction"
	"CoinScope/internal/usecase"
	"CoinScope/pkg/cache"
	"CoinScope/pkg/config"
	xhttp "CoinScope/pkg/http"
	applogger "CoinScope/pkg/logger"
	"CoinScope/pkg/metrics"
	"CoinScope/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logger.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logger.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logger.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCacheFetcher creates the process-wide single-flight cache over
// the configured backend (memory-only, or layered memory + Redis).
func ProvideCacheFetcher(cfg *config.Config) (*cache.Fetcher, error) {
	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewFetcher(cache.NewLayeredCache(rc,
			cache.WithLayeredMemorySize(cfg.Cache.MaxSize),
		)), nil
	}

	return cache.NewFetcher(cache.NewMemoryCache(
		cache.WithMemoryMaxSize(cfg.Cache.MaxSize),
		cache.WithMemoryCleanup(cfg.Cache.CleanupInterval.Std()),
	)), nil
}

// ProvideHistoricalSource creates the CoinDesk OHLC client.
func ProvideHistoricalSource(cfg *config.Config) repository.HistoricalSource {
	return coindesk.New(cfg.CoinDesk.BaseURL, cfg.CoinDesk.Market, cfg.CoinDesk.Aggregate, cfg.CoinDesk.Timeout.Std())
}

// ProvideSentimentSource creates the Fear & Greed client.
func ProvideSentimentSource(cfg *config.Config) repository.SentimentSource {
	return feargreed.New(cfg.FearGreed.BaseURL, cfg.FearGreed.Timeout.Std())
}

// ProvidePredictionClient creates the remote prediction caller used by
// the dashboard.
func ProvidePredictionClient(cfg *config.Config) repository.NextDayPredictor {
	return prediction.New(cfg.Predictor.BaseURL, cfg.Predictor.Timeout.Std())
}

// ProvideLocalLoader creates the preprocessed price file loader, or nil
// when no file is configured.
func ProvideLocalLoader(cfg *config.Config) *localdata.Loader {
	if cfg.Dashboard.LocalDataPath == "" {
		return nil
	}
	return localdata.NewLoader(cfg.Dashboard.LocalDataPath, cfg.Cutoff())
}

// ProvideDashboard creates the dashboard aggregator use case.
func ProvideDashboard(
	cfg *config.Config,
	fetcher *cache.Fetcher,
	history repository.HistoricalSource,
	sentiment repository.SentimentSource,
	predictor repository.NextDayPredictor,
	local *localdata.Loader,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(usecase.DashboardConfig{
		Symbol:         cfg.Dashboard.Symbol,
		Token:          cfg.Dashboard.Token,
		HistoryDays:    cfg.Dashboard.HistoryDays,
		SentimentLimit: cfg.Dashboard.SentimentLimit,
		HistoryTTL:     cfg.Cache.HistoryTTL.Std(),
		SentimentTTL:   cfg.Cache.SentimentTTL.Std(),
		PredictionTTL:  cfg.Cache.PredictionTTL.Std(),
	}, fetcher, history, sentiment, predictor, local, m, logger)
}

// ProvideSessionManager creates the per-session navigation registry,
// rendering through the dashboard aggregator.
func ProvideSessionManager(dash *usecase.Dashboard) *usecase.SessionManager {
	return usecase.NewSessionManager(dash.Render)
}

// ProvideDashboardHandler creates the dashboard HTTP handler.
func ProvideDashboardHandler(logger *applogger.Logger, dash *usecase.Dashboard, sessions *usecase.SessionManager) xhttp.Handler {
	return api.NewDashboardHandler(logger, dash, sessions)
}

// ProvideDashboardApp assembles the dashboard service.
func ProvideDashboardApp(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, fetcher *cache.Fetcher) *server.App {
	return server.New(cfg, logger, handler, fetcher)
}

// ProvideArtifact loads the model artifact at startup. A load failure
// here is fatal: the predictor never starts without its model.
func ProvideArtifact(cfg *config.Config) (*model.Artifact, error) {
	return model.Load(cfg.Predictor.ModelPath, cfg.Predictor.FeaturesPath)
}

// ProvidePredictionService creates the local prediction use case. With
// live_features enabled the feature window comes from the historical
// provider; otherwise the artifact's fixed snapshot is used.
func ProvidePredictionService(cfg *config.Config, artifact *model.Artifact, logger *applogger.Logger) *usecase.PredictionService {
	var history repository.HistoricalSource
	if cfg.Predictor.LiveFeatures {
		history = ProvideHistoricalSource(cfg)
	}
	return usecase.NewPredictionService(artifact, history, cfg.Predictor.Tokens, cfg.Predictor.WindowSize, logger)
}

// ProvidePredictorHandler creates the prediction API handler.
func ProvidePredictorHandler(cfg *config.Config, logger *applogger.Logger, svc *usecase.PredictionService) xhttp.Handler {
	tokens := make([]string, 0, len(cfg.Predictor.Tokens))
	for t := range cfg.Predictor.Tokens {
		tokens = append(tokens, t)
	}
	return api.NewPredictorHandler(logger, svc, tokens)
}

// ProvidePredictorApp assembles the predictor service.
func ProvidePredictorApp(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, logger, handler)
}
