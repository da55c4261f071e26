package usecase

import (
	"context"
	"fmt"
	"time"

	"CoinScope/internal/domain/models"
	drepo "CoinScope/internal/domain/repository"
	"CoinScope/internal/service/localdata"
	"CoinScope/pkg/cache"
	xlogger "CoinScope/pkg/logger"
)

// DashboardConfig carries the per-section fetch parameters.
type DashboardConfig struct {
	Symbol         string
	Token          string
	HistoryDays    int
	SentimentLimit int
	HistoryTTL     time.Duration
	SentimentTTL   time.Duration
	PredictionTTL  time.Duration
}

// Dashboard aggregates the data behind both views. Every remote fetch
// goes through the single-flight cache; sections fetch and fail in
// isolation so one provider outage never blanks the whole page.
type Dashboard struct {
	cfg       DashboardConfig
	fetcher   *cache.Fetcher
	history   drepo.HistoricalSource
	sentiment drepo.SentimentSource
	predictor drepo.NextDayPredictor
	local     *localdata.Loader
	metrics   drepo.Metrics
	logger    *xlogger.Logger
}

// NewDashboard creates the dashboard aggregator. local may be nil when
// no preprocessed price file is configured.
func NewDashboard(
	cfg DashboardConfig,
	fetcher *cache.Fetcher,
	history drepo.HistoricalSource,
	sentiment drepo.SentimentSource,
	predictor drepo.NextDayPredictor,
	local *localdata.Loader,
	metrics drepo.Metrics,
	logger *xlogger.Logger,
) *Dashboard {
	return &Dashboard{
		cfg:       cfg,
		fetcher:   fetcher,
		history:   history,
		sentiment: sentiment,
		predictor: predictor,
		local:     local,
		metrics:   metrics,
		logger:    logger,
	}
}

// Render builds the full payload for the given view.
func (d *Dashboard) Render(ctx context.Context, v View) (interface{}, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordOperationDuration("render_"+string(v), time.Since(start).Seconds())
	}()

	switch v {
	case ViewPrediction:
		return d.RenderPrediction(ctx), nil
	case ViewPriceAnalysis:
		return d.RenderPriceAnalysis(ctx), nil
	default:
		return nil, fmt.Errorf("unknown view %q", v)
	}
}

// RenderPriceAnalysis builds the price analysis view: the local price
// series, the provider candle window with summary stats, and the
// sentiment section. Section errors are collected, never propagated.
func (d *Dashboard) RenderPriceAnalysis(ctx context.Context) *models.PriceAnalysisView {
	view := &models.PriceAnalysisView{Errors: map[string]string{}}

	if d.local != nil {
		series, err := d.local.Load()
		if err != nil {
			d.sectionFailed(view.Errors, "local", err)
		} else {
			view.LocalSeries = series
		}
	}

	candles, err := d.fetchHistory(ctx)
	if err != nil {
		d.sectionFailed(view.Errors, "history", err)
	} else {
		view.Candles = candles
		view.Stats = summarize(candles)
		if view.Stats != nil {
			d.metrics.RecordLastClose(d.cfg.Symbol, view.Stats.LatestClose)
		}
	}

	sentiment, err := d.fetchSentiment(ctx)
	if err != nil {
		d.sectionFailed(view.Errors, "sentiment", err)
	} else if len(sentiment) > 0 {
		view.Sentiment = &models.SentimentSummary{
			Latest:  sentiment[0],
			History: sentiment,
		}
	}

	if len(view.Errors) == 0 {
		view.Errors = nil
	}
	return view
}

// RenderPrediction builds the prediction view. A failed remote call
// surfaces as a section error, not a render failure.
func (d *Dashboard) RenderPrediction(ctx context.Context) *models.PredictionView {
	view := &models.PredictionView{Errors: map[string]string{}}

	key := cache.GenerateKey("prediction", d.cfg.Token)
	d.observeCacheLookup(ctx, "prediction", key)
	result, err := cache.GetOrFetch(ctx, d.fetcher, key, d.cfg.PredictionTTL,
		func(ctx context.Context) (models.PredictionResult, error) {
			return d.predictor.PredictNextDay(ctx, d.cfg.Token)
		})
	if err != nil {
		d.sectionFailed(view.Errors, "prediction", err)
	} else {
		view.Prediction = &result
	}

	if len(view.Errors) == 0 {
		view.Errors = nil
	}
	return view
}

func (d *Dashboard) fetchHistory(ctx context.Context) ([]models.OHLCRecord, error) {
	key := cache.GenerateKeyWithParams("history", d.cfg.Symbol, d.cfg.HistoryDays)
	d.observeCacheLookup(ctx, "history", key)
	return cache.GetOrFetch(ctx, d.fetcher, key, d.cfg.HistoryTTL,
		func(ctx context.Context) ([]models.OHLCRecord, error) {
			return d.history.Fetch(ctx, d.cfg.Symbol, d.cfg.HistoryDays)
		})
}

func (d *Dashboard) fetchSentiment(ctx context.Context) ([]models.SentimentRecord, error) {
	key := cache.GenerateKeyWithParams("sentiment", d.cfg.SentimentLimit)
	d.observeCacheLookup(ctx, "sentiment", key)
	return cache.GetOrFetch(ctx, d.fetcher, key, d.cfg.SentimentTTL,
		func(ctx context.Context) ([]models.SentimentRecord, error) {
			return d.sentiment.Fetch(ctx, d.cfg.SentimentLimit)
		})
}

func (d *Dashboard) sectionFailed(errs map[string]string, section string, err error) {
	errs[section] = err.Error()
	d.metrics.RecordError(section)
	d.logger.Warn("dashboard section failed",
		xlogger.String("section", section),
		xlogger.Error(err),
	)
}

func (d *Dashboard) observeCacheLookup(ctx context.Context, section, key string) {
	if ok, err := d.fetcher.Backend().Exists(ctx, key); err == nil && ok {
		d.metrics.RecordCacheHit(section)
	} else {
		d.metrics.RecordCacheMiss(section)
	}
}

func summarize(candles []models.OHLCRecord) *models.PriceStats {
	if len(candles) == 0 {
		return nil
	}
	var sum float64
	for _, c := range candles {
		sum += c.Close
	}
	first := candles[0].Close
	latest := candles[len(candles)-1].Close

	stats := &models.PriceStats{
		LatestClose:  latest,
		AverageClose: sum / float64(len(candles)),
	}
	if first != 0 {
		stats.ChangePct = (latest/first - 1) * 100
	}
	return stats
}
