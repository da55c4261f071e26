package repository

import (
	"context"

	"CoinScope/internal/domain/models"
)

// HistoricalSource retrieves ordered OHLC history for a symbol.
// Implementations return records sorted ascending by date regardless of
// provider order.
type HistoricalSource interface {
	Fetch(ctx context.Context, symbol string, limit int) ([]models.OHLCRecord, error)
}

// SentimentSource retrieves the sentiment index series, newest-first.
type SentimentSource interface {
	Fetch(ctx context.Context, limit int) ([]models.SentimentRecord, error)
}

// NextDayPredictor produces a next-day high prediction for a token.
type NextDayPredictor interface {
	PredictNextDay(ctx context.Context, token string) (models.PredictionResult, error)
}

// Metrics abstracts operational metric recording.
type Metrics interface {
	RecordCacheHit(section string)
	RecordCacheMiss(section string)
	RecordError(kind string)
	RecordLastClose(symbol string, price float64)
	RecordOperationDuration(operation string, seconds float64)
}
