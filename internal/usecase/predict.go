package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"CoinScope/internal/domain/models"
	drepo "CoinScope/internal/domain/repository"
	"CoinScope/internal/service/model"
	"CoinScope/internal/services/features"
	xlogger "CoinScope/pkg/logger"
)

const dateLayout = "2006-01-02"

// PredictionService owns the loaded model artifact and produces
// next-day high predictions. When a historical source is wired in, the
// feature window is built live; otherwise the artifact's fixed feature
// snapshot is used.
type PredictionService struct {
	artifact   *model.Artifact
	history    drepo.HistoricalSource
	supported  map[string]string
	windowSize int
	logger     *xlogger.Logger
}

// NewPredictionService creates the prediction use case. supported maps
// an upper-case token to the provider instrument it trades as (e.g.
// "ETH" -> "ETH-USD"); history may be nil.
func NewPredictionService(artifact *model.Artifact, history drepo.HistoricalSource, supported map[string]string, windowSize int, logger *xlogger.Logger) *PredictionService {
	return &PredictionService{
		artifact:   artifact,
		history:    history,
		supported:  supported,
		windowSize: windowSize,
		logger:     logger,
	}
}

// PredictNextDay normalizes token case-insensitively, builds the model
// input, and predicts the high for the next calendar day. The predicted
// date is always today + 1 day, weekends and holidays included.
func (s *PredictionService) PredictNextDay(ctx context.Context, token string) (models.PredictionResult, error) {
	normalized := strings.ToUpper(strings.TrimSpace(token))
	instrument, ok := s.supported[normalized]
	if !ok {
		return models.PredictionResult{}, &models.UnsupportedTokenError{Token: token}
	}

	values, err := s.featureValues(ctx, instrument)
	if err != nil {
		return models.PredictionResult{}, err
	}

	vec, err := features.Vector(values, s.artifact.Schema())
	if err != nil {
		return models.PredictionResult{}, err
	}

	pred, err := s.artifact.Predict(vec)
	if err != nil {
		return models.PredictionResult{}, err
	}

	result := models.PredictionResult{
		Token:         normalized,
		DatePredicted: time.Now().UTC().AddDate(0, 0, 1).Format(dateLayout),
		PredictedHigh: math.Round(pred*100) / 100,
		ModelVersion:  s.artifact.Version(),
	}
	s.logger.Info("prediction served",
		xlogger.String("token", normalized),
		xlogger.String("date", result.DatePredicted),
	)
	return result, nil
}

func (s *PredictionService) featureValues(ctx context.Context, instrument string) (map[string]float64, error) {
	if s.history == nil {
		return s.artifact.Snapshot(), nil
	}
	window, err := s.history.Fetch(ctx, instrument, s.windowSize)
	if err != nil {
		return nil, err
	}
	return features.Build(window)
}

var _ drepo.NextDayPredictor = (*PredictionService)(nil)
