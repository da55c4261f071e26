package api

import (
	"errors"
	"net/http"

	"CoinScope/internal/domain/models"
	"CoinScope/internal/usecase"
	xlogger "CoinScope/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictorHandler serves the prediction API surface: overview, health,
// and the next-day high prediction endpoint.
type PredictorHandler struct {
	logger *xlogger.Logger
	svc    *usecase.PredictionService
	tokens []string
}

func NewPredictorHandler(logger *xlogger.Logger, svc *usecase.PredictionService, tokens []string) *PredictorHandler {
	return &PredictorHandler{logger: logger, svc: svc, tokens: tokens}
}

func (h *PredictorHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Overview)
	e.GET("/health/", h.Health)
	e.GET("/predict/:token", h.Predict)
}

func (h *PredictorHandler) Overview(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"project":     "CoinScope Prediction API",
		"description": "Predicts the next-day HIGH price for supported tokens.",
		"endpoints": map[string]string{
			"/":                "Project overview",
			"/health/":         "Health check endpoint",
			"/predict/{token}": "Next-day high price prediction",
		},
		"supported_tokens": h.tokens,
		"output_format": map[string]string{
			"token":          "string",
			"date_predicted": "YYYY-MM-DD",
			"predicted_high": "float",
		},
	})
}

func (h *PredictorHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "prediction service running",
	})
}

func (h *PredictorHandler) Predict(c echo.Context) error {
	result, err := h.svc.PredictNextDay(c.Request().Context(), c.Param("token"))
	if err != nil {
		var unsupported *models.UnsupportedTokenError
		if errors.As(err, &unsupported) {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": err.Error()})
		}
		h.logger.Error("prediction failed", xlogger.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
