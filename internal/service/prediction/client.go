package prediction

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"time"

	"CoinScope/internal/domain/models"
	drepo "CoinScope/internal/domain/repository"
	xhttp "CoinScope/pkg/http"
)

// Client calls the remote predictor service over HTTP. Exactly one
// attempt per call, no retry or backoff.
type Client struct {
	baseURL string
	httpc   *xhttp.Client
}

// New creates a prediction client with the given request timeout.
func New(baseURL string, timeout time.Duration) drepo.NextDayPredictor {
	return &Client{
		baseURL: baseURL,
		httpc:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type errorBody struct {
	Detail string `json:"detail"`
}

// PredictNextDay fetches the next-day high prediction for token. A
// non-success status maps to PredictionError carrying the status code;
// transport and timeout failures map to PredictionError with a message.
func (c *Client) PredictNextDay(ctx context.Context, token string) (models.PredictionResult, error) {
	resp, err := c.httpc.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/predict/" + url.PathEscape(token),
	})
	if err != nil {
		return models.PredictionResult{}, &models.PredictionError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "prediction service returned an error"
		body, _ := io.ReadAll(resp.Body)
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Detail != "" {
			msg = eb.Detail
		}
		return models.PredictionResult{}, &models.PredictionError{StatusCode: resp.StatusCode, Message: msg}
	}

	var result models.PredictionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.PredictionResult{}, &models.PredictionError{Message: "undecodable prediction payload", Err: err}
	}
	return result, nil
}
