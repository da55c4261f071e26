package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CoinScope/internal/domain/models"
	"CoinScope/internal/usecase"
	"CoinScope/pkg/cache"

	"github.com/labstack/echo/v4"
)

type fakeHistory struct{}

func (fakeHistory) Fetch(_ context.Context, _ string, limit int) ([]models.OHLCRecord, error) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	records := make([]models.OHLCRecord, limit)
	for i := range records {
		price := 100 + float64(i)
		records[i] = models.OHLCRecord{Date: start.AddDate(0, 0, i), Open: price, High: price + 1, Low: price - 1, Close: price}
	}
	return records, nil
}

type fakeSentiment struct{}

func (fakeSentiment) Fetch(context.Context, int) ([]models.SentimentRecord, error) {
	return []models.SentimentRecord{
		{Date: time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), Score: 71, Classification: "Greed"},
	}, nil
}

type fakePredictor struct{}

func (fakePredictor) PredictNextDay(context.Context, string) (models.PredictionResult, error) {
	return models.PredictionResult{Token: "ETH", DatePredicted: "2025-10-01", PredictedHigh: 3512.44}, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordCacheHit(string)                   {}
func (noopMetrics) RecordCacheMiss(string)                  {}
func (noopMetrics) RecordError(string)                      {}
func (noopMetrics) RecordLastClose(string, float64)         {}
func (noopMetrics) RecordOperationDuration(string, float64) {}

func newDashboardServer(t *testing.T) *echo.Echo {
	t.Helper()
	fetcher := cache.NewFetcher(cache.NewMemoryCache())
	t.Cleanup(func() { fetcher.Close() })

	cfg := usecase.DashboardConfig{
		Symbol:         "ETH-USD",
		Token:          "ETH",
		HistoryDays:    30,
		SentimentLimit: 10,
		HistoryTTL:     time.Minute,
		SentimentTTL:   time.Minute,
		PredictionTTL:  time.Minute,
	}
	dash := usecase.NewDashboard(cfg, fetcher, fakeHistory{}, fakeSentiment{}, fakePredictor{}, nil, noopMetrics{}, testLogger(t))
	sessions := usecase.NewSessionManager(dash.Render)

	e := echo.New()
	h := NewDashboardHandler(testLogger(t), dash, sessions)
	h.RegisterRoutes(e)
	return e
}

type sessionEnvelope struct {
	Status int `json:"status"`
	Data   struct {
		SessionID string          `json:"session_id"`
		View      string          `json:"view"`
		Changed   bool            `json:"changed"`
		Data      json.RawMessage `json:"data"`
	} `json:"data"`
}

func createSession(t *testing.T, e *echo.Echo) sessionEnvelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("create session status = %d: %s", rec.Code, rec.Body)
	}
	var env sessionEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	return env
}

func TestCreateSessionRendersInitialView(t *testing.T) {
	e := newDashboardServer(t)

	env := createSession(t, e)
	if env.Status != http.StatusCreated {
		t.Fatalf("envelope status = %d, want 201", env.Status)
	}
	if env.Data.SessionID == "" {
		t.Fatalf("missing session id")
	}
	if env.Data.View != "price_analysis" {
		t.Fatalf("initial view = %q, want price_analysis", env.Data.View)
	}

	var view models.PriceAnalysisView
	if err := json.Unmarshal(env.Data.Data, &view); err != nil {
		t.Fatalf("decode view payload: %v", err)
	}
	if len(view.Candles) != 30 {
		t.Fatalf("got %d candles, want 30", len(view.Candles))
	}
}

func TestNavigateToPrediction(t *testing.T) {
	e := newDashboardServer(t)
	env := createSession(t, e)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+env.Data.SessionID+"/navigate",
		strings.NewReader(`{"action":"view_prediction"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("navigate status = %d: %s", rec.Code, rec.Body)
	}
	var out sessionEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode navigate response: %v", err)
	}
	if out.Data.View != "prediction" {
		t.Fatalf("view = %q, want prediction", out.Data.View)
	}
	if !out.Data.Changed {
		t.Fatalf("expected changed=true on a real transition")
	}

	var view models.PredictionView
	if err := json.Unmarshal(out.Data.Data, &view); err != nil {
		t.Fatalf("decode prediction payload: %v", err)
	}
	if view.Prediction == nil || view.Prediction.PredictedHigh != 3512.44 {
		t.Fatalf("unexpected prediction: %+v", view.Prediction)
	}
}

func TestNavigateIdempotentSelect(t *testing.T) {
	e := newDashboardServer(t)
	env := createSession(t, e)

	// Selecting the already-active view must not transition but still
	// returns the current payload.
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+env.Data.SessionID+"/navigate",
		strings.NewReader(`{"view":"price_analysis"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("navigate status = %d: %s", rec.Code, rec.Body)
	}
	var out sessionEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode navigate response: %v", err)
	}
	if out.Data.Changed {
		t.Fatalf("no-op select reported a transition")
	}
	if out.Data.View != "price_analysis" {
		t.Fatalf("view drifted to %q", out.Data.View)
	}
	if len(out.Data.Data) == 0 || string(out.Data.Data) == "null" {
		t.Fatalf("no-op navigate returned an empty payload")
	}
}

func TestNavigateRejectsInvalidInput(t *testing.T) {
	e := newDashboardServer(t)
	env := createSession(t, e)

	for _, body := range []string{`{}`, `{"action":"teleport"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+env.Data.SessionID+"/navigate",
			strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		var out struct {
			Status int `json:"status"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response for %s: %v", body, err)
		}
		if out.Status != http.StatusBadRequest {
			t.Fatalf("body %s: envelope status = %d, want 400", body, out.Status)
		}
	}
}

func TestNavigateUnknownSession(t *testing.T) {
	e := newDashboardServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/nope/navigate",
		strings.NewReader(`{"action":"view_prediction"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Status != http.StatusNotFound {
		t.Fatalf("envelope status = %d, want 404", out.Status)
	}
}

func TestEndSession(t *testing.T) {
	e := newDashboardServer(t)
	env := createSession(t, e)

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+env.Data.SessionID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("end session status = %d, want 204", rec.Code)
	}

	// The session is gone: a view request resolves to not found.
	req = httptest.NewRequest(http.MethodGet, "/api/sessions/"+env.Data.SessionID+"/view", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Status != http.StatusNotFound {
		t.Fatalf("envelope status = %d, want 404", out.Status)
	}
}
