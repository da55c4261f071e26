package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"CoinScope/internal/service/model"
	"CoinScope/internal/usecase"
	xlogger "CoinScope/pkg/logger"

	"github.com/labstack/echo/v4"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testPredictionService(t *testing.T) *usecase.PredictionService {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	featuresPath := filepath.Join(dir, "features_list.json")

	modelJSON := `{
		"version": "test",
		"intercept": 12.44,
		"coefficients": {"close": 1},
		"feature_snapshot": {"close": 3500}
	}`
	if err := os.WriteFile(modelPath, []byte(modelJSON), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	if err := os.WriteFile(featuresPath, []byte(`["close"]`), 0o644); err != nil {
		t.Fatalf("write features: %v", err)
	}

	art, err := model.Load(modelPath, featuresPath)
	if err != nil {
		t.Fatalf("load artifact: %v", err)
	}
	return usecase.NewPredictionService(art, nil, map[string]string{"ETH": "ETH-USD"}, 30, testLogger(t))
}

func newPredictorServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	h := NewPredictorHandler(testLogger(t), testPredictionService(t), []string{"ETH"})
	h.RegisterRoutes(e)
	return e
}

func TestPredictEndpoint(t *testing.T) {
	e := newPredictorServer(t)

	req := httptest.NewRequest(http.MethodGet, "/predict/eth", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var body struct {
		Token         string  `json:"token"`
		DatePredicted string  `json:"date_predicted"`
		PredictedHigh float64 `json:"predicted_high"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Token != "ETH" {
		t.Fatalf("token = %q, want ETH", body.Token)
	}
	if body.PredictedHigh != 3512.44 {
		t.Fatalf("predicted high = %v, want 3512.44", body.PredictedHigh)
	}
	if body.DatePredicted == "" {
		t.Fatalf("missing date_predicted")
	}
}

func TestPredictEndpointUnsupportedToken(t *testing.T) {
	e := newPredictorServer(t)

	req := httptest.NewRequest(http.MethodGet, "/predict/DOGE", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["detail"] == "" {
		t.Fatalf("missing detail field: %s", rec.Body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newPredictorServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "prediction service running" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestOverviewEndpoint(t *testing.T) {
	e := newPredictorServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Endpoints       map[string]string `json:"endpoints"`
		SupportedTokens []string          `json:"supported_tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body.Endpoints["/predict/{token}"]; !ok {
		t.Fatalf("overview missing predict endpoint: %v", body.Endpoints)
	}
	if len(body.SupportedTokens) != 1 || body.SupportedTokens[0] != "ETH" {
		t.Fatalf("unexpected supported tokens %v", body.SupportedTokens)
	}
}
