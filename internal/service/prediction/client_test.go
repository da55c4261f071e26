package prediction

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CoinScope/internal/domain/models"
)

func TestPredictNextDaySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict/ETH" {
			t.Errorf("path = %q, want /predict/ETH", r.URL.Path)
		}
		w.Write([]byte(`{"token":"ETH","date_predicted":"2025-09-08","predicted_high":3512.44}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	result, err := c.PredictNextDay(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}

	if result.Token != "ETH" {
		t.Fatalf("token = %q, want ETH", result.Token)
	}
	if result.DatePredicted != "2025-09-08" {
		t.Fatalf("date = %q, want 2025-09-08", result.DatePredicted)
	}
	if result.PredictedHigh != 3512.44 {
		t.Fatalf("predicted high = %v, want 3512.44", result.PredictedHigh)
	}
}

func TestPredictNextDayErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Token 'DOGE' not supported"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.PredictNextDay(context.Background(), "DOGE")

	var predErr *models.PredictionError
	if !errors.As(err, &predErr) {
		t.Fatalf("expected PredictionError, got %v", err)
	}
	if predErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", predErr.StatusCode)
	}
	if predErr.Message != "Token 'DOGE' not supported" {
		t.Fatalf("message = %q", predErr.Message)
	}
}

func TestPredictNextDayOpaqueErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.PredictNextDay(context.Background(), "ETH")

	var predErr *models.PredictionError
	if !errors.As(err, &predErr) {
		t.Fatalf("expected PredictionError, got %v", err)
	}
	if predErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", predErr.StatusCode)
	}
	if predErr.Message == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestPredictNextDayTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.PredictNextDay(context.Background(), "ETH")

	var predErr *models.PredictionError
	if !errors.As(err, &predErr) {
		t.Fatalf("expected PredictionError, got %v", err)
	}
	if predErr.StatusCode != 0 {
		t.Fatalf("transport failures carry no status code, got %d", predErr.StatusCode)
	}
}

func TestPredictNextDayTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, 20*time.Millisecond)
	_, err := c.PredictNextDay(context.Background(), "ETH")

	var predErr *models.PredictionError
	if !errors.As(err, &predErr) {
		t.Fatalf("expected PredictionError on timeout, got %v", err)
	}
}
