package features

import (
	"CoinScope/internal/domain/models"

	"gonum.org/v1/gonum/stat"
)

const (
	// MinPeriods is the smallest OHLC window the builder accepts.
	MinPeriods = 14

	smaPeriod = 7
	rsiPeriod = 14
	emaAlpha  = 2.0 / float64(smaPeriod+1)
)

// Build derives the model feature mapping from an ascending OHLC window
// (newest record last). Windows shorter than MinPeriods fail with
// InsufficientHistoryError; no feature is ever substituted with a default.
func Build(window []models.OHLCRecord) (map[string]float64, error) {
	n := len(window)
	if n < MinPeriods {
		return nil, &models.InsufficientHistoryError{Needed: MinPeriods, Got: n}
	}

	closes := make([]float64, n)
	for i, r := range window {
		closes[i] = r.Close
	}

	latest := window[n-1]
	prevClose := closes[n-2]

	out := map[string]float64{
		"open":              latest.Open,
		"high":              latest.High,
		"low":               latest.Low,
		"close":             latest.Close,
		"SMA_7":             stat.Mean(closes[n-smaPeriod:], nil),
		"EMA_7":             ema(closes),
		"RSI_14":            rsi(closes),
		"volatility_7":      stat.StdDev(closes[n-smaPeriod:], nil),
		"momentum_ratio":    ratio(latest.Close, prevClose),
		"price_range_ratio": ratio(latest.High-latest.Low, latest.Close),
		"returns":           safeReturn(latest.Close, prevClose),
	}

	// Lag-1 variants: same metrics over the window shifted back one period.
	lagged := closes[:n-1]
	out["close_lag1"] = lagged[len(lagged)-1]
	out["SMA_7_lag1"] = stat.Mean(lagged[len(lagged)-smaPeriod:], nil)
	out["EMA_7_lag1"] = ema(lagged)
	out["RSI_14_lag1"] = rsi(lagged)

	return out, nil
}

// Vector reorders the computed mapping to the artifact's declared
// schema. Any schema name absent from the mapping is a hard failure.
func Vector(values map[string]float64, schema []string) (models.FeatureVector, error) {
	vec := models.FeatureVector{
		Names:  make([]string, 0, len(schema)),
		Values: make([]float64, 0, len(schema)),
	}
	for _, name := range schema {
		v, ok := values[name]
		if !ok {
			return models.FeatureVector{}, &models.InsufficientHistoryError{Feature: name}
		}
		vec.Names = append(vec.Names, name)
		vec.Values = append(vec.Values, v)
	}
	return vec, nil
}

// ema runs an exponential moving average over the whole series, seeded
// from the simple mean of the first smaPeriod values. The recursion
// deliberately spans every close after the seed rather than only the
// trailing window: that matches how a span-7 ewm over the full history
// behaves, which is what the model was trained against.
func ema(closes []float64) float64 {
	if len(closes) < smaPeriod {
		return 0
	}
	v := stat.Mean(closes[:smaPeriod], nil)
	for i := smaPeriod; i < len(closes); i++ {
		v = emaAlpha*closes[i] + (1-emaAlpha)*v
	}
	return v
}

// rsi computes the standard relative strength index over the trailing
// rsiPeriod deltas (or as many as the series provides). A window with
// no movement at all reads as neutral 50; zero average loss reads 100,
// zero average gain reads 0.
func rsi(closes []float64) float64 {
	start := len(closes) - rsiPeriod - 1
	if start < 0 {
		start = 0
	}
	span := closes[start:]

	var gain, loss float64
	deltas := len(span) - 1
	if deltas < 1 {
		return 50
	}
	for i := 1; i < len(span); i++ {
		d := span[i] - span[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}

	avgGain := gain / float64(deltas)
	avgLoss := loss / float64(deltas)
	switch {
	case avgGain == 0 && avgLoss == 0:
		return 50
	case avgLoss == 0:
		return 100
	case avgGain == 0:
		return 0
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func safeReturn(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev
}
