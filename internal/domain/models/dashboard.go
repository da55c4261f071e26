package models

// PriceStats summarizes the provider candle window shown on the price
// analysis view.
type PriceStats struct {
	LatestClose  float64 `json:"latest_close"`
	AverageClose float64 `json:"average_close"`
	ChangePct    float64 `json:"change_pct"`
}

// SentimentSummary carries the newest sentiment reading plus the series.
type SentimentSummary struct {
	Latest  SentimentRecord   `json:"latest"`
	History []SentimentRecord `json:"history"`
}

// PriceAnalysisView is the full render of the price analysis page.
// Sections fail independently: a missing section has an entry in Errors
// and its field left zero, the rest of the view still renders.
type PriceAnalysisView struct {
	LocalSeries []PricePoint      `json:"local_series,omitempty"`
	Candles     []OHLCRecord      `json:"candles,omitempty"`
	Stats       *PriceStats       `json:"stats,omitempty"`
	Sentiment   *SentimentSummary `json:"sentiment,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// PredictionView is the full render of the prediction page.
type PredictionView struct {
	Prediction *PredictionResult `json:"prediction,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}
