package models

// FeatureVector is an ordered set of named model inputs. Names and
// their order must match the loaded artifact's schema exactly; callers
// never pad or reorder silently.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// PredictionResult is the outcome of a next-day high prediction.
type PredictionResult struct {
	Token         string  `json:"token"`
	DatePredicted string  `json:"date_predicted"`
	PredictedHigh float64 `json:"predicted_high"`
	ModelVersion  string  `json:"model_version,omitempty"`
}
