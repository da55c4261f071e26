package models

import "fmt"

// DataUnavailableError reports a provider payload missing required fields.
type DataUnavailableError struct {
	Provider string
	Reason   string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: data unavailable: %s", e.Provider, e.Reason)
}

// FetchError wraps a network, timeout, or non-success status failure
// from an external provider. A single attempt is made, no retries.
type FetchError struct {
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch failed: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// InsufficientHistoryError reports a feature window too short to build
// the model input, or a computed feature set that does not cover the
// artifact schema.
type InsufficientHistoryError struct {
	Needed  int
	Got     int
	Feature string
}

func (e *InsufficientHistoryError) Error() string {
	if e.Feature != "" {
		return fmt.Sprintf("insufficient history: feature %q not derivable from window", e.Feature)
	}
	return fmt.Sprintf("insufficient history: need %d periods, got %d", e.Needed, e.Got)
}

// UnsupportedTokenError reports a token outside the supported set.
type UnsupportedTokenError struct {
	Token string
}

func (e *UnsupportedTokenError) Error() string {
	return fmt.Sprintf("unsupported token %q", e.Token)
}

// PredictionError reports a failed remote prediction call. StatusCode
// is zero for transport-level failures.
type PredictionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *PredictionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("prediction failed: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("prediction failed: %s", e.Message)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// ModelLoadError is the sole fatal error class: a missing or unreadable
// model artifact aborts startup, it is never surfaced at request time.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("model load %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}
