package model

import (
	"encoding/json"
	"fmt"
	"os"

	"CoinScope/internal/domain/models"

	"gonum.org/v1/gonum/floats"
)

// Artifact is the loaded prediction model: regression weights plus the
// ordered feature-name schema it expects. Both are loaded once at
// process start and never mutated afterwards, so an Artifact is safe to
// share across all concurrent requests.
type Artifact struct {
	version   string
	schema    []string
	intercept float64
	weights   []float64
	snapshot  map[string]float64
}

type artifactFile struct {
	Version         string             `json:"version"`
	Intercept       float64            `json:"intercept"`
	Coefficients    map[string]float64 `json:"coefficients"`
	FeatureSnapshot map[string]float64 `json:"feature_snapshot"`
}

// Load reads the predictor weights and the ordered feature list from
// their serialized files. A missing or inconsistent artifact is fatal:
// the returned ModelLoadError aborts startup and is never recoverable
// at request time.
func Load(modelPath, featuresPath string) (*Artifact, error) {
	mb, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, &models.ModelLoadError{Path: modelPath, Err: err}
	}
	var mf artifactFile
	if err := json.Unmarshal(mb, &mf); err != nil {
		return nil, &models.ModelLoadError{Path: modelPath, Err: err}
	}

	fb, err := os.ReadFile(featuresPath)
	if err != nil {
		return nil, &models.ModelLoadError{Path: featuresPath, Err: err}
	}
	var schema []string
	if err := json.Unmarshal(fb, &schema); err != nil {
		return nil, &models.ModelLoadError{Path: featuresPath, Err: err}
	}
	if len(schema) == 0 {
		return nil, &models.ModelLoadError{Path: featuresPath, Err: fmt.Errorf("empty feature list")}
	}

	weights := make([]float64, len(schema))
	for i, name := range schema {
		w, ok := mf.Coefficients[name]
		if !ok {
			return nil, &models.ModelLoadError{
				Path: modelPath,
				Err:  fmt.Errorf("no coefficient for feature %q", name),
			}
		}
		weights[i] = w
	}

	return &Artifact{
		version:   mf.Version,
		schema:    schema,
		intercept: mf.Intercept,
		weights:   weights,
		snapshot:  mf.FeatureSnapshot,
	}, nil
}

// Version reports the artifact version for result provenance.
func (a *Artifact) Version() string {
	return a.version
}

// Schema returns a copy of the ordered feature-name schema.
func (a *Artifact) Schema() []string {
	out := make([]string, len(a.schema))
	copy(out, a.schema)
	return out
}

// Snapshot returns a copy of the fixed feature snapshot bundled with
// the artifact, used when no live feature window is wired in.
func (a *Artifact) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(a.snapshot))
	for k, v := range a.snapshot {
		out[k] = v
	}
	return out
}

// Predict applies the model to a feature vector. The vector's names
// must match the schema exactly, in order; any divergence fails closed.
func (a *Artifact) Predict(vec models.FeatureVector) (float64, error) {
	if len(vec.Names) != len(a.schema) {
		return 0, &models.InsufficientHistoryError{Needed: len(a.schema), Got: len(vec.Names)}
	}
	for i, name := range vec.Names {
		if name != a.schema[i] {
			return 0, &models.InsufficientHistoryError{Feature: a.schema[i]}
		}
	}
	return a.intercept + floats.Dot(a.weights, vec.Values), nil
}
