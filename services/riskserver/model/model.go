// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package model loads the pre-trained diabetes classifier and exposes it as
// an opaque probability function.
//
// # Description
//
// The classifier is trained offline (scikit-learn logistic regression on the
// Pima Indians dataset) and exported as a JSON artifact containing the
// coefficients, intercept, and the standard-scaler statistics. This package
// consumes that artifact as a black box: the service never trains, validates,
// or reloads the model.
//
// # Lifecycle
//
// Load the artifact once at startup and keep the handle for the life of the
// process. A missing or malformed artifact is a fatal startup error; the
// service must not accept traffic without a model.
//
// # Thread Safety
//
// LogisticModel is read-only after Load and safe for concurrent use.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/samhealthlabs/glucoguard/services/riskserver/datatypes"
)

// Predictor is the contract the classifier core consumes.
//
// Implementations must be deterministic, side-effect free, and safe for
// concurrent use. The core does not know or care how the probability is
// produced; only the numeric contract matters.
type Predictor interface {
	// PredictRiskProbability returns the probability in [0,1] that the
	// subject described by v is at risk.
	PredictRiskProbability(v datatypes.FeatureVector) float64
}

// artifact is the on-disk JSON layout of the exported model.
type artifact struct {
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
	// Optional standard-scaler statistics. When present, inputs are
	// standardized as (x - mean) / scale before the dot product.
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

// LogisticModel is a logistic-regression classifier over the 8-feature
// vector. Fields are immutable after Load.
type LogisticModel struct {
	weights   [datatypes.FeatureDim]float64
	intercept float64
	means     [datatypes.FeatureDim]float64
	scales    [datatypes.FeatureDim]float64
	scaled    bool
}

// Load reads and validates a serialized model artifact.
//
// # Inputs
//
//   - path: Filesystem path to the JSON artifact
//
// # Outputs
//
//   - *LogisticModel: Ready-to-use predictor
//   - error: Non-nil if the file is missing, unreadable, or the wrong shape.
//     Callers treat this as fatal at startup.
func Load(path string) (*LogisticModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}

	if len(a.Weights) != datatypes.FeatureDim {
		return nil, fmt.Errorf("model artifact %s has %d weights, expected %d",
			path, len(a.Weights), datatypes.FeatureDim)
	}

	m := &LogisticModel{intercept: a.Intercept}
	copy(m.weights[:], a.Weights)

	if len(a.Means) > 0 || len(a.Scales) > 0 {
		if len(a.Means) != datatypes.FeatureDim || len(a.Scales) != datatypes.FeatureDim {
			return nil, fmt.Errorf("model artifact %s has scaler stats of length %d/%d, expected %d",
				path, len(a.Means), len(a.Scales), datatypes.FeatureDim)
		}
		for i, s := range a.Scales {
			if s == 0 {
				return nil, fmt.Errorf("model artifact %s has zero scale for feature %d", path, i)
			}
		}
		copy(m.means[:], a.Means)
		copy(m.scales[:], a.Scales)
		m.scaled = true
	}

	return m, nil
}

// PredictRiskProbability applies the logistic model to v.
//
// Total over all float inputs; out-of-range values produce a numeric result
// without validation, matching the leniency of the input layer.
func (m *LogisticModel) PredictRiskProbability(v datatypes.FeatureVector) float64 {
	z := m.intercept
	for i, x := range v {
		if m.scaled {
			x = (x - m.means[i]) / m.scales[i]
		}
		z += m.weights[i] * x
	}
	return sigmoid(z)
}

// sigmoid is the logistic function, mapping any real z into (0,1).
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Compile-time interface compliance check.
var _ Predictor = (*LogisticModel)(nil)
