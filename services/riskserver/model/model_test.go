// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samhealthlabs/glucoguard/services/riskserver/datatypes"
)

const testArtifact = "testdata/diabetes_model.json"

// baselineVector is the vector assembled from all-default inputs.
var baselineVector = datatypes.FeatureVector{0, 100, 70, 20, 80, 25, 0.5, 30}

func TestLoadArtifact(t *testing.T) {
	m, err := Load(testArtifact)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", testArtifact, err)
	}
	if m == nil {
		t.Fatal("Load returned nil model")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load of missing file did not fail")
	}
}

func TestLoadRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not JSON", "this is not a model"},
		{"wrong weight count", `{"weights":[1,2,3],"intercept":0}`},
		{"scaler length mismatch", `{"weights":[0,0,0,0,0,0,0,0],"intercept":0,"means":[1,2],"scales":[1,2]}`},
		{"zero scale", `{"weights":[0,0,0,0,0,0,0,0],"intercept":0,"means":[0,0,0,0,0,0,0,0],"scales":[1,1,1,0,1,1,1,1]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted bad artifact %q", tc.name)
			}
		})
	}
}

func TestPredictProbabilityRange(t *testing.T) {
	m, err := Load(testArtifact)
	if err != nil {
		t.Fatal(err)
	}

	vectors := []datatypes.FeatureVector{
		baselineVector,
		{0, 200, 90, 20, 80, 45, 0.5, 65},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, -50, 70, 20, 80, 25, 0.5, -10}, // no input validation by contract
	}

	for _, v := range vectors {
		p := m.PredictRiskProbability(v)
		if p < 0 || p > 1 {
			t.Errorf("PredictRiskProbability(%v) = %v, outside [0,1]", v, p)
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	m, err := Load(testArtifact)
	if err != nil {
		t.Fatal(err)
	}

	if m.PredictRiskProbability(baselineVector) != m.PredictRiskProbability(baselineVector) {
		t.Error("prediction is not deterministic")
	}
}

func TestPredictMonotoneInGlucose(t *testing.T) {
	// The artifact carries a positive glucose coefficient, so raising
	// glucose alone must raise the probability.
	m, err := Load(testArtifact)
	if err != nil {
		t.Fatal(err)
	}

	low := baselineVector
	high := baselineVector
	high[datatypes.FeatureGlucose] = 190

	if m.PredictRiskProbability(high) <= m.PredictRiskProbability(low) {
		t.Error("probability did not increase with glucose")
	}
}

func TestPredictUnscaledArtifact(t *testing.T) {
	// Scaler stats are optional; a bare weight vector must load and predict.
	path := filepath.Join(t.TempDir(), "model.json")
	content := `{"weights":[0,0.01,0,0,0,0.02,0,0.01],"intercept":-2.5}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := m.PredictRiskProbability(baselineVector)
	if p < 0 || p > 1 {
		t.Errorf("probability %v outside [0,1]", p)
	}
}
