// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"testing"

	"github.com/samhealthlabs/glucoguard/services/riskserver/datatypes"
)

// healthyInputs fires none of the explanation triggers.
var healthyInputs = datatypes.RiskInputs{
	Glucose:       100,
	BloodPressure: 70,
	BMI:           22,
	Age:           30,
}

func TestClassifyTierBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		wantTier    datatypes.Tier
		wantColour  string
	}{
		{"zero", 0.0, datatypes.TierLow, "green"},
		{"just below moderate", 0.29999, datatypes.TierLow, "green"},
		{"moderate boundary inclusive", 0.3, datatypes.TierModerate, "orange"},
		{"mid moderate", 0.45, datatypes.TierModerate, "orange"},
		{"just below high", 0.59999, datatypes.TierModerate, "orange"},
		{"high boundary inclusive", 0.6, datatypes.TierHigh, "red"},
		{"certainty", 1.0, datatypes.TierHigh, "red"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Classify(tc.probability, healthyInputs)
			if a.Tier != tc.wantTier {
				t.Errorf("Classify(%v) tier = %q, expected %q", tc.probability, a.Tier, tc.wantTier)
			}
			if a.Colour != tc.wantColour {
				t.Errorf("Classify(%v) colour = %q, expected %q", tc.probability, a.Colour, tc.wantColour)
			}
		})
	}
}

func TestClassifyTierMonotonic(t *testing.T) {
	rank := map[datatypes.Tier]int{
		datatypes.TierLow:      0,
		datatypes.TierModerate: 1,
		datatypes.TierHigh:     2,
	}

	prev := -1
	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		r := rank[Classify(p, healthyInputs).Tier]
		if r < prev {
			t.Fatalf("tier rank decreased at p=%v: %d -> %d", p, prev, r)
		}
		prev = r
	}
}

func TestClassifySummaryText(t *testing.T) {
	tests := []struct {
		probability float64
		want        string
	}{
		{0.1, "Low diabetes risk (10.0%)"},
		{0.41567, "Moderate diabetes risk (41.6%)"},
		{0.6, "High diabetes risk (60.0%)"},
		{1.0, "High diabetes risk (100.0%)"},
	}

	for _, tc := range tests {
		a := Classify(tc.probability, healthyInputs)
		if a.Summary != tc.want {
			t.Errorf("Classify(%v) summary = %q, expected %q", tc.probability, a.Summary, tc.want)
		}
	}
}

func TestClassifyRiskPercentRounding(t *testing.T) {
	tests := []struct {
		probability float64
		want        float64
	}{
		{0.41567, 41.6},
		{0.005, 0.5},
		{0.12345, 12.3},
		{1.0, 100.0},
		{0.0, 0.0},
	}

	for _, tc := range tests {
		a := Classify(tc.probability, healthyInputs)
		if a.RiskPercent != tc.want {
			t.Errorf("Classify(%v) riskPercent = %v, expected %v", tc.probability, a.RiskPercent, tc.want)
		}
	}
}

func TestExplanationAllTriggersFixedOrder(t *testing.T) {
	in := datatypes.RiskInputs{Glucose: 150, BloodPressure: 80, BMI: 35, Age: 50}
	a := Classify(0.8, in)

	want := "Main contributing factors: elevated glucose, high BMI, older age"
	if a.Explanation != want {
		t.Errorf("explanation = %q, expected %q", a.Explanation, want)
	}
}

func TestExplanationPartialTriggers(t *testing.T) {
	tests := []struct {
		name string
		in   datatypes.RiskInputs
		want string
	}{
		{
			"no triggers",
			datatypes.RiskInputs{Glucose: 100, BloodPressure: 70, BMI: 22, Age: 30},
			"No major risk factors detected.",
		},
		{
			"glucose only",
			datatypes.RiskInputs{Glucose: 141, BloodPressure: 70, BMI: 22, Age: 30},
			"Main contributing factors: elevated glucose",
		},
		{
			"bmi and age keep trigger order",
			datatypes.RiskInputs{Glucose: 100, BloodPressure: 70, BMI: 31, Age: 46},
			"Main contributing factors: high BMI, older age",
		},
		{
			"thresholds are exclusive",
			datatypes.RiskInputs{Glucose: 140, BloodPressure: 70, BMI: 30, Age: 45},
			"No major risk factors detected.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Classify(0.5, tc.in)
			if a.Explanation != tc.want {
				t.Errorf("explanation = %q, expected %q", a.Explanation, tc.want)
			}
		})
	}
}

func TestAdviceGatingIndependentOfTier(t *testing.T) {
	tests := []struct {
		probability float64
		want        string
	}{
		{0.29, "Maintain current healthy lifestyle."},
		{0.30, "Reduce sugar intake, maintain healthy weight, and exercise regularly."},
		{0.75, "Reduce sugar intake, maintain healthy weight, and exercise regularly."},
		{0.0, "Maintain current healthy lifestyle."},
	}

	for _, tc := range tests {
		a := Classify(tc.probability, healthyInputs)
		if a.Advice != tc.want {
			t.Errorf("Classify(%v) advice = %q, expected %q", tc.probability, a.Advice, tc.want)
		}
	}
}

func TestAssembleVectorOrder(t *testing.T) {
	in := datatypes.RiskInputs{Glucose: 150, BloodPressure: 80, BMI: 28, Age: 40}

	got := Assemble(in)
	want := datatypes.FeatureVector{0, 150, 80, 20, 80, 28, 0.5, 40}
	if got != want {
		t.Errorf("Assemble(%+v) = %v, expected %v", in, got, want)
	}
}

func TestAssembleIsPure(t *testing.T) {
	in := datatypes.RiskInputs{Glucose: 1, BloodPressure: 2, BMI: 3, Age: 4}
	if Assemble(in) != Assemble(in) {
		t.Error("Assemble is not deterministic")
	}
}

func TestClassifyAssignsUniqueIDs(t *testing.T) {
	a := Classify(0.5, healthyInputs)
	b := Classify(0.5, healthyInputs)
	if a.ID == "" || b.ID == "" {
		t.Fatal("assessment ID is empty")
	}
	if a.ID == b.ID {
		t.Error("assessment IDs are not unique")
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{41.6, "41.6"},
		{40.0, "40.0"},
		{0.0, "0.0"},
		{100.0, "100.0"},
	}

	for _, tc := range tests {
		if got := FormatPercent(tc.pct); got != tc.want {
			t.Errorf("FormatPercent(%v) = %q, expected %q", tc.pct, got, tc.want)
		}
	}
}
