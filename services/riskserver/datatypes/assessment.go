// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes defines the request and domain types shared by the
// riskserver handlers, classifier, and report builder.
package datatypes

// =============================================================================
// Feature Vector
// =============================================================================

// FeatureDim is the dimensionality of the model's input vector.
const FeatureDim = 8

// FeatureVector is the fixed-order input to the risk model.
//
// The order matches the column order the classifier was trained with and
// must never be rearranged:
//
//	[pregnancies, glucose, bloodPressure, skinThickness, insulin, bmi, dpf, age]
type FeatureVector [FeatureDim]float64

// Indexes into FeatureVector. Kept explicit so the training-time column
// order is visible at the call site.
const (
	FeaturePregnancies = iota
	FeatureGlucose
	FeatureBloodPressure
	FeatureSkinThickness
	FeatureInsulin
	FeatureBMI
	FeatureDPF
	FeatureAge
)

// =============================================================================
// Risk Tiers
// =============================================================================

// Tier is the categorized risk level derived from the model probability.
type Tier string

const (
	TierLow      Tier = "Low"
	TierModerate Tier = "Moderate"
	TierHigh     Tier = "High"
)

// Colour returns the badge colour associated with the tier.
//
// The mapping is fixed: Low=green, Moderate=orange, High=red. Both the HTML
// badge and the PDF chart bar use this value.
func (t Tier) Colour() string {
	switch t {
	case TierModerate:
		return "orange"
	case TierHigh:
		return "red"
	default:
		return "green"
	}
}

// =============================================================================
// Assessment
// =============================================================================

// Assessment is the complete classification result for one evaluation.
//
// An Assessment is created once per request and never mutated afterwards.
// There is no cross-request state: the /report endpoint reconstructs an
// equivalent view purely from fields echoed back by the client.
//
// # Fields
//
//   - ID: Correlation ID stamped into logs and the PDF cover page
//   - Probability: Raw model output in [0,1]
//   - RiskPercent: Probability*100 rounded to one decimal place
//   - Tier: Low, Moderate, or High
//   - Colour: Badge colour matching the tier
//   - Summary: "{Tier} diabetes risk ({percent}%)"
//   - Explanation: Contributing-factor sentence derived from the raw inputs
//   - Advice: Lifestyle advice gated on the probability
//   - Inputs: The user-supplied values the assessment was computed from
type Assessment struct {
	ID          string
	Probability float64
	RiskPercent float64
	Tier        Tier
	Colour      string
	Summary     string
	Explanation string
	Advice      string
	Inputs      RiskInputs
}
