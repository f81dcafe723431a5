// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package risk implements the diabetes risk classification core.
//
// # Description
//
// This package turns a model probability plus the raw user inputs into a
// complete Assessment: tier, colour, summary line, contributing-factor
// explanation, and lifestyle advice. It also assembles the fixed-order
// feature vector the model consumes.
//
// Everything here is a pure function over floats. There are no error paths,
// no I/O, and no shared state, so all functions are safe for concurrent use.
//
// # Tier Thresholds
//
// Half-open intervals, lower bound inclusive:
//
//	[0.0, 0.3)  Low      green
//	[0.3, 0.6)  Moderate orange
//	[0.6, 1.0]  High     red
//
// The advice cutoff numerically coincides with the Low/Moderate boundary but
// is evaluated as its own rule so the two can diverge independently.
package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/samhealthlabs/glucoguard/services/riskserver/datatypes"
)

// Fixed values for the clinical features the input form does not expose.
// The model was trained on the full 8-column layout, so these population
// defaults fill the gaps.
const (
	defaultPregnancies   = 0
	defaultSkinThickness = 20
	defaultInsulin       = 80
	defaultDPF           = 0.5
)

// Probability thresholds. tierModerateMin doubles as the advice cutoff only
// by numeric coincidence; adviceCutoff is compared on its own below.
const (
	tierModerateMin = 0.3
	tierHighMin     = 0.6
	adviceCutoff    = 0.3
)

// Explanation trigger thresholds over the raw (unscaled) inputs.
const (
	glucoseTrigger = 140
	bmiTrigger     = 30
	ageTrigger     = 45
)

const (
	adviceElevated = "Reduce sugar intake, maintain healthy weight, and exercise regularly."
	adviceHealthy  = "Maintain current healthy lifestyle."

	explanationPrefix = "Main contributing factors: "
	explanationClean  = "No major risk factors detected."
)

// Assemble maps the four user-supplied values into the 8-dimensional vector
// the model expects.
//
// The vector order is a correctness invariant: it must exactly match the
// column order the classifier was trained with. See datatypes.FeatureVector.
func Assemble(in datatypes.RiskInputs) datatypes.FeatureVector {
	return datatypes.FeatureVector{
		defaultPregnancies,
		in.Glucose,
		in.BloodPressure,
		defaultSkinThickness,
		defaultInsulin,
		in.BMI,
		defaultDPF,
		in.Age,
	}
}

// Classify converts a model probability into a full Assessment.
//
// # Inputs
//
//   - probability: Model output, expected in [0,1] but total over all floats
//   - in: The raw user inputs, used for the factor explanation
//
// # Outputs
//
//   - datatypes.Assessment: Fully populated, never mutated afterwards
func Classify(probability float64, in datatypes.RiskInputs) datatypes.Assessment {
	tier := tierFor(probability)
	pct := roundPercent(probability)

	return datatypes.Assessment{
		ID:          uuid.NewString(),
		Probability: probability,
		RiskPercent: pct,
		Tier:        tier,
		Colour:      tier.Colour(),
		Summary:     fmt.Sprintf("%s diabetes risk (%s%%)", tier, FormatPercent(pct)),
		Explanation: explain(in),
		Advice:      adviceFor(probability),
		Inputs:      in,
	}
}

// FormatPercent renders a risk percentage with one decimal place, matching
// the value shown in both the HTML result and the PDF chart.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f", pct)
}

// tierFor buckets a probability into a tier. Lower bounds are inclusive.
func tierFor(p float64) datatypes.Tier {
	switch {
	case p < tierModerateMin:
		return datatypes.TierLow
	case p < tierHighMin:
		return datatypes.TierModerate
	default:
		return datatypes.TierHigh
	}
}

// roundPercent converts a probability to a percentage rounded to one decimal.
func roundPercent(p float64) float64 {
	return math.Round(p*1000) / 10
}

// explain evaluates the three factor triggers against the raw inputs.
//
// The triggers are independent of the tier and contribute their phrases in a
// fixed order (glucose, BMI, age), never sorted.
func explain(in datatypes.RiskInputs) string {
	var reasons []string
	if in.Glucose > glucoseTrigger {
		reasons = append(reasons, "elevated glucose")
	}
	if in.BMI > bmiTrigger {
		reasons = append(reasons, "high BMI")
	}
	if in.Age > ageTrigger {
		reasons = append(reasons, "older age")
	}
	if len(reasons) == 0 {
		return explanationClean
	}
	return explanationPrefix + strings.Join(reasons, ", ")
}

// adviceFor gates lifestyle advice on the probability alone.
//
// This is intentionally not derived from the tier enum: a future change to
// the tier boundaries must not silently move the advice cutoff.
func adviceFor(p float64) string {
	if p >= adviceCutoff {
		return adviceElevated
	}
	return adviceHealthy
}
