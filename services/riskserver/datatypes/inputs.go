// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"net/url"
	"strconv"
)

// Defaults applied when a form field is missing or not parseable as a float.
// These are also the values the input form is pre-filled with.
const (
	DefaultGlucose       = 100
	DefaultBloodPressure = 70
	DefaultBMI           = 25
	DefaultAge           = 30
)

// RiskInputs holds the four user-supplied clinical values.
//
// No range validation is performed: values are accepted as given, including
// physiologically impossible ones. This mirrors the leniency policy of the
// input form: a bad value falls back to its default, it never errors.
type RiskInputs struct {
	Glucose       float64
	BloodPressure float64
	BMI           float64
	Age           float64
}

// ParseRiskInputs extracts the four clinical fields from submitted form
// values, substituting the documented default for anything missing or
// malformed.
//
// # Inputs
//
//   - form: Decoded POST form values (field names are snake_case)
//
// # Outputs
//
//   - RiskInputs: Always fully populated; this function cannot fail.
func ParseRiskInputs(form url.Values) RiskInputs {
	return RiskInputs{
		Glucose:       floatOrDefault(form, "glucose", DefaultGlucose),
		BloodPressure: floatOrDefault(form, "blood_pressure", DefaultBloodPressure),
		BMI:           floatOrDefault(form, "bmi", DefaultBMI),
		Age:           floatOrDefault(form, "age", DefaultAge),
	}
}

// floatOrDefault parses form[key] as a float64, returning def on any failure.
func floatOrDefault(form url.Values, key string, def float64) float64 {
	raw := form.Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// ReportRequest is the form payload for POST /report.
//
// The endpoint performs no prediction: it re-renders text the client echoes
// back from a prior evaluation. The four assessment fields are contractually
// required; a request without them is a client-usage error and is rejected
// with a 400 before any rendering happens.
// RiskPercent stays a string here so that a legitimate "0.0" is not
// rejected by the required rule; the handler parses it for the chart.
type ReportRequest struct {
	Result      string `form:"result" binding:"required"`
	RiskPercent string `form:"risk_percent" binding:"required"`
	Explanation string `form:"explanation" binding:"required"`
	Advice      string `form:"advice" binding:"required"`
}
