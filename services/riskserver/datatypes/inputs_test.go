// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"net/url"
	"testing"
)

func TestParseRiskInputsDefaults(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want RiskInputs
	}{
		{
			"empty form falls back to all defaults",
			url.Values{},
			RiskInputs{Glucose: 100, BloodPressure: 70, BMI: 25, Age: 30},
		},
		{
			"valid values pass through",
			url.Values{
				"glucose":        {"150.5"},
				"blood_pressure": {"80"},
				"bmi":            {"28"},
				"age":            {"40"},
			},
			RiskInputs{Glucose: 150.5, BloodPressure: 80, BMI: 28, Age: 40},
		},
		{
			"malformed glucose falls back, others kept",
			url.Values{
				"glucose":        {"abc"},
				"blood_pressure": {"80"},
				"bmi":            {"28"},
				"age":            {"40"},
			},
			RiskInputs{Glucose: 100, BloodPressure: 80, BMI: 28, Age: 40},
		},
		{
			"empty string falls back",
			url.Values{"bmi": {""}},
			RiskInputs{Glucose: 100, BloodPressure: 70, BMI: 25, Age: 30},
		},
		{
			"out-of-range values are accepted as given",
			url.Values{"age": {"-5"}, "glucose": {"9000"}},
			RiskInputs{Glucose: 9000, BloodPressure: 70, BMI: 25, Age: -5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRiskInputs(tc.form)
			if got != tc.want {
				t.Errorf("ParseRiskInputs() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestTierColour(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierLow, "green"},
		{TierModerate, "orange"},
		{TierHigh, "red"},
	}

	for _, tc := range tests {
		if got := tc.tier.Colour(); got != tc.want {
			t.Errorf("Tier(%q).Colour() = %q, expected %q", tc.tier, got, tc.want)
		}
	}
}
