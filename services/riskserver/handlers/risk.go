// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers contains the HTTP handlers for the risk server.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/samhealthlabs/glucoguard/services/riskserver/datatypes"
	"github.com/samhealthlabs/glucoguard/services/riskserver/model"
	"github.com/samhealthlabs/glucoguard/services/riskserver/observability"
	"github.com/samhealthlabs/glucoguard/services/riskserver/risk"
)

var riskTracer = otel.Tracer("glucoguard/riskserver/handlers")

const indexTemplate = "index.html.tmpl"

// indexView is the template payload for the input form page.
type indexView struct {
	// Inputs pre-fills the form: defaults on GET, the parsed (possibly
	// defaulted) submission on POST.
	Inputs      datatypes.RiskInputs
	HasResult   bool
	Assessment  datatypes.Assessment
	RiskPercent string
}

// ShowForm handles GET /: the input form with defaults, no assessment.
func ShowForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, indexTemplate, indexView{
			Inputs: datatypes.RiskInputs{
				Glucose:       datatypes.DefaultGlucose,
				BloodPressure: datatypes.DefaultBloodPressure,
				BMI:           datatypes.DefaultBMI,
				Age:           datatypes.DefaultAge,
			},
		})
	}
}

// EvaluateRisk handles POST /: parse the four clinical fields, run the
// model, classify, and render the result page.
//
// Malformed numeric input is silently replaced by its documented default;
// this endpoint has no client-error path.
func EvaluateRisk(predictor model.Predictor) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := riskTracer.Start(c.Request.Context(), "EvaluateRisk")
		defer span.End()

		// A body that fails form decoding is treated the same as an empty
		// submission: every field falls back to its default.
		_ = c.Request.ParseForm()
		inputs := datatypes.ParseRiskInputs(c.Request.PostForm)

		vector := risk.Assemble(inputs)

		start := time.Now()
		probability := predictor.PredictRiskProbability(vector)
		observability.RecordPrediction(time.Since(start).Seconds())

		assessment := risk.Classify(probability, inputs)
		observability.RecordAssessment(strings.ToLower(string(assessment.Tier)))

		slog.Info("Risk evaluation complete",
			"assessment_id", assessment.ID,
			"tier", assessment.Tier,
			"risk_percent", assessment.RiskPercent,
		)

		c.HTML(http.StatusOK, indexTemplate, indexView{
			Inputs:      inputs,
			HasResult:   true,
			Assessment:  assessment,
			RiskPercent: risk.FormatPercent(assessment.RiskPercent),
		})
	}
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "glucoguard-riskserver"})
}
