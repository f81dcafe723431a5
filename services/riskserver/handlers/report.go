// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/samhealthlabs/glucoguard/services/riskserver/datatypes"
	"github.com/samhealthlabs/glucoguard/services/riskserver/observability"
	"github.com/samhealthlabs/glucoguard/services/riskserver/report"
)

const reportFilename = "diabetes_risk_report.pdf"

// reservedReportFields are the computed assessment fields; everything else
// in the form is echoed into the input summary section.
var reservedReportFields = map[string]bool{
	"result":       true,
	"risk_percent": true,
	"explanation":  true,
	"advice":       true,
}

// reportFormNames maps ReportRequest struct fields back to their form names
// for client-facing validation errors.
var reportFormNames = map[string]string{
	"Result":      "result",
	"RiskPercent": "risk_percent",
	"Explanation": "explanation",
	"Advice":      "advice",
}

// GenerateReport handles POST /report.
//
// The endpoint performs no prediction: it re-renders the fields computed by
// a prior POST / and echoed back by the client. The four assessment fields
// are required; calling this endpoint without them is a client-usage error
// and yields a 400.
func GenerateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := riskTracer.Start(c.Request.Context(), "GenerateReport")
		defer span.End()

		var req datatypes.ReportRequest
		if err := c.ShouldBind(&req); err != nil {
			observability.RecordReport("client_error")
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing required report fields",
				"details": missingFieldNames(err),
			})
			return
		}

		riskValue, err := strconv.ParseFloat(strings.TrimSpace(req.RiskPercent), 64)
		if err != nil {
			observability.RecordReport("client_error")
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "risk_percent is not numeric", "details": req.RiskPercent,
			})
			return
		}

		data := report.Data{
			Result:      req.Result,
			RiskPercent: strings.TrimSpace(req.RiskPercent),
			RiskValue:   riskValue,
			Explanation: req.Explanation,
			Advice:      req.Advice,
			Inputs:      echoedFields(c),
			ReportID:    uuid.NewString(),
			GeneratedAt: time.Now(),
		}

		pdfBytes, err := report.Build(data)
		if err != nil {
			slog.Error("PDF generation failed", "report_id", data.ReportID, "error", err)
			span.RecordError(err)
			observability.RecordReport("error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}

		observability.RecordReport("success")
		slog.Info("Report generated",
			"report_id", data.ReportID,
			"bytes", len(pdfBytes),
		)

		c.Header("Content-Disposition", `attachment; filename="`+reportFilename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}

// echoedFields collects the non-reserved form fields for the input summary.
//
// The four clinical fields come first in their canonical order; any extra
// fields follow alphabetically so the document is deterministic.
func echoedFields(c *gin.Context) []report.Field {
	form := c.Request.PostForm

	var fields []report.Field
	for _, name := range []string{"glucose", "blood_pressure", "bmi", "age"} {
		if form.Has(name) {
			fields = append(fields, report.Field{Name: name, Value: form.Get(name)})
		}
	}

	var extras []string
	for name := range form {
		if !reservedReportFields[name] && !isClinicalField(name) {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		fields = append(fields, report.Field{Name: name, Value: form.Get(name)})
	}
	return fields
}

func isClinicalField(name string) bool {
	switch name {
	case "glucose", "blood_pressure", "bmi", "age":
		return true
	}
	return false
}

// missingFieldNames extracts the offending form field names from a binding
// error, falling back to the raw error text for non-validation failures.
func missingFieldNames(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if name, ok := reportFormNames[fe.Field()]; ok {
			names = append(names, name)
		} else {
			names = append(names, strings.ToLower(fe.Field()))
		}
	}
	return names
}
