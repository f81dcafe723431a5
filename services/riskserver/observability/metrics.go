// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the risk server.
//
// Metrics are exposed on /metrics and cover the three operations the service
// performs: risk evaluations, model predictions, and PDF report generation.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics.
const metricsNamespace = "glucoguard"

// Subsystem for risk evaluation metrics.
const riskSubsystem = "risk"

// RiskMetrics holds all Prometheus metrics for the risk server.
//
// Initialize once at startup via InitMetrics(). All operations are
// thread-safe.
type RiskMetrics struct {
	// AssessmentsTotal counts completed risk evaluations by resulting tier.
	// Labels: tier (low, moderate, high)
	AssessmentsTotal *prometheus.CounterVec

	// PredictionDurationSeconds measures model prediction latency.
	PredictionDurationSeconds prometheus.Histogram

	// ReportsTotal counts PDF report requests by outcome.
	// Labels: status (success, client_error, error)
	ReportsTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of RiskMetrics.
// Nil until InitMetrics() is called; callers must check before use.
var DefaultMetrics *RiskMetrics

// InitMetrics creates and registers all Prometheus metrics.
//
// Call once at application startup. Calling twice panics on duplicate
// registration, which flags a wiring bug.
func InitMetrics() *RiskMetrics {
	DefaultMetrics = &RiskMetrics{
		AssessmentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: riskSubsystem,
				Name:      "assessments_total",
				Help:      "Completed risk evaluations by resulting tier.",
			},
			[]string{"tier"},
		),
		PredictionDurationSeconds: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: riskSubsystem,
				Name:      "prediction_duration_seconds",
				Help:      "Latency of a single model prediction.",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
		),
		ReportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: riskSubsystem,
				Name:      "reports_total",
				Help:      "PDF report requests by outcome.",
			},
			[]string{"status"},
		),
	}
	return DefaultMetrics
}

// RecordAssessment increments the assessment counter for a tier label.
// Safe to call when metrics are disabled (DefaultMetrics nil).
func RecordAssessment(tier string) {
	if DefaultMetrics != nil {
		DefaultMetrics.AssessmentsTotal.WithLabelValues(tier).Inc()
	}
}

// RecordPrediction observes one model prediction duration in seconds.
// Safe to call when metrics are disabled.
func RecordPrediction(seconds float64) {
	if DefaultMetrics != nil {
		DefaultMetrics.PredictionDurationSeconds.Observe(seconds)
	}
}

// RecordReport increments the report counter for an outcome label.
// Safe to call when metrics are disabled.
func RecordReport(status string) {
	if DefaultMetrics != nil {
		DefaultMetrics.ReportsTotal.WithLabelValues(status).Inc()
	}
}
