// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command riskserver starts the glucoguard diabetes risk assessment server.
//
// It reads configuration from environment variables, loads the pre-trained
// classifier artifact, and serves the evaluation form, results, and PDF
// reports.
//
// # Environment Variables
//
//   - RISK_PORT: HTTP server port (default: 10000)
//   - RISK_MODEL_PATH: Path to the model artifact (default: diabetes_model.json)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (optional)
//
// # Usage
//
//	# Build
//	go build -o riskserver ./cmd/riskserver
//
//	# Run
//	./riskserver
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/samhealthlabs/glucoguard/services/riskserver"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Build configuration from environment variables
	cfg := riskserver.Config{
		Port:          getEnvInt("RISK_PORT", 10000),
		ModelPath:     getEnvString("RISK_MODEL_PATH", "diabetes_model.json"),
		OTelEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		EnableMetrics: true,
	}

	slog.Info("Starting risk server",
		"port", cfg.Port,
		"model_path", cfg.ModelPath,
	)

	// A missing or unloadable model artifact is fatal: the service must
	// not accept traffic without its classifier.
	svc, err := riskserver.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create risk server: %v", err)
	}

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Risk server error: %v", err)
	}
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
