// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package routes wires the risk server's HTTP routes to their handlers.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samhealthlabs/glucoguard/services/riskserver/handlers"
	"github.com/samhealthlabs/glucoguard/services/riskserver/model"
)

// SetupRoutes registers all routes on the router.
//
// The evaluation flow is two requests: POST / computes and renders the
// assessment, POST /report re-renders the echoed fields as a PDF.
func SetupRoutes(router *gin.Engine, predictor model.Predictor) {
	router.GET("/", handlers.ShowForm())
	router.POST("/", handlers.EvaluateRisk(predictor))
	router.POST("/report", handlers.GenerateReport())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
