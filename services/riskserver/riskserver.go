// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package riskserver provides the diabetes risk assessment HTTP service.
//
// This package contains the main service type that ties the components
// together: the pre-trained risk model, the classification core, HTML
// rendering, PDF report generation, and observability infrastructure.
//
// # Usage
//
//	cfg := riskserver.Config{Port: 10000, ModelPath: "diabetes_model.json"}
//	svc, err := riskserver.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
package riskserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/samhealthlabs/glucoguard/services/riskserver/model"
	"github.com/samhealthlabs/glucoguard/services/riskserver/observability"
	"github.com/samhealthlabs/glucoguard/services/riskserver/routes"
	"github.com/samhealthlabs/glucoguard/services/riskserver/web"
)

// Config holds the service configuration. Zero values use defaults.
//
// Host/port binding, the model artifact path, and an optional OTel collector
// endpoint are the only knobs; there is deliberately no further
// configuration surface.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// ModelPath locates the serialized classifier artifact. The artifact
	// must be present and loadable before the service accepts traffic.
	ModelPath string

	// OTelEndpoint is the OTLP gRPC collector address. Empty disables
	// tracing export.
	OTelEndpoint string

	// EnableMetrics controls Prometheus metric registration. Registration
	// happens at most once per process, so tests leave this off.
	EnableMetrics bool
}

// Service defines the risk server lifecycle.
//
// Run blocks and should be called at most once per instance. Router exposes
// the configured engine for integration testing.
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	Run() error

	// Router returns the underlying Gin engine for testing.
	Router() *gin.Engine
}

// service is the concrete Service implementation. All fields are read-only
// after New returns; the model handle is the only process-wide state and it
// is immutable, so requests need no locking.
type service struct {
	config        Config
	router        *gin.Engine
	predictor     model.Predictor
	tracerCleanup func(context.Context)
}

// New creates a risk server Service with the given configuration.
//
// # Description
//
// New initializes all components in order:
//  1. Applies defaults for missing configuration values
//  2. Initializes OpenTelemetry tracing (skipped without an endpoint)
//  3. Registers Prometheus metrics
//  4. Loads the model artifact; failure here is fatal
//  5. Builds the HTTP router with embedded templates and all routes
//
// # Outputs
//
//   - Service: Ready-to-run risk server
//   - error: Non-nil if the model artifact cannot be loaded
func New(cfg Config) (Service, error) {
	s := &service{
		config: applyConfigDefaults(cfg),
	}

	// Tracing is optional: a missing collector must not keep a health
	// service from starting.
	if s.config.OTelEndpoint != "" {
		cleanup, err := s.initTracer()
		if err != nil {
			slog.Warn("Tracer initialization failed, continuing without tracing",
				"endpoint", s.config.OTelEndpoint,
				"error", err)
		} else {
			s.tracerCleanup = cleanup
		}
	}

	if s.config.EnableMetrics {
		observability.InitMetrics()
		slog.Info("Initialized Prometheus metrics")
	}

	// The model is the one hard startup dependency.
	m, err := model.Load(s.config.ModelPath)
	if err != nil {
		s.cleanup()
		return nil, fmt.Errorf("failed to load risk model: %w", err)
	}
	s.predictor = m
	slog.Info("Risk model loaded", "path", s.config.ModelPath)

	s.initRouter()

	return s, nil
}

// Run starts the HTTP server and blocks until shutdown or error.
func (s *service) Run() error {
	defer s.cleanup()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting risk server", "port", s.config.Port)

	return s.router.Run(addr)
}

// Router returns the underlying Gin engine for testing.
func (s *service) Router() *gin.Engine {
	return s.router
}

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 10000
	}
	if cfg.ModelPath == "" {
		cfg.ModelPath = "diabetes_model.json"
	}
	return cfg
}

// initTracer initializes OpenTelemetry distributed tracing.
//
// Uses an insecure gRPC connection, appropriate for internal networks.
// Returns a cleanup function to call on shutdown.
func (s *service) initTracer() (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(s.config.OTelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("glucoguard-riskserver")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}

	return cleanup, nil
}

// initRouter sets up the Gin HTTP router with templates and all routes.
func (s *service) initRouter() {
	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("glucoguard-riskserver"))
	s.router.SetHTMLTemplate(web.Templates())

	routes.SetupRoutes(s.router, s.predictor)
}

// cleanup releases resources held by the service.
func (s *service) cleanup() {
	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}
