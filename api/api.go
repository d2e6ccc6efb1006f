package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/chart"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// This file serves as the main entry point for the API package. It defines the APIHandler struct and its dependencies.
// The actual implementation of the HTTP handlers, middleware, and validation are organized into separate files:
// - api.go: Main API handler and dependencies (this file)
// - handler.go: HTTP request handlers
// - middleware.go: Middleware functions
// - validator.go: Request validation

// Constants
const (
	DefaultTimeout      = 30 * time.Second
	ServiceVersion      = "1.0.0"
	ServiceName         = "sentiment-trend-service"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// TrendService is an interface defining methods to read the rolling window
type TrendService interface {
	GetWindow(ctx context.Context, limit int64) (model.WindowSnapshot, error)
}

// APIHandler handles HTTP requests using Gin framework
type APIHandler struct {
	trendService   TrendService
	hub            *chart.Hub
	metricsHandler http.Handler
	validator      *Validator
	logger         *slog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(trendService TrendService, hub *chart.Hub, metricsHandler http.Handler, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandler{
		trendService:   trendService,
		hub:            hub,
		metricsHandler: metricsHandler,
		validator:      GetValidator(),
		logger:         logger,
	}
}

// StartServer starts the HTTP server in release mode
func (h *APIHandler) StartServer(port int) error {
	gin.SetMode(gin.ReleaseMode)
	router := h.SetupRoutes()
	return router.Run(":" + strconv.Itoa(port))
}

// SetupRoutes configures all API routes. The gin mode is the caller's
// decision; tests keep their own.
func (h *APIHandler) SetupRoutes() *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(requestIDMiddleware())
	router.Use(requestLoggerMiddleware(h.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// API routes
	router.GET("/api/v1/window", h.GetWindow)
	router.GET("/api/v1/ws", h.StreamWindow)
	router.GET("/chart", h.ChartPage)
	router.GET("/health", h.HealthCheck)
	if h.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(h.metricsHandler))
	}

	return router
}
