package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/chart"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The chart page is same-origin; CORS already allows any origin for reads
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GetWindow handles GET /api/v1/window requests
func (h *APIHandler) GetWindow(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	limit := c.Query("limit")

	validLimit, err := h.validator.ValidateWindowRequest(limit)
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	snapshot, err := h.trendService.GetWindow(ctx, validLimit)
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// StreamWindow handles GET /api/v1/ws requests, feeding the live chart page
func (h *APIHandler) StreamWindow(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	h.hub.Register(conn)

	// Reads are only used to observe the close; frames flow one way
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ChartPage handles GET /chart requests
func (h *APIHandler) ChartPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", chart.PageHTML())
}

// HealthCheck handles GET /health requests
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

// handleError logs the error and sends appropriate HTTP response
func (h *APIHandler) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	requestID, exists := c.Get(RequestIDContextKey)
	requestIDStr := "unknown"
	if exists {
		if id, ok := requestID.(string); ok {
			requestIDStr = id
		}
	}

	h.logger.Error("API error",
		slog.String("request_id", requestIDStr),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
		slog.Int("status_code", statusCode),
	)

	c.JSON(statusCode, gin.H{
		"error":      userMessage,
		"request_id": requestIDStr,
	})
}

// handleValidationError handles validation errors specifically
func (h *APIHandler) handleValidationError(c *gin.Context, err error) {
	h.handleError(c, err, http.StatusBadRequest, err.Error())
}
