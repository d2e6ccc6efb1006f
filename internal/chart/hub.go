package chart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// HubConfig holds configuration for the chart hub
type HubConfig struct {
	SendBuffer   int
	WriteTimeout time.Duration
	RedrawPause  time.Duration
}

// DefaultHubConfig returns sensible default configuration
func DefaultHubConfig() HubConfig {
	return HubConfig{
		SendBuffer:   8,
		WriteTimeout: 5 * time.Second,
		RedrawPause:  10 * time.Millisecond, // short yield so pages repaint between points
	}
}

// Hub implements Renderer over WebSocket: every Redraw fans the frame out to
// all connected chart pages. Slow clients are dropped rather than blocking
// the consumption loop.
type Hub struct {
	clients   map[*websocket.Conn]chan []byte
	lastFrame []byte
	config    HubConfig
	logger    *slog.Logger
	mu        sync.Mutex
}

// NewHub creates a chart hub with default config
func NewHub(logger *slog.Logger) *Hub {
	return NewHubWithConfig(logger, DefaultHubConfig())
}

// NewHubWithConfig creates a chart hub with custom config
func NewHubWithConfig(logger *slog.Logger, config HubConfig) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = DefaultHubConfig().SendBuffer
	}
	return &Hub{
		clients: make(map[*websocket.Conn]chan []byte),
		config:  config,
		logger:  logger,
	}
}

// Register adds a connected chart page and starts its writer. The newest
// frame, if any, is delivered immediately so the page is not blank until the
// next point arrives.
func (h *Hub) Register(conn *websocket.Conn) {
	send := make(chan []byte, h.config.SendBuffer)

	h.mu.Lock()
	h.clients[conn] = send
	if h.lastFrame != nil {
		send <- h.lastFrame
	}
	clientCount := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("chart page connected", "clients", clientCount)

	go h.writeLoop(conn, send)
}

// Unregister removes a chart page and stops its writer.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(send)
	}
	clientCount := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info("chart page disconnected", "clients", clientCount)
	}
}

// ClientCount returns the number of connected chart pages.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Redraw marshals the snapshot into a frame and broadcasts it, then yields
// briefly so displays catch up without stalling the caller.
func (h *Hub) Redraw(snapshot model.WindowSnapshot) {
	data, err := json.Marshal(NewFrame(snapshot))
	if err != nil {
		h.logger.Error("failed to marshal chart frame", "error", err)
		return
	}

	h.mu.Lock()
	h.lastFrame = data
	for conn, send := range h.clients {
		select {
		case send <- data:
		default:
			// Client can't keep up, drop it
			delete(h.clients, conn)
			close(send)
			h.logger.Warn("dropped slow chart page")
		}
	}
	h.mu.Unlock()

	if h.config.RedrawPause > 0 {
		time.Sleep(h.config.RedrawPause)
	}
}

// Show keeps serving the final frame to connected and newly connecting pages
// until ctx is cancelled, then closes every connection.
func (h *Hub) Show(ctx context.Context) {
	h.logger.Info("stream ended, chart stays up for inspection")
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		delete(h.clients, conn)
		close(send)
	}
}

// LastFrame returns the most recently broadcast frame, nil before the first
// redraw.
func (h *Hub) LastFrame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastFrame
}

func (h *Hub) writeLoop(conn *websocket.Conn, send <-chan []byte) {
	defer conn.Close()

	for data := range send {
		conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("chart page write failed", "error", err)
			h.Unregister(conn)
			return
		}
	}
}
