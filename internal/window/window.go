package window

import (
	"context"
	"sync"
	"time"

	"github.com/14dstcyr/buzzline-04-stcyr/internal/model"
)

// Config holds configuration for the rolling window
type Config struct {
	MaxPoints int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MaxPoints: 50, // Keep the last 50 sentiment readings
	}
}

// RollingWindow keeps the most recent MaxPoints sentiment readings as two
// index-aligned series. Eviction is FIFO; points stay in arrival order even
// when their timestamps arrive out of order.
type RollingWindow struct {
	timestamps []time.Time // paired with sentiments by index
	sentiments []float64
	config     Config
	mu         sync.RWMutex
}

// NewRollingWindow creates a rolling window with default config
func NewRollingWindow() *RollingWindow {
	return NewRollingWindowWithConfig(DefaultConfig())
}

// NewRollingWindowWithConfig creates a rolling window with custom config
func NewRollingWindowWithConfig(config Config) *RollingWindow {
	if config.MaxPoints <= 0 {
		config.MaxPoints = DefaultConfig().MaxPoints
	}
	return &RollingWindow{
		timestamps: make([]time.Time, 0, config.MaxPoints),
		sentiments: make([]float64, 0, config.MaxPoints),
		config:     config,
	}
}

// Append pushes a point onto both series. When the window is full the oldest
// point is dropped from both series, keeping them index-aligned.
func (w *RollingWindow) Append(point model.SentimentPoint) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.timestamps = append(w.timestamps, point.Timestamp)
	w.sentiments = append(w.sentiments, point.Sentiment)

	if len(w.sentiments) > w.config.MaxPoints {
		w.timestamps = w.timestamps[len(w.timestamps)-w.config.MaxPoints:]
		w.sentiments = w.sentiments[len(w.sentiments)-w.config.MaxPoints:]
	}

	return nil
}

// Len returns the current number of points in the window.
func (w *RollingWindow) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.sentiments)
}

// Capacity returns the configured maximum number of points.
func (w *RollingWindow) Capacity() int {
	return w.config.MaxPoints
}

// Snapshot returns a copy of the full window contents.
func (w *RollingWindow) Snapshot() model.WindowSnapshot {
	snapshot, _ := w.LatestPoints(context.Background(), 0)
	return snapshot
}

// LatestPoints returns a copy of the last 'limit' points (0 means all).
func (w *RollingWindow) LatestPoints(ctx context.Context, limit int64) (model.WindowSnapshot, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	timestamps := w.timestamps
	sentiments := w.sentiments

	if limit > 0 && int64(len(sentiments)) > limit {
		timestamps = timestamps[len(timestamps)-int(limit):]
		sentiments = sentiments[len(sentiments)-int(limit):]
	}

	// Return copies to prevent external modification
	snapshot := model.WindowSnapshot{
		Timestamps: make([]time.Time, len(timestamps)),
		Sentiments: make([]float64, len(sentiments)),
	}
	copy(snapshot.Timestamps, timestamps)
	copy(snapshot.Sentiments, sentiments)

	return snapshot, nil
}
